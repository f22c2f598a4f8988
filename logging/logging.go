// Package logging provides the leveled, categorized logging used across
// duocore's components. It mirrors mGBA's mLOG categories (GB_MBC, GB_MEM,
// GBA_VIDEO, ...): every component gets its own named logger, and game
// errors (bad ROM writes, invalid reads) are logged but never propagated
// to the caller.
package logging

import (
	"fmt"
	"log/slog"
	"os"
)

var base = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Logger is a named category, analogous to one of mGBA's mLOG_DEFINE_CATEGORY
// sites. Component packages hold one and call its leveled helpers instead of
// reaching for fmt/log directly.
type Logger struct {
	category string
}

// New returns a Logger for the given category name, e.g. "GB_MBC".
func New(category string) Logger {
	return Logger{category: category}
}

// GameErrorf logs a recovered error caused by bad guest behavior (an
// out-of-range mapper write, a read of unusable memory). These never stop
// emulation; they are reported and the caller falls back to the documented
// recovery value.
func (l Logger) GameErrorf(format string, args ...any) {
	base.Error(sprintf(format, args...), slog.String("category", l.category), slog.String("level", "GAME_ERROR"))
}

// Warnf logs a recoverable but noteworthy condition (a DMA re-armed while
// a transfer is in flight, an unknown cartridge type).
func (l Logger) Warnf(format string, args ...any) {
	base.Warn(sprintf(format, args...), slog.String("category", l.category))
}

// Stubf logs an access to a documented-but-unimplemented code path (MBC2,
// MBC6, MBC7 writes). It is distinct from GameErrorf: this is a gap in
// duocore, not bad guest behavior.
func (l Logger) Stubf(format string, args ...any) {
	base.Debug(sprintf(format, args...), slog.String("category", l.category), slog.String("level", "STUB"))
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
