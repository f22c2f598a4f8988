// Package mbc implements the 8-bit console's per-family mapper write
// decoders (memory bank controllers): address-range dispatch on writes
// into the 0x0000-0x7FFF cartridge window, ROM/SRAM bank selection, and
// real-time-clock latching. See spec.md section 4.2.
package mbc

import (
	"fmt"
	"time"

	"github.com/duocore-emu/duocore/cartridge"
	"github.com/duocore-emu/duocore/logging"
)

var log = logging.New("GB_MBC")

// RTCSource is an optional host-supplied clock. When absent, Latch falls
// back to the host wall clock. Mirrors mGBA's mRTCSource interface
// (sample()/unixTime()).
type RTCSource interface {
	// Sample advances the source's internal state; a no-op for sources
	// that track time continuously.
	Sample()
	// UnixTime returns the source's current reading as a Unix timestamp.
	UnixTime() int64
}

// Mapper is the per-cartridge write-decoder and bank-selection state that
// C5 (the memory controller) consults for every ROM-window write and every
// external-RAM/RTC access.
type Mapper interface {
	// Name identifies the mapper family, for diagnostics.
	Name() string
	// Write decodes a CPU store into the 0x0000-0x7FFF cartridge window.
	Write(addr uint16, value uint8)
	// ROMBank returns the bank currently mapped into 0x4000-0x7FFF.
	ROMBank() int
	// SRAMBank returns the bank currently mapped into 0xA000-0xBFFF when
	// SRAM is enabled.
	SRAMBank() int
	// SRAMEnabled reports whether 0xA000-0xBFFF resolves to SRAM.
	SRAMEnabled() bool
	// RTCEnabled reports whether 0xA000-0xBFFF resolves to the active RTC
	// register instead of SRAM.
	RTCEnabled() bool
	// RTCRegister returns the current value of the active RTC register.
	RTCRegister() uint8
	// WriteRTCRegister stores value into the active RTC register.
	WriteRTCRegister(value uint8)
}

// New constructs the mapper appropriate for the cartridge's header type,
// wired to an optional RTC clock source (nil falls back to the wall
// clock). Unknown header types were already normalized to MBC5 by
// cartridge.Header.MapperType.
func New(cart *cartridge.Cartridge, rtc RTCSource) Mapper {
	base := newBaseMapper(cart, rtc)
	if cart.Header().IsUnknownType() {
		log.Warnf("unknown cartridge type (%s), defaulting to MBC5", cart.Header())
	}

	switch cart.Header().MapperType() {
	case cartridge.MapperNone:
		return &noneMapper{baseMapper: base}
	case cartridge.MapperMBC1:
		return &mbc1{baseMapper: base}
	case cartridge.MapperMBC2:
		return &mbc2{baseMapper: base}
	case cartridge.MapperMBC3:
		return &mbc3{baseMapper: base}
	case cartridge.MapperMBC5:
		return &mbc5{baseMapper: base}
	case cartridge.MapperMBC6:
		return &mbc6{baseMapper: base}
	case cartridge.MapperMBC7:
		return &mbc7{baseMapper: base}
	default:
		// Unreachable: MapperType() always returns one of the above.
		panic(fmt.Sprintf("unknown mapper type %v", cart.Header().MapperType()))
	}
}

// baseMapper holds the state common to every family: the cartridge being
// decoded, current ROM/SRAM bank selection, SRAM/RTC access gates, and
// the five RTC registers. Concrete mappers embed it and only implement
// Write and Name themselves, the same shape as the teacher's baseMapper
// in mappers/mapper_basics.go.
type baseMapper struct {
	cart *cartridge.Cartridge
	rtc  RTCSource

	romBank  int
	sramBank int

	sramAccess bool
	rtcAccess  bool

	activeRTCReg int
	rtcLatched   bool
	rtcRegs      [5]uint8
}

func newBaseMapper(cart *cartridge.Cartridge, rtc RTCSource) *baseMapper {
	return &baseMapper{cart: cart, rtc: rtc, romBank: 1}
}

func (b *baseMapper) ROMBank() int        { return b.romBank }
func (b *baseMapper) SRAMBank() int       { return b.sramBank }
func (b *baseMapper) SRAMEnabled() bool   { return b.sramAccess }
func (b *baseMapper) RTCEnabled() bool    { return b.rtcAccess }
func (b *baseMapper) RTCRegister() uint8  { return b.rtcRegs[b.activeRTCReg] }
func (b *baseMapper) WriteRTCRegister(v uint8) {
	b.rtcRegs[b.activeRTCReg] = v
}

// switchROMBank selects bank n for the 0x4000-0x7FFF window, reducing
// modulo the image size (and logging a BankOutOfRange game error) if n
// would run past the end of the image, matching mGBA's _switchBank.
func (b *baseMapper) switchROMBank(n int) {
	if _, reduced := b.cart.BankBase(n); reduced {
		log.GameErrorf("attempting to switch to an invalid ROM bank: %#x", n)
		n %= b.cart.BankCount()
	}
	b.romBank = n
}

func (b *baseMapper) switchSRAMBank(n int) {
	b.sramBank = n
}

// sramGate decodes the common "0x0000-0x1FFF: value 0 disables SRAM,
// value 0x0A enables it" region shared by MBC1/MBC3/MBC5.
func (b *baseMapper) sramGate(value uint8, name string) {
	switch value {
	case 0x00:
		b.sramAccess = false
	case 0x0A:
		b.sramAccess = true
		b.switchSRAMBank(b.sramBank)
	default:
		log.Stubf("%s unknown SRAM-gate value %#02x", name, value)
	}
}

// latchRTC samples the clock source (or the wall clock if none is
// configured) and writes the five RTC registers from its calendar time in
// UTC, following mGBA's _latchRtc register layout.
func (b *baseMapper) latchRTC() {
	var unix int64
	if b.rtc != nil {
		b.rtc.Sample()
		unix = b.rtc.UnixTime()
	} else {
		unix = time.Now().Unix()
	}

	t := time.Unix(unix, 0).UTC()
	dayOfYear := t.YearDay() // 1-based: Jan 1 reads as day 1

	b.rtcRegs[0] = uint8(t.Second())
	b.rtcRegs[1] = uint8(t.Minute())
	b.rtcRegs[2] = uint8(t.Hour())
	b.rtcRegs[3] = uint8(dayOfYear)
	b.rtcRegs[4] = (b.rtcRegs[4] & 0xF0) | uint8(dayOfYear>>8)
}
