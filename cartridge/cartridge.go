package cartridge

import (
	"fmt"
	"os"
)

const (
	// HeaderOffset is where the header region (0x100-0x14F) begins within
	// the image.
	HeaderOffset = 0x100
	headerSize   = 0x50

	// BankSize is the size of one switchable ROM bank (also the size of
	// the fixed "bank 0" window at the start of the image).
	BankSize = 0x4000
)

// Cartridge is the immutable byte image of a loaded ROM, plus its decoded
// header. Bank-switching state lives in the mbc package, not here: per
// spec.md's data model, bank-0 mapping is fixed and the image itself never
// mutates.
type Cartridge struct {
	path   string
	data   []byte
	header *Header
}

// New loads a cartridge image from path and parses its header.
func New(path string) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read ROM file %q: %w", path, err)
	}
	if len(data) < HeaderOffset+headerSize {
		return nil, fmt.Errorf("ROM file %q is too small to contain a header (%d bytes)", path, len(data))
	}

	return &Cartridge{
		path:   path,
		data:   data,
		header: parseHeader(data[HeaderOffset : HeaderOffset+headerSize]),
	}, nil
}

// NewFromBytes builds a Cartridge directly from an in-memory image, for
// tests and other callers that already hold the image in memory.
func NewFromBytes(data []byte) (*Cartridge, error) {
	if len(data) < HeaderOffset+headerSize {
		return nil, fmt.Errorf("cartridge image too small to contain a header (%d bytes)", len(data))
	}
	return &Cartridge{
		data:   data,
		header: parseHeader(data[HeaderOffset : HeaderOffset+headerSize]),
	}, nil
}

// Header returns the cartridge's decoded header.
func (c *Cartridge) Header() *Header {
	return c.header
}

// Size returns the image length in bytes.
func (c *Cartridge) Size() int {
	return len(c.data)
}

// Bank0 returns the fixed first 16 KiB window of the image.
func (c *Cartridge) Bank0() []byte {
	end := BankSize
	if end > len(c.data) {
		end = len(c.data)
	}
	return c.data[:end]
}

// BankCount returns the number of 16 KiB banks the image contains, rounded
// down; images that aren't an exact multiple of BankSize still expose at
// least one bank.
func (c *Cartridge) BankCount() int {
	n := len(c.data) / BankSize
	if n == 0 {
		n = 1
	}
	return n
}

// ByteAt returns the raw byte at absolute offset addr within the image,
// reduced modulo the image size. gbmem's switchable ROM window reads go
// through it, so an out-of-range offset never indexes past the image.
func (c *Cartridge) ByteAt(addr int) byte {
	return c.data[addr%len(c.data)]
}

// BankBase returns the absolute byte offset of the start of bank n,
// reduced modulo the image size if it would otherwise run past the end.
// wasReduced reports whether the reduction kicked in, so callers can log
// a BankOutOfRange condition.
func (c *Cartridge) BankBase(n int) (base int, wasReduced bool) {
	base = n * BankSize
	if base+BankSize > len(c.data) {
		return base % len(c.data), true
	}
	return base, false
}

func (c *Cartridge) String() string {
	return fmt.Sprintf("cartridge %q: %s (%d bytes, %d banks)", c.path, c.header, len(c.data), c.BankCount())
}
