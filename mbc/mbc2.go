package mbc

// mbc2 implements header types 0x05-0x06. The family is entirely
// unimplemented upstream (mGBA's _GBMBC2 is a stub); duocore preserves
// that as a documented open question rather than guessing at its
// built-in 512x4-bit RAM and bank-select semantics.
type mbc2 struct {
	*baseMapper
}

func (m *mbc2) Name() string { return "MBC2" }

func (m *mbc2) Write(addr uint16, value uint8) {
	log.Stubf("MBC2 unimplemented: %#04x = %#02x", addr, value)
}
