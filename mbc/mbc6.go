package mbc

// mbc6 implements header type 0x20. duocore, like mGBA, carries this
// family as a recognized stub so the cartridge header table stays
// complete: writes are logged and ignored.
type mbc6 struct {
	*baseMapper
}

func (m *mbc6) Name() string { return "MBC6" }

func (m *mbc6) Write(addr uint16, value uint8) {
	log.Stubf("MBC6 unimplemented: %#04x = %#02x", addr, value)
}
