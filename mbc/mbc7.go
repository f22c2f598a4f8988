package mbc

// mbc7 implements header type 0x22 (motion-sensor cartridges). Like
// MBC6, this family is a recognized stub: writes are logged and ignored.
type mbc7 struct {
	*baseMapper
}

func (m *mbc7) Name() string { return "MBC7" }

func (m *mbc7) Write(addr uint16, value uint8) {
	log.Stubf("MBC7 unimplemented: %#04x = %#02x", addr, value)
}
