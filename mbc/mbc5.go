package mbc

// mbc5 implements header types 0x19-0x1E: 7-bit ROM bank select with no
// zero-to-one fixup, and a 4-bit SRAM bank select. Per spec.md's open
// question, the high bit of the ROM bank number (written via
// 0x3000-0x3FFF on real hardware) is not handled; this mirrors the
// source, which masks the bank to 0x7F unconditionally.
type mbc5 struct {
	*baseMapper
}

func (m *mbc5) Name() string { return "MBC5" }

func (m *mbc5) Write(addr uint16, value uint8) {
	switch addr >> 13 {
	case 0x0: // 0x0000-0x1FFF
		m.sramGate(value, "MBC5")
	case 0x1: // 0x2000-0x3FFF
		m.switchROMBank(int(value & 0x7F))
	case 0x2: // 0x4000-0x5FFF
		if value < 0x10 {
			m.switchSRAMBank(int(value))
		}
	default:
		log.Stubf("MBC5 unhandled write: %#04x = %#02x", addr, value)
	}
}
