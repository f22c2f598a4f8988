package mbc

// mbc1 implements header types 0x01-0x03: 5-bit ROM bank select with a
// zero-to-one fixup, an SRAM enable gate, and (per spec.md's open
// question) no handling of the upper-bank-bit / RAM-bank-select region.
type mbc1 struct {
	*baseMapper
}

func (m *mbc1) Name() string { return "MBC1" }

func (m *mbc1) Write(addr uint16, value uint8) {
	switch addr >> 13 {
	case 0x0: // 0x0000-0x1FFF
		m.sramGate(value, "MBC1")
	case 0x1: // 0x2000-0x3FFF
		bank := int(value & 0x1F)
		if bank == 0 {
			bank++
		}
		m.switchROMBank(bank | (m.romBank & 0x60))
	default:
		// 0x4000-0x7FFF (upper ROM/RAM bank bits, ROM/RAM mode select):
		// stubbed in the source this is ported from; see DESIGN.md's
		// Open Question decisions.
		log.Stubf("MBC1 unhandled write: %#04x = %#02x", addr, value)
	}
}
