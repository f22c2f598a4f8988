package gbavideo

// VideoMemory is the renderer's view of VRAM, OAM and palette RAM: plain
// byte/word storage with no access-timing concerns (mode-gated access
// blocking is the 8-bit console's concern in gbmem, not this console's
// software renderer). cmd/duocore owns an instance and fills it from a
// canned demo fixture.
type VideoMemory struct {
	VRAM    [0x18000]uint8 // 96 KiB: BG charblocks + OBJ tiles
	OAM     [0x400]uint8   // 128 sprites * 8 bytes
	Palette [512]Color555  // 256 BG entries + 256 OBJ entries
}

func (m *VideoMemory) vramByte(addr int) uint8 {
	if addr < 0 || addr >= len(m.VRAM) {
		return 0
	}
	return m.VRAM[addr]
}

func (m *VideoMemory) vramHalfword(addr int) uint16 {
	return uint16(m.vramByte(addr)) | uint16(m.vramByte(addr+1))<<8
}

// ObjAttrs is one OAM entry's three 16-bit attribute words, decoded on
// demand rather than cached, matching spec.md's "raw OAM attribute
// words" sprite-cache shape (C4's cache stores these plus y-span).
type ObjAttrs struct {
	A, B, C uint16
}

func (m *VideoMemory) objAttrs(n int) ObjAttrs {
	base := n * 8
	return ObjAttrs{
		A: uint16(m.OAM[base]) | uint16(m.OAM[base+1])<<8,
		B: uint16(m.OAM[base+2]) | uint16(m.OAM[base+3])<<8,
		C: uint16(m.OAM[base+4]) | uint16(m.OAM[base+5])<<8,
	}
}

// objMatrix decodes the 2x2 affine matrix for matrix index n. Each
// matrix's four parameters are interleaved into the 4th halfword (byte
// offset 6, after the three attribute words) of four consecutive OAM
// entries (entries 4n..4n+3), the same
// layout real GBA hardware uses to avoid a dedicated matrix table.
func (m *VideoMemory) objMatrix(n int) (pa, pb, pc, pd int16) {
	read := func(entry int) int16 {
		off := entry*8 + 6
		return int16(uint16(m.OAM[off]) | uint16(m.OAM[off+1])<<8)
	}
	base := 4 * n
	return read(base), read(base + 1), read(base + 2), read(base + 3)
}
