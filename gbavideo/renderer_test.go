package gbavideo

import "testing"

func TestForcedBlankIsAllWhite(t *testing.T) {
	mem := &VideoMemory{}
	rnd := NewRenderer(mem)
	rnd.Registers().SetDISPCNT(1<<7 | 1) // mode 1, forced blank

	row := rnd.DrawScanline(0)
	for x, c := range row {
		if c != White {
			t.Fatalf("pixel %d = %#x, want White under forced blank", x, c)
		}
	}
}

func setObjAttrs(mem *VideoMemory, n int, a, b, c uint16) {
	base := n * 8
	mem.OAM[base] = byte(a)
	mem.OAM[base+1] = byte(a >> 8)
	mem.OAM[base+2] = byte(b)
	mem.OAM[base+3] = byte(b >> 8)
	mem.OAM[base+4] = byte(c)
	mem.OAM[base+5] = byte(c >> 8)
}

func TestSingleSpriteScenario(t *testing.T) {
	mem := &VideoMemory{}
	// A 16x16, 4bpp sprite: shape=square(0), size=16x16(1).
	attr0 := uint16(50) // y=50, not disabled, not transformed
	attr1 := uint16(100)
	attr2 := uint16(0) // tile 0, priority 0, palette bank 0
	attr1 |= 1 << 14   // size code 1 -> 16x16 for square shape
	setObjAttrs(mem, 0, attr0, attr1, attr2)

	// Fill tile 0 (and the 3 tiles after it, since a 16x16 sprite spans
	// a 2x2 block of 8x8 tiles) with palette index 1 everywhere, in 2D
	// mapping (the default, stride 32 tiles/row).
	for tileY := 0; tileY < 2; tileY++ {
		for tileX := 0; tileX < 2; tileX++ {
			tileNum := tileY*32 + tileX
			base := 0x10000 + tileNum*32
			for i := 0; i < 32; i++ {
				mem.VRAM[base+i] = 0x11 // two palette-index-1 pixels per byte
			}
		}
	}
	mem.Palette[256+1] = 0x1234 & 0x7FFF

	rnd := NewRenderer(mem)
	rnd.Registers().SetDISPCNT(1 << 12) // OBJ enabled, mode 0

	for y := 49; y <= 67; y++ {
		row := rnd.DrawScanline(y)
		inside := y >= 50 && y < 66
		for x := 0; x < ScreenWidth; x++ {
			wantOpaque := inside && x >= 100 && x < 116
			isBackdrop := row[x] == 0 // backdrop palette[0] is zero-value (black) here
			if wantOpaque && isBackdrop {
				t.Errorf("y=%d x=%d: want opaque sprite pixel, got backdrop", y, x)
			}
			if !wantOpaque && !isBackdrop {
				t.Errorf("y=%d x=%d: want backdrop (unwritten), got %#x", y, x, row[x])
			}
		}
	}
}

func TestAffineIdentityBG2Mode2Unrotated(t *testing.T) {
	mem := &VideoMemory{}

	// A uniform 128x128 (size code 0) screen map: every tile index 0,
	// every pixel of tile 0 set to palette index 7. Screen map lives at
	// 0x800 (BGCNT screen-base code 1), tile data at 0 (char-base code 0)
	// so the two regions don't overlap.
	const screenMapBase = 0x800
	for i := 0; i < 64; i++ { // screen map is 16x16 tiles for a 128x128 affine BG
		mem.VRAM[screenMapBase+i] = 0
	}
	for i := 0; i < 64; i++ {
		mem.VRAM[i] = 7 // tile data, 8bpp affine tiles: one byte per pixel
	}
	mem.Palette[7] = 0x3333 & 0x7FFF

	rnd := NewRenderer(mem)
	rnd.Registers().SetDISPCNT(0x2)   // mode 2
	rnd.Registers().SetBGCNT(2, 0x100) // screen base code 1 (0x800), char base 0, size code 0 (128x128)
	rnd.regs.dispcnt |= 1 << 10        // enable BG2
	rnd.Registers().SetBGAffine(2, 0x100, 0, 0, 0x100)
	rnd.Registers().SetBGRefX(2, 0)
	rnd.Registers().SetBGRefY(2, 0)

	row := rnd.DrawScanline(0)
	for x := 0; x < 100; x++ {
		if row[x] != mem.Palette[7] {
			t.Errorf("x=%d: got %#x, want tile color %#x (identity matrix should be unrotated)", x, row[x], mem.Palette[7])
		}
	}
}
