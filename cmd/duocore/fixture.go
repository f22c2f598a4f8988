package main

import (
	"image/color"

	"github.com/duocore-emu/duocore/gbavideo"
)

// color555ToRGBA expands a 15-bit (5/5/5) GBA color into 8-bit-per-
// channel RGBA, the same bit-replication upconversion real hardware's
// DACs approximate.
func color555ToRGBA(c gbavideo.Color555) color.RGBA {
	expand := func(v uint16) uint8 {
		v &= 0x1F
		return uint8(v<<3 | v>>2)
	}
	r := expand(uint16(c))
	g := expand(uint16(c >> 5))
	b := expand(uint16(c >> 10))
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// installDemoFixture paints a small checkerboard text background (BG0,
// mode 0) and a single sprite into mem, so the renderer's DrawScanline
// entry point has something real to compose on first run even without a
// cartridge loaded. Real register/VRAM content in an embedded setting
// would come from a CPU core's IO writes; spec.md places that core out
// of scope for this module.
func installDemoFixture(mem *gbavideo.VideoMemory) {
	const screenMapBase = 0x0000
	const charBase = 0x4000

	// Two alternating 4bpp tiles (solid color 1, solid color 2) across a
	// 32x32 text screen map.
	for i := 0; i < 32*32; i++ {
		tile := uint16(i % 2)
		mem.VRAM[screenMapBase+2*i] = byte(tile)
		mem.VRAM[screenMapBase+2*i+1] = 0
	}
	for i := 0; i < 32; i++ {
		mem.VRAM[charBase+i] = 0x11
		mem.VRAM[charBase+32+i] = 0x22
	}
	mem.Palette[1] = 0x03E0 & 0x7FFF // green
	mem.Palette[2] = 0x7C00 & 0x7FFF // blue-ish (B channel high bits)

	// One 8x8 sprite near the top-left.
	const objBase = 0x10000
	for i := 0; i < 32; i++ {
		mem.OAM[i] = 0 // clear entry 0's attrs before setting below
	}
	setOAMEntry(mem, 0, 20, 20, 0)
	for i := 0; i < 32; i++ {
		mem.VRAM[objBase+i] = 0x33
	}
	mem.Palette[256+3] = 0x001F & 0x7FFF // red
}

func setOAMEntry(mem *gbavideo.VideoMemory, n int, y, x int, tile uint16) {
	base := n * 8
	mem.OAM[base] = byte(y)
	mem.OAM[base+1] = 0
	mem.OAM[base+2] = byte(x)
	mem.OAM[base+3] = byte(x >> 8)
	mem.OAM[base+4] = byte(tile)
	mem.OAM[base+5] = byte(tile >> 8)
}
