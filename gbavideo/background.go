package gbavideo

// Background is the renderer-facing description of one BG layer's
// static parameters for a single scanline draw, pre-resolved from
// Registers so the compositing helpers don't need to know about bits.
type Background struct {
	Index     int
	Priority  int
	Target1   bool
	Target2   bool
	Mosaic    bool
}

// drawBackgroundText renders BG layer n (a text-mode background) into
// row, per spec.md's mode-0 algorithm: resolve the screen-map entry for
// each column, fetch its tile, honor flip bits, palette-lookup and
// composite.
func (rnd *Renderer) drawBackgroundText(n, y int, bg Background, row *[ScreenWidth]Pixel) {
	r := &rnd.regs
	hofs, vofs := int(r.bg[n].hofs), int(r.bg[n].vofs)

	mosaicY := y
	if bg.Mosaic {
		_, mv := r.MosaicBG()
		mosaicY -= mosaicY % mv
	}
	inY := mosaicY + vofs

	sizeCode := r.bgScreenSize(n)
	mapWTiles, mapHTiles := textMapDimensions(sizeCode)
	screenBase := r.bgScreenBase(n)
	charBase := r.bgCharBase(n)
	is8bpp := r.bgPalette256(n)

	mh, _ := r.MosaicBG()

	for x := 0; x < ScreenWidth; x++ {
		mosaicX := x
		if bg.Mosaic && mh > 1 {
			mosaicX -= mosaicX % mh
		}
		inX := mosaicX + hofs

		tileX := (inX / 8) % mapWTiles
		tileY := (inY / 8) % mapHTiles
		entryAddr := screenBase + textScreenBlockOffset(tileX, tileY, mapWTiles) + 2*(tileX%32+32*(tileY%32))
		entry := rnd.mem.vramHalfword(entryAddr)

		tileIndex := int(entry & 0x3FF)
		hflip := entry&(1<<10) != 0
		vflip := entry&(1<<11) != 0
		palBank := int((entry >> 12) & 0xF)

		localX, localY := inX%8, inY%8
		if hflip {
			localX = 7 - localX
		}
		if vflip {
			localY = 7 - localY
		}

		var pixelData uint8
		var color Color555
		transparent := false
		if is8bpp {
			pixelData = rnd.mem.vramByte(charBase + tileIndex*64 + localY*8 + localX)
			transparent = pixelData == 0
			color = rnd.mem.Palette[pixelData]
		} else {
			b := rnd.mem.vramByte(charBase + tileIndex*32 + localY*4 + localX/2)
			if localX%2 == 0 {
				pixelData = b & 0xF
			} else {
				pixelData = b >> 4
			}
			transparent = pixelData == 0
			color = rnd.mem.Palette[palBank*16+int(pixelData)]
		}

		if transparent {
			continue
		}
		row[x] = rnd.compositeBackground(row[x], color, bg)
	}
}

// textMapDimensions returns a text background's screen-map size in
// tiles for screen-size code 0-3 (32x32, 64x32, 32x64, 64x64).
func textMapDimensions(sizeCode int) (w, h int) {
	switch sizeCode {
	case 0:
		return 32, 32
	case 1:
		return 64, 32
	case 2:
		return 32, 64
	default:
		return 64, 64
	}
}

// textScreenBlockOffset returns the byte offset of the 2 KiB screen
// block containing tile (tileX, tileY), for map layouts wider or taller
// than one 32x32 block.
func textScreenBlockOffset(tileX, tileY, mapWTiles int) int {
	const blockSize = 0x800
	blockX, blockY := tileX/32, tileY/32
	blocksPerRow := mapWTiles / 32
	return (blockY*blocksPerRow + blockX) * blockSize
}

// affineAccumulators returns the (accX, accY) base an affine draw starts
// its per-pixel walk from: the layer's live (sx,sy) accumulator, or, under
// vertical mosaic, that accumulator rewound to the first scanline of the
// current mosaic block (matching the original renderer's
// `y -= (inY % mosaicV) * background->dmy`).
func affineAccumulators(reg *bgRegs, mosaic bool, y int, r *Registers) (accX, accY int32) {
	accX, accY = reg.sx, reg.sy
	if mosaic {
		_, mv := r.MosaicBG()
		phase := int32(y % mv)
		accX -= phase * int32(reg.pb)
		accY -= phase * int32(reg.pd)
	}
	return accX, accY
}

// drawBackgroundAffine renders an affine background (mode 1's BG2, or
// mode 2's BG2/BG3): 8bpp tiles addressed via a square screen map and a
// 2x2 matrix walk, per spec.md's affine algorithm.
func (rnd *Renderer) drawBackgroundAffine(n, y int, bg Background, row *[ScreenWidth]Pixel) {
	r := &rnd.regs
	reg := &r.bg[n]

	size := 128 << uint(r.bgScreenSize(n))
	wrap := r.bgOverflowWrap(n)

	accX, accY := affineAccumulators(reg, bg.Mosaic, y, r)

	screenBase := r.bgScreenBase(n)
	charBase := r.bgCharBase(n)

	for x := 0; x < ScreenWidth; x++ {
		texX := int((accX + int32(x)*int32(reg.pa)) >> 8)
		texY := int((accY + int32(x)*int32(reg.pc)) >> 8)

		if texX < 0 || texX >= size || texY < 0 || texY >= size {
			if !wrap {
				continue
			}
			texX &= size - 1
			texY &= size - 1
		}

		tilesPerRow := size / 8
		tileIndex := int(rnd.mem.vramByte(screenBase + (texY/8)*tilesPerRow + texX/8))
		pixelData := rnd.mem.vramByte(charBase + tileIndex*64 + (texY%8)*8 + texX%8)
		if pixelData == 0 {
			continue
		}
		row[x] = rnd.compositeBackground(row[x], rnd.mem.Palette[pixelData], bg)
	}
}

// drawBackgroundBitmap renders BG2 in modes 3, 4 or 5: the same affine
// stepping as drawBackgroundAffine, but sourcing a flat framebuffer
// instead of a tiled screen map.
func (rnd *Renderer) drawBackgroundBitmap(mode, y int, bg Background, row *[ScreenWidth]Pixel) {
	r := &rnd.regs
	reg := &r.bg[2]

	w, h := bitmapDimensions(mode)
	frameOffset := 0
	if (mode == 4 || mode == 5) && r.FrameSelect() {
		frameOffset = 0xA000
	}

	accX, accY := affineAccumulators(reg, bg.Mosaic, y, r)

	for x := 0; x < ScreenWidth; x++ {
		texX := int((accX + int32(x)*int32(reg.pa)) >> 8)
		texY := int((accY + int32(x)*int32(reg.pc)) >> 8)
		if texX < 0 || texX >= w || texY < 0 || texY >= h {
			continue
		}

		switch mode {
		case 3, 5:
			value := rnd.mem.vramHalfword(frameOffset + 2*(texY*w+texX))
			if value&0x8000 == 0 {
				continue // bit 15 is a transparency marker in direct-color bitmap modes
			}
			row[x] = rnd.compositeBackground(row[x], Color555(value&0x7FFF), bg)
		case 4:
			idx := rnd.mem.vramByte(frameOffset + texY*w + texX)
			if idx == 0 {
				continue
			}
			row[x] = rnd.compositeBackground(row[x], rnd.mem.Palette[idx], bg)
		}
	}
}

func bitmapDimensions(mode int) (w, h int) {
	if mode == 5 {
		return 160, 128
	}
	return 240, 160
}
