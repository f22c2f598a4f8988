package gbavideo

// Sprite object modes, decoded from OAM attribute 0 bits 10-11.
const (
	objModeNormal = iota
	objModeSemiTransparent
	objModeObjwin
	objModeBitmap // reserved; this renderer treats it as normal
)

const visibleLines = 160

// objShape holds the pixel dimensions for each (shape, size) pair, in
// the fixed order the hardware's shape/size bits select.
var objShape = [3][4][2]int{
	{{8, 8}, {16, 16}, {32, 32}, {64, 64}},  // square
	{{16, 8}, {32, 8}, {32, 16}, {64, 32}},  // wide
	{{8, 16}, {8, 32}, {16, 32}, {32, 64}},  // tall
}

// spriteCacheEntry is one surviving OAM entry: a precomputed y-span plus
// the raw attribute words, per spec.md's "sprite cache" data model.
type spriteCacheEntry struct {
	index      int
	y, endY    int
	a, b, c    uint16
}

func (e spriteCacheEntry) transformed() bool { return e.a&(1<<8) != 0 }
func (e spriteCacheEntry) doubleSize() bool  { return e.transformed() && e.a&(1<<9) != 0 }
func (e spriteCacheEntry) disabled() bool    { return !e.transformed() && e.a&(1<<9) != 0 }
func (e spriteCacheEntry) mode() int         { return int((e.a >> 10) & 0x3) }
func (e spriteCacheEntry) mosaic() bool      { return e.a&(1<<12) != 0 }
func (e spriteCacheEntry) is256Color() bool  { return e.a&(1<<13) != 0 }
func (e spriteCacheEntry) shape() int        { return int((e.a >> 14) & 0x3) }

func (e spriteCacheEntry) size() (w, h int) {
	shape := e.shape()
	if shape > 2 {
		shape = 0
	}
	dims := objShape[shape][(e.b>>14)&0x3]
	return dims[0], dims[1]
}

func (e spriteCacheEntry) x() int          { return int(e.b & 0x1FF) }
func (e spriteCacheEntry) matrixIndex() int { return int((e.b >> 9) & 0x1F) }
func (e spriteCacheEntry) hflip() bool     { return !e.transformed() && e.b&(1<<12) != 0 }
func (e spriteCacheEntry) vflip() bool     { return !e.transformed() && e.b&(1<<13) != 0 }

func (e spriteCacheEntry) tileIndex() int { return int(e.c & 0x3FF) }
func (e spriteCacheEntry) priority() int  { return int((e.c >> 10) & 0x3) }
func (e spriteCacheEntry) palBank() int   { return int((e.c >> 12) & 0xF) }

// cleanOAM rebuilds the sprite cache from the 128 raw OAM entries, per
// spec.md's C4 "OAM clean" algorithm: keep an entry if it's either
// transform-enabled or not disabled, and its (possibly double-sized)
// vertical span overlaps the visible 160 lines after 256-pixel wrap.
func (rnd *Renderer) cleanOAM() {
	rnd.sprites = rnd.sprites[:0]
	for i := 0; i < 128; i++ {
		attrs := rnd.mem.objAttrs(i)
		e := spriteCacheEntry{index: i, a: attrs.A, b: attrs.B, c: attrs.C}
		if e.disabled() {
			continue
		}

		_, h := e.size()
		if e.doubleSize() {
			h *= 2
		}

		y := int(e.a & 0xFF)
		if y >= 160 {
			y -= 256 // the Y coordinate wraps past the visible area
		}
		endY := y + h
		if endY <= 0 || y >= visibleLines {
			continue
		}

		e.y, e.endY = y, endY
		rnd.sprites = append(rnd.sprites, e)
	}
	rnd.spritesOK = true
}

// drawSprites rasterizes every cached sprite overlapping scanline y into
// spriteLayer (colors) and objwinMask (the OBJWIN-only mode's mask),
// honoring the object-window enable bits per interval.
func (rnd *Renderer) drawSprites(y int, intervals []Interval, windowsActive bool, spriteLayer *[ScreenWidth]Pixel, objwinMask *[ScreenWidth]bool) {
	if !rnd.regs.ObjEnabled() {
		return
	}

	for _, e := range rnd.sprites {
		if y < e.y || y >= e.endY {
			continue
		}
		rnd.drawSprite(e, y, intervals, windowsActive, spriteLayer, objwinMask)
	}
}

func (rnd *Renderer) drawSprite(e spriteCacheEntry, y int, intervals []Interval, windowsActive bool, spriteLayer *[ScreenWidth]Pixel, objwinMask *[ScreenWidth]bool) {
	w, h := e.size()
	localY := y - e.y

	mosaicH := 1
	if e.mosaic() {
		mosaicH, _ = rnd.regs.MosaicOBJ()
	}

	if e.transformed() {
		rnd.drawSpriteTransformed(e, localY, w, h, intervals, windowsActive, spriteLayer, objwinMask)
		return
	}

	if e.vflip() {
		localY = h - 1 - localY
	}

	for lx := 0; lx < w; lx++ {
		screenX := wrapCoord(e.x() + lx)
		if screenX < 0 || screenX >= ScreenWidth {
			continue
		}
		if !rnd.objwinOrVisible(screenX, intervals, windowsActive) {
			continue
		}

		// The mosaic block grid is anchored to the screen column, shared
		// with backgrounds, not to the sprite's own local x=0; rewind lx
		// by screenX's phase within the mosaic period before sampling.
		sampleX := lx
		if mosaicH > 1 {
			phase := screenX % mosaicH
			if phase < 0 {
				phase += mosaicH
			}
			sampleX -= phase
			if sampleX < 0 {
				continue
			}
		}
		localX := sampleX
		if e.hflip() {
			localX = w - 1 - sampleX
		}

		pixelData, color, transparent := rnd.sampleObjTile(e, localX, localY, w)
		rnd.writeSpritePixel(e, screenX, pixelData, color, transparent, spriteLayer, objwinMask)
	}
}

func (rnd *Renderer) drawSpriteTransformed(e spriteCacheEntry, localY, w, h int, intervals []Interval, windowsActive bool, spriteLayer *[ScreenWidth]Pixel, objwinMask *[ScreenWidth]bool) {
	pa, pb, pc, pd := rnd.mem.objMatrix(e.matrixIndex())

	renderW, renderH := w, h
	if e.doubleSize() {
		renderW, renderH = w*2, h*2
	}

	cx, cy := w/2, h/2
	rcx, rcy := renderW/2, renderH/2

	dy := localY - rcy
	baseX := int32(cx)<<8 - int32(pa)*int32(rcx) + int32(pb)*int32(dy)
	baseY := int32(cy)<<8 - int32(pc)*int32(rcx) + int32(pd)*int32(dy)

	for ox := 0; ox < renderW; ox++ {
		screenX := wrapCoord(e.x() + ox)
		if screenX < 0 || screenX >= ScreenWidth {
			baseX += int32(pa)
			baseY += int32(pc)
			continue
		}
		texX := int(baseX >> 8)
		texY := int(baseY >> 8)
		baseX += int32(pa)
		baseY += int32(pc)

		if texX < 0 || texX >= w || texY < 0 || texY >= h {
			continue
		}
		if !rnd.objwinOrVisible(screenX, intervals, windowsActive) {
			continue
		}

		pixelData, color, transparent := rnd.sampleObjTile(e, texX, texY, w)
		rnd.writeSpritePixel(e, screenX, pixelData, color, transparent, spriteLayer, objwinMask)
	}
}

// sampleObjTile fetches one object pixel at local tile coordinates
// (localX, localY) within a w-wide sprite, honoring 1D/2D character
// mapping and 4bpp/8bpp color depth.
func (rnd *Renderer) sampleObjTile(e spriteCacheEntry, localX, localY, w int) (pixelData uint8, color Color555, transparent bool) {
	const objCharBase = 0x10000
	tileX, tileY := localX/8, localY/8
	inTileX, inTileY := localX%8, localY%8
	tilesWide := w / 8

	tileIndex := e.tileIndex()
	if e.is256Color() {
		// In 256-color mode tile numbers still count 32-byte (4bpp-sized)
		// slots; each 8bpp tile spans two of them.
		var stride int
		if rnd.regs.ObjCharacterMapping() {
			stride = tilesWide * 2
		} else {
			stride = 32
		}
		addr := objCharBase + (tileIndex+tileY*stride+tileX*2)*32 + inTileY*8 + inTileX
		pixelData = rnd.mem.vramByte(addr)
		return pixelData, rnd.mem.Palette[256+int(pixelData)], pixelData == 0
	}

	var stride int
	if rnd.regs.ObjCharacterMapping() {
		stride = tilesWide
	} else {
		stride = 32
	}
	b := rnd.mem.vramByte(objCharBase + (tileIndex+tileY*stride+tileX)*32 + inTileY*4 + inTileX/2)
	if inTileX%2 == 0 {
		pixelData = b & 0xF
	} else {
		pixelData = b >> 4
	}
	return pixelData, rnd.mem.Palette[256+e.palBank()*16+int(pixelData)], pixelData == 0
}

// writeSpritePixel implements spec.md's per-pixel sprite write rule: an
// OBJWIN-mode sprite only ever marks the window mask; a normal or
// semitransparent sprite writes to spriteLayer only if no sprite has
// claimed that column at an equal-or-higher order yet, otherwise merely
// lowers the stored priority to the minimum seen.
func (rnd *Renderer) writeSpritePixel(e spriteCacheEntry, screenX int, pixelData uint8, color Color555, transparent bool, spriteLayer *[ScreenWidth]Pixel, objwinMask *[ScreenWidth]bool) {
	if transparent {
		return
	}

	if e.mode() == objModeObjwin {
		objwinMask[screenX] = true
		return
	}

	target1 := e.mode() == objModeSemiTransparent || rnd.regs.Target1(spriteLayerIndex)
	target2 := rnd.regs.Target2(spriteLayerIndex)
	flags := NewPixel(color, e.priority(), e.index&0x7, false, target1, target2, false)

	current := spriteLayer[screenX]
	switch {
	case current.IsUnwritten():
		spriteLayer[screenX] = flags
	case flags.order() < current.order():
		spriteLayer[screenX] = (current &^ maskOrder) | (flags & maskOrder)
	}
}

// postComposeSprites merges spriteLayer into row, per priority level
// 0..3, the same ordering spec.md's "post-compose" step describes.
func (rnd *Renderer) postComposeSprites(row, spriteLayer *[ScreenWidth]Pixel, intervals []Interval, windowsActive bool, objwinMask [ScreenWidth]bool, objwinControl WindowControl) {
	for priority := 0; priority < 4; priority++ {
		for x := 0; x < ScreenWidth; x++ {
			p := spriteLayer[x]
			if p.IsUnwritten() || p.Priority() != priority {
				continue
			}
			if windowsActive {
				ctrl := controlAt(intervals, x)
				if objwinMask[x] {
					ctrl = objwinControl
				}
				if !ctrl.OBJEnabled() {
					continue
				}
			}
			row[x] = rnd.compositeSprite(row[x], p)
		}
	}
}

func (rnd *Renderer) compositeSprite(current, p Pixel) Pixel {
	if p.order() >= current.order() && !current.IsUnwritten() {
		return current
	}

	effect := rnd.regs.Effect()
	if effect == BlendAlpha && current.IsTarget1() && p.IsTarget2() {
		mixed := Mix(rnd.regs.BlendA(), current.Color(), rnd.regs.BlendB(), p.Color())
		return NewPixel(mixed, p.Priority(), p.Index(), false, current.IsTarget1(), false, current.IsObjwin())
	}
	return p.withObjwin(current)
}

func (rnd *Renderer) objwinOrVisible(x int, intervals []Interval, windowsActive bool) bool {
	if !windowsActive {
		return true
	}
	return controlAt(intervals, x).OBJEnabled()
}

// wrapCoord wraps a sprite-space X coordinate around the 512-pixel OAM
// coordinate space into a signed screen coordinate.
func wrapCoord(x int) int {
	x &= 0x1FF
	if x >= 256 {
		x -= 512
	}
	return x
}
