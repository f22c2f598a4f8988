package gbavideo

// BlendEffect selects the compositing effect driven by BLDCNT.
type BlendEffect int

const (
	BlendNone BlendEffect = iota
	BlendAlpha
	BlendBrighten
	BlendDarken
)

// bgRegs holds one background layer's control, scroll and (for the two
// affine-capable layers) matrix/reference-point state. The IO dispatch
// seam in cmd/duocore feeds these through the SetBG* setters rather than
// byte-at-a-time, since C5's IO region for this console routes whole
// register writes instead of mirroring the 8-bit console's HRAM style.
type bgRegs struct {
	cnt  uint16
	hofs uint16
	vofs uint16

	pa, pb, pc, pd int16
	refX, refY     int32

	// sx, sy are the live affine accumulators an affine-capable layer
	// (BG2/BG3) steps by (pb,pd) once per scanline. They reload from
	// refX/refY on a reference-point register write and on frame end.
	// A mid-frame HBlank rewrite of refX/refY must be visible starting
	// the very next scanline, so this state can't be recomputed from y.
	sx, sy int32
}

// Registers is the full set of video IO registers the renderer consumes.
// Every field is written through a Set* method so the renderer never
// observes a partially-updated register.
type Registers struct {
	dispcnt uint16
	bg      [4]bgRegs

	win0H, win0V uint16
	win1H, win1V uint16
	winin, winout uint16

	mosaic uint16

	bldcnt   uint16
	bldalpha uint16
	bldy     uint8
}

func (r *Registers) SetDISPCNT(v uint16) { r.dispcnt = v }
func (r *Registers) SetBGCNT(n int, v uint16) { r.bg[n].cnt = v }
func (r *Registers) SetBGHOFS(n int, v uint16) { r.bg[n].hofs = v & 0x1FF }
func (r *Registers) SetBGVOFS(n int, v uint16) { r.bg[n].vofs = v & 0x1FF }

func (r *Registers) SetBGAffine(n int, pa, pb, pc, pd int16) {
	r.bg[n].pa, r.bg[n].pb, r.bg[n].pc, r.bg[n].pd = pa, pb, pc, pd
}

func (r *Registers) SetBGRefX(n int, v int32) {
	r.bg[n].refX = signExtend28(v)
	r.bg[n].sx = r.bg[n].refX
}

func (r *Registers) SetBGRefY(n int, v int32) {
	r.bg[n].refY = signExtend28(v)
	r.bg[n].sy = r.bg[n].refY
}

// reloadAffineAccumulators reloads every background's live (sx,sy) from
// its reference-point registers, matching the hardware's reload at
// frame end (vblank), on top of the reload a register write itself
// already causes.
func (r *Registers) reloadAffineAccumulators() {
	for i := range r.bg {
		r.bg[i].sx = r.bg[i].refX
		r.bg[i].sy = r.bg[i].refY
	}
}

// stepAffineAccumulators advances every background's live (sx,sy) by one
// scanline's (dmx,dmy), the BGxPB/BGxPD matrix parameters.
func (r *Registers) stepAffineAccumulators() {
	for i := range r.bg {
		r.bg[i].sx += int32(r.bg[i].pb)
		r.bg[i].sy += int32(r.bg[i].pd)
	}
}

// signExtend28 sign-extends a 28-bit fixed-point reference-point value,
// matching the hardware register's actual width.
func signExtend28(v int32) int32 {
	return (v << 4) >> 4
}

func (r *Registers) SetWIN0H(v uint16)  { r.win0H = v }
func (r *Registers) SetWIN0V(v uint16)  { r.win0V = v }
func (r *Registers) SetWIN1H(v uint16)  { r.win1H = v }
func (r *Registers) SetWIN1V(v uint16)  { r.win1V = v }
func (r *Registers) SetWININ(v uint16)  { r.winin = v }
func (r *Registers) SetWINOUT(v uint16) { r.winout = v }
func (r *Registers) SetMOSAIC(v uint16) { r.mosaic = v }
func (r *Registers) SetBLDCNT(v uint16) { r.bldcnt = v }
func (r *Registers) SetBLDALPHA(v uint16) { r.bldalpha = v }
func (r *Registers) SetBLDY(v uint8) {
	if v > 16 {
		v = 16
	}
	r.bldy = v
}

// Mode returns the display mode (0-5) selected by DISPCNT bits 0-2.
func (r *Registers) Mode() int { return int(r.dispcnt & 0x7) }

// ForcedBlank reports DISPCNT bit 7: every pixel of the scanline must be
// white regardless of any other state.
func (r *Registers) ForcedBlank() bool { return r.dispcnt&(1<<7) != 0 }

// ObjCharacterMapping reports DISPCNT bit 6 (1D vs 2D object tile
// mapping).
func (r *Registers) ObjCharacterMapping() bool { return r.dispcnt&(1<<6) != 0 }

// FrameSelect reports DISPCNT bit 4, the bitmap-mode double-buffer flag.
func (r *Registers) FrameSelect() bool { return r.dispcnt&(1<<4) != 0 }

func (r *Registers) BGEnabled(n int) bool { return r.dispcnt&(1<<uint(8+n)) != 0 }
func (r *Registers) ObjEnabled() bool     { return r.dispcnt&(1<<12) != 0 }
func (r *Registers) Win0Enabled() bool    { return r.dispcnt&(1<<13) != 0 }
func (r *Registers) Win1Enabled() bool    { return r.dispcnt&(1<<14) != 0 }
func (r *Registers) ObjWinEnabled() bool  { return r.dispcnt&(1<<15) != 0 }

func (r *Registers) bgPriority(n int) int   { return int(r.bg[n].cnt & 0x3) }
func (r *Registers) bgCharBase(n int) int   { return int((r.bg[n].cnt>>2)&0x3) * 0x4000 }
func (r *Registers) bgMosaic(n int) bool    { return r.bg[n].cnt&(1<<6) != 0 }
func (r *Registers) bgPalette256(n int) bool { return r.bg[n].cnt&(1<<7) != 0 }
func (r *Registers) bgScreenBase(n int) int { return int((r.bg[n].cnt>>8)&0x1F) * 0x800 }
func (r *Registers) bgOverflowWrap(n int) bool { return r.bg[n].cnt&(1<<13) != 0 }
func (r *Registers) bgScreenSize(n int) int { return int((r.bg[n].cnt >> 14) & 0x3) }

// Target1/Target2 report BLDCNT's per-layer blend-source/-destination
// bits; layer indices 0-3 are backgrounds, 4 is sprites, 5 is backdrop.
func (r *Registers) Target1(layer int) bool { return r.bldcnt&(1<<uint(layer)) != 0 }
func (r *Registers) Target2(layer int) bool { return r.bldcnt&(1<<uint(8+layer)) != 0 }

func (r *Registers) Effect() BlendEffect { return BlendEffect((r.bldcnt >> 6) & 0x3) }

func (r *Registers) BlendA() int {
	a := int(r.bldalpha & 0x1F)
	if a > 16 {
		return 16
	}
	return a
}

func (r *Registers) BlendB() int {
	b := int((r.bldalpha >> 8) & 0x1F)
	if b > 16 {
		return 16
	}
	return b
}

func (r *Registers) BLDY() int { return int(r.bldy) }

// MosaicBG returns the background mosaic (horizontal, vertical) periods,
// 1-16.
func (r *Registers) MosaicBG() (h, v int) {
	return int(r.mosaic&0xF) + 1, int((r.mosaic>>4)&0xF) + 1
}

// MosaicOBJ returns the sprite mosaic (horizontal, vertical) periods.
func (r *Registers) MosaicOBJ() (h, v int) {
	return int((r.mosaic>>8)&0xF) + 1, int((r.mosaic>>12)&0xF) + 1
}

// window decodes a WIN*H/WIN*V register pair into a Window, honoring
// spec.md's "window N only takes effect while its DISPCNT enable bit is
// set" rule via the enabled argument.
func window(enabled bool, h, v uint16, control WindowControl) Window {
	return Window{
		Enabled:    enabled,
		Horizontal: Span{Start: int(h >> 8), End: int(h & 0xFF)},
		Vertical:   Span{Start: int(v >> 8), End: int(v & 0xFF)},
		Control:    control,
	}
}

// Windows decodes WIN0/WIN1 plus the outside/objwin control bytes from
// WININ/WINOUT into the Window values ResolveWindows consumes.
func (r *Registers) Windows() (win0, win1 Window, outside, objwin WindowControl) {
	win0 = window(r.Win0Enabled(), r.win0H, r.win0V, WindowControl(r.winin&0x3F))
	win1 = window(r.Win1Enabled(), r.win1H, r.win1V, WindowControl((r.winin>>8)&0x3F))
	outside = WindowControl(r.winout & 0x3F)
	objwin = WindowControl((r.winout >> 8) & 0x3F)
	return
}
