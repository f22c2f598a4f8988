package gbavideo

// MaxWindowIntervals bounds the scanline interval list: two windows, each
// contributing at most two splits (for horizontal wrap), plus the
// initial whole-line interval. ResolveWindows truncates any longer list
// to this length.
const MaxWindowIntervals = 5

// ScreenWidth is the number of visible horizontal pixels per scanline.
const ScreenWidth = 240

// WindowControl is the per-window layer/effect enable bitset (WININ/
// WINOUT/objwin content), opaque to the window resolver itself.
type WindowControl uint8

const (
	winBG0 WindowControl = 1 << iota
	winBG1
	winBG2
	winBG3
	winOBJ
	winBlend
)

func (c WindowControl) BGEnabled(layer int) bool { return c&(1<<uint(layer)) != 0 }
func (c WindowControl) OBJEnabled() bool         { return c&winOBJ != 0 }
func (c WindowControl) BlendEnabled() bool       { return c&winBlend != 0 }

// Span is a bound along one axis, inclusive of start, exclusive of end;
// end < start (or end > the axis length) means the span wraps around.
type Span struct {
	Start, End int
}

// wraps reports whether s wraps past the axis length (240 horizontally,
// 160 vertically).
func (s Span) wraps(length int) bool { return s.End < s.Start || s.End > length }

// Window is one of the two rectangular windows (WIN0/WIN1): a vertical
// and horizontal span plus the control bits active inside it.
type Window struct {
	Enabled    bool
	Horizontal Span
	Vertical   Span
	Control    WindowControl
}

// Interval is one contiguous run of the scanline sharing one control.
type Interval struct {
	Start, End int
	Control    WindowControl
}

// ResolveWindows builds the ordered, contiguous interval list for
// scanline y from win1 (lowest priority overlay), win0 (applied after,
// so it wins on overlap) and the default "outside windows" control,
// following spec.md section 4.3's algorithm. The result is sorted,
// covers [0, ScreenWidth), and never exceeds MaxWindowIntervals entries.
func ResolveWindows(y int, win0, win1 Window, outside WindowControl) []Interval {
	intervals := []Interval{{Start: 0, End: ScreenWidth, Control: outside}}

	// win1 first: a later overlay (win0) takes priority on overlap.
	intervals = applyWindow(intervals, y, win1)
	intervals = applyWindow(intervals, y, win0)

	if len(intervals) > MaxWindowIntervals {
		intervals = intervals[:MaxWindowIntervals]
	}
	return intervals
}

func applyWindow(intervals []Interval, y int, w Window) []Interval {
	if !w.Enabled || !verticalSpanCovers(w.Vertical, y) {
		return intervals
	}

	h := w.Horizontal
	if h.wraps(ScreenWidth) {
		intervals = breakWindowInner(intervals, 0, h.End, w.Control)
		intervals = breakWindowInner(intervals, h.Start, ScreenWidth, w.Control)
		return intervals
	}
	return breakWindowInner(intervals, h.Start, h.End, w.Control)
}

func verticalSpanCovers(v Span, y int) bool {
	const screenHeight = 160
	if v.wraps(screenHeight) {
		return y >= v.Start || y < v.End
	}
	return y >= v.Start && y < v.End
}

// breakWindowInner splices [start,end) out of intervals, overwriting the
// covered range with control and leaving any partially-overlapped
// interval split at the boundary. Ports mGBA's _breakWindow/
// _breakWindowInner pair into a value-returning, allocation-light form.
func breakWindowInner(intervals []Interval, start, end int, control WindowControl) []Interval {
	if end > ScreenWidth {
		end = ScreenWidth
	}
	if start >= end {
		return intervals
	}

	out := make([]Interval, 0, len(intervals)+2)
	inserted := false
	for _, iv := range intervals {
		switch {
		case iv.End <= start || iv.Start >= end:
			// No overlap with the window: keep as-is.
			out = append(out, iv)
		default:
			if iv.Start < start {
				out = append(out, Interval{Start: iv.Start, End: start, Control: iv.Control})
			}
			if !inserted {
				out = append(out, Interval{Start: start, End: end, Control: control})
				inserted = true
			}
			if iv.End > end {
				out = append(out, Interval{Start: end, End: iv.End, Control: iv.Control})
			}
		}
	}
	if !inserted {
		out = append(out, Interval{Start: start, End: end, Control: control})
	}
	return out
}
