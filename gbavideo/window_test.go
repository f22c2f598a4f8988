package gbavideo

import "testing"

func assertIntervalInvariants(t *testing.T, intervals []Interval) {
	t.Helper()
	if len(intervals) == 0 {
		t.Fatalf("interval list must not be empty")
	}
	if len(intervals) > MaxWindowIntervals {
		t.Errorf("interval count %d exceeds MaxWindowIntervals %d", len(intervals), MaxWindowIntervals)
	}
	if intervals[0].Start != 0 {
		t.Errorf("first interval must start at 0, got %d", intervals[0].Start)
	}
	if intervals[len(intervals)-1].End != ScreenWidth {
		t.Errorf("last interval must end at %d, got %d", ScreenWidth, intervals[len(intervals)-1].End)
	}
	for i := 1; i < len(intervals); i++ {
		if intervals[i].Start != intervals[i-1].End {
			t.Errorf("intervals not contiguous: [%d,%d) then [%d,%d)",
				intervals[i-1].Start, intervals[i-1].End, intervals[i].Start, intervals[i].End)
		}
		if intervals[i].Start >= intervals[i].End {
			t.Errorf("interval %d is empty or inverted: [%d,%d)", i, intervals[i].Start, intervals[i].End)
		}
	}
}

func TestResolveWindowsInvariants(t *testing.T) {
	cases := []struct {
		name       string
		y          int
		win0, win1 Window
	}{
		{
			name: "no windows enabled",
			y:    10,
		},
		{
			name: "single non-wrapping window",
			y:    10,
			win0: Window{Enabled: true, Horizontal: Span{20, 100}, Vertical: Span{0, 160}},
		},
		{
			name: "both windows overlapping",
			y:    10,
			win0: Window{Enabled: true, Horizontal: Span{20, 100}, Vertical: Span{0, 160}},
			win1: Window{Enabled: true, Horizontal: Span{60, 180}, Vertical: Span{0, 160}},
		},
		{
			name: "horizontally wrapping window",
			y:    10,
			win0: Window{Enabled: true, Horizontal: Span{200, 40}, Vertical: Span{0, 160}},
		},
		{
			name: "vertically wrapping window out of range",
			y:    5,
			win0: Window{Enabled: true, Horizontal: Span{0, 100}, Vertical: Span{150, 10}},
		},
		{
			name: "both windows, both wrapping",
			y:    0,
			win0: Window{Enabled: true, Horizontal: Span{220, 20}, Vertical: Span{0, 160}},
			win1: Window{Enabled: true, Horizontal: Span{230, 10}, Vertical: Span{0, 160}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			intervals := ResolveWindows(tc.y, tc.win0, tc.win1, 0)
			assertIntervalInvariants(t, intervals)
		})
	}
}

func TestResolveWindowsWin0WinsOnOverlap(t *testing.T) {
	win0 := Window{Enabled: true, Horizontal: Span{50, 70}, Vertical: Span{0, 160}, Control: 0x1}
	win1 := Window{Enabled: true, Horizontal: Span{0, 240}, Vertical: Span{0, 160}, Control: 0x2}

	intervals := ResolveWindows(10, win0, win1, 0)
	assertIntervalInvariants(t, intervals)

	if got := controlAt(intervals, 60); got != 0x1 {
		t.Errorf("column inside both windows: control = %#x, want win0's 0x1", got)
	}
	if got := controlAt(intervals, 10); got != 0x2 {
		t.Errorf("column inside win1 only: control = %#x, want win1's 0x2", got)
	}
}
