package gbavideo

import "testing"

func TestMixAlphaSymmetry(t *testing.T) {
	colors := []Color555{0, White, 0x1234 & 0x7FFF, 0x7FFF}
	for _, cA := range colors {
		for _, cB := range colors {
			if got := Mix(16, cA, 0, cB); got != cA {
				t.Errorf("Mix(16, %#x, 0, %#x) = %#x, want %#x", cA, cB, got, cA)
			}
			if got := Mix(0, cA, 16, cB); got != cB {
				t.Errorf("Mix(0, %#x, 16, %#x) = %#x, want %#x", cA, cB, got, cB)
			}
		}
	}
}

func TestBrightenDarkenEndpoints(t *testing.T) {
	colors := []Color555{0, White, 0x1234 & 0x7FFF, 0x7FFF}
	for _, c := range colors {
		if got := Brighten(c, 0); got != c {
			t.Errorf("Brighten(%#x, 0) = %#x, want %#x", c, got, c)
		}
		if got := Brighten(c, 16); got != White {
			t.Errorf("Brighten(%#x, 16) = %#x, want White (%#x)", c, got, White)
		}
		if got := Darken(c, 16); got != Black {
			t.Errorf("Darken(%#x, 16) = %#x, want Black", c, got)
		}
	}
}

func TestPixelUnwrittenLosesCompare(t *testing.T) {
	real := NewPixel(0x1234&0x7FFF, 3, 0, true, false, false, false)
	if Unwritten < real {
		t.Errorf("Unwritten (%#x) should compare as higher-order than a real pixel (%#x)", Unwritten, real)
	}
	if !Unwritten.IsUnwritten() {
		t.Errorf("Unwritten.IsUnwritten() = false, want true")
	}
	if real.IsUnwritten() {
		t.Errorf("a real pixel should never report IsUnwritten()")
	}
}

func TestPixelRoundTrip(t *testing.T) {
	p := NewPixel(0x5A5A&0x7FFF, 2, 5, true, true, false, true)
	if got := p.Color(); got != 0x5A5A&0x7FFF {
		t.Errorf("Color() = %#x, want %#x", got, 0x5A5A&0x7FFF)
	}
	if got := p.Priority(); got != 2 {
		t.Errorf("Priority() = %d, want 2", got)
	}
	if got := p.Index(); got != 5 {
		t.Errorf("Index() = %d, want 5", got)
	}
	if !p.IsBackground() || !p.IsTarget1() || p.IsTarget2() || !p.IsObjwin() {
		t.Errorf("flag round trip mismatch: %+v", p)
	}
}
