package mbc

import (
	"testing"

	"github.com/duocore-emu/duocore/cartridge"
)

func newCart(t *testing.T, typeByte byte, banks int) *cartridge.Cartridge {
	t.Helper()
	data := make([]byte, banks*cartridge.BankSize)
	data[cartridge.HeaderOffset+0x47] = typeByte
	c, err := cartridge.NewFromBytes(data)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	return c
}

func TestMBC1BankSelect(t *testing.T) {
	m := New(newCart(t, 0x01, 64), nil)

	cases := []struct {
		write uint8
		want  int
	}{
		{0x00, 1}, // zero fixes up to 1
		{0x01, 1},
		{0x1F, 0x1F},
		{0x20, 1}, // only the low 5 bits are used; 0x20 masks to 0
	}

	for _, tc := range cases {
		m.Write(0x2000, tc.write)
		if got := m.ROMBank(); got != tc.want {
			t.Errorf("after write %#02x: ROMBank() = %d, want %d", tc.write, got, tc.want)
		}
	}
}

func TestMBC1SRAMGate(t *testing.T) {
	m := New(newCart(t, 0x01, 2), nil)

	if m.SRAMEnabled() {
		t.Fatalf("SRAM should start disabled")
	}
	m.Write(0x0000, 0x0A)
	if !m.SRAMEnabled() {
		t.Errorf("write of 0x0A should enable SRAM")
	}
	m.Write(0x0000, 0x00)
	if m.SRAMEnabled() {
		t.Errorf("write of 0x00 should disable SRAM")
	}
}

func TestMBC3BankSelectZeroFixup(t *testing.T) {
	m := New(newCart(t, 0x10, 8), nil)

	m.Write(0x2000, 0x00)
	if got := m.ROMBank(); got != 1 {
		t.Errorf("ROMBank() = %d, want 1", got)
	}
	m.Write(0x2000, 0x05)
	if got := m.ROMBank(); got != 5 {
		t.Errorf("ROMBank() = %d, want 5", got)
	}
}

func TestMBC3RTCRegisterSelect(t *testing.T) {
	m := New(newCart(t, 0x10, 2), &fixedRTC{unix: 0})

	m.Write(0x4000, 0x08) // select RTC seconds register
	if !m.RTCEnabled() {
		t.Fatalf("RTCEnabled() should be true after selecting register 8")
	}

	m.Write(0x6000, 0x00)
	m.Write(0x6000, 0x01) // latch

	if got := m.RTCRegister(); got != 0 {
		t.Errorf("RTCRegister() (seconds) = %d, want 0 for a unix epoch source", got)
	}
}

// fixedRTC reports a constant unix time, for a deterministic latch test.
type fixedRTC struct {
	unix int64
}

func (f *fixedRTC) Sample()          {}
func (f *fixedRTC) UnixTime() int64 { return f.unix }

func TestRTCLatchFromSource(t *testing.T) {
	m := New(newCart(t, 0x10, 2), &fixedRTC{unix: 0})

	m.Write(0x4000, 0x0C) // select RTC day-high register (index 4)
	m.Write(0x6000, 0x00)
	m.Write(0x6000, 0x01)

	if got := m.RTCRegister(); got != 0 {
		t.Errorf("day-high register = %d, want 0 for Jan 1 1970 UTC", got)
	}

	m.Write(0x4000, 0x0B) // index 3: day-low (1-based day-of-year)
	if got := m.RTCRegister(); got != 1 {
		t.Errorf("day-low register = %d, want 1 (day-of-year 1 = Jan 1)", got)
	}

	m.Write(0x4000, 0x08) // seconds
	if got := m.RTCRegister(); got != 0 {
		t.Errorf("seconds register = %d, want 0", got)
	}
}
