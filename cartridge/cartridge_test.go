package cartridge

import "testing"

func newTestImage(banks int) []byte {
	data := make([]byte, banks*BankSize)
	data[HeaderOffset+offsetType] = 0x01 // MBC1
	return data
}

func TestBankCount(t *testing.T) {
	c, err := NewFromBytes(newTestImage(4))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	if got, want := c.BankCount(), 4; got != want {
		t.Errorf("BankCount() = %d, want %d", got, want)
	}
}

func TestBankBaseReducesOutOfRange(t *testing.T) {
	c, err := NewFromBytes(newTestImage(4)) // 0x10000 bytes, banks 0..3
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}

	if base, reduced := c.BankBase(2); reduced || base != 2*BankSize {
		t.Errorf("BankBase(2) = (%#x, %v), want (%#x, false)", base, reduced, 2*BankSize)
	}

	// Bank 10 is past the end of a 4-bank image; it should reduce modulo
	// the image size rather than panic or index out of bounds.
	base, reduced := c.BankBase(10)
	if !reduced {
		t.Errorf("BankBase(10) on a 4-bank image should report reduced=true")
	}
	if base < 0 || base >= len(c.data) {
		t.Errorf("BankBase(10) = %#x, out of image bounds [0, %#x)", base, len(c.data))
	}
}

func TestByteAtWraps(t *testing.T) {
	data := newTestImage(1)
	data[0x10] = 0xAB
	c, err := NewFromBytes(data)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}

	if got := c.ByteAt(0x10); got != 0xAB {
		t.Errorf("ByteAt(0x10) = %#02x, want 0xAB", got)
	}
	if got := c.ByteAt(len(data) + 0x10); got != 0xAB {
		t.Errorf("ByteAt wrapped = %#02x, want 0xAB", got)
	}
}
