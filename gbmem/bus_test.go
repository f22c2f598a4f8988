package gbmem

import (
	"testing"

	"github.com/duocore-emu/duocore/cartridge"
	"github.com/duocore-emu/duocore/mbc"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	data := make([]byte, 8*cartridge.BankSize)
	data[cartridge.HeaderOffset+0x47] = 0x10 // MBC3+RTC, so SRAM/RTC paths exist
	data[cartridge.HeaderOffset+0x49] = 0x02 // 8 KiB RAM, one bank
	cart, err := cartridge.NewFromBytes(data)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	mapper := mbc.New(cart, nil)
	return New(cart, mapper, nil, nil)
}

func TestAddressRoundTripHRAMAndWRAM(t *testing.T) {
	b := newTestBus(t)

	addrs := []uint16{0xC010, 0xD010, 0xFF85, 0xFFFE, 0x8100, 0x9000}
	for _, a := range addrs {
		b.Store8(a, 0x42)
		if got := b.Load8(a); got != 0x42 {
			t.Errorf("round trip at %#04x: got %#02x, want 0x42", a, got)
		}
	}
}

func TestUnusableRegionReadsFF(t *testing.T) {
	b := newTestBus(t)
	if got := b.Load8(0xFEA0); got != 0xFF {
		t.Errorf("Load8(0xFEA0) = %#02x, want 0xFF", got)
	}
	if got := b.Load8(0xFEFF); got != 0xFF {
		t.Errorf("Load8(0xFEFF) = %#02x, want 0xFF", got)
	}
}

func TestExternalRAMReadsFFWhenGateClosed(t *testing.T) {
	b := newTestBus(t)
	if got := b.Load8(0xA000); got != 0xFF {
		t.Errorf("Load8(0xA000) with no SRAM/RTC access = %#02x, want 0xFF", got)
	}
}

func TestBank0Immutable(t *testing.T) {
	b := newTestBus(t)

	before := make([]byte, len(b.cart.Bank0()))
	copy(before, b.cart.Bank0())

	// A write anywhere in 0x0000-0x7FFF must be diverted to the mapper,
	// never mutate the ROM image itself.
	b.Store8(0x2000, 0x05)
	b.Store8(0x0000, 0x0A)

	after := b.cart.Bank0()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("bank 0 mutated at offset %#x: %#02x != %#02x", i, before[i], after[i])
			break
		}
	}
}

func TestDMAIdempotence(t *testing.T) {
	b := newTestBus(t)

	for i := 0; i < 0xA0; i++ {
		b.store8(0xC100+uint16(i), byte(i+1))
	}

	if err := b.StartDMA(0xC100); err != nil {
		t.Fatalf("StartDMA: %v", err)
	}

	// Run well past completion: 8 cycle initial delay + 0xA0*4 cycles.
	b.Tick(8 + 0xA0*4)

	if b.DMAInFlight() {
		t.Fatalf("DMA should have completed")
	}
	if got := b.DMARemaining(); got != 0 {
		t.Errorf("DMARemaining() = %d, want 0", got)
	}

	for i := 0; i < 0xA0; i++ {
		want := byte(i + 1)
		if got := b.oam[i]; got != want {
			t.Errorf("OAM[%#x] = %#02x, want %#02x", i, got, want)
		}
	}
}

func TestDMAGuardedReads(t *testing.T) {
	b := newTestBus(t)
	b.store8(0x0100, 0x99)
	b.hram[0xFF85-0xFF80] = 0x55

	if err := b.StartDMA(0xC100); err != nil {
		t.Fatalf("StartDMA: %v", err)
	}

	if got := b.Load8(0x0100); got != 0xFF {
		t.Errorf("Load8(0x0100) during DMA = %#02x, want 0xFF", got)
	}
	if got := b.Load8(0xFF85); got != 0x55 {
		t.Errorf("Load8(0xFF85) during DMA = %#02x, want 0x55 (HRAM stays exposed)", got)
	}
}

func TestDMAAboveEchoRAMIsNoOp(t *testing.T) {
	b := newTestBus(t)
	if err := b.StartDMA(0xF200); err != nil {
		t.Fatalf("StartDMA above 0xF100: %v", err)
	}
	if b.DMAInFlight() {
		t.Errorf("DMA should not have armed for a base above 0xF100")
	}
}
