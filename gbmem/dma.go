package gbmem

import "math"

// dmaState is the OAM DMA copy engine's scheduling state, ported from
// mGBA's GBMemoryDMA/_GBMemoryDMAService.
type dmaState struct {
	source    uint16
	dest      int
	remaining int
	nextEvent int // cycles until the next transfer step
	active    bool
}

func (d *dmaState) inFlight() bool { return d.active }

// StartDMA arms a transfer of 0xA0 bytes from base into OAM. A base above
// 0xF100 is a no-op (the hardware forbids sourcing a DMA from echo RAM and
// above). Re-arming while a transfer is in flight restarts it from base
// and returns DmaInFlight so the caller can log the overwrite; the spec
// documents this as the deliberately-preserved source behavior rather
// than a bug.
func (b *Bus) StartDMA(base uint16) error {
	if base > 0xF100 {
		return nil
	}

	var err error
	if b.dma.active {
		err = &DmaInFlight{Remaining: b.dma.remaining}
		log.Warnf("DMA re-armed at base %#04x with %d bytes still in flight", base, b.dma.remaining)
	}

	b.dma.source = base
	b.dma.dest = 0
	b.dma.remaining = oamSize
	b.dma.nextEvent = 8
	b.dma.active = true
	return err
}

// DMAInFlight reports whether a transfer is currently gating Load8/Store8.
func (b *Bus) DMAInFlight() bool { return b.dma.active }

// DMARemaining returns the number of bytes left to transfer.
func (b *Bus) DMARemaining() int { return b.dma.remaining }

// Tick advances the DMA state machine by the given number of cycles,
// performing every transfer step whose scheduled time has passed. The
// host's CPU loop calls this once per instruction dispatch, per spec.md's
// "DMA is advanced before CPU instruction dispatch" ordering.
func (b *Bus) Tick(cycles int) {
	if !b.dma.active {
		return
	}

	b.dma.nextEvent -= cycles
	for b.dma.active && b.dma.nextEvent <= 0 {
		b.dmaStep()
	}
}

func (b *Bus) dmaStep() {
	value := b.load8(b.dma.source)
	b.oam[b.dma.dest] = value

	b.dma.source++
	b.dma.dest++
	b.dma.remaining--

	if b.dma.remaining == 0 {
		b.dma.active = false
		b.dma.nextEvent = math.MaxInt32
		return
	}
	b.dma.nextEvent += 4
}

// dmaLoad8 is the restricted read view active while a DMA is in flight:
// only HRAM (0xFF80-0xFFFE) is exposed, everything else reads 0xFF.
func (b *Bus) dmaLoad8(addr uint16) uint8 {
	if addr >= 0xFF80 && addr <= 0xFFFE {
		return b.hram[addr-0xFF80]
	}
	return 0xFF
}

// dmaStore8 is the restricted write view active while a DMA is in
// flight: only HRAM accepts writes, everything else is dropped.
func (b *Bus) dmaStore8(addr uint16, value uint8) {
	if addr >= 0xFF80 && addr <= 0xFFFE {
		b.hram[addr-0xFF80] = value
	}
}
