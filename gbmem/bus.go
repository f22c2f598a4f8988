// Package gbmem implements the 8-bit console's memory controller (C5):
// address-region decode across the full 16-bit space, external-RAM/RTC
// gating through a mbc.Mapper, work-RAM banking, and the OAM DMA copy
// engine. See spec.md section 4.1.
package gbmem

import (
	"github.com/duocore-emu/duocore/cartridge"
	"github.com/duocore-emu/duocore/logging"
	"github.com/duocore-emu/duocore/mbc"
)

var log = logging.New("GB_MEM")

const (
	vramSize    = 0x2000
	sramBankLen = 0x2000
	wramBankLen = 0x1000
	oamSize     = 0xA0
	hramSize    = 0x7F // 0xFF80-0xFFFE
)

// VideoModeSource reports the video core's current scanline mode, so OAM
// reads can be blocked during modes 2 and 3. A nil source leaves OAM
// always readable, which is adequate for headless mapper/DMA testing.
type VideoModeSource interface {
	Mode() int
}

// Bus is the memory controller: it owns VRAM, WRAM, OAM, HRAM and the IE
// register directly, and delegates the cartridge ROM window and external
// RAM/RTC window to a mbc.Mapper.
type Bus struct {
	cart   *cartridge.Cartridge
	mapper mbc.Mapper
	video  VideoModeSource

	vram [vramSize]uint8
	sram [][sramBankLen]uint8

	wram0 [wramBankLen]uint8
	wramN [][wramBankLen]uint8
	wramBank int

	oam  [oamSize]uint8
	hram [hramSize]uint8
	ie   uint8

	io IOHandler

	dma dmaState
}

// IOHandler dispatches 0xFF00-0xFF7F accesses to the video/timer/audio
// subsystems. This is the "external collaborator" spec.md section 1
// calls out as out of scope for the memory core; Bus holds a seam for it
// and falls back to an internal scratch array when none is wired.
type IOHandler interface {
	ReadIO(addr uint16) uint8
	WriteIO(addr uint16, value uint8)
}

// New constructs a memory controller for cart, wired to mapper (typically
// mbc.New(cart, rtc)) and an optional video-mode source and IO handler.
// Either dependency may be nil.
func New(cart *cartridge.Cartridge, mapper mbc.Mapper, video VideoModeSource, io IOHandler) *Bus {
	banks := cart.Header().RAMBankCount()
	if banks == 0 {
		banks = 1 // keep indexing safe even for RAM-less cartridges
	}

	return &Bus{
		cart:     cart,
		mapper:   mapper,
		video:    video,
		sram:     make([][sramBankLen]uint8, banks),
		wramN:    make([][wramBankLen]uint8, 7),
		wramBank: 0,
		io:       io,
	}
}

// SwitchWRAMBank selects the bank mapped into 0xD000-0xDFFF / mirror
// 0xF000-0xFDFF. Bank 0 is treated as bank 1, matching real hardware
// (there is no way to select WRAM bank 0 into the high window).
func (b *Bus) SwitchWRAMBank(n int) {
	if n == 0 {
		n = 1
	}
	b.wramBank = (n - 1) % len(b.wramN)
}

// Load8 reads a byte per the region table in spec.md section 4.1, or via
// the DMA-restricted view if a transfer is in flight.
func (b *Bus) Load8(addr uint16) uint8 {
	if b.dma.inFlight() {
		return b.dmaLoad8(addr)
	}
	return b.load8(addr)
}

// Store8 writes a byte, subject to the same DMA gating as Load8.
func (b *Bus) Store8(addr uint16, value uint8) {
	if b.dma.inFlight() {
		b.dmaStore8(addr, value)
		return
	}
	b.store8(addr, value)
}

func (b *Bus) load8(addr uint16) uint8 {
	switch addr >> 12 {
	case 0x0, 0x1, 0x2, 0x3:
		return b.cart.Bank0()[addr]
	case 0x4, 0x5, 0x6, 0x7:
		base, _ := b.cart.BankBase(b.mapper.ROMBank())
		return b.cart.ByteAt(base + int(addr&0x3FFF))
	case 0x8, 0x9:
		return b.vram[addr&0x1FFF]
	case 0xA, 0xB:
		switch {
		case b.mapper.RTCEnabled():
			return b.mapper.RTCRegister()
		case b.mapper.SRAMEnabled():
			bank := b.mapper.SRAMBank() % len(b.sram)
			return b.sram[bank][addr&0x1FFF]
		default:
			return 0xFF
		}
	case 0xC:
		return b.wram0[addr&0x0FFF]
	case 0xD:
		return b.wramN[b.wramBank][addr&0x0FFF]
	case 0xE:
		return b.wram0[addr&0x0FFF]
	case 0xF:
		return b.loadHighPage(addr)
	}
	panic("unreachable address decode")
}

func (b *Bus) loadHighPage(addr uint16) uint8 {
	switch {
	case addr < 0xFE00:
		return b.wramN[b.wramBank][addr&0x0FFF]
	case addr <= 0xFE9F:
		if b.video != nil && b.video.Mode() >= 2 {
			return 0xFF
		}
		return b.oam[addr-0xFE00]
	case addr <= 0xFEFF:
		log.GameErrorf("read from unusable region %#04x", addr)
		return 0xFF
	case addr <= 0xFF7F:
		if b.io != nil {
			return b.io.ReadIO(addr)
		}
		return 0xFF
	case addr <= 0xFFFE:
		return b.hram[addr-0xFF80]
	default: // 0xFFFF
		return b.ie
	}
}

func (b *Bus) store8(addr uint16, value uint8) {
	switch addr >> 12 {
	case 0x0, 0x1, 0x2, 0x3, 0x4, 0x5, 0x6, 0x7:
		b.mapper.Write(addr, value)
	case 0x8, 0x9:
		b.vram[addr&0x1FFF] = value
	case 0xA, 0xB:
		switch {
		case b.mapper.RTCEnabled():
			b.mapper.WriteRTCRegister(value)
		case b.mapper.SRAMEnabled():
			bank := b.mapper.SRAMBank() % len(b.sram)
			b.sram[bank][addr&0x1FFF] = value
		}
	case 0xC:
		b.wram0[addr&0x0FFF] = value
	case 0xD:
		b.wramN[b.wramBank][addr&0x0FFF] = value
	case 0xE:
		b.wram0[addr&0x0FFF] = value
	case 0xF:
		b.storeHighPage(addr, value)
	}
}

func (b *Bus) storeHighPage(addr uint16, value uint8) {
	switch {
	case addr < 0xFE00:
		b.wramN[b.wramBank][addr&0x0FFF] = value
	case addr <= 0xFE9F:
		b.oam[addr-0xFE00] = value
	case addr <= 0xFEFF:
		log.GameErrorf("write to unusable region %#04x = %#02x", addr, value)
	case addr <= 0xFF7F:
		if b.io != nil {
			b.io.WriteIO(addr, value)
		}
	case addr <= 0xFFFE:
		b.hram[addr-0xFF80] = value
	default: // 0xFFFF
		b.ie = value
	}
}

// OAM returns the live OAM backing array, for the video core to read
// sprite attributes directly without going through the DMA gate.
func (b *Bus) OAM() *[oamSize]uint8 { return &b.oam }

// VRAM returns the live VRAM backing array, for the video core.
func (b *Bus) VRAM() *[vramSize]uint8 { return &b.vram }
