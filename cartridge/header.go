// Package cartridge implements loading and header decode for the 8-bit
// console's ROM image format. https://gbdev.io/pandocs/The_Cartridge_Header.html
package cartridge

import "fmt"

// MapperType identifies which of the five supported mapper families (plus
// "none") a cartridge's header byte selects. The mbc package switches on
// this to pick a write decoder.
type MapperType uint8

const (
	MapperNone MapperType = iota
	MapperMBC1
	MapperMBC2
	MapperMBC3
	MapperMBC5
	MapperMBC6
	MapperMBC7
)

func (m MapperType) String() string {
	switch m {
	case MapperNone:
		return "None"
	case MapperMBC1:
		return "MBC1"
	case MapperMBC2:
		return "MBC2"
	case MapperMBC3:
		return "MBC3"
	case MapperMBC5:
		return "MBC5"
	case MapperMBC6:
		return "MBC6"
	case MapperMBC7:
		return "MBC7"
	default:
		return "Unknown"
	}
}

// Header byte offsets, relative to the start of the header region at 0x100.
const (
	offsetTitle    = 0x34
	offsetType     = 0x47
	offsetROMSize  = 0x48
	offsetRAMSize  = 0x49
	titleMaxLength = 16
)

// Header is the decoded header region of a cartridge image, 0x100-0x14F.
// Only the type byte is interpreted for mapper selection, per spec; title
// and size codes are carried for diagnostics/sizing.
type Header struct {
	typeByte byte
	title    string
	romSize  byte
	ramSize  byte
}

func parseHeader(h []byte) *Header {
	end := offsetTitle + titleMaxLength
	if end > len(h) {
		end = len(h)
	}
	title := make([]byte, 0, titleMaxLength)
	for _, b := range h[offsetTitle:end] {
		if b == 0 {
			break
		}
		title = append(title, b)
	}

	return &Header{
		typeByte: h[offsetType],
		title:    string(title),
		romSize:  h[offsetROMSize],
		ramSize:  h[offsetRAMSize],
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%q type=%#02x mapper=%s romSize=%d ramSize=%d", h.title, h.typeByte, h.MapperType(), h.romSize, h.ramSize)
}

// MapperType maps the header's cartridge type byte to a mapper family.
// Known values per spec.md section 6; unknown types default to MBC5 with
// a warning, matching mGBA's GBMemoryReset fallthrough.
func (h *Header) MapperType() MapperType {
	switch h.typeByte {
	case 0x00, 0x08, 0x09:
		return MapperNone
	case 0x01, 0x02, 0x03:
		return MapperMBC1
	case 0x05, 0x06:
		return MapperMBC2
	case 0x20:
		return MapperMBC6
	case 0x22:
		return MapperMBC7
	}
	switch {
	case h.typeByte >= 0x0F && h.typeByte <= 0x13:
		return MapperMBC3
	case h.typeByte >= 0x19 && h.typeByte <= 0x1E:
		return MapperMBC5
	default:
		return MapperMBC5
	}
}

// IsUnknownType reports whether the header's type byte fell through to the
// MBC5 default rather than matching a known table entry.
func (h *Header) IsUnknownType() bool {
	switch h.typeByte {
	case 0x00, 0x08, 0x09, 0x01, 0x02, 0x03, 0x05, 0x06, 0x20, 0x22:
		return false
	}
	if h.typeByte >= 0x0F && h.typeByte <= 0x13 {
		return false
	}
	if h.typeByte >= 0x19 && h.typeByte <= 0x1E {
		return false
	}
	return true
}

// HasRTC reports whether this cartridge type includes a real-time-clock
// register set (only the two MBC3 RTC variants).
func (h *Header) HasRTC() bool {
	return h.typeByte == 0x0F || h.typeByte == 0x10
}

// Title returns the ROM's internal title, as stored at 0x134.
func (h *Header) Title() string {
	return h.title
}

// RAMBankCount decodes the external-RAM size byte into a count of 8 KiB
// banks, per the standard cartridge header table. The 2 KiB case (0x01)
// is rounded up to a single bank; duocore never sub-allocates a bank.
func (h *Header) RAMBankCount() int {
	switch h.ramSize {
	case 0x00:
		return 0
	case 0x01, 0x02:
		return 1
	case 0x03:
		return 4
	case 0x04:
		return 16
	case 0x05:
		return 8
	default:
		return 1
	}
}
