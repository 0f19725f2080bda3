// Package cartridge parses Game Boy ROM headers and implements the memory
// bank controllers (NoMBC, MBC1, MBC3) that sit behind $0000-$7FFF and
// $A000-$BFFF, plus battery-backed save persistence.
package cartridge

import (
	"strings"
	"unicode"
)

const (
	titleAddress         = 0x0134
	titleLength          = 16
	cgbFlagAddress       = 0x0143
	cartTypeAddress      = 0x0147
	romSizeAddress       = 0x0148
	ramSizeAddress       = 0x0149
	headerChecksumOffset = 0x014D
)

// MBCKind identifies which controller chip a cartridge uses.
type MBCKind uint8

const (
	KindNoMBC MBCKind = iota
	KindMBC1
	KindMBC3
	KindUnsupported
)

// Header is the parsed subset of a ROM's $0100-$014F header this core acts on.
type Header struct {
	Title       string
	CGBFlag     uint8
	IsCGB       bool
	Kind        MBCKind
	HasBattery  bool
	HasRTC      bool
	ROMBanks    int
	RAMBanks    int
	RAMSize     int
	HeaderValid bool
}

// ParseHeader reads the header fields out of a full ROM image.
func ParseHeader(rom []byte) Header {
	h := Header{}
	if len(rom) < 0x150 {
		return h
	}

	h.Title = cleanTitle(rom[titleAddress : titleAddress+titleLength])
	h.CGBFlag = rom[cgbFlagAddress]
	h.IsCGB = h.CGBFlag == 0x80 || h.CGBFlag == 0xC0

	cartType := rom[cartTypeAddress]
	h.Kind, h.HasBattery, h.HasRTC = classifyCartType(cartType)

	h.ROMBanks = romBanks(rom[romSizeAddress])
	h.RAMBanks, h.RAMSize = ramBanks(rom[ramSizeAddress])

	h.HeaderValid = validateChecksum(rom)
	return h
}

// classifyCartType maps the $0147 cartridge-type byte to an MBC kind and
// its battery/RTC capabilities.
func classifyCartType(cartType uint8) (MBCKind, bool, bool) {
	switch cartType {
	case 0x00:
		return KindNoMBC, false, false
	case 0x08, 0x09:
		return KindNoMBC, cartType == 0x09, false
	case 0x01, 0x02:
		return KindMBC1, false, false
	case 0x03:
		return KindMBC1, true, false
	case 0x0F:
		return KindMBC3, true, true
	case 0x10:
		return KindMBC3, true, true
	case 0x11, 0x12:
		return KindMBC3, false, false
	case 0x13:
		return KindMBC3, true, false
	default:
		return KindUnsupported, false, false
	}
}

func romBanks(code uint8) int {
	if code > 0x08 {
		return 2
	}
	return 2 << code
}

// ramBanks maps the $0149 RAM-size code to a bank count and total byte size.
func ramBanks(code uint8) (banks int, size int) {
	switch code {
	case 0x00:
		return 0, 0
	case 0x01:
		return 1, 2 * 1024 // unofficial 2KB variant, treated as one partial bank
	case 0x02:
		return 1, 8 * 1024
	case 0x03:
		return 4, 32 * 1024
	case 0x04:
		return 16, 128 * 1024
	case 0x05:
		return 8, 64 * 1024
	default:
		return 0, 0
	}
}

func validateChecksum(rom []byte) bool {
	var sum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - rom[i] - 1
	}
	return sum == rom[headerChecksumOffset]
}

func cleanTitle(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		r := rune(b)
		switch {
		case r == 0:
			continue
		case !unicode.IsPrint(r):
			r = '?'
		}
		runes = append(runes, r)
	}
	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(untitled)"
	}
	return title
}
