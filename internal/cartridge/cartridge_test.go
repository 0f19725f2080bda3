package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildROM returns a minimal ROM image of size bytes with a valid header
// checksum and the given cart-type/ROM-size/RAM-size/CGB-flag bytes.
func buildROM(size int, cartType, romSizeCode, ramSizeCode, cgbFlag byte) []byte {
	rom := make([]byte, size)
	copy(rom[0x0134:], []byte("TESTGAME"))
	rom[0x0143] = cgbFlag
	rom[0x0147] = cartType
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode

	var sum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x014D] = sum
	return rom
}

func TestParseHeader_basicFields(t *testing.T) {
	rom := buildROM(0x8000, 0x00, 0x00, 0x00, 0x00)
	h := ParseHeader(rom)

	assert.Equal(t, "TESTGAME", h.Title)
	assert.True(t, h.HeaderValid)
	assert.Equal(t, KindNoMBC, h.Kind)
	assert.False(t, h.IsCGB)
}

func TestParseHeader_cgbFlag(t *testing.T) {
	rom := buildROM(0x8000, 0x00, 0x00, 0x00, 0xC0)
	h := ParseHeader(rom)
	assert.True(t, h.IsCGB)
}

func TestParseHeader_mbc1WithBattery(t *testing.T) {
	rom := buildROM(0x20000, 0x03, 0x02, 0x02, 0x00)
	h := ParseHeader(rom)
	assert.Equal(t, KindMBC1, h.Kind)
	assert.True(t, h.HasBattery)
}

func TestParseHeader_mbc3WithRTC(t *testing.T) {
	rom := buildROM(0x20000, 0x10, 0x02, 0x02, 0x00)
	h := ParseHeader(rom)
	assert.Equal(t, KindMBC3, h.Kind)
	assert.True(t, h.HasRTC)
}

func TestLoad_unsupportedCartTypePanics(t *testing.T) {
	rom := buildROM(0x8000, 0xFE, 0x00, 0x00, 0x00)
	assert.Panics(t, func() { Load(rom) })
}

func TestMBC1_romBankingRoundTrip(t *testing.T) {
	rom := make([]byte, 0x40000) // 256KB, 16 banks
	for bank := 0; bank < 16; bank++ {
		rom[bank*0x4000] = byte(bank)
	}
	m := NewMBC1(rom, 0x2000)

	m.Write(0x2000, 0x05) // select bank 5
	assert.Equal(t, uint8(5), m.Read(0x4000))

	m.Write(0x2000, 0x00) // bank 0 aliases to bank 1
	assert.Equal(t, uint8(1), m.Read(0x4000))
}

func TestMBC1_ramRoundTrip(t *testing.T) {
	rom := make([]byte, 0x8000)
	m := NewMBC1(rom, 0x2000)

	m.Write(0x0000, 0x0A) // enable RAM
	m.Write(0xA000, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0xA000))

	m.Write(0x0000, 0x00) // disable RAM
	assert.Equal(t, uint8(0xFF), m.Read(0xA000))
}

func TestMBC3_rtcLatchRoundTrip(t *testing.T) {
	rom := make([]byte, 0x8000)
	m := NewMBC3(rom, 0x2000, true)

	m.Write(0x0000, 0x0A) // enable RAM/RTC access
	m.Write(0x4000, 0x08) // select RTC seconds register
	m.Write(0xA000, 42)

	// latch: write 0 then 1
	m.Write(0x6000, 0x00)
	m.Write(0x6000, 0x01)

	assert.Equal(t, uint8(42), m.Read(0xA000))
}

func TestMBC3_ramBankingRoundTrip(t *testing.T) {
	rom := make([]byte, 0x8000)
	m := NewMBC3(rom, 0x8000, false)

	m.Write(0x0000, 0x0A)
	m.Write(0x4000, 0x02) // select ram bank 2
	m.Write(0xA000, 0x99)
	assert.Equal(t, uint8(0x99), m.Read(0xA000))
}
