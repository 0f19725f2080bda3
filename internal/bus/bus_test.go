package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vireo-go/gbcore/internal/addr"
)

func TestBus_wramBank0IsFixedBank1To7AreSwitchable(t *testing.T) {
	b := New(true)

	b.Write(0xC000, 0x11) // bank 0, always visible at C000
	b.Write(0xD000, 0x22) // current bank at D000, defaults to bank 1

	b.Write(addr.SVBK, 0x03)
	b.Write(0xD000, 0x33)

	b.Write(addr.SVBK, 0x01)
	assert.Equal(t, uint8(0x22), b.Read(0xD000))

	b.Write(addr.SVBK, 0x03)
	assert.Equal(t, uint8(0x33), b.Read(0xD000))

	assert.Equal(t, uint8(0x11), b.Read(0xC000))
}

func TestBus_svbkIgnoredOnDMG(t *testing.T) {
	b := New(false)
	b.Write(addr.SVBK, 0x05)
	assert.Equal(t, uint8(1)|0xF8, b.Read(addr.SVBK))
}

func TestBus_svbkBankZeroAliasesToOne(t *testing.T) {
	b := New(true)
	b.Write(addr.SVBK, 0x00)
	assert.Equal(t, uint8(1)|0xF8, b.Read(addr.SVBK))
}

func TestBus_echoRAMMirrorsWRAM(t *testing.T) {
	b := New(false)
	b.Write(0xC010, 0x77)
	assert.Equal(t, uint8(0x77), b.Read(0xE010))
}

func TestBus_unusableRegionReadsFF(t *testing.T) {
	b := New(false)
	assert.Equal(t, uint8(0xFF), b.Read(0xFEA0))
}

func TestBus_ifReadAlwaysHasTopBitsSet(t *testing.T) {
	b := New(false)
	b.RequestInterrupt(addr.VBlankInterrupt)
	assert.Equal(t, uint8(addr.VBlankInterrupt)|0xE0, b.Read(addr.IF))
}

func TestBus_oamDMACopies160Bytes(t *testing.T) {
	b := New(false)
	for i := uint16(0); i < 160; i++ {
		b.wram[0][i] = byte(i)
	}
	b.Write(addr.DMA, 0xC0)

	for i := uint16(0); i < 160; i++ {
		assert.Equal(t, byte(i), b.PPU.Read(addr.OAMStart+i))
	}
}

func TestBus_bootROMOverlayThenDisables(t *testing.T) {
	b := New(false)
	b.LoadBootROM([]byte{0xAA, 0xBB})

	assert.Equal(t, uint8(0xAA), b.Read(0x0000))

	b.Write(addr.BOOT, 0x01)
	assert.NotEqual(t, uint8(0xAA), b.Read(0x0000)) // now falls through (no cart = 0xFF)
}

func TestBus_hdmaGeneralTransferCopiesImmediately(t *testing.T) {
	b := New(true)
	for i := uint16(0); i < 32; i++ {
		b.wram[0][i] = byte(i + 1)
	}

	b.Write(addr.HDMA1, 0xC0) // source $C000
	b.Write(addr.HDMA2, 0x00)
	b.Write(addr.HDMA3, 0x80) // dest $8000
	b.Write(addr.HDMA4, 0x00)
	b.Write(addr.HDMA5, 0x01) // general mode, 2 blocks (32 bytes)

	for i := uint16(0); i < 32; i++ {
		assert.Equal(t, byte(i+1), b.PPU.Read(0x8000+i))
	}
	assert.Equal(t, uint8(0xFF), b.Read(addr.HDMA5))
}
