package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteRAM_autoIncrementRoundTrip(t *testing.T) {
	var pr paletteRAM
	pr.writeSpec(0x80) // index 0, auto-increment on

	pr.writeData(0x34)
	pr.writeData(0x12)

	assert.Equal(t, byte(0x34), pr.data[0])
	assert.Equal(t, byte(0x12), pr.data[1])
	assert.Equal(t, uint8(2), pr.index)
}

func TestPaletteRAM_colorExpansion(t *testing.T) {
	var pr paletteRAM
	pr.writeSpec(0x80) // index 0, auto-increment on
	// palette 0, color 0: RGB555 = 0x1F, 0, 0 (pure red, low byte first)
	pr.writeData(0x1F)
	pr.writeData(0x00)

	r, g, b := pr.color(0, 0)
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(0), b)
}

func TestPaletteRAM_noAutoIncrementLeavesIndex(t *testing.T) {
	var pr paletteRAM
	pr.writeSpec(0x05) // index 5, no auto-increment
	pr.writeData(0xAA)
	assert.Equal(t, uint8(5), pr.index)
	assert.Equal(t, byte(0xAA), pr.data[5])
}

func TestDMGPalette_unpacksFourShades(t *testing.T) {
	shades := dmgPalette(0b11_10_01_00)
	assert.Equal(t, [4]uint8{0, 1, 2, 3}, shades)
}

func TestExpand5(t *testing.T) {
	assert.Equal(t, uint8(255), expand5(0x1F))
	assert.Equal(t, uint8(0), expand5(0x00))
}
