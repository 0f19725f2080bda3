package gbcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildROM returns a minimal, header-checksum-valid ROM of size bytes.
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

func TestSystem_bootlessDMGEntry(t *testing.T) {
	rom := buildROM(0x8000, 0x00, 0x00, 0x00, 0x00)
	sys := New(Options{ROM: rom})

	assert.Equal(t, uint16(0x0100), sys.CPU.GetPC())
	assert.Equal(t, uint16(0xFFFE), sys.CPU.GetSP())
	assert.False(t, sys.Bus.CGB)
}

func TestSystem_cgbEntry(t *testing.T) {
	rom := buildROM(0x8000, 0x00, 0x00, 0x00, 0xC0)
	sys := New(Options{ROM: rom})

	assert.Equal(t, uint16(0x0100), sys.CPU.GetPC())
	assert.True(t, sys.Bus.CGB)
}

func TestSystem_bootROMStartsAtZero(t *testing.T) {
	rom := buildROM(0x8000, 0x00, 0x00, 0x00, 0x00)
	sys := New(Options{ROM: rom, BootROM: []byte{0x00, 0x00}})

	assert.Equal(t, uint16(0x0000), sys.CPU.GetPC())
}

func TestSystem_runFrameProducesAFullSizeFrameBuffer(t *testing.T) {
	rom := buildROM(0x8000, 0x00, 0x00, 0x00, 0x00)
	// infinite loop at $0100 so RunFrame has something to chew on
	rom[0x0100] = 0x18 // JR -2
	rom[0x0101] = 0xFE

	sys := New(Options{ROM: rom})
	frame := sys.RunFrame()

	assert.Equal(t, 160*144*4, len(frame.Pixels))
}

func TestSystem_saveFlushRoundTrip(t *testing.T) {
	rom := buildROM(0x20000, 0x03, 0x02, 0x02, 0x00) // MBC1+RAM+battery
	savePath := t.TempDir() + "/game.sav"

	sys := New(Options{ROM: rom, SavePath: savePath})
	sys.Bus.Cart.Write(0x0000, 0x0A) // enable RAM
	sys.Bus.Cart.Write(0xA000, 0x42)

	assert.NoError(t, sys.FlushSave())

	sys2 := New(Options{ROM: rom, SavePath: savePath})
	sys2.Bus.Cart.Write(0x0000, 0x0A)
	assert.Equal(t, uint8(0x42), sys2.Bus.Cart.Read(0xA000))
}
