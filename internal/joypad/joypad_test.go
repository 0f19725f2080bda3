package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoypad_neitherNibbleSelectedReadsCF(t *testing.T) {
	j := New()
	j.Write(0x30)
	assert.Equal(t, uint8(0xCF), j.Read())
}

func TestJoypad_bothNibblesSelectedReadsZero(t *testing.T) {
	j := New()
	j.Write(0x00)
	assert.Equal(t, uint8(0x00), j.Read())
}

func TestJoypad_actionNibbleSelected(t *testing.T) {
	j := New()
	j.Write(0x20) // bit4 low (bit5 high) selects the action nibble
	j.Press(A)
	v := j.Read()
	assert.False(t, v&0x01 != 0, "A bit should read low when pressed")
}

func TestJoypad_directionNibbleSelected(t *testing.T) {
	j := New()
	j.Write(0x10) // bit5 low (bit4 high) selects the direction nibble
	assert.Equal(t, uint8(0x0F), j.Read()&0x0F, "nothing pressed reads all high")
	j.Press(Right)
	assert.Equal(t, uint8(0x0E), j.Read()&0x0F)
}

func TestJoypad_pressFiresInterruptOnEdge(t *testing.T) {
	j := New()
	j.Write(0x10)
	fired := false
	j.InterruptRequest = func() { fired = true }

	j.Press(Up)
	assert.True(t, fired)
}

func TestJoypad_releaseDoesNotFire(t *testing.T) {
	j := New()
	j.Write(0x10)
	fired := false
	j.InterruptRequest = func() { fired = true }

	j.Release(Up)
	assert.False(t, fired)
}
