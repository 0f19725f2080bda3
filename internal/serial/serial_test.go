package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPort_transferCompletesAndInterrupts(t *testing.T) {
	p := New()
	fired := false
	p.InterruptRequest = func() { fired = true }

	p.Write(0x01, 0x55)
	p.Write(0x02, 0x81) // start bit + internal clock

	p.Tick(bytesTransferCycles - 1)
	assert.False(t, fired)

	p.Tick(1)
	assert.True(t, fired)
	assert.Equal(t, uint8(0xFF), p.Read(0x01))
	assert.Equal(t, uint8(0), p.Read(0x02)&0x80)
}

func TestPort_writeWithoutStartBitDoesNotTransfer(t *testing.T) {
	p := New()
	p.Write(0x02, 0x01) // internal clock but no start bit
	assert.False(t, p.active)
}
