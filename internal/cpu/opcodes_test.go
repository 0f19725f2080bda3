package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode_jrTaken(t *testing.T) {
	bus := newMemBus()
	c := New(bus)
	c.pc = 0xC000
	bus.mem[0xC000] = 0x18 // JR
	bus.mem[0xC001] = 0x05 // +5

	spent := c.Step()

	assert.Equal(t, uint16(0xC007), c.pc)
	assert.Equal(t, 12, spent)
}

func TestOpcode_jrNotTakenCostsLess(t *testing.T) {
	bus := newMemBus()
	c := New(bus)
	c.pc = 0xC000
	c.setFlag(flagZ, true)
	bus.mem[0xC000] = 0x20 // JR NZ
	bus.mem[0xC001] = 0x05

	spent := c.Step()

	assert.Equal(t, uint16(0xC002), c.pc)
	assert.Equal(t, 8, spent)
}

func TestOpcode_addSPNegativeOneSetsHalfCarryAndCarry(t *testing.T) {
	bus := newMemBus()
	c := New(bus)
	c.pc = 0xC000
	c.sp = 0xFFFF
	bus.mem[0xC000] = 0xE8 // ADD SP,i8
	bus.mem[0xC001] = 0xFF // -1

	c.Step()

	assert.Equal(t, uint16(0xFFFE), c.sp)
	assert.True(t, c.flagSet(flagH))
	assert.True(t, c.flagSet(flagC))
	assert.False(t, c.flagSet(flagZ))
	assert.False(t, c.flagSet(flagN))
}

func TestOpcode_illegalOpcodePanics(t *testing.T) {
	bus := newMemBus()
	c := New(bus)
	c.pc = 0xC000
	bus.mem[0xC000] = 0xD3 // illegal on real hardware

	assert.Panics(t, func() { c.Step() })
}

func TestOpcode_loadBlockHLIndirectCostsEight(t *testing.T) {
	bus := newMemBus()
	c := New(bus)
	c.pc = 0xC000
	c.setHL(0xC100)
	c.b = 0x99
	bus.mem[0xC000] = 0x70 // LD (HL),B

	spent := c.Step()

	assert.Equal(t, uint8(0x99), bus.mem[0xC100])
	assert.Equal(t, 8, spent)
}

func TestOpcode_callAndRetRoundTrip(t *testing.T) {
	bus := newMemBus()
	c := New(bus)
	c.pc = 0xC000
	c.sp = 0xFFFE
	bus.mem[0xC000] = 0xCD // CALL
	bus.mem[0xC001] = 0x00
	bus.mem[0xC002] = 0xD0
	bus.mem[0xD000] = 0xC9 // RET

	c.Step() // CALL
	assert.Equal(t, uint16(0xD000), c.pc)

	c.Step() // RET
	assert.Equal(t, uint16(0xC003), c.pc)
	assert.Equal(t, uint16(0xFFFE), c.sp)
}
