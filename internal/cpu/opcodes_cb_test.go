package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCB_rotateOnRegisterCostsEight(t *testing.T) {
	bus := newMemBus()
	c := New(bus)
	c.pc = 0xC000
	c.b = 0x80
	bus.mem[0xC000] = 0xCB
	bus.mem[0xC001] = 0x00 // RLC B

	spent := c.Step()

	assert.Equal(t, uint8(0x01), c.b)
	assert.Equal(t, 8, spent)
}

func TestCB_rotateOnHLIndirectCostsSixteen(t *testing.T) {
	bus := newMemBus()
	c := New(bus)
	c.pc = 0xC000
	c.setHL(0xC100)
	bus.mem[0xC100] = 0x80
	bus.mem[0xC000] = 0xCB
	bus.mem[0xC001] = 0x06 // RLC (HL)

	spent := c.Step()

	assert.Equal(t, uint8(0x01), bus.mem[0xC100])
	assert.Equal(t, 16, spent)
}

func TestCB_bitOnHLIndirectCostsTwelve(t *testing.T) {
	bus := newMemBus()
	c := New(bus)
	c.pc = 0xC000
	c.setHL(0xC100)
	bus.mem[0xC100] = 0x00
	bus.mem[0xC000] = 0xCB
	bus.mem[0xC001] = 0x46 // BIT 0,(HL)

	spent := c.Step()

	assert.Equal(t, 12, spent)
	assert.True(t, c.flagSet(flagZ))
}

func TestCB_resOnHLIndirectCostsSixteen(t *testing.T) {
	bus := newMemBus()
	c := New(bus)
	c.pc = 0xC000
	c.setHL(0xC100)
	bus.mem[0xC100] = 0xFF
	bus.mem[0xC000] = 0xCB
	bus.mem[0xC001] = 0x86 // RES 0,(HL)

	spent := c.Step()

	assert.Equal(t, uint8(0xFE), bus.mem[0xC100])
	assert.Equal(t, 16, spent)
}

func TestCB_setOnHLIndirectCostsSixteen(t *testing.T) {
	bus := newMemBus()
	c := New(bus)
	c.pc = 0xC000
	c.setHL(0xC100)
	bus.mem[0xC100] = 0x00
	bus.mem[0xC000] = 0xCB
	bus.mem[0xC001] = 0xC6 // SET 0,(HL)

	spent := c.Step()

	assert.Equal(t, uint8(0x01), bus.mem[0xC100])
	assert.Equal(t, 16, spent)
}
