// Package cpu implements the Sharp LR35902 fetch-decode-execute loop:
// the instruction set, flag semantics, and interrupt/HALT handling.
package cpu

import (
	"fmt"
	"os"

	"github.com/vireo-go/gbcore/internal/addr"
)

// Bus is the minimal memory-mapped interface the CPU needs. The concrete
// implementation (internal/bus.Bus) also fans cycles out to the other
// peripherals, but the CPU only ever reads and writes bytes through it.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU holds the Sharp LR35902 register file and the state the step loop
// needs: the IME latch, the EI-delay, and HALT/STOP bookkeeping.
type CPU struct {
	bus Bus

	a, b, c, d, e, h, l, f uint8
	sp, pc                 uint16

	interruptsEnabled bool // IME
	eiPending         bool // EI takes effect after the next instruction
	halted            bool
	haltBug           bool // next fetch doesn't advance PC (HALT with IME=0, interrupt pending)

	currentOpcode uint16
	cycles        uint64 // total T-cycles executed, for tests/telemetry
}

// New creates a CPU wired to bus, with registers and PC at their
// power-on-with-boot-ROM-skipped values for a DMG console. Callers that
// need the CGB power-on values, or need to run the boot ROM from $0000,
// should call ResetCGB or ResetBoot explicitly afterwards.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.ResetDMG()
	return c
}

// ResetDMG sets the post-boot-ROM register state for a DMG cartridge
// whose header byte at $0143 is not a CGB flag (end-to-end scenario 1).
func (c *CPU) ResetDMG() {
	c.setAF(0x01B0)
	c.setBC(0x0013)
	c.setDE(0x00D8)
	c.setHL(0x014D)
	c.sp = 0xFFFE
	c.pc = 0x0100
	c.interruptsEnabled = false
	c.eiPending = false
	c.halted = false
	c.haltBug = false
}

// ResetCGB sets the post-boot-ROM register state for a cartridge whose
// header CGB flag is $80 or $C0 (end-to-end scenario 2).
func (c *CPU) ResetCGB() {
	c.setAF(0x1180)
	c.setBC(0x0100)
	c.setDE(0xFF56)
	c.setHL(0x000D)
	c.sp = 0xFFFE
	c.pc = 0x0100
	c.interruptsEnabled = false
	c.eiPending = false
	c.halted = false
	c.haltBug = false
}

// ResetBoot sets PC to $0000 so execution starts from an overlaid boot ROM.
func (c *CPU) ResetBoot() {
	c.setAF(0)
	c.setBC(0)
	c.setDE(0)
	c.setHL(0)
	c.sp = 0
	c.pc = 0x0000
	c.interruptsEnabled = false
	c.eiPending = false
	c.halted = false
	c.haltBug = false
}

func (c *CPU) GetPC() uint16 { return c.pc }
func (c *CPU) SetPC(v uint16) { c.pc = v }
func (c *CPU) GetSP() uint16 { return c.sp }
func (c *CPU) Cycles() uint64 { return c.cycles }
func (c *CPU) Halted() bool   { return c.halted }
func (c *CPU) IME() bool      { return c.interruptsEnabled }

// Step fetches and executes one instruction (servicing the CB prefix
// transparently), applies the pending EI delay, services at most one
// interrupt, and returns the total T-cycles spent.
func (c *CPU) Step() int {
	c.checkSerialOutput()

	if c.halted {
		if !c.interruptPending() {
			c.cycles += 4
			return 4
		}
		c.halted = false
		if !c.interruptsEnabled {
			c.haltBug = true
		}
	}

	wasEIPending := c.eiPending

	var spent int
	if c.haltBug {
		// HALT bug: the opcode fetch doesn't advance PC, so the following
		// instruction effectively re-reads (part of) this one.
		opcode := uint16(c.bus.Read(c.pc))
		if opcode == 0xCB {
			opcode = 0xCB00 | uint16(c.bus.Read(c.pc+1))
		}
		c.currentOpcode = opcode
		spent = decode(opcode)(c)
		c.haltBug = false
	} else {
		spent = c.execute()
	}

	if wasEIPending {
		c.eiPending = false
		c.interruptsEnabled = true
	}

	spent += c.dispatchInterrupt()

	c.cycles += uint64(spent)
	return spent
}

// execute fetches one opcode (reading the CB-prefixed sub-opcode if
// applicable), advances PC past it, and runs the decoded handler.
func (c *CPU) execute() int {
	opcode := uint16(c.fetch8())
	if opcode == 0xCB {
		opcode = 0xCB00 | uint16(c.fetch8())
	}
	c.currentOpcode = opcode
	return decode(opcode)(c)
}

func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.pc)
	c.pc++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

// interruptPending reports whether any enabled interrupt is flagged.
func (c *CPU) interruptPending() bool {
	ie := c.bus.Read(addr.IE)
	iflag := c.bus.Read(addr.IF)
	return (ie & iflag & 0x1F) != 0
}

// dispatchInterrupt services at most one pending interrupt if IME is set.
// Returns the 12 extra T-cycles the dispatch costs on top of whatever
// instruction Step already executed, or 0 if nothing was dispatched.
func (c *CPU) dispatchInterrupt() int {
	if !c.interruptsEnabled || !c.interruptPending() {
		return 0
	}

	ie := c.bus.Read(addr.IE)
	iflag := c.bus.Read(addr.IF)

	for _, irq := range addr.PriorityOrder {
		bit := uint8(irq)
		if ie&bit == 0 || iflag&bit == 0 {
			continue
		}

		c.interruptsEnabled = false
		c.bus.Write(addr.IF, iflag&^bit)
		c.pushStack(c.pc)
		c.pc = addr.InterruptVector[irq]
		return 12
	}

	return 0
}

// checkSerialOutput implements the test-ROM stdout side-effect: a
// transfer marked started+internal-clock ($81) on SC is immediately
// "completed", emitting SB to stdout.
func (c *CPU) checkSerialOutput() {
	if c.bus.Read(addr.SC) == 0x81 {
		fmt.Fprintf(os.Stdout, "%c", c.bus.Read(addr.SB))
		c.bus.Write(addr.SC, 0x00)
	}
}
