package cpu

import "fmt"

func illegalOpcode(op uint8) Opcode {
	return func(c *CPU) int {
		panic(fmt.Sprintf("illegal opcode 0x%02X at PC=0x%04X", op, c.pc-1))
	}
}

// --- control-flow helpers -------------------------------------------------

func (c *CPU) jr(taken bool) int {
	offset := int8(c.fetch8())
	if taken {
		c.pc = uint16(int32(c.pc) + int32(offset))
		return 12
	}
	return 8
}

func (c *CPU) jp(taken bool) int {
	target := c.fetch16()
	if taken {
		c.pc = target
		return 16
	}
	return 12
}

func (c *CPU) call(taken bool) int {
	target := c.fetch16()
	if taken {
		c.pushStack(c.pc)
		c.pc = target
		return 24
	}
	return 12
}

func (c *CPU) ret(taken bool) int {
	if taken {
		c.pc = c.popStack()
		return 20
	}
	return 8
}

func (c *CPU) rst(target uint16) int {
	c.pushStack(c.pc)
	c.pc = target
	return 16
}

// buildOpcodeMap fills in all 256 unprefixed opcodes (245 defined, 11
// illegal on real hardware).
func buildOpcodeMap() {
	for i := range opcodeMap {
		opcodeMap[i] = illegalOpcode(uint8(i))
	}

	opcodeMap[0x00] = func(c *CPU) int { return 4 } // NOP
	opcodeMap[0x01] = func(c *CPU) int { c.setBC(c.fetch16()); return 12 }
	opcodeMap[0x02] = func(c *CPU) int { c.bus.Write(c.getBC(), c.a); return 8 }
	opcodeMap[0x03] = func(c *CPU) int { c.setBC(c.getBC() + 1); return 8 }
	opcodeMap[0x04] = func(c *CPU) int { c.b = c.inc8(c.b); return 4 }
	opcodeMap[0x05] = func(c *CPU) int { c.b = c.dec8(c.b); return 4 }
	opcodeMap[0x06] = func(c *CPU) int { c.b = c.fetch8(); return 8 }
	opcodeMap[0x07] = func(c *CPU) int { c.a = c.rlc(c.a); c.setFlag(flagZ, false); return 4 }
	opcodeMap[0x08] = func(c *CPU) int {
		a := c.fetch16()
		c.bus.Write(a, uint8(c.sp))
		c.bus.Write(a+1, uint8(c.sp>>8))
		return 20
	}
	opcodeMap[0x09] = func(c *CPU) int { c.addToHL(c.getBC()); return 8 }
	opcodeMap[0x0A] = func(c *CPU) int { c.a = c.bus.Read(c.getBC()); return 8 }
	opcodeMap[0x0B] = func(c *CPU) int { c.setBC(c.getBC() - 1); return 8 }
	opcodeMap[0x0C] = func(c *CPU) int { c.c = c.inc8(c.c); return 4 }
	opcodeMap[0x0D] = func(c *CPU) int { c.c = c.dec8(c.c); return 4 }
	opcodeMap[0x0E] = func(c *CPU) int { c.c = c.fetch8(); return 8 }
	opcodeMap[0x0F] = func(c *CPU) int { c.a = c.rrc(c.a); c.setFlag(flagZ, false); return 4 }

	opcodeMap[0x10] = func(c *CPU) int { return 4 } // STOP (no speed-switch support)
	opcodeMap[0x11] = func(c *CPU) int { c.setDE(c.fetch16()); return 12 }
	opcodeMap[0x12] = func(c *CPU) int { c.bus.Write(c.getDE(), c.a); return 8 }
	opcodeMap[0x13] = func(c *CPU) int { c.setDE(c.getDE() + 1); return 8 }
	opcodeMap[0x14] = func(c *CPU) int { c.d = c.inc8(c.d); return 4 }
	opcodeMap[0x15] = func(c *CPU) int { c.d = c.dec8(c.d); return 4 }
	opcodeMap[0x16] = func(c *CPU) int { c.d = c.fetch8(); return 8 }
	opcodeMap[0x17] = func(c *CPU) int { c.a = c.rl(c.a); c.setFlag(flagZ, false); return 4 }
	opcodeMap[0x18] = func(c *CPU) int { return c.jr(true) }
	opcodeMap[0x19] = func(c *CPU) int { c.addToHL(c.getDE()); return 8 }
	opcodeMap[0x1A] = func(c *CPU) int { c.a = c.bus.Read(c.getDE()); return 8 }
	opcodeMap[0x1B] = func(c *CPU) int { c.setDE(c.getDE() - 1); return 8 }
	opcodeMap[0x1C] = func(c *CPU) int { c.e = c.inc8(c.e); return 4 }
	opcodeMap[0x1D] = func(c *CPU) int { c.e = c.dec8(c.e); return 4 }
	opcodeMap[0x1E] = func(c *CPU) int { c.e = c.fetch8(); return 8 }
	opcodeMap[0x1F] = func(c *CPU) int { c.a = c.rr(c.a); c.setFlag(flagZ, false); return 4 }

	opcodeMap[0x20] = func(c *CPU) int { return c.jr(!c.flagSet(flagZ)) }
	opcodeMap[0x21] = func(c *CPU) int { c.setHL(c.fetch16()); return 12 }
	opcodeMap[0x22] = func(c *CPU) int { c.bus.Write(c.getHL(), c.a); c.setHL(c.getHL() + 1); return 8 }
	opcodeMap[0x23] = func(c *CPU) int { c.setHL(c.getHL() + 1); return 8 }
	opcodeMap[0x24] = func(c *CPU) int { c.h = c.inc8(c.h); return 4 }
	opcodeMap[0x25] = func(c *CPU) int { c.h = c.dec8(c.h); return 4 }
	opcodeMap[0x26] = func(c *CPU) int { c.h = c.fetch8(); return 8 }
	opcodeMap[0x27] = func(c *CPU) int { c.daa(); return 4 }
	opcodeMap[0x28] = func(c *CPU) int { return c.jr(c.flagSet(flagZ)) }
	opcodeMap[0x29] = func(c *CPU) int { c.addToHL(c.getHL()); return 8 }
	opcodeMap[0x2A] = func(c *CPU) int { c.a = c.bus.Read(c.getHL()); c.setHL(c.getHL() + 1); return 8 }
	opcodeMap[0x2B] = func(c *CPU) int { c.setHL(c.getHL() - 1); return 8 }
	opcodeMap[0x2C] = func(c *CPU) int { c.l = c.inc8(c.l); return 4 }
	opcodeMap[0x2D] = func(c *CPU) int { c.l = c.dec8(c.l); return 4 }
	opcodeMap[0x2E] = func(c *CPU) int { c.l = c.fetch8(); return 8 }
	opcodeMap[0x2F] = func(c *CPU) int {
		c.a = ^c.a
		c.setFlag(flagN, true)
		c.setFlag(flagH, true)
		return 4
	}

	opcodeMap[0x30] = func(c *CPU) int { return c.jr(!c.flagSet(flagC)) }
	opcodeMap[0x31] = func(c *CPU) int { c.sp = c.fetch16(); return 12 }
	opcodeMap[0x32] = func(c *CPU) int { c.bus.Write(c.getHL(), c.a); c.setHL(c.getHL() - 1); return 8 }
	opcodeMap[0x33] = func(c *CPU) int { c.sp++; return 8 }
	opcodeMap[0x34] = func(c *CPU) int { c.bus.Write(c.getHL(), c.inc8(c.bus.Read(c.getHL()))); return 12 }
	opcodeMap[0x35] = func(c *CPU) int { c.bus.Write(c.getHL(), c.dec8(c.bus.Read(c.getHL()))); return 12 }
	opcodeMap[0x36] = func(c *CPU) int { c.bus.Write(c.getHL(), c.fetch8()); return 12 }
	opcodeMap[0x37] = func(c *CPU) int {
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, true)
		return 4
	}
	opcodeMap[0x38] = func(c *CPU) int { return c.jr(c.flagSet(flagC)) }
	opcodeMap[0x39] = func(c *CPU) int { c.addToHL(c.sp); return 8 }
	opcodeMap[0x3A] = func(c *CPU) int { c.a = c.bus.Read(c.getHL()); c.setHL(c.getHL() - 1); return 8 }
	opcodeMap[0x3B] = func(c *CPU) int { c.sp--; return 8 }
	opcodeMap[0x3C] = func(c *CPU) int { c.a = c.inc8(c.a); return 4 }
	opcodeMap[0x3D] = func(c *CPU) int { c.a = c.dec8(c.a); return 4 }
	opcodeMap[0x3E] = func(c *CPU) int { c.a = c.fetch8(); return 8 }
	opcodeMap[0x3F] = func(c *CPU) int {
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, !c.flagSet(flagC))
		return 4
	}

	buildLoadBlock()
	buildALUBlock()

	opcodeMap[0xC0] = func(c *CPU) int { return c.ret(!c.flagSet(flagZ)) }
	opcodeMap[0xC1] = func(c *CPU) int { c.setBC(c.popStack()); return 12 }
	opcodeMap[0xC2] = func(c *CPU) int { return c.jp(!c.flagSet(flagZ)) }
	opcodeMap[0xC3] = func(c *CPU) int { return c.jp(true) }
	opcodeMap[0xC4] = func(c *CPU) int { return c.call(!c.flagSet(flagZ)) }
	opcodeMap[0xC5] = func(c *CPU) int { c.pushStack(c.getBC()); return 16 }
	opcodeMap[0xC6] = func(c *CPU) int { c.addToA(c.fetch8()); return 8 }
	opcodeMap[0xC7] = func(c *CPU) int { return c.rst(0x00) }
	opcodeMap[0xC8] = func(c *CPU) int { return c.ret(c.flagSet(flagZ)) }
	opcodeMap[0xC9] = func(c *CPU) int { c.pc = c.popStack(); return 16 }
	opcodeMap[0xCA] = func(c *CPU) int { return c.jp(c.flagSet(flagZ)) }
	opcodeMap[0xCC] = func(c *CPU) int { return c.call(c.flagSet(flagZ)) }
	opcodeMap[0xCD] = func(c *CPU) int { return c.call(true) }
	opcodeMap[0xCE] = func(c *CPU) int { c.adcToA(c.fetch8()); return 8 }
	opcodeMap[0xCF] = func(c *CPU) int { return c.rst(0x08) }

	opcodeMap[0xD0] = func(c *CPU) int { return c.ret(!c.flagSet(flagC)) }
	opcodeMap[0xD1] = func(c *CPU) int { c.setDE(c.popStack()); return 12 }
	opcodeMap[0xD2] = func(c *CPU) int { return c.jp(!c.flagSet(flagC)) }
	opcodeMap[0xD4] = func(c *CPU) int { return c.call(!c.flagSet(flagC)) }
	opcodeMap[0xD5] = func(c *CPU) int { c.pushStack(c.getDE()); return 16 }
	opcodeMap[0xD6] = func(c *CPU) int { c.sub(c.fetch8()); return 8 }
	opcodeMap[0xD7] = func(c *CPU) int { return c.rst(0x10) }
	opcodeMap[0xD8] = func(c *CPU) int { return c.ret(c.flagSet(flagC)) }
	opcodeMap[0xD9] = func(c *CPU) int { c.pc = c.popStack(); c.interruptsEnabled = true; c.eiPending = false; return 16 }
	opcodeMap[0xDA] = func(c *CPU) int { return c.jp(c.flagSet(flagC)) }
	opcodeMap[0xDC] = func(c *CPU) int { return c.call(c.flagSet(flagC)) }
	opcodeMap[0xDE] = func(c *CPU) int { c.sbc(c.fetch8()); return 8 }
	opcodeMap[0xDF] = func(c *CPU) int { return c.rst(0x18) }

	opcodeMap[0xE0] = func(c *CPU) int { c.bus.Write(0xFF00+uint16(c.fetch8()), c.a); return 12 }
	opcodeMap[0xE1] = func(c *CPU) int { c.setHL(c.popStack()); return 12 }
	opcodeMap[0xE2] = func(c *CPU) int { c.bus.Write(0xFF00+uint16(c.c), c.a); return 8 }
	opcodeMap[0xE5] = func(c *CPU) int { c.pushStack(c.getHL()); return 16 }
	opcodeMap[0xE6] = func(c *CPU) int { c.and(c.fetch8()); return 8 }
	opcodeMap[0xE7] = func(c *CPU) int { return c.rst(0x20) }
	opcodeMap[0xE8] = func(c *CPU) int {
		offset := int8(c.fetch8())
		c.sp = c.addToSPRelative(c.sp, offset)
		return 16
	}
	opcodeMap[0xE9] = func(c *CPU) int { c.pc = c.getHL(); return 4 }
	opcodeMap[0xEA] = func(c *CPU) int { c.bus.Write(c.fetch16(), c.a); return 16 }
	opcodeMap[0xEE] = func(c *CPU) int { c.xor(c.fetch8()); return 8 }
	opcodeMap[0xEF] = func(c *CPU) int { return c.rst(0x28) }

	opcodeMap[0xF0] = func(c *CPU) int { c.a = c.bus.Read(0xFF00 + uint16(c.fetch8())); return 12 }
	opcodeMap[0xF1] = func(c *CPU) int { c.setAF(c.popStack() & 0xFFF0); return 12 }
	opcodeMap[0xF2] = func(c *CPU) int { c.a = c.bus.Read(0xFF00 + uint16(c.c)); return 8 }
	opcodeMap[0xF3] = func(c *CPU) int { c.interruptsEnabled = false; c.eiPending = false; return 4 }
	opcodeMap[0xF5] = func(c *CPU) int { c.pushStack(c.getAF()); return 16 }
	opcodeMap[0xF6] = func(c *CPU) int { c.or(c.fetch8()); return 8 }
	opcodeMap[0xF7] = func(c *CPU) int { return c.rst(0x30) }
	opcodeMap[0xF8] = func(c *CPU) int {
		offset := int8(c.fetch8())
		c.setHL(c.addToSPRelative(c.sp, offset))
		return 12
	}
	opcodeMap[0xF9] = func(c *CPU) int { c.sp = c.getHL(); return 8 }
	opcodeMap[0xFA] = func(c *CPU) int { c.a = c.bus.Read(c.fetch16()); return 16 }
	opcodeMap[0xFB] = func(c *CPU) int { c.eiPending = true; return 4 }
	opcodeMap[0xFE] = func(c *CPU) int { c.cp(c.fetch8()); return 8 }
	opcodeMap[0xFF] = func(c *CPU) int { return c.rst(0x38) }
}

// buildLoadBlock fills in the 0x40-0x7F LD r,r' grid (0x76 is HALT).
func buildLoadBlock() {
	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			opcodeMap[op] = func(c *CPU) int {
				c.halted = true
				return 4
			}
			continue
		}
		dst := reg8((op >> 3) & 0x07)
		src := reg8(op & 0x07)
		// Either operand touching (HL) costs 8 total, never both.
		cost := 4
		if dst == regHLInd || src == regHLInd {
			cost = 8
		}
		opcodeMap[op] = func(c *CPU) int {
			c.setR(dst, c.getR(src))
			return cost
		}
	}
}

// buildALUBlock fills in the 0x80-0xBF ALU A,r grid.
func buildALUBlock() {
	ops := [8]func(*CPU, uint8){
		(*CPU).addToA,
		(*CPU).adcToA,
		(*CPU).sub,
		(*CPU).sbc,
		(*CPU).and,
		(*CPU).xor,
		(*CPU).or,
		(*CPU).cp,
	}
	for op := 0x80; op <= 0xBF; op++ {
		fn := ops[(op>>3)&0x07]
		r := reg8(op & 0x07)
		cost := 4
		if r == regHLInd {
			cost = 8
		}
		opcodeMap[op] = func(c *CPU) int {
			fn(c, c.getR(r))
			return cost
		}
	}
}
