package cpu

import "github.com/vireo-go/gbcore/internal/bitutil"

func (c *CPU) pushStack(v uint16) {
	c.sp--
	c.bus.Write(c.sp, bitutil.High(v))
	c.sp--
	c.bus.Write(c.sp, bitutil.Low(v))
}

func (c *CPU) popStack() uint16 {
	lo := c.bus.Read(c.sp)
	c.sp++
	hi := c.bus.Read(c.sp)
	c.sp++
	return bitutil.Combine(hi, lo)
}

// inc8 implements INC r: Z,N=0,H set on low-nibble carry; C unchanged.
func (c *CPU) inc8(v uint8) uint8 {
	result := v + 1
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, (v&0x0F)+1 > 0x0F)
	return result
}

// dec8 implements DEC r: Z,N=1,H set on low-nibble borrow; C unchanged.
func (c *CPU) dec8(v uint8) uint8 {
	result := v - 1
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, true)
	c.setFlag(flagH, v&0x0F == 0)
	return result
}

func (c *CPU) addToA(v uint8) {
	a := c.a
	result := a + v
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, (a&0x0F)+(v&0x0F) > 0x0F)
	c.setFlag(flagC, uint16(a)+uint16(v) > 0xFF)
	c.a = result
}

func (c *CPU) adcToA(v uint8) {
	a := c.a
	carry := uint8(0)
	if c.flagSet(flagC) {
		carry = 1
	}
	result := a + v + carry
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, (a&0x0F)+(v&0x0F)+carry > 0x0F)
	c.setFlag(flagC, uint16(a)+uint16(v)+uint16(carry) > 0xFF)
	c.a = result
}

func (c *CPU) addToHL(v uint16) {
	hl := c.getHL()
	result := hl + v
	c.setFlag(flagN, false)
	c.setFlag(flagH, (hl&0x0FFF)+(v&0x0FFF) > 0x0FFF)
	c.setFlag(flagC, uint32(hl)+uint32(v) > 0xFFFF)
	c.setHL(result)
}

// addToSPRelative implements both ADD SP,i8 and the SP-relative half of
// LD HL,SP+i8: flags computed as an 8-bit add against SP's low byte,
// despite the arithmetic being over 16 bits.
func (c *CPU) addToSPRelative(base uint16, offset int8) uint16 {
	lo := uint8(base)
	o := uint8(offset)
	c.setFlag(flagZ, false)
	c.setFlag(flagN, false)
	c.setFlag(flagH, (lo&0x0F)+(o&0x0F) > 0x0F)
	c.setFlag(flagC, uint16(lo)+uint16(o) > 0xFF)
	return uint16(int32(base) + int32(offset))
}

func (c *CPU) sub(v uint8) {
	a := c.a
	result := a - v
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, true)
	c.setFlag(flagH, a&0x0F < v&0x0F)
	c.setFlag(flagC, v > a)
	c.a = result
}

func (c *CPU) sbc(v uint8) {
	a := c.a
	carry := uint8(0)
	if c.flagSet(flagC) {
		carry = 1
	}
	result := a - v - carry
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, true)
	c.setFlag(flagH, int(a&0x0F)-int(v&0x0F)-int(carry) < 0)
	c.setFlag(flagC, int(a)-int(v)-int(carry) < 0)
	c.a = result
}

// cp compares v against A like sub, but discards the result.
func (c *CPU) cp(v uint8) {
	a := c.a
	c.sub(v)
	c.a = a
}

func (c *CPU) and(v uint8) {
	c.a &= v
	c.setFlag(flagZ, c.a == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, true)
	c.setFlag(flagC, false)
}

func (c *CPU) or(v uint8) {
	c.a |= v
	c.setFlag(flagZ, c.a == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, false)
}

func (c *CPU) xor(v uint8) {
	c.a ^= v
	c.setFlag(flagZ, c.a == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, false)
}

// rlc rotates v left, bit 7 into carry and bit 0.
func (c *CPU) rlc(v uint8) uint8 {
	carry := v>>7 != 0
	result := v<<1 | v>>7
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, carry)
	return result
}

// rl rotates v left through carry.
func (c *CPU) rl(v uint8) uint8 {
	oldCarry := uint8(0)
	if c.flagSet(flagC) {
		oldCarry = 1
	}
	newCarry := v>>7 != 0
	result := v<<1 | oldCarry
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, newCarry)
	return result
}

// rrc rotates v right, bit 0 into carry and bit 7.
func (c *CPU) rrc(v uint8) uint8 {
	carry := v&1 != 0
	result := v>>1 | v<<7
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, carry)
	return result
}

// rr rotates v right through carry.
func (c *CPU) rr(v uint8) uint8 {
	oldCarry := uint8(0)
	if c.flagSet(flagC) {
		oldCarry = 0x80
	}
	newCarry := v&1 != 0
	result := v>>1 | oldCarry
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, newCarry)
	return result
}

func (c *CPU) sla(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v << 1
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, carry)
	return result
}

// sra shifts v right, preserving bit 7 (arithmetic shift).
func (c *CPU) sra(v uint8) uint8 {
	carry := v&1 != 0
	result := (v >> 1) | (v & 0x80)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, carry)
	return result
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v&1 != 0
	result := v >> 1
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, carry)
	return result
}

func (c *CPU) swap(v uint8) uint8 {
	result := v<<4 | v>>4
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, false)
	return result
}

func (c *CPU) bit(index uint8, v uint8) {
	c.setFlag(flagZ, !bitutil.IsSet(index, v))
	c.setFlag(flagN, false)
	c.setFlag(flagH, true)
}

// daa packs A into BCD after an ADD/SUB, using N/H/C from the prior op.
func (c *CPU) daa() {
	a := c.a
	correction := uint8(0)
	setC := false

	if c.flagSet(flagN) {
		if c.flagSet(flagH) {
			correction |= 0x06
		}
		if c.flagSet(flagC) {
			correction |= 0x60
		}
		a -= correction
	} else {
		if c.flagSet(flagH) || a&0x0F > 0x09 {
			correction |= 0x06
		}
		if c.flagSet(flagC) || a > 0x99 {
			correction |= 0x60
			setC = true
		}
		a += correction
	}

	c.setFlag(flagZ, a == 0)
	c.setFlag(flagH, false)
	c.setFlag(flagC, setC || c.flagSet(flagC))
	c.a = a
}
