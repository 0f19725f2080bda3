package cpu

import "github.com/vireo-go/gbcore/internal/bitutil"

// buildCBMap fills in all 256 $CB-prefixed opcodes. The encoding is
// regular: bits 2-0 select one of B,C,D,E,H,L,(HL),A; for the rotate/
// shift block (0x00-0x3F) bits 5-3 select the operation; for BIT/RES/SET
// (0x40-0xFF) bits 5-3 select the bit index and the top two bits select
// the operation.
func buildCBMap() {
	shiftOps := [8]func(*CPU, uint8) uint8{
		(*CPU).rlc,
		(*CPU).rrc,
		(*CPU).rl,
		(*CPU).rr,
		(*CPU).sla,
		(*CPU).sra,
		(*CPU).swap,
		(*CPU).srl,
	}

	for opcode := 0; opcode < 256; opcode++ {
		op := uint8(opcode)
		r := reg8(op & 0x07)
		group := op >> 6
		sub := (op >> 3) & 0x07

		switch group {
		case 0:
			shiftFn := shiftOps[sub]
			cbOpcodeMap[op] = func(c *CPU) int {
				c.setR(r, shiftFn(c, c.getR(r)))
				return regCost(r, 8)
			}
		case 1: // BIT b,r
			bitIdx := sub
			cbOpcodeMap[op] = func(c *CPU) int {
				c.bit(bitIdx, c.getR(r))
				if r == regHLInd {
					return 12
				}
				return 8
			}
		case 2: // RES b,r
			bitIdx := sub
			cbOpcodeMap[op] = func(c *CPU) int {
				c.setR(r, bitutil.Reset(bitIdx, c.getR(r)))
				return regCost(r, 8)
			}
		default: // SET b,r
			bitIdx := sub
			cbOpcodeMap[op] = func(c *CPU) int {
				c.setR(r, bitutil.Set(bitIdx, c.getR(r)))
				return regCost(r, 8)
			}
		}
	}
}
