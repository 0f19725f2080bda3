package video

import "github.com/vireo-go/gbcore/internal/addr"

// Read services the $8000-$9FFF VRAM window, $FE00-$FE9F OAM, and every
// LCD/CGB-video register the bus routes here.
func (p *PPU) Read(address uint16) byte {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		return p.vram[p.vramBank][address-0x8000]
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		return p.oam[address-addr.OAMStart]
	}

	switch address {
	case addr.LCDC:
		return p.lcdc
	case addr.STAT:
		return p.stat | 0x80
	case addr.SCY:
		return p.scy
	case addr.SCX:
		return p.scx
	case addr.LY:
		return p.ly
	case addr.LYC:
		return p.lyc
	case addr.BGP:
		return p.bgp
	case addr.OBP0:
		return p.obp0
	case addr.OBP1:
		return p.obp1
	case addr.WY:
		return p.wy
	case addr.WX:
		return p.wx
	case addr.KEY1:
		return p.key1
	case addr.VBK:
		return byte(p.vramBank) | 0xFE
	case addr.BOOT:
		return p.boot
	case addr.BCPS:
		return p.bgPalette.readSpec()
	case addr.BCPD:
		return p.bgPalette.readData()
	case addr.OCPS:
		return p.objPalette.readSpec()
	case addr.OCPD:
		return p.objPalette.readData()
	default:
		return 0xFF
	}
}

func (p *PPU) Write(address uint16, value byte) {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		p.vram[p.vramBank][address-0x8000] = value
		return
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		p.oam[address-addr.OAMStart] = value
		return
	}

	switch address {
	case addr.LCDC:
		wasEnabled := p.lcdc&(1<<lcdcDisplayEnable) != 0
		p.lcdc = value
		nowEnabled := p.lcdc&(1<<lcdcDisplayEnable) != 0
		if wasEnabled && !nowEnabled {
			p.setMode(ModeHBlank)
			p.cycles = 0
			p.setLY(0)
		} else if !wasEnabled && nowEnabled {
			p.setMode(ModeOAM)
			p.cycles = 0
			p.setLY(0)
			p.windowLine = 0
		}
	case addr.STAT:
		p.stat = p.stat&0x07 | value&0x78
	case addr.SCY:
		p.scy = value
	case addr.SCX:
		p.scx = value
	case addr.LY:
		// read-only
	case addr.LYC:
		p.lyc = value
		p.setLY(int(p.ly))
	case addr.BGP:
		p.bgp = value
	case addr.OBP0:
		p.obp0 = value
	case addr.OBP1:
		p.obp1 = value
	case addr.WY:
		p.wy = value
	case addr.WX:
		p.wx = value
	case addr.KEY1:
		p.key1 = value
	case addr.VBK:
		if p.cgb {
			p.vramBank = int(value & 0x01)
		}
	case addr.BOOT:
		p.boot = value
	case addr.BCPS:
		p.bgPalette.writeSpec(value)
	case addr.BCPD:
		if p.cgb {
			p.bgPalette.writeData(value)
		}
	case addr.OCPS:
		p.objPalette.writeSpec(value)
	case addr.OCPD:
		if p.cgb {
			p.objPalette.writeData(value)
		}
	}
}

// WriteVRAMBank writes directly into a specific VRAM bank, regardless of
// which bank VBK currently selects.
func (p *PPU) WriteVRAMBank(bank int, offset uint16, value byte) {
	p.vram[bank&0x01][offset] = value
}

// ReadVRAMBank reads directly from a specific VRAM bank.
func (p *PPU) ReadVRAMBank(bank int, offset uint16) byte {
	return p.vram[bank&0x01][offset]
}

// Mode exposes the current PPU mode (for the bus's OAM/VRAM access
// restriction bookkeeping, if ever added, and for tests).
func (p *PPU) Mode() Mode { return p.mode }

// LY exposes the current scanline for tests.
func (p *PPU) LY() uint8 { return p.ly }
