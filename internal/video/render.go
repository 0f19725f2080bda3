package video

func (p *PPU) tileMapBase(useSecondMap bool) uint16 {
	if useSecondMap {
		return 0x9C00
	}
	return 0x9800
}

// tileDataAddr resolves a tile number to its address in VRAM bank 0,
// honoring LCDC bit 4's signed/unsigned addressing modes.
func tileDataAddr(unsigned bool, tileNumber uint8, rowOffset int) uint16 {
	if unsigned {
		return 0x8000 + uint16(tileNumber)*16 + uint16(rowOffset)
	}
	return uint16(int(0x9000) + int(int8(tileNumber))*16 + rowOffset)
}

func (p *PPU) vramRead(bank int, address uint16) byte {
	return p.vram[bank][address-0x8000]
}

// tilePixel decodes the 2-bit color index for column bit (7-x%8) out of a
// tile row's two bitplane bytes, applying an optional horizontal flip.
func tilePixel(low, high byte, col int, flipX bool) uint8 {
	idx := 7 - col
	if flipX {
		idx = col
	}
	pixel := uint8(0)
	if low&(1<<uint(idx)) != 0 {
		pixel |= 1
	}
	if high&(1<<uint(idx)) != 0 {
		pixel |= 2
	}
	return pixel
}

func (p *PPU) drawBackground(line int) {
	unsigned := p.lcdc&(1<<lcdcBGWindowTileData) != 0
	mapBase := p.tileMapBase(p.lcdc&(1<<lcdcBGTileMap) != 0)

	scrolledY := (line + int(p.scy)) & 0xFF
	tileRow := scrolledY / 8
	rowInTile := (scrolledY % 8) * 2

	for x := 0; x < Width; x++ {
		scrolledX := (x + int(p.scx)) & 0xFF
		tileCol := scrolledX / 8
		colInTile := scrolledX % 8

		mapAddr := mapBase + uint16(tileRow*32+tileCol)
		tileNumber := p.vramRead(0, mapAddr)

		attr := byte(0)
		if p.cgb {
			attr = p.vramRead(1, mapAddr)
		}
		bank := 0
		flipX := attr&0x20 != 0
		flipY := attr&0x40 != 0
		palette := attr & 0x07
		priority := attr&0x80 != 0
		if attr&0x08 != 0 {
			bank = 1
		}

		effectiveRow := rowInTile
		if flipY {
			effectiveRow = (7 - scrolledY%8) * 2
		}

		tAddr := tileDataAddr(unsigned, tileNumber, effectiveRow)
		low := p.vramRead(bank, tAddr)
		high := p.vramRead(bank, tAddr+1)
		color := tilePixel(low, high, colInTile, flipX)

		p.bgColorZero[x] = color == 0
		p.bgPriority[x] = priority

		if p.cgb {
			r, g, b := p.bgPalette.color(palette, color)
			p.frame.setRGBA(x, line, r, g, b, 255)
		} else {
			shades := dmgPalette(p.bgp)
			s := dmgShade(shades[color])
			p.frame.setRGBA(x, line, s, s, s, 255)
		}
	}
}

func (p *PPU) drawWindow(line int) {
	wx := int(p.wx) - 7
	mapBase := p.tileMapBase(p.lcdc&(1<<lcdcWindowTileMap) != 0)
	unsigned := p.lcdc&(1<<lcdcBGWindowTileData) != 0

	tileRow := p.windowLine / 8
	rowInTile := (p.windowLine % 8) * 2

	for x := 0; x < Width; x++ {
		col := x - wx
		if col < 0 {
			continue
		}
		tileCol := col / 8
		colInTile := col % 8

		mapAddr := mapBase + uint16(tileRow*32+tileCol)
		tileNumber := p.vramRead(0, mapAddr)

		attr := byte(0)
		if p.cgb {
			attr = p.vramRead(1, mapAddr)
		}
		bank := 0
		flipX := attr&0x20 != 0
		flipY := attr&0x40 != 0
		palette := attr & 0x07
		priority := attr&0x80 != 0
		if attr&0x08 != 0 {
			bank = 1
		}

		effectiveRow := rowInTile
		if flipY {
			effectiveRow = (7 - p.windowLine%8) * 2
		}

		tAddr := tileDataAddr(unsigned, tileNumber, effectiveRow)
		low := p.vramRead(bank, tAddr)
		high := p.vramRead(bank, tAddr+1)
		color := tilePixel(low, high, colInTile, flipX)

		p.bgColorZero[x] = color == 0
		p.bgPriority[x] = priority

		if p.cgb {
			r, g, b := p.bgPalette.color(palette, color)
			p.frame.setRGBA(x, line, r, g, b, 255)
		} else {
			shades := dmgPalette(p.bgp)
			s := dmgShade(shades[color])
			p.frame.setRGBA(x, line, s, s, s, 255)
		}
	}
	p.windowLine++
}

func (p *PPU) drawSprites(line int) {
	height := 8
	if p.lcdc&(1<<lcdcObjSize) != 0 {
		height = 16
	}

	var entries []spriteEntry
	for i := 0; i < 40; i++ {
		base := i * 4
		y := int(p.oam[base]) - 16
		if y > line || y+height <= line {
			continue
		}
		entries = append(entries, spriteEntry{
			oamIndex: i,
			y:        y,
			x:        int(p.oam[base+1]) - 8,
			tile:     p.oam[base+2],
			flags:    p.oam[base+3],
		})
		if len(entries) >= 10 {
			break
		}
	}

	for _, s := range orderForPainting(entries, p.cgb) {
		tile := s.tile
		if height == 16 {
			tile &^= 0x01
		}

		flipX := s.flags&0x20 != 0
		flipY := s.flags&0x40 != 0
		objAboveBG := s.flags&0x80 == 0

		row := line - s.y
		if flipY {
			row = height - 1 - row
		}
		rowOffset := (row % 8) * 2
		if row >= 8 {
			tile++
		}

		bank := 0
		var palette uint8
		var legacyPalette byte
		if p.cgb {
			palette = s.flags & 0x07
			if s.flags&0x08 != 0 {
				bank = 1
			}
		} else {
			legacyPalette = p.obp0
			if s.flags&0x10 != 0 {
				legacyPalette = p.obp1
			}
		}

		tAddr := uint16(0x8000) + uint16(tile)*16 + uint16(rowOffset)
		low := p.vramRead(bank, tAddr)
		high := p.vramRead(bank, tAddr+1)

		for col := 0; col < 8; col++ {
			x := s.x + col
			if x < 0 || x >= Width {
				continue
			}
			color := tilePixel(low, high, col, flipX)
			if color == 0 {
				continue
			}

			if p.cgb {
				bgWins := !p.bgColorZero[x] && p.lcdc&(1<<lcdcBGEnable) != 0 && (p.bgPriority[x] || !objAboveBG)
				if bgWins {
					continue
				}
				r, g, b := p.objPalette.color(palette, color)
				p.frame.setRGBA(x, line, r, g, b, 255)
			} else {
				if !objAboveBG && !p.bgColorZero[x] {
					continue
				}
				shades := dmgPalette(legacyPalette)
				v := dmgShade(shades[color])
				p.frame.setRGBA(x, line, v, v, v, 255)
			}
		}
	}
}
