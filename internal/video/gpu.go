package video

import "github.com/vireo-go/gbcore/internal/addr"

// Mode is the PPU's current scanline stage; the numeric values match
// STAT bits 1-0.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeVRAM   Mode = 3
)

const (
	oamCycles   = 80
	vramCycles  = 172
	hblankCycles = 204
	lineCycles  = oamCycles + vramCycles + hblankCycles // 456
)

// lcdc bit positions
const (
	lcdcDisplayEnable    = 7
	lcdcWindowTileMap    = 6
	lcdcWindowEnable     = 5
	lcdcBGWindowTileData = 4
	lcdcBGTileMap        = 3
	lcdcObjSize          = 2
	lcdcObjEnable        = 1
	lcdcBGEnable         = 0
)

// stat bit positions
const (
	statLYCInterrupt    = 6
	statOAMInterrupt    = 5
	statVBlankInterrupt = 4
	statHBlankInterrupt = 3
	statCoincidence     = 2
)

// PPU owns VRAM, OAM, every LCD register, and the per-pixel priority
// side-buffer, and drives the four-mode scanline state machine.
type PPU struct {
	vram     [2][0x2000]byte
	oam      [160]byte
	vramBank int

	lcdc, stat, scy, scx, ly, lyc, wy, wx byte
	bgp, obp0, obp1                       byte
	key1, boot                            byte

	bgPalette  paletteRAM
	objPalette paletteRAM

	cgb bool

	mode       Mode
	cycles     int
	windowLine int

	frame    *FrameBuffer
	prevFrame *FrameBuffer

	// bgColorZero[x] / bgPriority[x] hold the background-mixing side
	// channel for the line currently being (or just) rendered: whether
	// the BG pixel was color index 0, and whether its attribute priority
	// bit was set (CGB only).
	bgColorZero [Width]bool
	bgPriority  [Width]bool

	RequestInterrupt func(addr.Interrupt)
}

// New creates a PPU. cgb selects CGB palette/priority rules; a DMG PPU
// still exposes the CGB registers (harmlessly ignored) so a CGB-aware
// cartridge running in DMG-compat mode can't crash the bus.
func New(cgb bool) *PPU {
	return &PPU{
		cgb:   cgb,
		frame: NewFrameBuffer(),
		mode:  ModeOAM,
	}
}

// FrameBuffer returns the most recently completed frame.
func (p *PPU) FrameBuffer() *FrameBuffer {
	if p.prevFrame != nil {
		return p.prevFrame
	}
	return p.frame
}

// Tick advances the PPU state machine by cycles T-cycles.
func (p *PPU) Tick(cycles int) {
	if p.lcdc&(1<<lcdcDisplayEnable) == 0 {
		return
	}

	p.cycles += cycles
	for p.cycles >= p.modeLength() {
		p.cycles -= p.modeLength()
		p.advanceMode()
	}
}

func (p *PPU) modeLength() int {
	switch p.mode {
	case ModeOAM:
		return oamCycles
	case ModeVRAM:
		return vramCycles
	case ModeHBlank:
		return hblankCycles
	default:
		return lineCycles // one full line per V-blank scanline
	}
}

func (p *PPU) advanceMode() {
	switch p.mode {
	case ModeOAM:
		p.setMode(ModeVRAM)
		p.renderLine()
	case ModeVRAM:
		p.setMode(ModeHBlank)
		if p.stat&(1<<statHBlankInterrupt) != 0 {
			p.raise(addr.LCDSTATInterrupt)
		}
	case ModeHBlank:
		p.setLY(int(p.ly) + 1)
		if int(p.ly) == Height {
			p.setMode(ModeVBlank)
			p.windowLine = 0
			p.prevFrame = p.frame
			p.frame = NewFrameBuffer()
			p.raise(addr.VBlankInterrupt)
			if p.stat&(1<<statVBlankInterrupt) != 0 {
				p.raise(addr.LCDSTATInterrupt)
			}
		} else {
			p.setMode(ModeOAM)
			if p.stat&(1<<statOAMInterrupt) != 0 {
				p.raise(addr.LCDSTATInterrupt)
			}
		}
	case ModeVBlank:
		p.setLY(int(p.ly) + 1)
		if int(p.ly) > 153 {
			p.setLY(0)
			p.setMode(ModeOAM)
			if p.stat&(1<<statOAMInterrupt) != 0 {
				p.raise(addr.LCDSTATInterrupt)
			}
		}
	}
}

func (p *PPU) setMode(m Mode) {
	p.mode = m
	p.stat = p.stat&0xFC | byte(m)
}

func (p *PPU) setLY(line int) {
	p.ly = byte(line)
	if p.ly == p.lyc {
		p.stat |= 1 << statCoincidence
		if p.stat&(1<<statLYCInterrupt) != 0 {
			p.raise(addr.LCDSTATInterrupt)
		}
	} else {
		p.stat &^= 1 << statCoincidence
	}
}

func (p *PPU) raise(irq addr.Interrupt) {
	if p.RequestInterrupt != nil {
		p.RequestInterrupt(irq)
	}
}

// renderLine draws the background, window, and sprite layers for the
// current LY into the in-progress frame.
func (p *PPU) renderLine() {
	line := int(p.ly)
	for x := 0; x < Width; x++ {
		p.bgColorZero[x] = true
		p.bgPriority[x] = false
	}

	if p.lcdc&(1<<lcdcBGEnable) != 0 || p.cgb {
		p.drawBackground(line)
	} else {
		for x := 0; x < Width; x++ {
			p.frame.setRGBA(x, line, 255, 255, 255, 255)
		}
	}

	if p.lcdc&(1<<lcdcWindowEnable) != 0 && int(p.wy) <= line && p.wx > 0 && p.wx < 167 {
		p.drawWindow(line)
	}

	if p.lcdc&(1<<lcdcObjEnable) != 0 {
		p.drawSprites(line)
	}
}
