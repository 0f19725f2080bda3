// Package bus implements the MMU: the 16-bit address space's region
// routing, WRAM banking, HRAM, the interrupt flag/enable registers, the
// boot ROM overlay, and the OAM/VRAM DMA engines. It is the concrete type
// behind the cpu.Bus and video/timer/joypad/serial wiring.
package bus

import (
	"github.com/vireo-go/gbcore/internal/addr"
	"github.com/vireo-go/gbcore/internal/cartridge"
	"github.com/vireo-go/gbcore/internal/joypad"
	"github.com/vireo-go/gbcore/internal/serial"
	"github.com/vireo-go/gbcore/internal/timer"
	"github.com/vireo-go/gbcore/internal/video"
)

// Bus is the Game Boy's full memory map: cartridge, VRAM/OAM (via the
// PPU), banked WRAM, HRAM, and every peripheral register.
type Bus struct {
	Cart    *cartridge.Cartridge
	PPU     *video.PPU
	Timer   *timer.Timer
	Joypad  *joypad.Joypad
	Serial  *serial.Port
	CGB     bool

	wram     [8][0x1000]byte
	wramBank int
	hram     [0x7F]byte

	ifReg, ieReg byte

	bootROM    []byte
	bootActive bool

	hdma hdmaState
}

// New creates a Bus with no cartridge or boot ROM loaded; callers set
// those via LoadCartridge/LoadBootROM before running the CPU.
func New(cgb bool) *Bus {
	b := &Bus{
		PPU:     video.New(cgb),
		Timer:   timer.New(),
		Joypad:  joypad.New(),
		Serial:  serial.New(),
		CGB:     cgb,
		wramBank: 1,
	}
	b.PPU.RequestInterrupt = b.RequestInterrupt
	b.Timer.InterruptRequest = func() { b.RequestInterrupt(addr.TimerInterrupt) }
	b.Joypad.InterruptRequest = func() { b.RequestInterrupt(addr.JoypadInterrupt) }
	b.Serial.InterruptRequest = func() { b.RequestInterrupt(addr.SerialInterrupt) }
	return b
}

// LoadCartridge attaches a parsed cartridge.
func (b *Bus) LoadCartridge(cart *cartridge.Cartridge) {
	b.Cart = cart
}

// LoadBootROM enables the boot overlay with the given image.
func (b *Bus) LoadBootROM(data []byte) {
	b.bootROM = data
	b.bootActive = len(data) > 0
}

// RequestInterrupt sets the given interrupt's bit in IF.
func (b *Bus) RequestInterrupt(irq addr.Interrupt) {
	b.ifReg |= uint8(irq)
}

// Step fans cycles out to DMA, the timer, and the PPU, in that order,
// matching the documented step protocol.
func (b *Bus) Step(cycles int) {
	b.stepHDMA(cycles)
	b.Timer.Tick(cycles)
	b.Serial.Tick(cycles)
	b.PPU.Tick(cycles)
}

func (b *Bus) Read(address uint16) uint8 {
	if b.bootActive && b.inBootWindow(address) {
		return b.bootROM[address]
	}

	switch {
	case address <= 0x7FFF:
		if b.Cart == nil {
			return 0xFF
		}
		return b.Cart.Read(address)
	case address <= 0x9FFF:
		return b.PPU.Read(address)
	case address <= 0xBFFF:
		if b.Cart == nil {
			return 0xFF
		}
		return b.Cart.Read(address)
	case address <= 0xCFFF:
		return b.wram[0][address-0xC000]
	case address <= 0xDFFF:
		return b.wram[b.wramBank][address-0xD000]
	case address <= 0xFDFF:
		return b.Read(address - 0x2000)
	case address <= 0xFE9F:
		return b.PPU.Read(address)
	case address <= 0xFEFF:
		return 0xFF
	case address <= 0xFF7F:
		return b.readIO(address)
	case address <= 0xFFFE:
		return b.hram[address-0xFF80]
	default:
		return b.ieReg
	}
}

func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address <= 0x7FFF:
		if b.Cart != nil {
			b.Cart.Write(address, value)
		}
	case address <= 0x9FFF:
		b.PPU.Write(address, value)
	case address <= 0xBFFF:
		if b.Cart != nil {
			b.Cart.Write(address, value)
		}
	case address <= 0xCFFF:
		b.wram[0][address-0xC000] = value
	case address <= 0xDFFF:
		b.wram[b.wramBank][address-0xD000] = value
	case address <= 0xFDFF:
		b.Write(address-0x2000, value)
	case address <= 0xFE9F:
		b.PPU.Write(address, value)
	case address <= 0xFEFF:
		// unusable, drop
	case address <= 0xFF7F:
		b.writeIO(address, value)
	case address <= 0xFFFE:
		b.hram[address-0xFF80] = value
	default:
		b.ieReg = value
	}
}

// inBootWindow reports whether address falls under the active boot ROM
// overlay: $0000-$00FF always, plus $0200-$08FF on CGB (the $0100-$01FF
// cartridge header window is never overlaid, even while boot is active).
func (b *Bus) inBootWindow(address uint16) bool {
	if address <= 0x00FF {
		return true
	}
	if b.CGB && address >= 0x0200 && address <= 0x08FF {
		return len(b.bootROM) > int(address)
	}
	return false
}

func (b *Bus) readIO(address uint16) uint8 {
	switch {
	case address == addr.P1:
		return b.Joypad.Read()
	case address == addr.SB || address == addr.SC:
		return b.Serial.Read(address)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		return b.Timer.Read(address)
	case address == addr.IF:
		return b.ifReg | 0xE0
	case address == addr.SVBK:
		bank := b.wramBank
		if bank == 0 {
			bank = 1
		}
		return uint8(bank) | 0xF8
	case address == addr.HDMA5:
		return b.hdma.status()
	case isVideoRegister(address):
		return b.PPU.Read(address)
	default:
		return 0xFF
	}
}

func (b *Bus) writeIO(address uint16, value uint8) {
	switch {
	case address == addr.P1:
		b.Joypad.Write(value)
	case address == addr.SB || address == addr.SC:
		b.Serial.Write(address, value)
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		b.Timer.Write(address, value)
	case address == addr.IF:
		b.ifReg = value & 0x1F
	case address == addr.DMA:
		b.doOAMDMA(value)
	case address == addr.SVBK:
		if b.CGB {
			bank := int(value & 0x07)
			if bank == 0 {
				bank = 1
			}
			b.wramBank = bank
		}
	case address == addr.BOOT:
		if value != 0 {
			b.bootActive = false
		}
	case address >= addr.HDMA1 && address <= addr.HDMA5:
		b.writeHDMA(address, value)
	case isVideoRegister(address):
		b.PPU.Write(address, value)
	}
}

func isVideoRegister(address uint16) bool {
	switch address {
	case addr.LCDC, addr.STAT, addr.SCY, addr.SCX, addr.LY, addr.LYC,
		addr.BGP, addr.OBP0, addr.OBP1, addr.WY, addr.WX,
		addr.KEY1, addr.VBK, addr.BCPS, addr.BCPD, addr.OCPS, addr.OCPD:
		return true
	}
	return false
}

func (b *Bus) doOAMDMA(value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < 160; i++ {
		b.PPU.Write(addr.OAMStart+i, b.Read(source+i))
	}
}

// Cartridge RAM access, exposed for save-file flushing.
func (b *Bus) BatteryRAM() []byte {
	if b.Cart == nil || !b.Cart.HasBattery() {
		return nil
	}
	return b.Cart.RAM()
}
