// Package gbcore is a Game Boy / Game Boy Color emulation core: a
// cycle-stepped CPU, MMU, PPU, timer, joypad, and cartridge/MBC stack
// driven by a single synchronous System loop.
package gbcore

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/vireo-go/gbcore/internal/bus"
	"github.com/vireo-go/gbcore/internal/cartridge"
	"github.com/vireo-go/gbcore/internal/cpu"
	"github.com/vireo-go/gbcore/internal/joypad"
	"github.com/vireo-go/gbcore/internal/video"
)

// CyclesPerFrame is the number of T-cycles in one 59.7Hz frame (154 lines
// of 456 cycles each).
const CyclesPerFrame = 70224

// System owns the CPU and bus inline; there is no circular ownership
// between them; the CPU only ever sees the bus through the narrow cpu.Bus
// interface.
type System struct {
	CPU *cpu.CPU
	Bus *bus.Bus

	savePath string
}

// Options configure a new System.
type Options struct {
	ROM      []byte
	BootROM  []byte // optional; if empty, boots with power-on register state
	SavePath string // optional; if set and the cartridge has battery RAM, loaded/flushed here
}

// New constructs a System from a ROM image, auto-detecting DMG vs CGB from
// the header's $0143 byte, loading any existing save file, and seeding
// CPU/PPU power-on state.
func New(opts Options) *System {
	cart := cartridge.Load(opts.ROM)

	b := bus.New(cart.Header.IsCGB)
	b.LoadCartridge(cart)

	if opts.SavePath != "" && cart.HasBattery() {
		cartridge.LoadSave(opts.SavePath, cart.RAM())
	}

	s := &System{Bus: b, savePath: opts.SavePath}

	if len(opts.BootROM) > 0 {
		b.LoadBootROM(opts.BootROM)
		s.CPU = cpu.New(b)
		s.CPU.ResetBoot()
	} else {
		s.CPU = cpu.New(b)
		if cart.Header.IsCGB {
			s.CPU.ResetCGB()
		} else {
			s.CPU.ResetDMG()
		}
	}

	return s
}

// Step executes exactly one CPU instruction (servicing at most one
// interrupt) and fans its cycles out to the bus peripherals.
func (s *System) Step() int {
	spent := s.CPU.Step()
	s.Bus.Step(spent)
	return spent
}

// RunFrame runs the system until at least one full frame (CyclesPerFrame
// T-cycles) has elapsed, returning the rendered framebuffer.
func (s *System) RunFrame() *video.FrameBuffer {
	budget := 0
	for budget < CyclesPerFrame {
		budget += s.Step()
	}
	return s.Bus.PPU.FrameBuffer()
}

// PressKey/ReleaseKey forward to the joypad, the only host-driven input.
func (s *System) PressKey(key joypad.Key)   { s.Bus.Joypad.Press(key) }
func (s *System) ReleaseKey(key joypad.Key) { s.Bus.Joypad.Release(key) }

// FlushSave writes battery RAM to disk if the cartridge has one and a
// save path was configured. Safe to call periodically or on shutdown.
func (s *System) FlushSave() error {
	ram := s.Bus.BatteryRAM()
	if ram == nil || s.savePath == "" {
		return nil
	}
	if err := cartridge.WriteSave(s.savePath, ram); err != nil {
		return fmt.Errorf("flushing save to %s: %w", s.savePath, err)
	}
	return nil
}

// LoadROMFile reads a ROM image from disk, the one place this core
// touches the filesystem directly for the ROM itself.
func LoadROMFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM %s: %w", path, err)
	}
	return data, nil
}

func init() {
	if slog.Default().Handler() == nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}
}
