package cartridge

import "fmt"

// Cartridge owns the parsed header and the active MBC for a loaded ROM.
type Cartridge struct {
	Header Header
	mbc    MBC
}

// Load builds a Cartridge from a raw ROM image. It panics on an MBC kind
// this core doesn't implement, mirroring how real hardware simply won't
// boot an unsupported cartridge.
func Load(rom []byte) *Cartridge {
	h := ParseHeader(rom)

	var mbc MBC
	switch h.Kind {
	case KindNoMBC:
		mbc = NewNoMBC(rom, h.RAMSize)
	case KindMBC1:
		mbc = NewMBC1(rom, h.RAMSize)
	case KindMBC3:
		mbc = NewMBC3(rom, h.RAMSize, h.HasRTC)
	default:
		panic(fmt.Sprintf("cartridge: unsupported MBC for cart type in header (title=%q)", h.Title))
	}

	return &Cartridge{Header: h, mbc: mbc}
}

func (c *Cartridge) Read(address uint16) uint8    { return c.mbc.Read(address) }
func (c *Cartridge) Write(address uint16, v uint8) { c.mbc.Write(address, v) }

// RAM exposes the external RAM backing store for save persistence. Returns
// nil if the cartridge has none.
func (c *Cartridge) RAM() []byte { return c.mbc.RAM() }

// HasBattery reports whether this cartridge's RAM should survive a restart.
func (c *Cartridge) HasBattery() bool { return c.Header.HasBattery && len(c.RAM()) > 0 }
