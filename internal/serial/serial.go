// Package serial implements the SB/SC serial port registers. The CPU
// package independently detects the $81 "immediate" transfer convention
// used by test ROMs and copies SB to stdout; this package models the
// register storage and the fixed-timing transfer completion used by
// anything that waits on the Serial interrupt instead.
package serial

import "github.com/vireo-go/gbcore/internal/bitutil"

const bytesTransferCycles = 4096 // ~8192Hz internal clock, DMG

// Port is a minimal SB/SC serial device: no link cable is emulated, so any
// started transfer simply completes after the hardware-accurate delay and
// leaves SB holding the "no partner connected" value.
type Port struct {
	sb, sc   uint8
	active   bool
	cooldown int

	// InterruptRequest fires when a started transfer completes.
	InterruptRequest func()
}

// New creates an idle Port.
func New() *Port {
	return &Port{}
}

func (p *Port) Read(address uint16) uint8 {
	if address&0xFF == 0x01 {
		return p.sb
	}
	return p.sc
}

func (p *Port) Write(address uint16, value uint8) {
	if address&0xFF == 0x01 {
		p.sb = value
		return
	}
	p.sc = value
	if !p.active && bitutil.IsSet(7, p.sc) && bitutil.IsSet(0, p.sc) {
		p.active = true
		p.cooldown = bytesTransferCycles
	}
}

// Tick advances any in-flight transfer.
func (p *Port) Tick(cycles int) {
	if !p.active {
		return
	}
	p.cooldown -= cycles
	if p.cooldown <= 0 {
		p.sb = 0xFF
		p.sc = bitutil.Reset(7, p.sc)
		p.active = false
		if p.InterruptRequest != nil {
			p.InterruptRequest()
		}
	}
}
