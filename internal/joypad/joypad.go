// Package joypad implements the Game Boy's P1 register: two 4-bit button
// nibbles (d-pad and action buttons) multiplexed onto the register's low
// nibble by the selector bits the game writes.
package joypad

import "github.com/vireo-go/gbcore/internal/bitutil"

// Key identifies one of the eight physical buttons.
type Key uint8

const (
	Right Key = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Joypad tracks button state and the P1 selector line. A 0 bit means
// pressed; a 1 bit means released, matching the hardware's active-low wiring.
type Joypad struct {
	buttons uint8 // A,B,Select,Start in bits 0-3
	dpad    uint8 // Right,Left,Up,Down in bits 0-3
	select_ uint8 // selector bits 4-5 as last written to P1

	// InterruptRequest is called when a button transitions from released
	// to pressed while its group is selected, matching the joypad
	// interrupt's edge-triggered behavior.
	InterruptRequest func()
}

// New creates a Joypad with nothing pressed.
func New() *Joypad {
	return &Joypad{buttons: 0x0F, dpad: 0x0F}
}

// Read returns the full P1 register value. Bit 4 low selects the action
// nibble, bit 5 low selects the direction nibble; with neither low the
// register reads $CF, with both low it reads $00.
func (j *Joypad) Read() uint8 {
	bit4Low := !bitutil.IsSet(4, j.select_)
	bit5Low := !bitutil.IsSet(5, j.select_)

	switch {
	case bit4Low && !bit5Low:
		return 0b1100_0000 | j.select_ | (j.buttons & 0x0F)
	case bit5Low && !bit4Low:
		return 0b1100_0000 | j.select_ | (j.dpad & 0x0F)
	case !bit4Low && !bit5Low:
		return 0xCF
	default:
		return 0x00
	}
}

// Write stores the selector bits (4-5); the rest of P1 is read-only.
func (j *Joypad) Write(value uint8) {
	j.select_ = value & 0b0011_0000
}

// Press marks key as held down, firing InterruptRequest on a release-to-press edge.
func (j *Joypad) Press(key Key) {
	before := j.Read()
	j.setBit(key, false)
	after := j.Read()
	if before&^after&0x0F != 0 && j.InterruptRequest != nil {
		j.InterruptRequest()
	}
}

// Release marks key as no longer held.
func (j *Joypad) Release(key Key) {
	j.setBit(key, true)
}

func (j *Joypad) setBit(key Key, released bool) {
	var group *uint8
	var bit uint8
	switch key {
	case Right:
		group, bit = &j.dpad, 0
	case Left:
		group, bit = &j.dpad, 1
	case Up:
		group, bit = &j.dpad, 2
	case Down:
		group, bit = &j.dpad, 3
	case A:
		group, bit = &j.buttons, 0
	case B:
		group, bit = &j.buttons, 1
	case Select:
		group, bit = &j.buttons, 2
	case Start:
		group, bit = &j.buttons, 3
	}
	if released {
		*group = bitutil.Set(bit, *group)
	} else {
		*group = bitutil.Reset(bit, *group)
	}
}
