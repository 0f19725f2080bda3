package cartridge

import (
	"fmt"
	"os"
)

// SavePath derives the battery-RAM save file path for a ROM path by
// swapping its extension for .sav.
func SavePath(romPath string) string {
	for i := len(romPath) - 1; i >= 0 && romPath[i] != '/'; i-- {
		if romPath[i] == '.' {
			return romPath[:i] + ".sav"
		}
	}
	return romPath + ".sav"
}

// LoadSave reads an existing save file into ram if one is present. A
// missing file is not an error, it just leaves ram zeroed (a fresh
// cartridge); a file whose size differs from ram panics, leaving ram
// untouched.
func LoadSave(path string, ram []byte) {
	if len(ram) == 0 {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if len(data) != len(ram) {
		panic(fmt.Sprintf("cartridge: save file %s is %d bytes, cartridge RAM is %d bytes", path, len(data), len(ram)))
	}
	copy(ram, data)
}

// WriteSave flushes the current RAM contents to path, truncating/creating
// as needed. Unlike the original's mmap-backed save (every write visible
// to the file immediately), this core copies battery RAM out only when
// System.FlushSave calls this; the CLI does so when the emulator exits.
func WriteSave(path string, ram []byte) error {
	if len(ram) == 0 {
		return nil
	}
	return os.WriteFile(path, ram, 0o644)
}
