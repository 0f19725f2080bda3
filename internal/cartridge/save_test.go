package cartridge

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSavePath(t *testing.T) {
	assert.Equal(t, "game.sav", SavePath("game.gb"))
	assert.Equal(t, "/roms/game.sav", SavePath("/roms/game.gbc"))
	assert.Equal(t, "noext.sav", SavePath("noext"))
}

func TestWriteAndLoadSave_roundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.sav")

	original := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	assert.NoError(t, WriteSave(path, original))

	loaded := make([]byte, len(original))
	LoadSave(path, loaded)
	assert.Equal(t, original, loaded)
}

func TestLoadSave_sizeMismatchLeavesRAMUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.sav")
	assert.NoError(t, WriteSave(path, []byte{1, 2, 3}))

	ram := make([]byte, 8)
	assert.Panics(t, func() { LoadSave(path, ram) })
	assert.Equal(t, make([]byte, 8), ram)
}

func TestLoadSave_missingFileIsNotAnError(t *testing.T) {
	ram := []byte{9, 9}
	LoadSave("/nonexistent/path.sav", ram)
	assert.Equal(t, []byte{9, 9}, ram)
}
