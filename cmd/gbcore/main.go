package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/vireo-go/gbcore"
	"github.com/vireo-go/gbcore/internal/frontend/terminal"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbcore"
	app.Description = "A Game Boy / Game Boy Color emulator core"
	app.Usage = "gbcore [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "boot-rom",
			Usage: "Path to a boot ROM image to run before the cartridge",
		},
		cli.StringFlag{
			Name:  "save",
			Usage: "Path to the battery save file (default: <rom>.sav)",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a terminal display",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
	}
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	rom, err := gbcore.LoadROMFile(romPath)
	if err != nil {
		return err
	}

	var bootROM []byte
	if path := c.String("boot-rom"); path != "" {
		bootROM, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading boot ROM %s: %w", path, err)
		}
	}

	savePath := c.String("save")
	if savePath == "" {
		savePath = strings.TrimSuffix(romPath, filepath.Ext(romPath)) + ".sav"
	}

	sys := gbcore.New(gbcore.Options{ROM: rom, BootROM: bootROM, SavePath: savePath})
	defer sys.FlushSave()

	if c.Bool("headless") {
		return runHeadless(c, sys, romPath)
	}

	renderer, err := terminal.New(sys)
	if err != nil {
		return err
	}
	return renderer.Run()
}

func runHeadless(c *cli.Context, sys *gbcore.System, romPath string) error {
	frames := c.Int("frames")
	if frames <= 0 {
		return errors.New("headless mode requires --frames option with a positive value")
	}

	snapshotInterval := c.Int("snapshot-interval")
	snapshotDir := c.String("snapshot-dir")
	if snapshotInterval > 0 {
		if snapshotDir == "" {
			tempDir, err := os.MkdirTemp("", "gbcore-snapshots-*")
			if err != nil {
				return fmt.Errorf("creating snapshot directory: %w", err)
			}
			snapshotDir = tempDir
		} else if err := os.MkdirAll(snapshotDir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}

	romName := filepath.Base(romPath)
	romName = strings.TrimSuffix(romName, filepath.Ext(romName))

	slog.Info("running headless", "frames", frames, "snapshot_interval", snapshotInterval, "snapshot_dir", snapshotDir)

	for i := 0; i < frames; i++ {
		frame := sys.RunFrame()

		if snapshotInterval > 0 && (i+1)%snapshotInterval == 0 {
			snapshotPath := filepath.Join(snapshotDir, fmt.Sprintf("%s_frame_%d.txt", romName, i+1))
			if err := saveFrameSnapshot(frame, snapshotPath); err != nil {
				slog.Error("failed to save snapshot", "frame", i+1, "path", snapshotPath, "error", err)
			} else {
				slog.Info("saved frame snapshot", "frame", i+1, "path", snapshotPath)
			}
		}

		if i%10 == 0 {
			slog.Info("frame progress", "completed", i+1, "total", frames)
		}
	}

	slog.Info("headless execution completed", "frames", frames)
	return sys.FlushSave()
}
