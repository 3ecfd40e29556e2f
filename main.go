// Package main provides the confetti viewer.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--preset <name>         Start with a preset (default, festive, gentle, metallic, multicolor)
//	--settings <file>       Load settings from a YAML file instead of a preset
//	--settings-dir <dir>    Look for <preset>.yaml here before the embedded presets
//	--shape <name>          Particle shape (square, circle, star, heart)
//	--seed <n>              Fixed random seed (0 = random)
//	--auto-play <seconds>   Burst automatically at this interval
//	--mute                  Disable the burst sound
//	--verbose               Enable verbose logging
//
// Controls:
//
//	Space / Click     - Burst (click moves the burst origin to the cursor)
//	Left/Right Arrow  - Previous/next preset
//	S                 - Cycle particle shape
//	M                 - Toggle metallic shading
//	P                 - Pause
//	F11               - Toggle fullscreen
//	R                 - Clear all particles
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/confetti/pkg/app"
	"github.com/gonewx/confetti/pkg/embedded"
)

var (
	presetFlag      = flag.String("preset", "", "Preset name (overrides the saved preference)")
	settingsFlag    = flag.String("settings", "", "Settings YAML file")
	settingsDirFlag = flag.String("settings-dir", "", "Directory searched for <preset>.yaml before the embedded presets")
	shapeFlag       = flag.String("shape", "", "Particle shape: square, circle, star, heart")
	seedFlag        = flag.Uint64("seed", 0, "Random seed (0 = random)")
	autoPlayFlag    = flag.Float64("auto-play", 0, "Burst automatically every N seconds (0 = off)")
	muteFlag        = flag.Bool("mute", false, "Disable the burst sound")
	verboseFlag     = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	viewer, err := app.NewApp(app.Config{
		Preset:       *presetFlag,
		SettingsFile: *settingsFlag,
		SettingsDir:  *settingsDirFlag,
		Shape:        *shapeFlag,
		Seed:         *seedFlag,
		AutoPlay:     *autoPlayFlag,
		Mute:         *muteFlag,
		Verbose:      *verboseFlag,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("Failed to initialize viewer:", err)
	}
	defer viewer.Close()

	log.Println("=== Confetti Viewer ===")
	log.Printf("Preset: %q, settings file: %q, seed: %d", *presetFlag, *settingsFlag, *seedFlag)

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Confetti")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(viewer.Fullscreen())

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, app.ErrQuit) {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	log.Println("Confetti viewer closed")
}
