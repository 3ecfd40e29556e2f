// Package main provides a terminal confetti viewer.
//
// Usage:
//
//	go run ./cmd/confetti-term [flags]
//
// Flags:
//
//	--preset <name>   Preset name
//	--shape <name>    Particle shape (square, circle, star, heart)
//	--seed <n>        Fixed random seed (0 = random)
//	--mute            Disable the burst sound
//	--log <file>      Write logs to a file (the terminal is occupied by the viewer)
//
// Controls:
//
//	Space / Enter  - Burst
//	1-5            - Select preset
//	R              - Clear all particles
//	Q / Escape     - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/confetti/internal/particle"
	"github.com/gonewx/confetti/pkg/config"
	"github.com/gonewx/confetti/pkg/game"
	"github.com/gonewx/confetti/pkg/systems"
)

var (
	presetFlag = flag.String("preset", "", "Preset name")
	shapeFlag  = flag.String("shape", "", "Particle shape: square, circle, star, heart")
	seedFlag   = flag.Uint64("seed", 0, "Random seed (0 = random)")
	muteFlag   = flag.Bool("mute", false, "Disable the burst sound")
	logFlag    = flag.String("log", "", "Log file (default: discard)")
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

// TermViewer 终端彩纸查看器
type TermViewer struct {
	screen   tcell.Screen
	canvas   Canvas
	confetti *systems.ConfettiSystem
	prefs    *game.SettingsManager
	sound    *PopSound

	start   time.Time
	pressed bool // 本帧收到爆发按键，下一帧复位
	presets []string
}

// NewTermViewer 初始化终端、音频与粒子系统
func NewTermViewer() (*TermViewer, error) {
	prefs, err := game.OpenSettingsManager("confetti")
	if err != nil {
		log.Printf("[Term] Warning: %v (preferences will not be saved)", err)
	}
	if *presetFlag != "" {
		prefs.SetPreset(*presetFlag)
	}
	if *shapeFlag != "" {
		if err := prefs.SetShape(*shapeFlag); err != nil {
			return nil, err
		}
	}
	settings, err := prefs.Effective()
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	var src particle.Source = particle.DefaultSource
	if *seedFlag != 0 {
		src = particle.NewSource(*seedFlag)
	}

	v := &TermViewer{
		screen:  screen,
		prefs:   prefs,
		start:   time.Now(),
		presets: config.PresetNames(),
	}
	cols, rows := screen.Size()
	v.canvas = NewCanvas(cols, rows)
	v.confetti = systems.NewConfettiSystem(settings, src, v.canvas.Width(), v.canvas.Height())
	v.confetti.Emitter.Shape = prefs.Shape()

	pref := prefs.GetSettings()
	if pref.SoundEnabled && !*muteFlag {
		v.sound = NewPopSound(pref.SoundVolume)
		if err := v.sound.Init(); err != nil {
			// 没有声音也能运行
			log.Printf("[Term] Audio initialization failed: %v", err)
		}
	}
	return v, nil
}

func (v *TermViewer) now() float64 {
	return time.Since(v.start).Seconds()
}

// handleInput 返回 false 表示退出
func (v *TermViewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyEnter:
			v.pressed = true
		case ev.Key() == tcell.KeyRune:
			switch r := ev.Rune(); {
			case r == 'q' || r == 'Q':
				return false
			case r == ' ':
				v.pressed = true
			case r == 'r' || r == 'R':
				v.confetti.Clear()
			case r >= '1' && r <= '9':
				v.selectPreset(int(r - '1'))
			}
		}

	case *tcell.EventResize:
		cols, rows := v.screen.Size()
		v.canvas = NewCanvas(cols, rows)
		v.confetti.SetScreenSize(v.canvas.Width(), v.canvas.Height())
		v.screen.Sync()
	}
	return true
}

func (v *TermViewer) selectPreset(i int) {
	if i < 0 || i >= len(v.presets) {
		return
	}
	v.prefs.SetPreset(v.presets[i])
	settings, err := v.prefs.Effective()
	if err != nil {
		log.Printf("[Term] Failed to load preset %s: %v", v.presets[i], err)
		return
	}
	v.confetti.SetSettings(settings)
}

func (v *TermViewer) tick() {
	now := v.now()
	if id := v.confetti.Update(now, v.pressed); id != 0 && v.sound != nil {
		v.sound.Play()
	}
	v.pressed = false

	v.screen.Clear()
	v.canvas.Draw(v.screen, v.confetti.Visuals(now))
	v.drawStatus()
	v.screen.Show()
}

func (v *TermViewer) drawStatus() {
	settings := v.confetti.Settings()
	status := fmt.Sprintf(" live %d/%d  space=burst 1-%d=preset r=clear q=quit ",
		v.confetti.Pool.Len(), settings.MaxTotalParticles, len(v.presets))
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		v.screen.SetContent(i, 0, r, nil, style)
	}
}

func (v *TermViewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	v.pressed = true // 启动时先爆发一次
	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			v.tick()
		}
	}
}

func (v *TermViewer) cleanup() {
	if err := v.prefs.Save(); err != nil {
		log.Printf("[Term] Warning: %v", err)
	}
	v.confetti.Close()
	if v.sound != nil {
		v.sound.Close()
	}
	v.screen.Fini()
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	viewer, err := NewTermViewer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer viewer.cleanup()

	viewer.run()
}
