// Package app 提供彩纸查看器的核心包装器
//
// 该包将查看器初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/confetti/internal/particle"
	"github.com/gonewx/confetti/pkg/components"
	"github.com/gonewx/confetti/pkg/config"
	"github.com/gonewx/confetti/pkg/game"
	"github.com/gonewx/confetti/pkg/systems"
	"github.com/gonewx/confetti/pkg/utils"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 1024
	ScreenHeight = 768
)

// AppName gdata 存储目录名
const AppName = "confetti"

// ErrQuit ends the ebiten loop without reporting a failure.
var ErrQuit = errors.New("quit requested")

// tickSeconds 每次 Update 推进的粒子池时钟
const tickSeconds = 1.0 / 60.0

// shapeCycle S 键切换的形状顺序
var shapeCycle = []components.ShapeKind{
	components.ShapeSquare,
	components.ShapeCircle,
	components.ShapeStar,
	components.ShapeHeart,
}

// Config 定义应用启动配置
type Config struct {
	// Preset 启动预设，覆盖保存的偏好；为空则使用偏好
	Preset string
	// SettingsFile 从 YAML 文件加载设置，优先于预设
	SettingsFile string
	// SettingsDir 查找 <preset>.yaml 的磁盘目录，优先于嵌入预设
	SettingsDir string
	// Shape 粒子形状名称，为空则使用偏好
	Shape string
	// Seed 固定随机种子，0 表示随机
	Seed uint64
	// AutoPlay 自动爆发间隔（秒），0 表示使用偏好
	AutoPlay float64
	// Verbose 启用详细日志输出
	Verbose bool
	// Mute 关闭爆发音效
	Mute bool
}

// App 是彩纸查看器的核心包装器，实现 ebiten.Game 接口
type App struct {
	confetti *systems.ConfettiSystem
	renderer *systems.RenderSystem
	prefs    *game.SettingsManager
	audio    *game.AudioManager

	presetNames []string
	presetIndex int
	custom      bool // 当前设置来自 --settings 文件

	clock         float64 // 粒子池时钟（秒），暂停时不前进
	paused        bool
	autoPlay      float64
	lastAutoBurst float64

	mobile                   bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数

	statusMessage string
}

// NewApp 创建查看器并在屏幕上方打出第一次爆发
//
// 需要嵌入预设时，调用此函数前先调用 embedded.Init()；未初始化时使用内置预设。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	prefs, err := game.OpenSettingsManager(AppName)
	if err != nil {
		log.Printf("[App] Warning: %v (preferences will not be saved)", err)
	}
	if cfg.SettingsDir != "" {
		prefs.PresetDirs = []string{cfg.SettingsDir}
	}
	if cfg.Preset != "" {
		prefs.SetPreset(cfg.Preset)
	}
	if cfg.Shape != "" {
		if err := prefs.SetShape(cfg.Shape); err != nil {
			return nil, err
		}
	}
	if cfg.AutoPlay > 0 {
		prefs.SetAutoPlayInterval(cfg.AutoPlay)
	}
	if cfg.Mute {
		prefs.SetSoundEnabled(false)
	}

	settings, custom, err := resolveSettings(cfg, prefs)
	if err != nil {
		return nil, err
	}

	var src particle.Source = particle.DefaultSource
	if cfg.Seed != 0 {
		src = particle.NewSource(cfg.Seed)
	}

	cs := systems.NewConfettiSystem(settings, src, ScreenWidth, ScreenHeight)
	cs.Pool.Verbose = cfg.Verbose
	cs.Emitter.Shape = prefs.Shape()

	a := &App{
		confetti:    cs,
		renderer:    systems.NewRenderSystem(settings.MaxTotalParticles),
		prefs:       prefs,
		audio:       game.NewAudioManager(audioContext(), prefs),
		presetNames: config.PresetNames(),
		custom:      custom,
		autoPlay:    prefs.GetSettings().AutoPlayInterval,
		mobile:      utils.IsMobile(),
	}
	a.presetIndex = max(slices.Index(a.presetNames, config.CanonicalPresetName(prefs.GetSettings().Preset)), 0)
	a.audio.PreloadSounds(game.SoundPop, game.SoundClear)
	a.updateStatusMessage()

	log.Printf("[App] Initialized: preset %q, %d particles per burst, cap %d",
		a.presetName(), settings.ParticleCount, settings.MaxTotalParticles)

	a.confetti.Burst(a.clock, nil)
	return a, nil
}

// audioContext 复用已有的音频上下文，Ebitengine 每个进程只允许创建一个
func audioContext() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(game.SampleRate)
}

// resolveSettings 决定启动时使用的设置
//
// 顺序：--settings 文件 → 偏好中的自定义设置或预设。文件加载失败时回退到默认设置。
func resolveSettings(cfg Config, prefs *game.SettingsManager) (config.Settings, bool, error) {
	if cfg.SettingsFile != "" {
		s := config.LoadSettingsOrDefault(cfg.SettingsFile)
		if err := s.Validate(); err != nil {
			log.Printf("[App] Warning: %s: %v", cfg.SettingsFile, err)
		}
		return s, true, nil
	}

	s, err := prefs.Effective()
	if err != nil {
		return config.Settings{}, false, fmt.Errorf("failed to resolve preset: %w", err)
	}
	return s, false, nil
}

// Update 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrQuit
	}
	a.updateWindow()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
		if a.paused {
			a.statusMessage = "PAUSED - Press P to resume"
		} else {
			a.statusMessage = "Resumed"
		}
	}
	if a.paused {
		return nil
	}
	a.clock += tickSeconds

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		a.switchPreset(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		a.switchPreset(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.cycleShape()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.toggleMetallic()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.clear()
	}

	if pressed, x, y := utils.IsJustTouchedOrClicked(); pressed {
		// 双指轻触切换预设
		if utils.TouchCount() >= 2 {
			a.switchPreset(1)
		} else {
			a.moveOrigin(float64(x), float64(y))
		}
	}

	// 持续按住不会重复触发，Trigger 只响应上升沿
	trigger := ebiten.IsKeyPressed(ebiten.KeySpace) || utils.IsPointerPressed()
	if a.autoPlay > 0 && a.clock-a.lastAutoBurst >= a.autoPlay {
		a.lastAutoBurst = a.clock
		if a.confetti.Burst(a.clock, nil) != 0 {
			a.audio.PlaySound(game.SoundPop)
		}
	}
	if id := a.confetti.Update(a.clock, trigger); id != 0 {
		a.audio.PlaySound(game.SoundPop)
		a.statusMessage = fmt.Sprintf("Burst #%d", id)
	}
	return nil
}

// updateWindow F11 切换全屏；退出全屏后延迟几帧再恢复窗口大小
func (a *App) updateWindow() {
	if a.mobile {
		return
	}
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.prefs.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.prefs.SetFullscreen(true)
}

// Draw 绘制一帧
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{25, 25, 38, 255})
	a.renderer.Draw(screen, a.confetti.Visuals(a.clock))
	a.drawUI(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右两边填充黑色，并用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

func (a *App) drawUI(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Confetti - %s", a.presetName()), 10, 10)

	settings := a.confetti.Settings()
	info := fmt.Sprintf("Live particles: %d / %d   Pending expiries: %d   Shape: %s   Metallic: %v",
		a.confetti.Pool.Len(), settings.MaxTotalParticles, a.confetti.Pool.PendingExpiries(),
		a.confetti.Emitter.Shape.Kind, settings.MetallicEnabled)
	ebitenutil.DebugPrintAt(screen, info, 10, 30)

	if a.statusMessage != "" {
		ebitenutil.DebugPrintAt(screen, a.statusMessage, 10, 50)
	}

	controls := []string{
		"Actions: Space/Click = Burst  R = Clear  P = Pause  F11 = Fullscreen  Q = Quit",
		"Presets: <-/-> = Prev/Next  S = Shape  M = Metallic",
	}
	if a.mobile {
		controls = []string{"Tap = Burst   Two-finger tap = Next preset"}
	}
	y := ScreenHeight - len(controls)*20 - 10
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*20)
	}

	if a.autoPlay > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("AUTO-PLAY every %.1fs", a.autoPlay), ScreenWidth-200, 10)
	}
}

// Layout 返回固定的逻辑屏幕尺寸，Ebitengine 负责缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Fullscreen reports the saved fullscreen preference.
func (a *App) Fullscreen() bool {
	return a.prefs.GetSettings().Fullscreen
}

// Close 保存偏好并销毁粒子池
func (a *App) Close() {
	if err := a.prefs.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	a.confetti.Close()
}

func (a *App) presetName() string {
	if a.custom {
		return "custom"
	}
	return a.presetNames[a.presetIndex]
}

// switchPreset 切换到相邻预设，已有粒子保持原来的设置
func (a *App) switchPreset(step int) {
	n := len(a.presetNames)
	a.presetIndex = ((a.presetIndex+step)%n + n) % n
	a.custom = false

	name := a.presetNames[a.presetIndex]
	a.prefs.SetPreset(name)
	settings, err := a.prefs.Effective()
	if err != nil {
		log.Printf("[App] Failed to load preset %s: %v", name, err)
		a.statusMessage = fmt.Sprintf("Error: %v", err)
		return
	}
	a.confetti.SetSettings(settings)
	a.updateStatusMessage()
}

func (a *App) cycleShape() {
	current := slices.Index(shapeCycle, a.confetti.Emitter.Shape.Kind)
	next := shapeCycle[(current+1)%len(shapeCycle)]
	_ = a.prefs.SetShape(next.String())
	a.confetti.Emitter.Shape = a.prefs.Shape()
	a.statusMessage = fmt.Sprintf("Shape: %s", next)
}

func (a *App) toggleMetallic() {
	s := a.confetti.Settings()
	s.MetallicEnabled = !s.MetallicEnabled
	a.confetti.SetSettings(s)
	a.statusMessage = fmt.Sprintf("Metallic: %v", s.MetallicEnabled)
}

func (a *App) clear() {
	a.confetti.Clear()
	a.audio.PlaySound(game.SoundClear)
	a.statusMessage = "Cleared all particles"
}

// moveOrigin 把爆发中心移动到点击位置
func (a *App) moveOrigin(x, y float64) {
	s := a.confetti.Settings()
	s.BurstX = x / ScreenWidth
	s.BurstY = y
	a.confetti.SetSettings(s)
}

func (a *App) updateStatusMessage() {
	a.statusMessage = fmt.Sprintf("Selected: %s (%d/%d)", a.presetName(), a.presetIndex+1, len(a.presetNames))
}
