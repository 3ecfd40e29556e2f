package config

import (
	"image/color"
	"strings"

	"github.com/gonewx/confetti/internal/particle"
)

// 预设名称
const (
	PresetDefault    = "default"
	PresetFestive    = "festive"
	PresetGentle     = "gentle"
	PresetMetallic   = "metallic"
	PresetMultiColor = "multicolor"
)

// presetAliases maps the historical preset names onto the current ones.
var presetAliases = map[string]string{
	"fromthetop":  PresetFestive,
	"celebration": PresetFestive,
	"subtle":      PresetGentle,
	"gold":        PresetMetallic,
	"rainbow":     PresetMultiColor,
}

// presetOrder is the display order of PresetNames.
var presetOrder = []string{
	PresetDefault,
	PresetFestive,
	PresetGentle,
	PresetMetallic,
	PresetMultiColor,
}

// presets 进程级只读预设表，在包初始化时构建一次
//
// 对外只通过 Preset() 返回深拷贝，调用方无法修改这里的值。
var presets = map[string]Settings{
	PresetDefault:    DefaultSettings(),
	PresetFestive:    festiveSettings(),
	PresetGentle:     gentleSettings(),
	PresetMetallic:   metallicSettings(),
	PresetMultiColor: multiColorSettings(),
}

// Preset 按名称返回预设的副本（名称不区分大小写，支持旧名称别名）
func Preset(name string) (Settings, bool) {
	s, ok := presets[CanonicalPresetName(name)]
	if !ok {
		return Settings{}, false
	}
	return s.Clone(), true
}

// MustPreset is Preset for names known at compile time; unknown names yield DefaultSettings.
func MustPreset(name string) Settings {
	if s, ok := Preset(name); ok {
		return s
	}
	return DefaultSettings()
}

// PresetNames lists the built-in presets in display order.
func PresetNames() []string {
	return append([]string(nil), presetOrder...)
}

// CanonicalPresetName lower-cases name and resolves aliases.
func CanonicalPresetName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := presetAliases[n]; ok {
		return alias
	}
	return n
}

// festiveSettings 从屏幕顶部落下的大量彩纸
func festiveSettings() Settings {
	s := DefaultSettings()

	s.ParticleCount = 200
	s.MaxTotalParticles = 500

	s.BurstX = 0.5
	s.BurstY = -100
	s.Speed = particle.R(300, 600)
	s.BurstCone = 270
	s.BurstDirection = 90

	s.Size = particle.R(12, 20)

	s.FallDurationBase = 4.0
	s.Gravity = 150
	s.Mass = particle.R(0.8, 1.5)
	s.Drag = particle.R(0.5, 1.5)

	s.WobbleAmplitude = particle.R(15, 35)
	s.WobbleFrequency = particle.R(2, 5)
	s.WobbleDecay = 0.7

	s.FadeStart = 0.8
	s.FadeDuration = 0.2

	s.MetallicEnabled = false
	s.MetallicIntensity = 0.8
	s.ShimmerIntensity = 0.4

	s.Palette = Palette{
		{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}, // Gold
		{R: 0xFF, G: 0x14, B: 0x93, A: 0xFF}, // Deep pink
		{R: 0x00, G: 0xCE, B: 0xD1, A: 0xFF}, // Dark turquoise
		{R: 0xFF, G: 0x63, B: 0x47, A: 0xFF}, // Tomato
		{R: 0x93, G: 0x70, B: 0xDB, A: 0xFF}, // Medium purple
		White,
	}
	return s
}

// gentleSettings 少量、小尺寸的低调效果
func gentleSettings() Settings {
	s := DefaultSettings()

	s.ParticleCount = 50
	s.MaxTotalParticles = 100

	s.Speed = particle.R(1000, 3000)
	s.BurstCone = 60

	s.Size = particle.R(4, 10)

	s.Gravity = 800
	s.FallDurationBase = 1.5

	s.WobbleAmplitude = particle.R(2, 8)

	s.Palette = Palette{
		color.RGBA{R: 230, G: 230, B: 230, A: 230}, // 90% white (premultiplied)
		{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF},
		{R: 0xD0, G: 0xD0, B: 0xD0, A: 0xFF},
	}
	return s
}

// metallicSettings 金色金属光泽
func metallicSettings() Settings {
	s := DefaultSettings()

	s.ParticleCount = 100

	s.MetallicEnabled = true
	s.MetallicIntensity = 0.9
	s.ShimmerIntensity = 0.8

	s.Palette = Palette{
		{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}, // Gold
		{R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF}, // Orange
		{R: 0xFF, G: 0xE5, B: 0xB4, A: 0xFF}, // Peach
		{R: 0xFF, G: 0xDF, B: 0x00, A: 0xFF}, // Golden yellow
	}
	return s
}

// multiColorSettings 彩虹色
func multiColorSettings() Settings {
	s := DefaultSettings()

	s.ParticleCount = 120

	s.Palette = Palette{
		{R: 0xFF, G: 0x3B, B: 0x30, A: 0xFF}, // red
		{R: 0xFF, G: 0x95, B: 0x00, A: 0xFF}, // orange
		{R: 0xFF, G: 0xCC, B: 0x00, A: 0xFF}, // yellow
		{R: 0x34, G: 0xC7, B: 0x59, A: 0xFF}, // green
		{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF}, // blue
		{R: 0xAF, G: 0x52, B: 0xDE, A: 0xFF}, // purple
		{R: 0xFF, G: 0x2D, B: 0x55, A: 0xFF}, // pink
	}
	return s
}
