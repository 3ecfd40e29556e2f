package config

import (
	"fmt"
	"image/color"

	"github.com/gonewx/confetti/internal/particle"
)

// 物理与生命周期常量
const (
	// MinMass 质量下限，保证 1/mass 有限
	MinMass = 0.01

	// LifetimeSafetyMargin 批次最长寿命之外额外保留的秒数（覆盖淡出尾巴）
	LifetimeSafetyMargin = 2.0
)

// White 调色板为空时的兜底颜色
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Settings 一次爆发所使用的完整参数集
//
// 以值类型传递；粒子在生成时保存一个指向当时设置的指针，之后只读。
// 所有 Range 字段都是闭区间，min > max 时在采样阶段自动交换。
//
// 配置文件格式见 LoadSettings。
type Settings struct {
	// Emission 发射
	ParticleCount     int `yaml:"particleCount"`     // 每次爆发生成的粒子数
	MaxTotalParticles int `yaml:"maxTotalParticles"` // 全局存活粒子上限

	// Burst geometry 爆发几何
	BurstX         float64        `yaml:"burstX"`         // 归一化横坐标 [0,1]
	BurstY         float64        `yaml:"burstY"`         // 像素纵坐标，可为负或超出屏幕
	BurstDirection float64        `yaml:"burstDirection"` // 角度：0=右 90=下 180=左 270=上
	BurstCone      float64        `yaml:"burstCone"`      // 扩散总角度 0-180
	Speed          particle.Range `yaml:"burstSpeed"`     // 初速度（像素/秒）

	// Physics 物理
	Gravity          float64        `yaml:"gravity"`          // 像素/秒²
	Mass             particle.Range `yaml:"mass"`             // 质量乘数
	Drag             particle.Range `yaml:"drag"`             // 阻力乘数
	FallDurationBase float64        `yaml:"fallDurationBase"` // 基础下落时间（秒）

	// Wobble 摆动
	WobbleAmplitude particle.Range `yaml:"wobbleAmplitude"` // 像素
	WobbleFrequency particle.Range `yaml:"wobbleFrequency"` // 弧度/秒
	WobbleDecay     float64        `yaml:"wobbleDecay"`     // 下落结束时衰减掉的比例 [0,1]

	// Appearance 外观
	Size         particle.Range `yaml:"size"`         // 像素
	FadeStart    float64        `yaml:"fadeStart"`    // 开始淡出的进度 [0,1]
	FadeDuration float64        `yaml:"fadeDuration"` // 淡出占总进度的比例 (0,1]

	// Shading 金属光泽
	MetallicEnabled   bool    `yaml:"metallicEnabled"`
	MetallicIntensity float64 `yaml:"metallicIntensity"`
	ShimmerIntensity  float64 `yaml:"shimmerIntensity"`

	// Palette 调色板，每个粒子从中均匀抽取
	Palette Palette `yaml:"colors"`
}

// DefaultSettings 返回文档化的默认设置
//
// 解析配置文件时缺失的字段取这里的值。
func DefaultSettings() Settings {
	return Settings{
		ParticleCount:     150,
		MaxTotalParticles: 500,

		BurstX:         0.5,
		BurstY:         400,
		BurstDirection: 270,
		BurstCone:      120,
		Speed:          particle.R(2000, 10000),

		Gravity:          1000,
		Mass:             particle.R(0.5, 1.5),
		Drag:             particle.R(0.8, 1.2),
		FallDurationBase: 2.0,

		WobbleAmplitude: particle.R(5, 15),
		WobbleFrequency: particle.R(2, 5),
		WobbleDecay:     1.0,

		Size:         particle.R(2, 20),
		FadeStart:    0.8,
		FadeDuration: 0.2,

		MetallicEnabled:   false,
		MetallicIntensity: 0.1,
		ShimmerIntensity:  1.0,

		Palette: DefaultPalette(),
	}
}

// DefaultPalette white, silver, light gray and an accent blue.
func DefaultPalette() Palette {
	return Palette{
		White,
		{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF},
		{R: 0xB2, G: 0xB0, B: 0xB0, A: 0xFF},
		{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF},
	}
}

// Clone returns a deep copy; the palette backing array is not shared.
func (s Settings) Clone() Settings {
	c := s
	if s.Palette != nil {
		c.Palette = append(Palette(nil), s.Palette...)
	}
	return c
}

// MassFloor returns the normalized minimum mass, never below MinMass.
func (s Settings) MassFloor() float64 {
	return ClampMass(s.Mass.Lo())
}

// MaxLifetime 一次爆发中任意粒子可能存活的最长时间（秒）
//
// fallDurationBase + 1/massMin + dragMax*0.5 + LifetimeSafetyMargin
func (s Settings) MaxLifetime() float64 {
	return s.FallDurationBase + 1.0/s.MassFloor() + s.Drag.Hi()*0.5 + LifetimeSafetyMargin
}

// ClampMass applies the MinMass floor.
func ClampMass(m float64) float64 {
	if m < MinMass {
		return MinMass
	}
	return m
}

// Validate 检查设置是否在文档规定的取值范围内
//
// 引擎本身不依赖此检查（所有输入都会被修正），供加载工具报告可疑配置。
func (s Settings) Validate() error {
	if s.MaxTotalParticles < 0 {
		return fmt.Errorf("maxTotalParticles must be >= 0, got %d", s.MaxTotalParticles)
	}
	if s.BurstX < 0 || s.BurstX > 1 {
		return fmt.Errorf("burstX must be in [0,1], got %.3f", s.BurstX)
	}
	if s.BurstDirection < 0 || s.BurstDirection > 360 {
		return fmt.Errorf("burstDirection must be in [0,360], got %.1f", s.BurstDirection)
	}
	// festive 预设从屏幕上方以 270° 扩散，上限放宽到整圆
	if s.BurstCone < 0 || s.BurstCone > 360 {
		return fmt.Errorf("burstCone must be in [0,360], got %.1f", s.BurstCone)
	}
	if s.Mass.Lo() <= 0 {
		return fmt.Errorf("mass must be > 0, got min %.3f", s.Mass.Lo())
	}
	if s.WobbleDecay < 0 || s.WobbleDecay > 1 {
		return fmt.Errorf("wobbleDecay must be in [0,1], got %.3f", s.WobbleDecay)
	}
	if s.FadeStart < 0 || s.FadeStart > 1 {
		return fmt.Errorf("fadeStart must be in [0,1], got %.3f", s.FadeStart)
	}
	if s.FadeDuration <= 0 || s.FadeDuration > 1 {
		return fmt.Errorf("fadeDuration must be in (0,1], got %.3f", s.FadeDuration)
	}
	for name, v := range map[string]float64{
		"metallicIntensity": s.MetallicIntensity,
		"shimmerIntensity":  s.ShimmerIntensity,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %.3f", name, v)
		}
	}
	return nil
}
