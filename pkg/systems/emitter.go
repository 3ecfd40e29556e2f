package systems

import (
	"image/color"
	"math"

	"github.com/google/uuid"

	"github.com/gonewx/confetti/internal/particle"
	"github.com/gonewx/confetti/pkg/components"
	"github.com/gonewx/confetti/pkg/config"
)

// 发射参数常量
const (
	// SpawnJitterX 生成位置的水平抖动范围 [-20, 20] 像素
	SpawnJitterX = 20.0

	// SpinXYMax X/Y 轴旋转速度范围 [-360, 360] 度/秒
	SpinXYMax = 360.0

	// SpinZMax Z 轴旋转速度范围 [-180, 180] 度/秒
	SpinZMax = 180.0
)

// Emitter 根据设置随机生成一批粒子记录
//
// Emitter 本身不持有粒子，也没有副作用；随机源与 ID 生成器可注入，
// 固定种子时同一设置产生同一批粒子（ID 除外，除非同时注入 NewID）。
type Emitter struct {
	// Source 随机源，nil 时使用 particle.DefaultSource
	Source particle.Source

	// NewID ID 生成器，nil 时使用 uuid.New
	NewID func() uuid.UUID

	// Shape 生成粒子的形状，零值为方形
	Shape components.Shape
}

// NewEmitter creates an Emitter drawing from src.
func NewEmitter(src particle.Source) *Emitter {
	return &Emitter{Source: src}
}

// Emit 生成 settings.ParticleCount 个粒子记录
//
// 参数:
//   - settings: 本次爆发使用的设置，粒子保存其指针
//   - origin: 爆发中心（像素）
//   - palette: 覆盖调色板，为空时使用 settings.Palette
//
// 返回:
//   - 新粒子记录；ParticleCount <= 0 时返回 nil
func (e *Emitter) Emit(settings *config.Settings, origin particle.Point, palette []color.RGBA) []*components.Particle {
	return e.EmitBurst(settings, origin, palette, 0, 0)
}

// EmitBurst 与 Emit 相同，并在创建时写入批次编号与生成时刻
//
// burst 通常来自 ParticleSystem.ReserveBurst，spawnTime 为粒子池时钟（秒）。
func (e *Emitter) EmitBurst(settings *config.Settings, origin particle.Point, palette []color.RGBA, burst BurstID, spawnTime float64) []*components.Particle {
	if settings == nil || settings.ParticleCount <= 0 {
		return nil
	}

	src := e.source()
	if len(palette) == 0 {
		palette = settings.Palette
	}

	directionRad := settings.BurstDirection * math.Pi / 180
	coneRad := settings.BurstCone * math.Pi / 180
	speed := settings.Speed.Normalized()

	particles := make([]*components.Particle, 0, settings.ParticleCount)
	for i := 0; i < settings.ParticleCount; i++ {
		finalAngle := directionRad + particle.RandomInRange(src, -coneRad/2, coneRad/2)
		burstSpeed := speed.Sample(src)

		particles = append(particles, &components.Particle{
			ID:              e.id(),
			BurstID:         burst,
			X:               origin.X + particle.RandomInRange(src, -SpawnJitterX, SpawnJitterX),
			Y:               origin.Y,
			VX:              math.Cos(finalAngle) * burstSpeed,
			VY:              math.Sin(finalAngle) * burstSpeed,
			Color:           particle.PickColor(src, palette, config.White),
			Size:            settings.Size.Sample(src),
			Shape:           e.Shape,
			Mass:            config.ClampMass(settings.Mass.Sample(src)),
			Drag:            settings.Drag.Sample(src),
			WobbleAmplitude: settings.WobbleAmplitude.Sample(src),
			WobbleFrequency: settings.WobbleFrequency.Sample(src),
			WobbleDecay:     settings.WobbleDecay,
			SpinX:           particle.RandomInRange(src, -SpinXYMax, SpinXYMax),
			SpinY:           particle.RandomInRange(src, -SpinXYMax, SpinXYMax),
			SpinZ:           particle.RandomInRange(src, -SpinZMax, SpinZMax),
			Settings:        settings,
			SpawnTime:       spawnTime,
		})
	}
	return particles
}

// BurstOrigin 将设置中的归一化横坐标换算为屏幕像素
func BurstOrigin(settings *config.Settings, screenWidth float64) particle.Point {
	return particle.Point{X: screenWidth * settings.BurstX, Y: settings.BurstY}
}

func (e *Emitter) source() particle.Source {
	if e.Source == nil {
		return particle.DefaultSource
	}
	return e.Source
}

func (e *Emitter) id() uuid.UUID {
	if e.NewID == nil {
		return uuid.New()
	}
	return e.NewID()
}
