package components

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/gonewx/confetti/internal/particle"
	"github.com/gonewx/confetti/pkg/config"
)

// ParticleComponent 一片彩纸的生成记录
//
// 所有字段在生成时采样一次，之后只读。粒子的运动不做逐帧积分，
// 每次渲染都由 systems.Evaluate 根据经过时间重新计算，
// 因此同一记录可以被多个渲染线程同时读取。
//
// 记录从 Emitter 生成，插入 ParticleSystem 后由其持有，直到过期或被挤出。
type ParticleComponent struct {
	ID      uuid.UUID // 唯一标识
	BurstID uint64    // 所属爆发批次（生成时写入，来自 ParticleSystem.ReserveBurst）

	// Spawn state (生成时的位置与速度，像素 / 像素每秒)
	X, Y   float64
	VX, VY float64

	// Appearance (外观)
	Color color.RGBA
	Size  float64
	Shape Shape

	// Physics (物理参数)
	Mass float64 // 质量乘数，>= config.MinMass
	Drag float64 // 阻力系数

	// Wobble (水平摆动)
	WobbleAmplitude float64 // 像素
	WobbleFrequency float64 // 弧度/秒
	WobbleDecay     float64 // 复制自设置，不采样

	// Spin (三轴旋转速度, 度/秒)
	SpinX float64
	SpinY float64
	SpinZ float64

	// Settings 生成时生效的设置，求值时读取重力、淡出与下落时间
	Settings *config.Settings

	// SpawnTime 生成时间（ParticleSystem 时钟，秒）
	SpawnTime float64
}

// Particle is the name the rest of the engine uses for a spawn record.
type Particle = ParticleComponent

// Age returns the seconds elapsed since spawn at pool time now, never negative.
func (p *ParticleComponent) Age(now float64) float64 {
	if now <= p.SpawnTime {
		return 0
	}
	return now - p.SpawnTime
}

// ShapeKind 粒子形状标签
type ShapeKind uint8

const (
	ShapeSquare ShapeKind = iota // 默认形状
	ShapeCircle
	ShapeStar
	ShapeHeart
	ShapeCustom
)

// String returns the lower-case shape name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeSquare:
		return "square"
	case ShapeCircle:
		return "circle"
	case ShapeStar:
		return "star"
	case ShapeHeart:
		return "heart"
	case ShapeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Shape 带标签的形状变体，只有 ShapeCustom 携带轮廓数据
//
// 引擎只携带形状，不解释它；绘制由渲染层根据 Kind 分派。
type Shape struct {
	Kind ShapeKind
	// Path 自定义轮廓，坐标归一化到 [0,1]x[0,1] 单位方框内
	Path []particle.Point
}

// Square is the default shape.
func Square() Shape { return Shape{Kind: ShapeSquare} }

// Circle shape.
func Circle() Shape { return Shape{Kind: ShapeCircle} }

// Star shape.
func Star() Shape { return Shape{Kind: ShapeStar} }

// Heart shape.
func Heart() Shape { return Shape{Kind: ShapeHeart} }

// CustomShape wraps a unit-box outline. The points are copied.
func CustomShape(path []particle.Point) Shape {
	return Shape{Kind: ShapeCustom, Path: append([]particle.Point(nil), path...)}
}

// ParseShape maps a shape name onto a built-in shape kind.
func ParseShape(name string) (Shape, bool) {
	switch name {
	case "square", "":
		return Square(), true
	case "circle":
		return Circle(), true
	case "star":
		return Star(), true
	case "heart":
		return Heart(), true
	default:
		return Square(), false
	}
}
