package render

import (
	"math"

	"github.com/gonewx/confetti/internal/particle"
	"github.com/gonewx/confetti/pkg/components"
)

// Perspective 透视强度，深度按粒子尺寸归一化
const Perspective = 0.5

// Projector 把单位方框内的轮廓点变换到屏幕坐标
//
// 变换顺序：以方框中心为原点缩放到粒子尺寸 → 绕 X 轴 → 绕 Y 轴 → 绕 Z 轴 →
// 透视 → 平移到粒子位置。三角函数在 NewProjector 中只计算一次。
type Projector struct {
	size       float64
	cx, cy     float64
	sinX, cosX float64
	sinY, cosY float64
	sinZ, cosZ float64
}

// NewProjector creates the transform for one particle in one frame.
func NewProjector(size float64, state components.VisualState) Projector {
	rad := math.Pi / 180
	sx, cx := math.Sincos(state.RotationX * rad)
	sy, cy := math.Sincos(state.RotationY * rad)
	sz, cz := math.Sincos(state.RotationZ * rad)
	return Projector{
		size: size,
		cx:   state.X, cy: state.Y,
		sinX: sx, cosX: cx,
		sinY: sy, cosY: cy,
		sinZ: sz, cosZ: cz,
	}
}

// Project 变换单个单位方框坐标
func (pr Projector) Project(p particle.Point) particle.Point {
	x := (p.X - 0.5) * pr.size
	y := (p.Y - 0.5) * pr.size

	// X 轴（翻转上下）
	y, z := y*pr.cosX, y*pr.sinX
	// Y 轴（翻转左右）
	x, z = x*pr.cosY+z*pr.sinY, -x*pr.sinY+z*pr.cosY
	// Z 轴（平面内旋转）
	x, y = x*pr.cosZ-y*pr.sinZ, x*pr.sinZ+y*pr.cosZ

	if pr.size > 0 {
		depth := 1 + z*Perspective/pr.size
		if depth > 0.1 {
			x /= depth
			y /= depth
		}
	}
	return particle.Point{X: pr.cx + x, Y: pr.cy + y}
}

// ProjectAll transforms an outline into dst, reusing its capacity.
func (pr Projector) ProjectAll(dst, outline []particle.Point) []particle.Point {
	dst = dst[:0]
	for _, p := range outline {
		dst = append(dst, pr.Project(p))
	}
	return dst
}
