// Package render 将粒子的可视状态转换为可绘制的几何数据
//
// 本包只做纯计算：形状轮廓、三轴旋转投影、金属渐变色标与三角形批处理。
// 真正的绘制调用（DrawTriangles）由 systems.RenderSystem 发起。
package render

import (
	"math"

	"github.com/gonewx/confetti/internal/particle"
	"github.com/gonewx/confetti/pkg/components"
)

// 形状参数
const (
	// StarCorners 星形的角数
	StarCorners = 5

	// StarSmoothness 内半径相对于 1/4 宽度的比例，越小越尖
	StarSmoothness = 0.45

	// DefaultSegments 圆形和心形曲线的默认分段数
	DefaultSegments = 16
)

// heartCurves 心形的四段三次贝塞尔曲线（单位方框坐标），首尾相接
//
// 每段为 {起点, 控制点1, 控制点2, 终点}。
var heartCurves = [4][4]particle.Point{
	{{X: 0.5, Y: 0.25}, {X: 0.5, Y: 0}, {X: 0, Y: 0.2}, {X: 0, Y: 0.4}},
	{{X: 0, Y: 0.4}, {X: 0, Y: 0.6}, {X: 0.5, Y: 0.8}, {X: 0.5, Y: 1}},
	{{X: 0.5, Y: 1}, {X: 0.5, Y: 0.8}, {X: 1, Y: 0.6}, {X: 1, Y: 0.4}},
	{{X: 1, Y: 0.4}, {X: 1, Y: 0.2}, {X: 0.5, Y: 0}, {X: 0.5, Y: 0.25}},
}

// Outline 返回形状在 [0,1]x[0,1] 单位方框内的闭合轮廓（不重复首点）
//
// 参数:
//   - shape: 粒子形状
//   - segments: 曲线分段数，<= 0 时使用 DefaultSegments
//
// 自定义形状的轮廓少于 3 个点时退化为方形。
func Outline(shape components.Shape, segments int) []particle.Point {
	if segments <= 0 {
		segments = DefaultSegments
	}

	switch shape.Kind {
	case components.ShapeCircle:
		return circleOutline(segments)
	case components.ShapeStar:
		return starOutline(StarCorners, StarSmoothness)
	case components.ShapeHeart:
		return heartOutline(segments)
	case components.ShapeCustom:
		if len(shape.Path) >= 3 {
			return append([]particle.Point(nil), shape.Path...)
		}
	}
	return squareOutline()
}

// Anchor 扇形三角化的中心点
//
// 星形和心形相对方框中心都是星形多边形，自定义轮廓使用顶点平均值。
func Anchor(shape components.Shape, outline []particle.Point) particle.Point {
	if shape.Kind != components.ShapeCustom || len(outline) == 0 {
		return particle.Point{X: 0.5, Y: 0.5}
	}
	var c particle.Point
	for _, p := range outline {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(outline))
	return particle.Point{X: c.X / n, Y: c.Y / n}
}

func squareOutline() []particle.Point {
	return []particle.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func circleOutline(segments int) []particle.Point {
	if segments < 3 {
		segments = 3
	}
	pts := make([]particle.Point, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = particle.Point{X: 0.5 + 0.5*math.Cos(a), Y: 0.5 + 0.5*math.Sin(a)}
	}
	return pts
}

// starOutline 外顶点与内顶点交替，从正上方开始
func starOutline(corners int, smoothness float64) []particle.Point {
	if corners < 2 {
		return squareOutline()
	}
	outer := 0.5
	inner := 0.25 * smoothness
	step := math.Pi / float64(corners)
	angle := -math.Pi / 2

	pts := make([]particle.Point, 0, corners*2)
	for i := 0; i < corners*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		pts = append(pts, particle.Point{X: 0.5 + math.Cos(angle)*r, Y: 0.5 + math.Sin(angle)*r})
		angle += step
	}
	return pts
}

func heartOutline(segments int) []particle.Point {
	perCurve := max(segments/len(heartCurves), 2)
	pts := make([]particle.Point, 0, perCurve*len(heartCurves))
	for _, c := range heartCurves {
		// 每段不包含终点，终点是下一段的起点
		for i := 0; i < perCurve; i++ {
			pts = append(pts, cubicBezier(c, float64(i)/float64(perCurve)))
		}
	}
	return pts
}

func cubicBezier(c [4]particle.Point, t float64) particle.Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return particle.Point{
		X: a*c[0].X + b*c[1].X + d*c[2].X + e*c[3].X,
		Y: a*c[0].Y + b*c[1].Y + d*c[2].Y + e*c[3].Y,
	}
}
