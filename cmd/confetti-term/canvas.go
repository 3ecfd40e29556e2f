package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/confetti/pkg/components"
	"github.com/gonewx/confetti/pkg/systems"
)

// 单元格对应的逻辑像素尺寸（字符大约是 1:2 的竖长方形）
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// Canvas 把逻辑像素坐标映射到终端单元格
//
// 粒子系统工作在 cols*8 x rows*16 的逻辑屏幕上，与图形查看器保持相同的速度和重力尺度。
type Canvas struct {
	Cols, Rows int
}

// NewCanvas creates a canvas for a terminal of the given size.
func NewCanvas(cols, rows int) Canvas {
	return Canvas{Cols: cols, Rows: rows}
}

// Width returns the logical width in pixels.
func (c Canvas) Width() float64 { return float64(c.Cols) * cellWidth }

// Height returns the logical height in pixels.
func (c Canvas) Height() float64 { return float64(c.Rows) * cellHeight }

// Cell 一个粒子在终端上的显示
type Cell struct {
	X, Y  int
	Rune  rune
	Style tcell.Style
}

// CellFor 计算粒子对应的单元格；落在屏幕外时返回 false
func (c Canvas) CellFor(d systems.Drawable) (Cell, bool) {
	x := int(math.Floor(d.State.X / cellWidth))
	y := int(math.Floor(d.State.Y / cellHeight))
	if x < 0 || x >= c.Cols || y < 0 || y >= c.Rows {
		return Cell{}, false
	}

	fg := shade(d)
	style := tcell.StyleDefault.Foreground(fg)
	if d.State.Glint {
		style = style.Bold(true)
	}
	return Cell{X: x, Y: y, Rune: glyph(d), Style: style}, true
}

// Draw 绘制一帧，后绘制的粒子覆盖先绘制的
func (c Canvas) Draw(screen tcell.Screen, frame []systems.Drawable) {
	for _, d := range frame {
		if cell, ok := c.CellFor(d); ok {
			screen.SetContent(cell.X, cell.Y, cell.Rune, nil, cell.Style)
		}
	}
}

// glyph 按形状选择字符；卡片侧对观察者时用细字符表现翻转
func glyph(d systems.Drawable) rune {
	if systems.RotationFactor(d.State.RotationX, d.State.RotationY) < 0.25 {
		return '|'
	}
	switch d.Particle.Shape.Kind {
	case components.ShapeCircle:
		return '●'
	case components.ShapeStar:
		return '★'
	case components.ShapeHeart:
		return '♥'
	case components.ShapeCustom:
		return '◆'
	default:
		return '■'
	}
}

// shade 终端没有透明度：按不透明度与亮度向背景（黑色）混合
func shade(d systems.Drawable) tcell.Color {
	base, ok := colorful.MakeColor(d.Particle.Color)
	if !ok {
		return tcell.ColorDefault
	}
	if d.State.Glint {
		base = base.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, 0.6)
	}
	k := math.Max(0, math.Min(1, d.State.Opacity*d.State.Brightness))
	faded := colorful.Color{}.BlendRgb(base, k).Clamped()
	r, g, b := faded.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
