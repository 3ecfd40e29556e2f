package systems

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/confetti/internal/particle"
	"github.com/gonewx/confetti/pkg/components"
	"github.com/gonewx/confetti/pkg/render"
)

// RenderSystem 彩纸绘制系统
//
// 每帧把 ConfettiSystem.Visuals 的结果批量绘制到屏幕：
//  1. 阴影（偏移的黑色轮廓）
//  2. 本体（金属渐变或纯色）
//  3. 高光（Glint 为真时叠加的白色渐变）
//
// 所有多边形共享一个纯白像素作为纹理，顶点颜色携带全部颜色信息，
// 因此一帧通常只需要一次 DrawTriangles 调用。
type RenderSystem struct {
	// Segments 圆形与心形的曲线分段数
	Segments int

	// Shadows 是否绘制投影阴影
	Shadows bool

	batch    *render.Batch
	white    *ebiten.Image
	outlines map[components.ShapeKind][]particle.Point
}

// NewRenderSystem 创建绘制系统，预分配 capacity 个粒子的顶点缓冲
func NewRenderSystem(capacity int) *RenderSystem {
	return &RenderSystem{
		Segments: render.DefaultSegments,
		Shadows:  true,
		batch:    render.NewBatch(capacity * 3),
		outlines: make(map[components.ShapeKind][]particle.Point),
	}
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image, frame []Drawable) {
	if len(frame) == 0 {
		return
	}
	s.ensureWhite()

	s.batch.Reset()
	if s.Shadows {
		for _, d := range frame {
			s.add(screen, d, layerShadow)
		}
	}
	for _, d := range frame {
		s.add(screen, d, layerBody)
	}
	for _, d := range frame {
		if d.State.Glint {
			s.add(screen, d, layerGlint)
		}
	}
	s.flush(screen)
}

type layer uint8

const (
	layerShadow layer = iota
	layerBody
	layerGlint
)

// buildLayer 把一个粒子的某一层写入批处理缓冲
//
// 缓冲满时返回 false，Draw 会刷新后重试。
func (s *RenderSystem) buildLayer(d Drawable, l layer) bool {
	p, st := d.Particle, d.State
	settings := p.Settings

	unit := s.outline(p.Shape)
	anchor := render.Anchor(p.Shape, unit)
	pr := render.NewProjector(p.Size, st)

	metallic := settings != nil && settings.MetallicEnabled

	switch l {
	case layerShadow:
		sh := render.ShadowFor(st.RotationX, st.RotationY, RotationFactor(st.RotationX, st.RotationY), metallic)
		return s.batch.AddPolygon(unit, anchor, pr, sh.Gradient(), st.Opacity, sh.DX, sh.DY)
	case layerGlint:
		return s.batch.AddPolygon(unit, anchor, pr, render.GlintGradient(settings.ShimmerIntensity), st.Opacity, 0, 0)
	default:
		intensity := 0.0
		if metallic {
			intensity = settings.MetallicIntensity
		}
		g := render.MetallicGradient(p.Color, st.Brightness, intensity)
		return s.batch.AddPolygon(unit, anchor, pr, g, st.Opacity, 0, 0)
	}
}

func (s *RenderSystem) add(screen *ebiten.Image, d Drawable, l layer) {
	if l == layerGlint && d.Particle.Settings == nil {
		return
	}
	if s.buildLayer(d, l) {
		return
	}
	// 缓冲已满：先绘制已有内容再重试一次
	s.flush(screen)
	s.buildLayer(d, l)
}

func (s *RenderSystem) flush(screen *ebiten.Image) {
	if s.batch.Len() == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	screen.DrawTriangles(s.batch.Vertices, s.batch.Indices, s.white, op)
	s.batch.Reset()
}

func (s *RenderSystem) outline(shape components.Shape) []particle.Point {
	if shape.Kind == components.ShapeCustom {
		return render.Outline(shape, s.Segments)
	}
	if pts, ok := s.outlines[shape.Kind]; ok {
		return pts
	}
	pts := render.Outline(shape, s.Segments)
	s.outlines[shape.Kind] = pts
	return pts
}

// ensureWhite 创建 3x3 白色图片并取中心像素作为纹理，避免边缘采样
func (s *RenderSystem) ensureWhite() {
	if s.white != nil {
		return
	}
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	s.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	s.batch.SrcX, s.batch.SrcY = 1, 1
}
