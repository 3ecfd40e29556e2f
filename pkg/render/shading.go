package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// 金属渐变与阴影参数
const (
	lightBoost    = 0.2 // 亮色标相对亮度的提升比例
	darkCut       = 0.3 // 暗色标相对亮度的降低比例
	darkFloor     = 0.3 // 暗色标不透明度下限
	glintStrength = 0.6 // 高光不透明度相对 shimmerIntensity 的比例
)

// Stop 渐变色标，颜色为非预乘的线性 sRGB 分量
type Stop struct {
	Color colorful.Color
	Alpha float64
}

// Gradient 从左上到右下的三色标渐变：起点、中点、终点
type Gradient [3]Stop

// At 返回渐变在 t ∈ [0,1] 处的颜色
func (g Gradient) At(t float64) Stop {
	t = math.Max(0, math.Min(1, t))
	a, b, f := g[0], g[1], t*2
	if t > 0.5 {
		a, b, f = g[1], g[2], (t-0.5)*2
	}
	return Stop{
		Color: a.Color.BlendRgb(b.Color, f),
		Alpha: a.Alpha + (b.Alpha-a.Alpha)*f,
	}
}

// Premultiplied 返回乘以 opacity 后的预乘 RGBA 分量，可直接写入顶点颜色
func (s Stop) Premultiplied(opacity float64) (r, g, b, a float32) {
	alpha := math.Max(0, math.Min(1, s.Alpha*opacity))
	return float32(s.Color.R * alpha), float32(s.Color.G * alpha), float32(s.Color.B * alpha), float32(alpha)
}

// MetallicGradient 基础颜色的金属渐变
//
// intensity 为 0 时是不透明度为 brightness 的纯色；否则三个色标的不透明度为
// min(1, b*(1+0.2i))、b、max(0.3, b*(1-0.3i))。基础颜色自身的透明度会叠乘进去。
func MetallicGradient(base color.RGBA, brightness, intensity float64) Gradient {
	c, alpha := splitColor(base)
	if intensity == 0 {
		s := Stop{Color: c, Alpha: alpha * brightness}
		return Gradient{s, s, s}
	}
	light := math.Min(1, brightness*(1+lightBoost*intensity))
	dark := math.Max(darkFloor, brightness*(1-darkCut*intensity))
	return Gradient{
		{Color: c, Alpha: alpha * light},
		{Color: c, Alpha: alpha * brightness},
		{Color: c, Alpha: alpha * dark},
	}
}

// GlintGradient 白色高光条：透明 → shimmer*0.6 → 透明
func GlintGradient(shimmer float64) Gradient {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return Gradient{
		{Color: white},
		{Color: white, Alpha: shimmer * glintStrength},
		{Color: white},
	}
}

// Shadow 投影阴影的不透明度与偏移
type Shadow struct {
	Alpha  float64
	DX, DY float64
}

// ShadowFor 计算阴影；未启用金属效果时为固定的浅阴影
//
// rotationFactor 见 systems.RotationFactor。
func ShadowFor(rotX, rotY, rotationFactor float64, metallic bool) Shadow {
	if !metallic {
		return Shadow{Alpha: 0.2, DX: 0, DY: 1}
	}
	rad := math.Pi / 180
	return Shadow{
		Alpha: 0.3 * (1 - rotationFactor),
		DX:    math.Sin(rotY*rad) * 2,
		DY:    2 - math.Cos(rotX*rad)*2,
	}
}

// Gradient returns a flat black fill at the shadow alpha.
func (s Shadow) Gradient() Gradient {
	st := Stop{Color: colorful.Color{}, Alpha: s.Alpha}
	return Gradient{st, st, st}
}

// splitColor 拆出非预乘颜色与透明度；完全透明的颜色返回黑色和 0
func splitColor(c color.RGBA) (colorful.Color, float64) {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return colorful.Color{}, 0
	}
	return cf, float64(c.A) / 255
}
