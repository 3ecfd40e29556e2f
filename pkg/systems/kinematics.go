package systems

import (
	"math"

	"github.com/gonewx/confetti/pkg/components"
	"github.com/gonewx/confetti/pkg/config"
)

// 运动学调参常量
//
// 这些系数是视觉调校值，不是物理推导结果，保持原值。
const (
	horizontalDecel      = 0.9  // 下落结束时水平速度衰减的比例
	horizontalVelocity   = 0.15 // 水平初速度缩放
	verticalVelocity     = 0.3  // 垂直初速度缩放
	gravityScale         = 0.8  // 重力项缩放
	rotationDecel        = 0.3  // 下落结束时旋转衰减的比例
	metallicBase         = 0.7  // 金属亮度下限
	metallicRange        = 0.3  // 金属亮度随朝向变化的幅度
	dragFallContribution = 0.5  // 阻力对下落时间的贡献

	// ScreenClampMargin 纵坐标最多超出屏幕底部的像素数
	ScreenClampMargin = 100.0
)

// glint windows on |rotY| mod 360, exclusive bounds (degrees).
var glintWindows = [2][2]float64{{85, 95}, {265, 275}}

// FallDuration 粒子自身的下落时间（秒）
//
// fallDurationBase + 1/mass + drag*0.5
func FallDuration(p *components.Particle) float64 {
	return p.Settings.FallDurationBase + 1.0/config.ClampMass(p.Mass) + p.Drag*dragFallContribution
}

// Progress 经过时间 t 对应的下落进度 [0,1]
func Progress(p *components.Particle, t float64) float64 {
	fall := FallDuration(p)
	if fall <= 0 {
		return 1
	}
	return clamp01(t / fall)
}

// Evaluate 计算粒子在生成后 t 秒时的可视状态
//
// 纯函数：只读取不可变的粒子记录和它引用的设置，可在任意线程、任意时刻调用。
// t < 0 按 0 处理；超过下落时间后运动时间停在下落时间处，进度为 1、透明度为 0。
func Evaluate(p *components.Particle, t float64) components.VisualState {
	if t < 0 {
		t = 0
	}
	s := p.Settings

	fall := FallDuration(p)
	progress := 1.0
	if fall > 0 {
		progress = clamp01(t / fall)
	}
	// 运动时间在下落结束时饱和
	t = progress * fall
	if fall <= 0 {
		t = 0
	}

	// Horizontal: decelerating drift plus decaying wobble
	xDecel := 1.0 - progress*horizontalDecel
	wobble := math.Sin(t*p.WobbleFrequency) * p.WobbleAmplitude * (1.0 - progress*p.WobbleDecay)
	x := p.X + p.VX*t*xDecel*horizontalVelocity + wobble

	// Vertical: scaled launch velocity plus scaled gravity
	y := p.Y + p.VY*t*verticalVelocity + 0.5*s.Gravity*t*t*p.Mass*gravityScale

	rotationDecay := 1.0 - progress*rotationDecel
	rotX := p.SpinX * t * rotationDecay
	rotY := p.SpinY * t * rotationDecay
	rotZ := p.SpinZ * t * rotationDecay

	state := components.VisualState{
		X:          x,
		Y:          y,
		RotationX:  rotX,
		RotationY:  rotY,
		RotationZ:  rotZ,
		Opacity:    Opacity(progress, s.FadeStart, s.FadeDuration),
		Brightness: 1.0,
		Progress:   progress,
	}

	if s.MetallicEnabled {
		state.Brightness = MetallicBrightness(rotX, rotY)
		state.Glint = s.ShimmerIntensity > 0 && IsGlintAngle(rotY)
	}
	return state
}

// EvaluateWithin 与 Evaluate 相同，但纵坐标不超过 screenHeight+100
func EvaluateWithin(p *components.Particle, t, screenHeight float64) components.VisualState {
	state := Evaluate(p, t)
	if limit := screenHeight + ScreenClampMargin; state.Y > limit {
		state.Y = limit
	}
	return state
}

// Opacity 线性淡出
//
// progress < fadeStart 时为 1；之后在 fadeDuration 的进度内线性降到 0；
// fadeDuration <= 0 时到达 fadeStart 立即为 0。
func Opacity(progress, fadeStart, fadeDuration float64) float64 {
	if progress < fadeStart {
		return 1.0
	}
	if fadeDuration <= 0 || progress >= fadeStart+fadeDuration {
		return 0
	}
	return clamp01(1.0 - (progress-fadeStart)/fadeDuration)
}

// MetallicBrightness 根据 X/Y 轴旋转（度）估算反光亮度 [0.7, 1.0]
func MetallicBrightness(rotX, rotY float64) float64 {
	return metallicBase + RotationFactor(rotX, rotY)*metallicRange
}

// RotationFactor |cos(rotY)|*|cos(rotX)|，1 表示正面朝向观察者
func RotationFactor(rotX, rotY float64) float64 {
	return math.Abs(math.Cos(rotY*math.Pi/180)) * math.Abs(math.Cos(rotX*math.Pi/180))
}

// IsGlintAngle reports whether |rotY| mod 360 falls inside a glint window.
func IsGlintAngle(rotY float64) bool {
	angle := math.Mod(math.Abs(rotY), 360)
	for _, w := range glintWindows {
		if angle > w[0] && angle < w[1] {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
