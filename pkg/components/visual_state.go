package components

// VisualState 某一时刻粒子的可视状态，由 systems.Evaluate 计算
type VisualState struct {
	// Position (屏幕坐标, 像素)
	X, Y float64

	// Rotation (三轴旋转角度, 度)
	RotationX float64
	RotationY float64
	RotationZ float64

	// Opacity 透明度 [0,1]
	Opacity float64

	// Brightness 金属光泽亮度；未启用金属效果时为 1.0
	Brightness float64

	// Glint 正对光源的瞬间高光
	Glint bool

	// Progress 下落进度 [0,1]
	Progress float64
}

// Visible reports whether the particle still contributes to the frame.
func (v VisualState) Visible() bool {
	return v.Opacity > 0
}
