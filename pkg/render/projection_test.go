package render

import (
	"math"
	"testing"

	"github.com/gonewx/confetti/internal/particle"
	"github.com/gonewx/confetti/pkg/components"
)

func near(a, b particle.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestProjector_Identity(t *testing.T) {
	pr := NewProjector(10, components.VisualState{X: 100, Y: 50})

	tests := []struct {
		in, want particle.Point
	}{
		{particle.Point{X: 0.5, Y: 0.5}, particle.Point{X: 100, Y: 50}},
		{particle.Point{X: 0, Y: 0}, particle.Point{X: 95, Y: 45}},
		{particle.Point{X: 1, Y: 1}, particle.Point{X: 105, Y: 55}},
	}
	for _, tt := range tests {
		if got := pr.Project(tt.in); !near(got, tt.want) {
			t.Errorf("Project(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestProjector_RotateZ(t *testing.T) {
	pr := NewProjector(10, components.VisualState{RotationZ: 90})
	// (5, 0) 绕 Z 轴 90° 到 (0, 5)
	if got := pr.Project(particle.Point{X: 1, Y: 0.5}); !near(got, particle.Point{X: 0, Y: 5}) {
		t.Errorf("Project = %+v, want (0, 5)", got)
	}
}

// TestProjector_EdgeOn 绕 Y 轴 90° 时卡片侧面朝向观察者，宽度收缩为 0
func TestProjector_EdgeOn(t *testing.T) {
	pr := NewProjector(10, components.VisualState{RotationY: 90})
	for _, p := range []particle.Point{{X: 0, Y: 0.5}, {X: 1, Y: 0.5}} {
		if got := pr.Project(p); math.Abs(got.X) > 1e-9 {
			t.Errorf("Project(%+v).X = %v, want 0", p, got.X)
		}
	}

	pr = NewProjector(10, components.VisualState{RotationX: 90})
	for _, p := range []particle.Point{{X: 0.5, Y: 0}, {X: 0.5, Y: 1}} {
		if got := pr.Project(p); math.Abs(got.Y) > 1e-9 {
			t.Errorf("Project(%+v).Y = %v, want 0", p, got.Y)
		}
	}
}

func TestProjector_Perspective(t *testing.T) {
	// 绕 Y 轴旋转后两侧深度不同，透视使两侧到中心的距离不再相等
	pr := NewProjector(10, components.VisualState{RotationY: 45})
	left := pr.Project(particle.Point{X: 0, Y: 0.5})
	right := pr.Project(particle.Point{X: 1, Y: 0.5})
	if math.Abs(math.Abs(left.X)-math.Abs(right.X)) < 1e-6 {
		t.Errorf("no perspective: left=%v right=%v", left.X, right.X)
	}
}

func TestProjector_ProjectAllReuses(t *testing.T) {
	pr := NewProjector(4, components.VisualState{X: 1, Y: 1})
	buf := make([]particle.Point, 0, 8)
	out := pr.ProjectAll(buf, Outline(components.Square(), 0))
	if len(out) != 4 || cap(out) != 8 {
		t.Errorf("ProjectAll len=%d cap=%d, want 4 and reused capacity 8", len(out), cap(out))
	}
}
