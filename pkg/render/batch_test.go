package render

import (
	"testing"

	"github.com/gonewx/confetti/internal/particle"
	"github.com/gonewx/confetti/pkg/components"
)

func TestBatch_AddPolygon(t *testing.T) {
	b := NewBatch(4)
	b.SrcX, b.SrcY = 1, 1

	unit := Outline(components.Star(), 0)
	pr := NewProjector(10, components.VisualState{X: 50, Y: 50})
	if !b.AddPolygon(unit, Anchor(components.Star(), unit), pr, MetallicGradient(gold, 1, 0), 1, 0, 0) {
		t.Fatal("AddPolygon rejected a star")
	}

	if got, want := b.Len(), len(unit)+1; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	if got, want := len(b.Indices), len(unit)*3; got != want {
		t.Errorf("indices = %d, want %d", got, want)
	}
	for i, idx := range b.Indices {
		if int(idx) >= b.Len() {
			t.Fatalf("index %d = %d out of range", i, idx)
		}
	}
	// 扇形中心在粒子位置
	if c := b.Vertices[0]; c.DstX != 50 || c.DstY != 50 || c.SrcX != 1 {
		t.Errorf("anchor vertex = %+v", c)
	}
}

func TestBatch_ShadowOffset(t *testing.T) {
	b := NewBatch(1)
	unit := Outline(components.Square(), 0)
	pr := NewProjector(2, components.VisualState{})
	b.AddPolygon(unit, particle.Point{X: 0.5, Y: 0.5}, pr, Shadow{Alpha: 0.2}.Gradient(), 1, 3, 4)
	if c := b.Vertices[0]; c.DstX != 3 || c.DstY != 4 {
		t.Errorf("offset anchor = (%v, %v), want (3, 4)", c.DstX, c.DstY)
	}
	if c := b.Vertices[0]; c.ColorR != 0 || c.ColorA != 0.2 {
		t.Errorf("shadow colour = (%v, %v), want black at 0.2", c.ColorR, c.ColorA)
	}
}

func TestBatch_RejectsAndResets(t *testing.T) {
	b := NewBatch(1)
	pr := NewProjector(1, components.VisualState{})
	if b.AddPolygon([]particle.Point{{}, {}}, particle.Point{}, pr, GlintGradient(1), 1, 0, 0) {
		t.Error("AddPolygon accepted a two-point outline")
	}

	unit := Outline(components.Square(), 0)
	b.AddPolygon(unit, particle.Point{X: 0.5, Y: 0.5}, pr, GlintGradient(1), 1, 0, 0)
	b.Reset()
	if b.Len() != 0 || len(b.Indices) != 0 {
		t.Errorf("Reset left %d vertices and %d indices", b.Len(), len(b.Indices))
	}
}

func TestBatch_Fits(t *testing.T) {
	b := NewBatch(0)
	if !b.Fits(MaxBatchVertices - 1) {
		t.Error("an empty batch should fit MaxBatchVertices-1 outline points")
	}
	if b.Fits(MaxBatchVertices) {
		t.Error("outline plus anchor beyond MaxBatchVertices should not fit")
	}
}
