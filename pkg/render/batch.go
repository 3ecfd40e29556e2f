package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/confetti/internal/particle"
)

// MaxBatchVertices uint16 索引能寻址的顶点上限
const MaxBatchVertices = 1<<16 - 1

// Batch 复用的顶点 / 索引缓冲
//
// 每个多边形以锚点为中心做扇形三角化。顶点颜色按渐变沿左上 → 右下方向插值，
// 纹理坐标全部指向同一个纯白像素（SrcX/SrcY 由调用方设定）。
type Batch struct {
	Vertices []ebiten.Vertex
	Indices  []uint16

	// SrcX, SrcY 白色像素的纹理坐标
	SrcX, SrcY float32
}

// NewBatch 创建批处理缓冲，预分配 capacity 个多边形（按 16 边估算）
func NewBatch(capacity int) *Batch {
	return &Batch{
		Vertices: make([]ebiten.Vertex, 0, capacity*17),
		Indices:  make([]uint16, 0, capacity*48),
	}
}

// Reset 清空缓冲，保留容量
func (b *Batch) Reset() {
	b.Vertices = b.Vertices[:0]
	b.Indices = b.Indices[:0]
}

// Len returns the number of buffered vertices.
func (b *Batch) Len() int { return len(b.Vertices) }

// Fits 报告再加入 n 个轮廓点的多边形后是否仍在索引范围内
func (b *Batch) Fits(n int) bool {
	return len(b.Vertices)+n+1 <= MaxBatchVertices
}

// AddPolygon 加入一个多边形
//
// 参数:
//   - unit: 单位方框内的轮廓（决定渐变位置）
//   - anchor: 单位方框内的扇形中心
//   - pr: 屏幕投影
//   - g: 渐变
//   - opacity: 整体不透明度
//   - dx, dy: 额外的屏幕偏移（阴影）
//
// 缓冲已满或轮廓少于 3 个点时返回 false，调用方应先 Flush。
func (b *Batch) AddPolygon(unit []particle.Point, anchor particle.Point, pr Projector, g Gradient, opacity, dx, dy float64) bool {
	if len(unit) < 3 || !b.Fits(len(unit)) {
		return false
	}

	base := uint16(len(b.Vertices))
	b.Vertices = append(b.Vertices, b.vertex(anchor, pr, g, opacity, dx, dy))
	for _, p := range unit {
		b.Vertices = append(b.Vertices, b.vertex(p, pr, g, opacity, dx, dy))
	}

	n := uint16(len(unit))
	for i := uint16(0); i < n; i++ {
		next := (i+1)%n + 1
		b.Indices = append(b.Indices, base, base+i+1, base+next)
	}
	return true
}

func (b *Batch) vertex(p particle.Point, pr Projector, g Gradient, opacity, dx, dy float64) ebiten.Vertex {
	s := pr.Project(p)
	r, gg, bb, a := g.At((p.X + p.Y) / 2).Premultiplied(opacity)
	return ebiten.Vertex{
		DstX:   float32(s.X + dx),
		DstY:   float32(s.Y + dy),
		SrcX:   b.SrcX,
		SrcY:   b.SrcY,
		ColorR: r,
		ColorG: gg,
		ColorB: bb,
		ColorA: a,
	}
}
