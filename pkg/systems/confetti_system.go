package systems

import (
	"image/color"
	"log"
	"sync"

	"github.com/gonewx/confetti/internal/particle"
	"github.com/gonewx/confetti/pkg/components"
	"github.com/gonewx/confetti/pkg/config"
)

// Drawable 渲染层需要的一帧数据：粒子记录和它当前的可视状态
type Drawable struct {
	Particle *components.Particle
	State    components.VisualState
}

// ConfettiSystem 彩纸效果入口
//
// 组合触发器、发射器与粒子池：每次触发上升沿生成一批粒子并插入粒子池，
// 每帧驱动定时移除并为渲染层计算所有存活粒子的可视状态。
//
// 设置在每次爆发时按值复制一份，之后修改不会影响已生成的粒子。
type ConfettiSystem struct {
	Emitter *Emitter
	Pool    *ParticleSystem

	mu       sync.Mutex
	settings config.Settings
	palette  []color.RGBA
	width    float64
	height   float64
	trigger  Trigger
}

// NewConfettiSystem creates a system for a screen of the given size.
func NewConfettiSystem(settings config.Settings, src particle.Source, width, height float64) *ConfettiSystem {
	return &ConfettiSystem{
		Emitter:  NewEmitter(src),
		Pool:     NewParticleSystem(),
		settings: settings.Clone(),
		width:    width,
		height:   height,
	}
}

// Settings returns a copy of the settings used for the next burst.
func (cs *ConfettiSystem) Settings() config.Settings {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.settings.Clone()
}

// SetSettings replaces the settings for later bursts.
func (cs *ConfettiSystem) SetSettings(settings config.Settings) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.settings = settings.Clone()
}

// SetPalette 设置覆盖调色板，nil 恢复使用设置中的调色板
func (cs *ConfettiSystem) SetPalette(palette []color.RGBA) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.palette = append([]color.RGBA(nil), palette...)
}

// SetScreenSize updates the burst origin scale and the bottom clamp.
func (cs *ConfettiSystem) SetScreenSize(width, height float64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.width = width
	cs.height = height
}

// Update 每帧调用：触发信号上升沿时爆发一次，并执行到期的定时移除
//
// 返回本帧新批次编号（未爆发时为 0）。
func (cs *ConfettiSystem) Update(now float64, trigger bool) BurstID {
	var id BurstID
	if cs.trigger.Observe(trigger) {
		id = cs.Burst(now, nil)
	}
	cs.Pool.Tick(now)
	return id
}

// Burst 立即爆发一次
//
// palette 非空时只对本次爆发生效，优先于 SetPalette 与设置中的调色板。
func (cs *ConfettiSystem) Burst(now float64, palette []color.RGBA) BurstID {
	// 随机源不是并发安全的，发射在锁内进行
	cs.mu.Lock()
	defer cs.mu.Unlock()

	settings := cs.settings.Clone()
	if settings.ParticleCount <= 0 {
		return 0
	}
	if len(palette) == 0 {
		palette = cs.palette
	}

	burst := cs.Pool.ReserveBurst()
	if burst == 0 {
		return 0
	}
	records := cs.Emitter.EmitBurst(&settings, BurstOrigin(&settings, cs.width), palette, burst, now)
	id := cs.Pool.AdmitBurst(now, &settings, records)
	if cs.Pool.Verbose {
		log.Printf("[ConfettiSystem] Burst %d: %d particles, %d live", id, len(records), cs.Pool.Len())
	}
	return id
}

// Visuals 计算所有存活粒子在 now 时刻的可视状态（按插入顺序）
//
// 完全透明的粒子被跳过。
func (cs *ConfettiSystem) Visuals(now float64) []Drawable {
	cs.mu.Lock()
	height := cs.height
	cs.mu.Unlock()

	live := cs.Pool.LiveParticles()
	out := make([]Drawable, 0, len(live))
	for _, p := range live {
		state := EvaluateWithin(p, p.Age(now), height)
		if !state.Visible() {
			continue
		}
		out = append(out, Drawable{Particle: p, State: state})
	}
	return out
}

// Clear removes every particle.
func (cs *ConfettiSystem) Clear() {
	cs.Pool.Clear()
}

// Close tears the pool down.
func (cs *ConfettiSystem) Close() {
	cs.Pool.Close()
}
