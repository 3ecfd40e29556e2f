package systems

import (
	"image/color"
	"testing"

	"github.com/gonewx/confetti/internal/particle"
	"github.com/gonewx/confetti/pkg/config"
)

func newTestConfetti(count int) *ConfettiSystem {
	s := config.DefaultSettings()
	s.ParticleCount = count
	return NewConfettiSystem(s, particle.NewSource(3), 800, 600)
}

func TestConfettiSystem_UpdateFiresOnEdge(t *testing.T) {
	cs := newTestConfetti(25)
	defer cs.Close()

	if id := cs.Update(0, true); id != 1 {
		t.Fatalf("first rising edge BurstID = %d, want 1", id)
	}
	if id := cs.Update(0.1, true); id != 0 {
		t.Errorf("held trigger fired burst %d", id)
	}
	cs.Update(0.2, false)
	if id := cs.Update(0.3, true); id != 2 {
		t.Errorf("second rising edge BurstID = %d, want 2", id)
	}
	if got := cs.Pool.Len(); got != 50 {
		t.Errorf("Pool.Len() = %d, want 50", got)
	}
}

func TestConfettiSystem_UpdateExpires(t *testing.T) {
	cs := newTestConfetti(10)
	defer cs.Close()

	cs.Update(0, true)
	lifetime := cs.Settings().MaxLifetime()

	cs.Update(lifetime-0.01, false)
	if cs.Pool.Len() != 10 {
		t.Fatalf("particles expired early: Len() = %d", cs.Pool.Len())
	}
	cs.Update(lifetime, false)
	if cs.Pool.Len() != 0 {
		t.Errorf("particles not expired at lifetime: Len() = %d", cs.Pool.Len())
	}
}

// TestConfettiSystem_BurstStampsAtEmission 粒子记录在生成时就带有批次编号与生成时刻
func TestConfettiSystem_BurstStampsAtEmission(t *testing.T) {
	cs := newTestConfetti(12)
	defer cs.Close()

	id := cs.Burst(3.25, nil)
	if id == 0 {
		t.Fatal("Burst() = 0, want a burst id")
	}
	for i, p := range cs.Pool.LiveParticles() {
		if p.BurstID != id || p.SpawnTime != 3.25 {
			t.Fatalf("record %d: BurstID=%d SpawnTime=%v, want %d and 3.25", i, p.BurstID, p.SpawnTime, id)
		}
	}
}

func TestConfettiSystem_BurstOrigin(t *testing.T) {
	s := config.DefaultSettings()
	s.ParticleCount = 30
	s.BurstX = 0.25
	s.BurstY = 100
	cs := NewConfettiSystem(s, particle.NewSource(8), 800, 600)
	defer cs.Close()

	cs.Burst(0, nil)
	for _, p := range cs.Pool.LiveParticles() {
		if p.X < 200-SpawnJitterX || p.X > 200+SpawnJitterX || p.Y != 100 {
			t.Fatalf("spawn (%v, %v) not around (200, 100)", p.X, p.Y)
		}
	}
}

// TestConfettiSystem_SettingsSnapshot 已生成的粒子不受之后的设置修改影响
func TestConfettiSystem_SettingsSnapshot(t *testing.T) {
	cs := newTestConfetti(5)
	defer cs.Close()

	cs.Burst(0, nil)
	updated := cs.Settings()
	updated.Gravity = 1
	updated.ParticleCount = 7
	cs.SetSettings(updated)
	cs.Burst(1, nil)

	live := cs.Pool.LiveParticles()
	if len(live) != 12 {
		t.Fatalf("Len() = %d, want 12", len(live))
	}
	if live[0].Settings.Gravity != config.DefaultSettings().Gravity {
		t.Errorf("first burst gravity = %v, want original", live[0].Settings.Gravity)
	}
	if live[11].Settings.Gravity != 1 {
		t.Errorf("second burst gravity = %v, want 1", live[11].Settings.Gravity)
	}
}

func TestConfettiSystem_PaletteOverride(t *testing.T) {
	green := color.RGBA{G: 255, A: 255}
	pink := color.RGBA{R: 255, B: 128, A: 255}

	cs := newTestConfetti(20)
	defer cs.Close()

	cs.SetPalette([]color.RGBA{green})
	cs.Burst(0, nil)
	cs.Burst(0, []color.RGBA{pink})

	live := cs.Pool.LiveParticles()
	for _, p := range live[:20] {
		if p.Color != green {
			t.Fatalf("SetPalette color = %v, want %v", p.Color, green)
		}
	}
	for _, p := range live[20:] {
		if p.Color != pink {
			t.Fatalf("per-burst palette color = %v, want %v", p.Color, pink)
		}
	}
}

func TestConfettiSystem_ZeroCount(t *testing.T) {
	cs := newTestConfetti(0)
	defer cs.Close()
	if id := cs.Burst(0, nil); id != 0 {
		t.Errorf("Burst with zero count = %d, want 0", id)
	}
}

func TestConfettiSystem_Visuals(t *testing.T) {
	cs := newTestConfetti(15)
	defer cs.Close()
	cs.Burst(0, nil)

	frame := cs.Visuals(0.5)
	if len(frame) != 15 {
		t.Fatalf("Visuals() returned %d drawables, want 15", len(frame))
	}
	for _, d := range frame {
		if d.State.Y > 600+ScreenClampMargin {
			t.Errorf("y = %v beyond the screen clamp", d.State.Y)
		}
	}

	// 所有粒子都已淡出但尚未被移除
	if frame := cs.Visuals(cs.Settings().MaxLifetime() - 0.01); len(frame) != 0 {
		t.Errorf("Visuals() after fade-out returned %d drawables, want 0", len(frame))
	}
}

func TestConfettiSystem_ClearAndClose(t *testing.T) {
	cs := newTestConfetti(10)
	cs.Burst(0, nil)
	cs.Clear()
	if cs.Pool.Len() != 0 {
		t.Fatalf("Len() after Clear = %d", cs.Pool.Len())
	}

	cs.Burst(1, nil)
	cs.Close()
	if cs.Pool.PendingExpiries() != 0 {
		t.Errorf("PendingExpiries() after Close = %d", cs.Pool.PendingExpiries())
	}
	if id := cs.Burst(2, nil); id != 0 {
		t.Errorf("Burst after Close = %d, want 0", id)
	}
}
