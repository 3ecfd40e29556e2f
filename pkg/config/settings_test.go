package config

import (
	"math"
	"testing"

	"github.com/gonewx/confetti/internal/particle"
)

// TestDefaultSettings 测试默认值与文档一致
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"ParticleCount", float64(s.ParticleCount), 150},
		{"MaxTotalParticles", float64(s.MaxTotalParticles), 500},
		{"BurstX", s.BurstX, 0.5},
		{"BurstY", s.BurstY, 400},
		{"BurstDirection", s.BurstDirection, 270},
		{"BurstCone", s.BurstCone, 120},
		{"Speed.Min", s.Speed.Min, 2000},
		{"Speed.Max", s.Speed.Max, 10000},
		{"Gravity", s.Gravity, 1000},
		{"Mass.Min", s.Mass.Min, 0.5},
		{"Mass.Max", s.Mass.Max, 1.5},
		{"Drag.Min", s.Drag.Min, 0.8},
		{"Drag.Max", s.Drag.Max, 1.2},
		{"FallDurationBase", s.FallDurationBase, 2.0},
		{"WobbleDecay", s.WobbleDecay, 1.0},
		{"FadeStart", s.FadeStart, 0.8},
		{"FadeDuration", s.FadeDuration, 0.2},
		{"MetallicIntensity", s.MetallicIntensity, 0.1},
		{"ShimmerIntensity", s.ShimmerIntensity, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if s.MetallicEnabled {
		t.Error("MetallicEnabled: got true, want false")
	}
	if len(s.Palette) != 4 {
		t.Errorf("Palette length: got %d, want 4", len(s.Palette))
	}
	if err := s.Validate(); err != nil {
		t.Errorf("DefaultSettings().Validate() = %v", err)
	}
}

func TestSettings_Clone(t *testing.T) {
	s := DefaultSettings()
	c := s.Clone()
	c.Palette[0] = White
	c.Palette[1].R = 1

	if s.Palette[1].R == 1 {
		t.Error("Clone shares the palette backing array")
	}
}

// TestMaxLifetime 最长寿命 = base + 1/massMin + dragMax*0.5 + 2
func TestMaxLifetime(t *testing.T) {
	tests := []struct {
		name string
		mass particle.Range
		drag particle.Range
		base float64
		want float64
	}{
		{"defaults", particle.R(0.5, 1.5), particle.R(0.8, 1.2), 2.0, 2.0 + 2.0 + 0.6 + 2.0},
		{"swapped ranges", particle.R(1.5, 0.5), particle.R(1.2, 0.8), 2.0, 2.0 + 2.0 + 0.6 + 2.0},
		{"zero mass floored", particle.R(0, 1), particle.R(0, 0), 1.0, 1.0 + 1.0/MinMass + 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.Mass = tt.mass
			s.Drag = tt.drag
			s.FallDurationBase = tt.base
			if got := s.MaxLifetime(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MaxLifetime() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestSettings_ValueMethods 返回值上直接调用，不需要先取地址
func TestSettings_ValueMethods(t *testing.T) {
	preset := func() Settings { return MustPreset(PresetDefault) }

	if got, want := preset().MaxLifetime(), 2.0+1.0/0.5+1.2*0.5+LifetimeSafetyMargin; math.Abs(got-want) > 1e-9 {
		t.Errorf("MaxLifetime() = %v, want %v", got, want)
	}
	if got := preset().MassFloor(); got != 0.5 {
		t.Errorf("MassFloor() = %v, want 0.5", got)
	}
	if err := preset().Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
	}{
		{"burstX above 1", func(s *Settings) { s.BurstX = 1.5 }},
		{"negative cap", func(s *Settings) { s.MaxTotalParticles = -1 }},
		{"zero mass", func(s *Settings) { s.Mass = particle.R(0, 1) }},
		{"decay above 1", func(s *Settings) { s.WobbleDecay = 2 }},
		{"fade start negative", func(s *Settings) { s.FadeStart = -0.1 }},
		{"shimmer above 1", func(s *Settings) { s.ShimmerIntensity = 1.1 }},
		{"zero fade duration", func(s *Settings) { s.FadeDuration = 0 }},
		{"fade duration above 1", func(s *Settings) { s.FadeDuration = 1.5 }},
		{"cone above full circle", func(s *Settings) { s.BurstCone = 400 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			s, ok := Preset(name)
			if !ok {
				t.Fatalf("Preset(%q) not found", name)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Preset(%q).Validate() = %v", name, err)
			}
			if len(s.Palette) == 0 {
				t.Errorf("Preset(%q) has an empty palette", name)
			}
		})
	}

	festive := MustPreset(PresetFestive)
	if festive.ParticleCount != 200 || festive.BurstY != -100 || festive.BurstDirection != 90 {
		t.Errorf("festive: got count=%d burstY=%v dir=%v", festive.ParticleCount, festive.BurstY, festive.BurstDirection)
	}
	if !MustPreset(PresetMetallic).MetallicEnabled {
		t.Error("metallic preset: MetallicEnabled = false")
	}
}

func TestPreset_AliasesAndImmutability(t *testing.T) {
	aliases := map[string]string{
		"fromTheTop":  PresetFestive,
		"celebration": PresetFestive,
		"Subtle":      PresetGentle,
		"GOLD":        PresetMetallic,
		"rainbow":     PresetMultiColor,
	}
	for alias, want := range aliases {
		if got := CanonicalPresetName(alias); got != want {
			t.Errorf("CanonicalPresetName(%q) = %q, want %q", alias, got, want)
		}
	}

	a, _ := Preset(PresetMultiColor)
	a.Palette[0] = White
	a.ParticleCount = 1
	b, _ := Preset(PresetMultiColor)
	if b.Palette[0] == White || b.ParticleCount != 120 {
		t.Error("mutating a returned preset changed the shared preset table")
	}

	if _, ok := Preset("nope"); ok {
		t.Error("Preset(\"nope\") found")
	}
	if MustPreset("nope").ParticleCount != DefaultSettings().ParticleCount {
		t.Error("MustPreset(unknown) should fall back to defaults")
	}
}
