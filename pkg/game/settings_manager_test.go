package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/confetti/pkg/components"
	"github.com/gonewx/confetti/pkg/config"
)

// openTestManager 使用临时 HOME 创建 gdata manager
func openTestManager(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultViewerSettings 测试默认偏好
func TestDefaultViewerSettings(t *testing.T) {
	s := DefaultViewerSettings()

	if s.Preset != config.PresetDefault {
		t.Errorf("Preset: got %q, want %q", s.Preset, config.PresetDefault)
	}
	if s.Shape != "square" {
		t.Errorf("Shape: got %q, want square", s.Shape)
	}
	if s.SoundVolume != 0.8 || !s.SoundEnabled {
		t.Errorf("Sound: got %v/%v, want 0.8/true", s.SoundVolume, s.SoundEnabled)
	}
	if s.Custom != nil {
		t.Error("Custom: want nil")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	if got := sm.GetSettings().Preset; got != config.PresetDefault {
		t.Errorf("Degraded mode Preset: got %q, want default", got)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}

	sm.SetSoundVolume(0.3)
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if got := sm.GetSettings().SoundVolume; got != 0.8 {
		t.Errorf("After Load() in degraded mode, SoundVolume: got %v, want 0.8", got)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 往返
func TestSettingsLoadSave(t *testing.T) {
	m := openTestManager(t, "test_confetti_settings")

	sm1 := NewSettingsManager(m)
	sm1.SetPreset("gold")
	if err := sm1.SetShape("heart"); err != nil {
		t.Fatalf("SetShape() error: %v", err)
	}
	sm1.SetSoundVolume(0.4)
	sm1.SetSoundEnabled(false)
	sm1.SetFullscreen(true)
	sm1.SetAutoPlayInterval(2.5)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(m)
	got := sm2.GetSettings()

	if got.Preset != config.PresetMetallic {
		t.Errorf("Loaded Preset: got %q, want %q", got.Preset, config.PresetMetallic)
	}
	if sm2.Shape().Kind != components.ShapeHeart {
		t.Errorf("Loaded Shape: got %v, want heart", sm2.Shape().Kind)
	}
	if got.SoundVolume != 0.4 || got.SoundEnabled {
		t.Errorf("Loaded sound: got %v/%v, want 0.4/false", got.SoundVolume, got.SoundEnabled)
	}
	if !got.Fullscreen || got.AutoPlayInterval != 2.5 {
		t.Errorf("Loaded display: got %v/%v, want true/2.5", got.Fullscreen, got.AutoPlayInterval)
	}
}

// TestSettingsCustomRoundTrip 自定义设置持久化后缺失字段取默认值
func TestSettingsCustomRoundTrip(t *testing.T) {
	m := openTestManager(t, "test_confetti_custom")

	custom := config.MustPreset(config.PresetFestive)
	custom.ParticleCount = 33

	sm1 := NewSettingsManager(m)
	sm1.SetCustom(custom)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	eff, err := NewSettingsManager(m).Effective()
	if err != nil {
		t.Fatalf("Effective() error: %v", err)
	}
	if eff.ParticleCount != 33 {
		t.Errorf("ParticleCount: got %d, want 33", eff.ParticleCount)
	}
	if eff.Gravity != custom.Gravity || len(eff.Palette) != len(custom.Palette) {
		t.Errorf("custom settings not restored: gravity %v palette %d", eff.Gravity, len(eff.Palette))
	}
}

func TestSettingsCorruptData(t *testing.T) {
	m := openTestManager(t, "test_confetti_corrupt")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("preset: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(m)
	if err := sm.Load(); err == nil {
		t.Error("Load() of corrupt data should fail")
	}
	if got := sm.GetSettings().Preset; got != config.PresetDefault {
		t.Errorf("Preset after corrupt load: got %q, want default", got)
	}
}

func TestEffective(t *testing.T) {
	sm := NewSettingsManager(nil)

	eff, err := sm.Effective()
	if err != nil {
		t.Fatalf("Effective() error: %v", err)
	}
	if eff.ParticleCount != config.DefaultSettings().ParticleCount {
		t.Errorf("default ParticleCount: got %d", eff.ParticleCount)
	}

	sm.SetPreset("Subtle")
	eff, _ = sm.Effective()
	if eff.ParticleCount != config.MustPreset(config.PresetGentle).ParticleCount {
		t.Errorf("gentle ParticleCount: got %d", eff.ParticleCount)
	}

	custom := config.DefaultSettings()
	custom.ParticleCount = 1
	sm.SetCustom(custom)
	eff, _ = sm.Effective()
	if eff.ParticleCount != 1 {
		t.Errorf("custom ParticleCount: got %d, want 1", eff.ParticleCount)
	}

	// 选择预设清除自定义设置
	sm.SetPreset(config.PresetFestive)
	if sm.GetSettings().Custom != nil {
		t.Error("SetPreset should clear custom settings")
	}
}

func TestGetSettingsIsCopy(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetCustom(config.DefaultSettings())

	s := sm.GetSettings()
	s.Preset = "changed"
	s.Custom.ParticleCount = 0

	again := sm.GetSettings()
	if again.Preset == "changed" || again.Custom.ParticleCount == 0 {
		t.Error("GetSettings() should return an independent copy")
	}
}

func TestSetShapeRejectsUnknown(t *testing.T) {
	sm := NewSettingsManager(nil)
	if err := sm.SetShape("hexagon"); err == nil {
		t.Error("SetShape(hexagon) should fail")
	}
	if sm.Shape().Kind != components.ShapeSquare {
		t.Errorf("Shape after failed SetShape: got %v", sm.Shape().Kind)
	}
}

func TestSetAutoPlayIntervalNegative(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetAutoPlayInterval(-3)
	if got := sm.GetSettings().AutoPlayInterval; got != 0 {
		t.Errorf("AutoPlayInterval: got %v, want 0", got)
	}
}

// TestClampVolume 测试 clampVolume 辅助函数
func TestClampVolume(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0.0, 0.0},
		{1.0, 1.0},
		{-1.0, 0.0},
		{2.0, 1.0},
		{0.001, 0.001},
	}

	for _, tt := range tests {
		if result := clampVolume(tt.input); result != tt.expected {
			t.Errorf("clampVolume(%v): got %v, want %v", tt.input, result, tt.expected)
		}
	}
}
