package game

import (
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/confetti/pkg/components"
	"github.com/gonewx/confetti/pkg/config"
	"github.com/gonewx/confetti/pkg/utils"
)

// ViewerSettings 查看器的持久化偏好
//
// 保存用户最后选择的预设与形状、声音开关，以及可选的自定义设置。
// 粒子状态本身从不持久化。
type ViewerSettings struct {
	Preset string `yaml:"preset"` // 预设名称（支持旧名称别名）
	Shape  string `yaml:"shape"`  // 粒子形状名称

	// 音频设置（爆发音效）
	SoundVolume  float64 `yaml:"soundVolume"`  // 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关

	// 显示设置
	Fullscreen       bool    `yaml:"fullscreen"`       // 启动时是否全屏
	AutoPlayInterval float64 `yaml:"autoPlayInterval"` // 自动爆发间隔（秒），0 表示关闭

	// Custom 用户调整过的设置，非空时优先于 Preset
	Custom *config.Settings `yaml:"custom,omitempty"`
}

// DefaultViewerSettings 返回默认偏好
func DefaultViewerSettings() *ViewerSettings {
	return &ViewerSettings{
		Preset:       config.PresetDefault,
		Shape:        components.ShapeSquare.String(),
		SoundVolume:  0.8,
		SoundEnabled: true,
	}
}

// SettingsManager 偏好管理器
// 负责偏好的加载、保存和内存管理；gdata 不可用时降级为仅内存
type SettingsManager struct {
	mu           sync.Mutex
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings

	// PresetDirs 解析预设时优先查找的磁盘目录
	PresetDirs []string
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的偏好管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不影响创建，记录日志后使用默认偏好。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultViewerSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// OpenSettingsManager 打开应用数据目录并创建偏好管理器
//
// gdata 初始化失败时返回降级模式的管理器以及该错误。
func OpenSettingsManager(appName string) (*SettingsManager, error) {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewSettingsManager(nil), fmt.Errorf("failed to open data storage: %w", err)
	}
	return NewSettingsManager(m), nil
}

// Load 从 gdata 加载偏好
//
// gdataManager 为 nil 或尚未保存过时使用默认偏好。
func (sm *SettingsManager) Load() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.settings = DefaultViewerSettings()
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultViewerSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("%w: failed to unmarshal viewer settings: %v", config.ErrLoadFailed, err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存偏好到 gdata
//
// 降级模式下返回 nil。
func (sm *SettingsManager) Save() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 返回当前偏好的副本
func (sm *SettingsManager) GetSettings() ViewerSettings {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s := *sm.settings
	if s.Custom != nil {
		c := s.Custom.Clone()
		s.Custom = &c
	}
	return s
}

// Effective 解析出下一次爆发应使用的设置
//
// 有自定义设置时返回其副本；否则按 config.LoadPreset 的查找顺序加载预设。
func (sm *SettingsManager) Effective() (config.Settings, error) {
	sm.mu.Lock()
	custom, preset, dirs := sm.settings.Custom, sm.settings.Preset, sm.PresetDirs
	sm.mu.Unlock()

	if custom != nil {
		return custom.Clone(), nil
	}
	return config.LoadPreset(preset, dirs...)
}

// Shape 返回偏好中的粒子形状，未知名称返回方形
func (sm *SettingsManager) Shape() components.Shape {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	shape, _ := components.ParseShape(sm.settings.Shape)
	return shape
}

// SetPreset 选择预设并清除自定义设置
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetPreset(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.settings.Preset = config.CanonicalPresetName(name)
	sm.settings.Custom = nil
}

// SetCustom 保存自定义设置的副本
func (sm *SettingsManager) SetCustom(s config.Settings) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	c := s.Clone()
	sm.settings.Custom = &c
}

// SetShape 设置粒子形状，名称无效时返回错误且不修改
func (sm *SettingsManager) SetShape(name string) error {
	if _, ok := components.ParseShape(name); !ok {
		return fmt.Errorf("unknown shape %q", name)
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.settings.Shape = name
	return nil
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.settings.Fullscreen = enabled
}

// SetAutoPlayInterval 设置自动爆发间隔，负数按 0 处理
func (sm *SettingsManager) SetAutoPlayInterval(seconds float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.settings.AutoPlayInterval = max(seconds, 0)
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
