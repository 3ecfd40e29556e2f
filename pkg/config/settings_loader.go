package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/confetti/pkg/embedded"
)

// ErrLoadFailed 配置文件读取或解析失败
//
// 调用方用 errors.Is 判断后回退到内存中的默认设置。
var ErrLoadFailed = errors.New("settings load failed")

// PresetDir 嵌入文件系统中预设文件所在目录
const PresetDir = "data/presets"

// ParseSettings 解析 YAML 格式的设置
//
// 解析结果覆盖在 DefaultSettings() 之上，缺失的字段保持默认值。
// 范围字段可以只写其中一端：
//
//	particleCount: 80
//	burstSpeed: {min: 300, max: 600}
//	mass: {max: 2}
//	colors: ["FFD700", "FF1493"]
func ParseSettings(data []byte) (Settings, error) {
	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("%w: failed to parse settings: %v", ErrLoadFailed, err)
	}
	return settings, nil
}

// UnmarshalYAML 在 DefaultSettings() 之上解码，嵌入其他文档时缺失字段同样取默认值
func (s *Settings) UnmarshalYAML(value *yaml.Node) error {
	type plain Settings
	p := plain(DefaultSettings())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = Settings(p)
	return nil
}

// LoadSettings 从磁盘加载设置文件
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("%w: failed to read settings %s: %v", ErrLoadFailed, path, err)
	}

	settings, err := ParseSettings(data)
	if err != nil {
		return settings, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// LoadSettingsOrDefault 加载设置，失败时记录日志并返回默认设置
func LoadSettingsOrDefault(path string) Settings {
	settings, err := LoadSettings(path)
	if err != nil {
		log.Printf("[SettingsLoader] Warning: %v (using defaults)", err)
		return DefaultSettings()
	}
	return settings
}

// LoadPreset 按名称加载预设
//
// 查找顺序：
//  1. 每个 searchDirs 目录下的 <name>.yaml（开发时热更新）
//  2. 嵌入文件系统中的 data/presets/<name>.yaml
//  3. 内置预设常量
//
// 某一层文件存在但解析失败时记录警告并继续下一层。
// 名称未知且没有任何文件时返回 ErrLoadFailed。
func LoadPreset(name string, searchDirs ...string) (Settings, error) {
	canonical := CanonicalPresetName(name)
	filename := canonical + ".yaml"

	for _, dir := range searchDirs {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		settings, err := LoadSettings(path)
		if err != nil {
			log.Printf("[SettingsLoader] Warning: failed to decode %s: %v", path, err)
			continue
		}
		log.Printf("[SettingsLoader] Loaded %s from filesystem: %s", filename, path)
		return settings, nil
	}

	embeddedPath := PresetDir + "/" + filename
	if embedded.Exists(embeddedPath) {
		data, err := embedded.ReadFile(embeddedPath)
		if err == nil {
			settings, perr := ParseSettings(data)
			if perr == nil {
				return settings, nil
			}
			err = perr
		}
		log.Printf("[SettingsLoader] Warning: failed to decode embedded %s: %v", embeddedPath, err)
	}

	if settings, ok := Preset(canonical); ok {
		return settings, nil
	}
	return DefaultSettings(), fmt.Errorf("%w: unknown preset %q", ErrLoadFailed, name)
}

// SaveSettings 将设置写为 YAML 文件
func SaveSettings(path string, settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}
