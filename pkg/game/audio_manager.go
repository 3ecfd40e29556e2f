package game

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// 内置音效 ID
const (
	SoundPop   = "pop"   // 每次爆发
	SoundClear = "clear" // 清空粒子池
)

// Tone 一段合成音效：基频与二次谐波按 7:3 混合，线性衰减到零
type Tone struct {
	BaseFreq float64
	Harmonic float64
	Duration time.Duration
}

// builtinTones 内置音效表
var builtinTones = map[string]Tone{
	SoundPop:   {BaseFreq: 660, Harmonic: 1320, Duration: 70 * time.Millisecond},
	SoundClear: {BaseFreq: 220, Harmonic: 330, Duration: 120 * time.Millisecond},
}

// AudioManager 音效管理器
//
// 音效在首次播放时合成为 16 位立体声 PCM 并缓存播放器；
// 音量与开关从 SettingsManager 读取。context 为 nil 时所有播放都是空操作。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	soundPlayers    map[string]*audio.Player
}

// NewAudioManager 创建音效管理器
//
// 参数：
//   - ctx: Ebitengine 音频上下文（可为 nil，表示静音）
//   - sm: SettingsManager 实例（可为 nil，使用默认音量）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
	}
}

// PlaySound 播放音效，返回是否实际播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量并同步到所有缓存的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	volume = am.getSoundVolume()
	for _, player := range am.soundPlayers {
		player.SetVolume(volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// PreloadSounds 预合成音效，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds(soundIDs ...string) {
	for _, soundID := range soundIDs {
		am.getSoundPlayer(soundID)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(soundIDs))
}

func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if am.context == nil {
		return nil
	}
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}

	tone, ok := builtinTones[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return nil
	}
	player := am.context.NewPlayerFromBytes(tone.PCM(SampleRate))
	am.soundPlayers[soundID] = player
	return player
}

func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultViewerSettings().SoundVolume
}

// PCM 合成 16 位小端立体声采样
func (t Tone) PCM(sampleRate int) []byte {
	n := int(t.Duration.Seconds() * float64(sampleRate))
	if n <= 0 {
		return nil
	}

	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		ts := float64(i) / float64(sampleRate)
		envelope := 1.0 - float64(i)/float64(n)
		v := 0.7*math.Sin(2*math.Pi*t.BaseFreq*ts) + 0.3*math.Sin(2*math.Pi*t.Harmonic*ts)
		sample := uint16(int16(v * envelope * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], sample)
		binary.LittleEndian.PutUint16(buf[i*4+2:], sample)
	}
	return buf
}
