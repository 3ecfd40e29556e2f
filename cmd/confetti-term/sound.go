package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	popDuration   = 70 * time.Millisecond
	popBaseFreq   = 660.0
	popHarmonic   = 1320.0
	speakerBuffer = 100 * time.Millisecond
)

// PopSound 每次爆发播放的短促"啵"声
type PopSound struct {
	mu          sync.Mutex
	volume      float64
	initialized bool
}

// NewPopSound creates a sound at volume in [0,1].
func NewPopSound(volume float64) *PopSound {
	return &PopSound{volume: volume}
}

// Init 初始化扬声器
func (p *PopSound) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(speakerBuffer)); err != nil {
		return err
	}
	p.initialized = true
	return nil
}

// Play 播放一次；扬声器未初始化时为空操作
func (p *PopSound) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	if s := p.streamer(); s != nil {
		speaker.Play(s)
	}
}

// streamer 基频与高八度混合，截取 popDuration
func (p *PopSound) streamer() beep.Streamer {
	fund, err := generators.SineTone(sampleRate, popBaseFreq)
	if err != nil {
		return nil
	}
	over, err := generators.SineTone(sampleRate, popHarmonic)
	if err != nil {
		return nil
	}

	n := sampleRate.N(popDuration)
	mixed := beep.Mix(
		newVolume(beep.Take(n, fund), 0.7),
		newVolume(beep.Take(n, over), 0.3),
	)
	return newVolume(mixed, p.volume)
}

// Close 释放扬声器
func (p *PopSound) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
}

// newVolume 线性音量转为 beep 的对数音量；0 为静音
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
