package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"mosquito/internal/config"
	"mosquito/internal/swat"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager mixes the flight whine with one-shot bite and smash effects.
type SoundManager struct {
	mu          sync.Mutex
	cfg         config.Tuning
	mixer       *beep.Mixer
	flight      *beep.Ctrl
	initialized bool
}

func NewSoundManager(cfg config.Tuning) *SoundManager {
	return &SoundManager{cfg: cfg, mixer: &beep.Mixer{}}
}

func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}

	sm.flight = &beep.Ctrl{Streamer: withVolume(NewWhineGenerator(sampleRate), sm.cfg.FlightVolume), Paused: true}
	sm.mixer.Add(sm.flight)
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

func (sm *SoundManager) Bind(bus *swat.EventBus) {
	bus.Subscribe(swat.EventBite, func(swat.Event) { sm.PlayBite() })
	bus.Subscribe(swat.EventSmash, func(swat.Event) { sm.PlaySmash() })
}

// SetFlying pauses or resumes the whine loop.
func (sm *SoundManager) SetFlying(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.flight.Paused == !on {
		return
	}
	speaker.Lock()
	sm.flight.Paused = !on
	speaker.Unlock()
}

func (sm *SoundManager) PlayBite() {
	tone, err := generators.SineTone(sampleRate, 180)
	if err != nil {
		return
	}
	sm.play(beep.Take(sampleRate.N(250*time.Millisecond), tone), sm.cfg.BiteVolume)
}

func (sm *SoundManager) PlaySmash() {
	sm.play(beep.Take(sampleRate.N(180*time.Millisecond), NewSplatGenerator(sampleRate)), sm.cfg.SmashVolume)
}

func (sm *SoundManager) play(s beep.Streamer, volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(withVolume(s, volume))
	speaker.Unlock()
}

// withVolume maps a linear 0..1 gain onto beep's exponential volume.
func withVolume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// WhineGenerator is an endless mosquito buzz.
type WhineGenerator struct {
	sr  beep.SampleRate
	pos int
}

func NewWhineGenerator(sr beep.SampleRate) *WhineGenerator {
	return &WhineGenerator{sr: sr}
}

func (g *WhineGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		wobble := 1 + 0.02*math.Sin(2*math.Pi*9*t)
		v := 0.12*math.Sin(2*math.Pi*620*wobble*t) + 0.08*math.Sin(2*math.Pi*627*wobble*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *WhineGenerator) Err() error { return nil }

// SplatGenerator is decaying noise; wrap it in beep.Take to bound it.
type SplatGenerator struct {
	sr  beep.SampleRate
	pos int
	x   uint32
}

func NewSplatGenerator(sr beep.SampleRate) *SplatGenerator {
	return &SplatGenerator{sr: sr, x: 0x9E3779B9}
}

func (g *SplatGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		g.x ^= g.x << 13
		g.x ^= g.x >> 17
		g.x ^= g.x << 5
		t := float64(g.pos) / float64(g.sr)
		v := (float64(g.x)/float64(math.MaxUint32)*2 - 1) * 0.5 * math.Exp(-25*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *SplatGenerator) Err() error { return nil }
