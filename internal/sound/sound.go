// Package sound synthesizes the game's effects and plays them through
// Ebitengine's audio context. Nothing is loaded from disk.
package sound

import (
	"bytes"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"mosquito/internal/config"
	"mosquito/internal/logger"
	"mosquito/internal/swat"
)

const sampleRate = 44100

// Board owns one player per effect. The flight whine loops; bite and smash
// restart from the beginning on every trigger.
type Board struct {
	ctx    *audio.Context
	flight *audio.Player
	bite   *audio.Player
	smash  *audio.Player
	log    *logger.Logger
}

// NewBoard creates the audio context. Ebitengine allows one context per
// process, so call this once.
func NewBoard(cfg config.Tuning, log *logger.Logger) (*Board, error) {
	ctx := audio.NewContext(sampleRate)

	whine := Whine(sampleRate, 0.6)
	loop := audio.NewInfiniteLoop(bytes.NewReader(whine), int64(len(whine)))
	flight, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, err
	}
	flight.SetVolume(cfg.FlightVolume)

	bite := ctx.NewPlayerFromBytes(Tone(sampleRate, 180, 0.25, 4))
	bite.SetVolume(cfg.BiteVolume)

	smash := ctx.NewPlayerFromBytes(Noise(sampleRate, 0.18, 1))
	smash.SetVolume(cfg.SmashVolume)

	return &Board{ctx: ctx, flight: flight, bite: bite, smash: smash, log: log}, nil
}

// Bind plays the one-shot effects in response to game events.
func (b *Board) Bind(bus *swat.EventBus) {
	bus.Subscribe(swat.EventBite, func(swat.Event) { b.restart(b.bite) })
	bus.Subscribe(swat.EventSmash, func(swat.Event) { b.restart(b.smash) })
	bus.Subscribe(swat.EventGameOver, func(swat.Event) { b.flight.Pause() })
	bus.Subscribe(swat.EventLevelCleared, func(swat.Event) { b.flight.Pause() })
}

// SetFlying starts or pauses the whine loop.
func (b *Board) SetFlying(on bool) {
	switch {
	case on && !b.flight.IsPlaying():
		b.flight.Play()
	case !on && b.flight.IsPlaying():
		b.flight.Pause()
	}
}

func (b *Board) restart(p *audio.Player) {
	if err := p.Rewind(); err != nil {
		b.log.Warn("rewind: %v", err)
		return
	}
	p.Play()
}

// Whine is a buzzing mosquito loop: a detuned pair of high tones with a fast
// wobble. Returned as 16-bit little-endian stereo PCM.
func Whine(rate int, durSec float64) []byte {
	n := int(float64(rate) * durSec)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(rate)
		wobble := 1 + 0.02*math.Sin(2*math.Pi*9*t)
		v := 0.5*math.Sin(2*math.Pi*620*wobble*t) + 0.35*math.Sin(2*math.Pi*627*wobble*t)
		putStereo(buf, i, int16(v*5000))
	}
	return buf
}

// Tone is a decaying sine, used for the bite.
func Tone(rate int, freq, durSec, decay float64) []byte {
	n := int(float64(rate) * durSec)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(rate)
		envelope := math.Exp(-decay * t)
		putStereo(buf, i, int16(math.Sin(2*math.Pi*freq*t)*9000*envelope))
	}
	return buf
}

// Noise is a short splat: deterministic white noise under a steep envelope.
func Noise(rate int, durSec float64, seed uint32) []byte {
	n := int(float64(rate) * durSec)
	buf := make([]byte, n*4)
	x := seed | 1
	for i := 0; i < n; i++ {
		// xorshift32
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		t := float64(i) / float64(rate)
		envelope := math.Exp(-25 * t)
		v := (float64(x)/float64(math.MaxUint32)*2 - 1) * 12000 * envelope
		putStereo(buf, i, int16(v))
	}
	return buf
}

func putStereo(buf []byte, i int, v int16) {
	for ch := 0; ch < 2; ch++ {
		idx := i*4 + ch*2
		buf[idx] = byte(v)
		buf[idx+1] = byte(v >> 8)
	}
}
