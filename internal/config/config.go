// Package config holds the gameplay tuning and loads overrides from a .env
// file and the process environment.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Playfield defaults (in field units, 1 unit = 1 px in the window build).
const (
	FieldWidth    = 800
	FieldHeight   = 600
	MosquitoSize  = 40
	DefaultLevels = 0 // 0 = endless
)

// Timing defaults.
const (
	LevelDuration = 30 * time.Second
	FlightTime    = 1000 * time.Millisecond
	BiteDelay     = 1500 * time.Millisecond
	PauseOnBite   = 1000 * time.Millisecond
	PauseOnKill   = 1000 * time.Millisecond
	LevelPause    = 5000 * time.Millisecond
)

// Rules defaults.
const (
	MaxBites           = 5
	LandingProbability = 0.6
)

const envPrefix = "MOSQUITO_"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Tuning is everything the game core and the frontends read at startup.
type Tuning struct {
	FieldW, FieldH float64
	MosquitoSize   float64

	LevelDuration time.Duration
	FlightTime    time.Duration
	BiteDelay     time.Duration
	PauseOnBite   time.Duration
	PauseOnKill   time.Duration
	LevelPause    time.Duration

	MaxBites           int
	MaxLevel           int
	LandingProbability float64

	FlightVolume float64
	BiteVolume   float64
	SmashVolume  float64
	Mute         bool
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		FieldW:             FieldWidth,
		FieldH:             FieldHeight,
		MosquitoSize:       MosquitoSize,
		LevelDuration:      LevelDuration,
		FlightTime:         FlightTime,
		BiteDelay:          BiteDelay,
		PauseOnBite:        PauseOnBite,
		PauseOnKill:        PauseOnKill,
		LevelPause:         LevelPause,
		MaxBites:           MaxBites,
		MaxLevel:           DefaultLevels,
		LandingProbability: LandingProbability,
		FlightVolume:       0.5,
		BiteVolume:         1.0,
		SmashVolume:        0.8,
	}
}

// Load reads the optional env file at path (empty or missing is fine), lets
// MOSQUITO_* variables from the process environment override it, and applies
// the result on top of Default.
func Load(path string) (Tuning, error) {
	env := make(map[string]string)
	if path != "" {
		file, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Tuning{}, fmt.Errorf("load %s: %w", path, err)
		}
		maps.Copy(env, file)
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, envPrefix) {
			env[k] = v
		}
	}
	return FromMap(env)
}

// FromMap applies overrides from an in-memory map, as godotenv.Read returns.
func FromMap(env map[string]string) (Tuning, error) {
	t := Default()
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	if err := t.apply(lookup); err != nil {
		return Tuning{}, err
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

type lookupFunc func(string) (string, bool)

func (t *Tuning) apply(lookup lookupFunc) error {
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"MOSQUITO_LEVEL_DURATION", &t.LevelDuration},
		{"MOSQUITO_FLIGHT_TIME", &t.FlightTime},
		{"MOSQUITO_BITE_DELAY", &t.BiteDelay},
		{"MOSQUITO_PAUSE_ON_BITE", &t.PauseOnBite},
		{"MOSQUITO_PAUSE_ON_KILL", &t.PauseOnKill},
		{"MOSQUITO_LEVEL_PAUSE", &t.LevelPause},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"MOSQUITO_FIELD_WIDTH", &t.FieldW},
		{"MOSQUITO_FIELD_HEIGHT", &t.FieldH},
		{"MOSQUITO_SIZE", &t.MosquitoSize},
		{"MOSQUITO_LANDING_PROBABILITY", &t.LandingProbability},
		{"MOSQUITO_FLIGHT_VOLUME", &t.FlightVolume},
		{"MOSQUITO_BITE_VOLUME", &t.BiteVolume},
		{"MOSQUITO_SMASH_VOLUME", &t.SmashVolume},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = parsed
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"MOSQUITO_MAX_BITES", &t.MaxBites},
		{"MOSQUITO_MAX_LEVEL", &t.MaxLevel},
	}
	for _, i := range ints {
		v, ok := lookup(i.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", i.key, err)
		}
		*i.dst = parsed
	}

	if v, ok := lookup("MOSQUITO_MUTE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MOSQUITO_MUTE: %w", err)
		}
		t.Mute = b
	}
	return nil
}

// Validate reports the first setting the game cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.FieldW <= 0 || t.FieldH <= 0:
		return fmt.Errorf("%w: field %.0fx%.0f", ErrInvalid, t.FieldW, t.FieldH)
	case t.MosquitoSize <= 0:
		return fmt.Errorf("%w: mosquito size %.0f", ErrInvalid, t.MosquitoSize)
	case t.MosquitoSize > t.FieldW || t.MosquitoSize > t.FieldH:
		return fmt.Errorf("%w: mosquito size %.0f exceeds field", ErrInvalid, t.MosquitoSize)
	case t.LevelDuration < time.Second:
		return fmt.Errorf("%w: level duration %v under 1s", ErrInvalid, t.LevelDuration)
	case t.LevelDuration%time.Second != 0:
		return fmt.Errorf("%w: level duration %v is not whole seconds", ErrInvalid, t.LevelDuration)
	case t.FlightTime <= 0, t.BiteDelay <= 0, t.PauseOnBite <= 0, t.PauseOnKill <= 0, t.LevelPause <= 0:
		return fmt.Errorf("%w: timings must be positive", ErrInvalid)
	case t.MaxBites <= 0:
		return fmt.Errorf("%w: max bites %d", ErrInvalid, t.MaxBites)
	case t.MaxLevel < 0:
		return fmt.Errorf("%w: max level %d", ErrInvalid, t.MaxLevel)
	case t.LandingProbability < 0 || t.LandingProbability > 1:
		return fmt.Errorf("%w: landing probability %v", ErrInvalid, t.LandingProbability)
	}
	for _, v := range []float64{t.FlightVolume, t.BiteVolume, t.SmashVolume} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: volume %v", ErrInvalid, v)
		}
	}
	return nil
}

// BannerTime is how long an on-screen message stays up.
func (t Tuning) BannerTime() time.Duration {
	d := t.LevelPause - 500*time.Millisecond
	if d < 0 {
		return 0
	}
	return d
}
