package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestFromMapOverrides(t *testing.T) {
	tu, err := FromMap(map[string]string{
		"MOSQUITO_LEVEL_DURATION":      "10s",
		"MOSQUITO_FLIGHT_TIME":         "250ms",
		"MOSQUITO_MAX_BITES":           "3",
		"MOSQUITO_LANDING_PROBABILITY": "1",
		"MOSQUITO_MUTE":                "true",
		"MOSQUITO_SIZE":                "",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if tu.LevelDuration != 10*time.Second {
		t.Fatalf("LevelDuration = %v, want 10s", tu.LevelDuration)
	}
	if tu.FlightTime != 250*time.Millisecond {
		t.Fatalf("FlightTime = %v, want 250ms", tu.FlightTime)
	}
	if tu.MaxBites != 3 {
		t.Fatalf("MaxBites = %d, want 3", tu.MaxBites)
	}
	if tu.LandingProbability != 1 {
		t.Fatalf("LandingProbability = %v, want 1", tu.LandingProbability)
	}
	if !tu.Mute {
		t.Fatal("Mute = false, want true")
	}
	if tu.MosquitoSize != MosquitoSize {
		t.Fatalf("empty value changed MosquitoSize to %v", tu.MosquitoSize)
	}
}

func TestFromMapRejects(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		invalid bool
	}{
		{"bad duration", map[string]string{"MOSQUITO_BITE_DELAY": "soon"}, false},
		{"bad int", map[string]string{"MOSQUITO_MAX_BITES": "five"}, false},
		{"zero bites", map[string]string{"MOSQUITO_MAX_BITES": "0"}, true},
		{"probability", map[string]string{"MOSQUITO_LANDING_PROBABILITY": "1.5"}, true},
		{"short level", map[string]string{"MOSQUITO_LEVEL_DURATION": "500ms"}, true},
		{"fractional level", map[string]string{"MOSQUITO_LEVEL_DURATION": "1500ms"}, true},
		{"huge mosquito", map[string]string{"MOSQUITO_SIZE": "900"}, true},
		{"volume", map[string]string{"MOSQUITO_SMASH_VOLUME": "2"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.env)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Fatalf("errors.Is(ErrInvalid) = %v, want %v (%v)", got, tt.invalid, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	tu, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if tu.MaxBites != MaxBites {
		t.Fatalf("MaxBites = %d, want %d", tu.MaxBites, MaxBites)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MOSQUITO_MAX_LEVEL=4\nMOSQUITO_MAX_BITES=2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tu, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tu.MaxLevel != 4 || tu.MaxBites != 2 {
		t.Fatalf("MaxLevel=%d MaxBites=%d, want 4 and 2", tu.MaxLevel, tu.MaxBites)
	}
	if _, set := os.LookupEnv("MOSQUITO_MAX_LEVEL"); set {
		t.Fatal("Load leaked the env file into the process environment")
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MOSQUITO_MAX_LEVEL=4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MOSQUITO_MAX_LEVEL", "7")

	tu, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tu.MaxLevel != 7 {
		t.Fatalf("MaxLevel = %d, want 7 from the environment", tu.MaxLevel)
	}
}

func TestLoadRejectsBadEnvironment(t *testing.T) {
	t.Setenv("MOSQUITO_LEVEL_DURATION", "2500ms")
	if _, err := Load(""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Load = %v, want ErrInvalid", err)
	}
}

func TestBannerTime(t *testing.T) {
	tu := Default()
	if got := tu.BannerTime(); got != 4500*time.Millisecond {
		t.Fatalf("BannerTime = %v, want 4.5s", got)
	}
	tu.LevelPause = 100 * time.Millisecond
	if got := tu.BannerTime(); got != 0 {
		t.Fatalf("BannerTime = %v, want 0", got)
	}
}
