package sound

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func samples(buf []byte) []int16 {
	out := make([]int16, len(buf)/2)
	binary.Read(bytes.NewReader(buf), binary.LittleEndian, out)
	return out
}

func TestBufferLengths(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want int
	}{
		{"whine", Whine(1000, 0.5), 500 * 4},
		{"tone", Tone(1000, 100, 0.25, 4), 250 * 4},
		{"noise", Noise(1000, 0.1, 7), 100 * 4},
	}
	for _, tt := range tests {
		if len(tt.buf) != tt.want {
			t.Errorf("%s: len = %d, want %d", tt.name, len(tt.buf), tt.want)
		}
	}
}

func TestStereoChannelsMatch(t *testing.T) {
	s := samples(Tone(8000, 440, 0.05, 2))
	for i := 0; i+1 < len(s); i += 2 {
		if s[i] != s[i+1] {
			t.Fatalf("frame %d: left %d != right %d", i/2, s[i], s[i+1])
		}
	}
}

func TestToneDecays(t *testing.T) {
	s := samples(Tone(8000, 200, 1, 6))
	peak := func(from, to int) int16 {
		var p int16
		for _, v := range s[from:to] {
			if v < 0 {
				v = -v
			}
			if v > p {
				p = v
			}
		}
		return p
	}
	head := peak(0, 800)
	tail := peak(len(s)-800, len(s))
	if tail >= head {
		t.Fatalf("tail peak %d not below head peak %d", tail, head)
	}
}

func TestNoiseIsDeterministic(t *testing.T) {
	if !bytes.Equal(Noise(8000, 0.05, 3), Noise(8000, 0.05, 3)) {
		t.Fatal("same seed produced different noise")
	}
	if bytes.Equal(Noise(8000, 0.05, 3), Noise(8000, 0.05, 4)) {
		t.Fatal("different seeds produced identical noise")
	}
}
