package sound

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

func TestSynthesizeLength(t *testing.T) {
	for _, cue := range []domain.Cue{domain.CueClick, domain.CueFill, domain.CueBrew, domain.CueDone, domain.CueAlert} {
		t.Run(cue.String(), func(t *testing.T) {
			pcm := Synthesize(cue, 0.5)
			if len(pcm) == 0 {
				t.Fatal("expected audio data")
			}
			if len(pcm)%2 != 0 {
				t.Fatalf("odd PCM length %d", len(pcm))
			}

			samples := len(pcm) / 2
			want := int(Duration(cue).Seconds() * SampleRate)
			// Segments round down independently, so allow one sample each.
			if diff := want - samples; diff < 0 || diff > len(cueTones[cue]) {
				t.Fatalf("expected ~%d samples, got %d", want, samples)
			}
		})
	}
}

func TestSynthesizeVolume(t *testing.T) {
	peak := func(pcm []byte) int {
		max := 0
		for i := 0; i+1 < len(pcm); i += 2 {
			s := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
			if s < 0 {
				s = -s
			}
			if s > max {
				max = s
			}
		}
		return max
	}

	silent := Synthesize(domain.CueDone, 0)
	if p := peak(silent); p != 0 {
		t.Fatalf("volume 0 should be silent, peak %d", p)
	}

	loud := peak(Synthesize(domain.CueDone, 1))
	quiet := peak(Synthesize(domain.CueDone, 0.25))
	if loud > math.MaxInt16 {
		t.Fatalf("peak %d overflows int16", loud)
	}
	if quiet >= loud {
		t.Fatalf("expected quieter cue at lower volume: %d >= %d", quiet, loud)
	}

	// Out-of-range volumes are clamped rather than overflowing.
	if p := peak(Synthesize(domain.CueDone, 7)); p != loud {
		t.Fatalf("expected volume clamped to 1, peak %d vs %d", p, loud)
	}
}

func TestSynthesizeFadesIn(t *testing.T) {
	pcm := Synthesize(domain.CueClick, 1)
	first := int16(binary.LittleEndian.Uint16(pcm[0:]))
	if first != 0 {
		t.Fatalf("expected the first sample to be silent, got %d", first)
	}
}

func TestDurations(t *testing.T) {
	if d := Duration(domain.CueBrew); d < 5*time.Second {
		t.Fatalf("brew cue should cover the longest brew, got %s", d)
	}
	if d := Duration(domain.Cue(42)); d != 0 {
		t.Fatalf("unknown cue should have no duration, got %s", d)
	}
	if pcm := Synthesize(domain.Cue(42), 1); len(pcm) != 0 {
		t.Fatalf("unknown cue should render nothing, got %d bytes", len(pcm))
	}
}
