// Package sound plays the machine's sound cues.
package sound

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

// Audio parameters shared by the synthesizer and the player.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// tone is one segment of a cue: a frequency sweep from -> to.
type tone struct {
	from, to float64 // Hz
	length   time.Duration
	tremolo  float64 // amplitude modulation rate in Hz, 0 for none
}

// cueTones describes every cue as a sequence of tones.
var cueTones = map[domain.Cue][]tone{
	domain.CueClick: {
		{from: 1400, to: 1400, length: 25 * time.Millisecond},
	},
	domain.CueFill: {
		{from: 280, to: 620, length: 450 * time.Millisecond, tremolo: 18},
	},
	domain.CueBrew: {
		{from: 95, to: 120, length: 5 * time.Second, tremolo: 7},
	},
	domain.CueDone: {
		{from: 880, to: 880, length: 160 * time.Millisecond},
		{from: 1320, to: 1320, length: 260 * time.Millisecond},
	},
	domain.CueAlert: {
		{from: 220, to: 220, length: 140 * time.Millisecond, tremolo: 30},
		{from: 0, to: 0, length: 60 * time.Millisecond},
		{from: 220, to: 220, length: 140 * time.Millisecond, tremolo: 30},
	},
}

// fadeLength ramps every tone in and out to avoid pops.
const fadeLength = 5 * time.Millisecond

// Synthesize renders a cue as signed 16-bit little-endian mono PCM at
// SampleRate. Unknown cues render as silence of zero length.
func Synthesize(cue domain.Cue, volume float64) []byte {
	volume = math.Max(0, math.Min(volume, 1))

	var samples []int16
	for _, t := range cueTones[cue] {
		samples = appendTone(samples, t, volume)
	}

	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(s))
	}
	return pcm
}

// Duration returns how long a cue plays.
func Duration(cue domain.Cue) time.Duration {
	var d time.Duration
	for _, t := range cueTones[cue] {
		d += t.length
	}
	return d
}

func appendTone(dst []int16, t tone, volume float64) []int16 {
	n := samplesFor(t.length)
	fade := samplesFor(fadeLength)
	phase := 0.0

	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.from + (t.to-t.from)*progress
		phase += 2 * math.Pi * freq / SampleRate

		amp := volume
		if t.tremolo > 0 {
			sec := float64(i) / SampleRate
			amp *= 0.75 + 0.25*math.Sin(2*math.Pi*t.tremolo*sec)
		}
		switch {
		case i < fade:
			amp *= float64(i) / float64(fade)
		case i >= n-fade:
			amp *= float64(n-1-i) / float64(fade)
		}

		dst = append(dst, int16(amp*math.MaxInt16*math.Sin(phase)))
	}
	return dst
}

func samplesFor(d time.Duration) int {
	return int(d.Seconds() * SampleRate)
}
