// Package audio synthesises the game's sound cues as raw float32 stereo PCM.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	// FrameBytes is one stereo float32 LE sample frame.
	FrameBytes = ChannelCount * 4
)

// Note is one tone of a cue.
type Note struct {
	Freq   float64
	Onset  time.Duration
	Length time.Duration
}

// GameOverNotes is a falling E4 C4 A3 figure.
var GameOverNotes = []Note{
	{Freq: 329.63, Onset: 0, Length: 300 * time.Millisecond},
	{Freq: 261.63, Onset: 140 * time.Millisecond, Length: 320 * time.Millisecond},
	{Freq: 220.00, Onset: 280 * time.Millisecond, Length: 470 * time.Millisecond},
}

// envelope shapes a tone with an ADSR curve over a fixed number of frames.
type envelope struct {
	tone beep.Streamer
	gain float64
	pos  int
	n    int
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.n {
		return 0, false
	}
	if rest := e.n - e.pos; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok := e.tone.Stream(samples)
	for i := range samples[:n] {
		env := adsr(float64(e.pos)/float64(e.n), 0.03, 0.25, 0.4, 0.45) * e.gain
		samples[i][0] *= env
		samples[i][1] *= env
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.tone.Err() }

// Cue mixes notes into one finite streamer.
func Cue(sr beep.SampleRate, notes []Note, gain float64) (beep.Streamer, error) {
	voices := make([]beep.Streamer, 0, len(notes))
	for _, nt := range notes {
		tone, err := generators.SineTone(sr, nt.Freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.2fHz: %w", nt.Freq, err)
		}
		voice := &envelope{tone: tone, gain: gain, n: sr.N(nt.Length)}
		voices = append(voices, beep.Seq(beep.Silence(sr.N(nt.Onset)), voice))
	}
	return beep.Mix(voices...), nil
}

// Encode drains s into interleaved float32 LE stereo, soft-saturating each
// sample. s must be finite.
func Encode(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, f := range buf[:n] {
			out = appendF32(out, softSat(f[0]))
			out = appendF32(out, softSat(f[1]))
		}
		if !ok || n == 0 {
			return out
		}
	}
}

// GameOverChime renders the game-over cue.
func GameOverChime() ([]byte, error) {
	s, err := Cue(beep.SampleRate(SampleRate), GameOverNotes, 0.35)
	if err != nil {
		return nil, err
	}
	return Encode(s), nil
}

func appendF32(b []byte, v float64) []byte {
	u := math.Float32bits(float32(v))
	return append(b, byte(u), byte(u>>8), byte(u>>16), byte(u>>24))
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}
