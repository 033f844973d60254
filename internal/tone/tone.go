// Package tone renders audio from sine tables, using nothing but quadrant
// lookups for the waveform.
package tone

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/roach88/fixtrig/internal/lookup"
)

// ErrFrequency is returned for frequencies outside (0, rate/2].
var ErrFrequency = errors.New("tone: frequency out of range")

// DefaultSampleRate is used by the tone command.
const DefaultSampleRate = beep.SampleRate(44100)

// Oscillator streams a sine tone. The phase is an unsigned fraction of a
// turn that wraps on overflow; its top AngleBits bits are the angle index.
type Oscillator struct {
	proto    *lookup.Protocol
	phase    uint64
	step     uint64
	shift    uint
	scale    float64
	duration int
	position int
}

// NewOscillator creates an oscillator at freq Hz for duration.
func NewOscillator(p *lookup.Protocol, freq float64, duration time.Duration, rate beep.SampleRate) (*Oscillator, error) {
	nyquist := float64(rate) / 2
	if !(freq > 0 && freq <= nyquist) {
		return nil, fmt.Errorf("%w: %g Hz at %d Hz sample rate", ErrFrequency, freq, rate)
	}
	return &Oscillator{
		proto:    p,
		step:     uint64(math.Ldexp(freq/float64(rate), 64)),
		shift:    uint(64 - p.AngleBits()),
		scale:    1 / float64(p.One()),
		duration: rate.N(duration),
	}, nil
}

// Index returns the angle index of the next sample.
func (o *Oscillator) Index() int {
	return int(o.phase >> o.shift)
}

// Stream fills both channels with the same sample.
func (o *Oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := float64(o.proto.Sin(o.Index())) * o.scale
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.step
		o.position++
	}
	return len(samples), true
}

func (o *Oscillator) Err() error { return nil }

// Len is the total number of samples.
func (o *Oscillator) Len() int { return o.duration }

// envelope applies a linear fade in and out to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	fade     int
	total    int
}

// Fade wraps s with linear attack and release ramps of length fade. The
// ramps are shortened to half of duration when they would overlap.
func Fade(s beep.Streamer, duration, fade time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	f := rate.N(fade)
	if f > total/2 {
		f = total / 2
	}
	return &envelope{streamer: s, fade: f, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.fade > 0 {
			switch {
			case e.position < e.fade:
				vol = float64(e.position) / float64(e.fade)
			case e.position >= e.total-e.fade:
				vol = float64(e.total-e.position) / float64(e.fade)
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// WriteWAV encodes s as 16-bit stereo PCM. A streamer that stops with an
// error fails the encoding.
func WriteWAV(w io.WriteSeeker, s beep.Streamer, rate beep.SampleRate) error {
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, s, format); err != nil {
		return fmt.Errorf("tone: encoding wav: %w", err)
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("tone: streaming samples: %w", err)
	}
	return nil
}

// WriteFile writes s to a WAV file at path. On failure the partial file
// is removed.
func WriteFile(path string, s beep.Streamer, rate beep.SampleRate) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tone: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("tone: closing %s: %w", path, closeErr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return WriteWAV(f, s, rate)
}
