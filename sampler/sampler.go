// Package sampler reduces raw audio to one amplitude per horizontal pixel.
package sampler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/d1nch8g/waveform/geometry"
)

// Type selects the amplitude scale.
type Type struct {
	logarithmic bool
	noiseFloor  float32
}

// Linear plots absolute sample values.
var Linear = Type{}

// Logarithmic plots decibels relative to full scale, clamped at noiseFloor
// (a negative dB value) which becomes the zero line.
func Logarithmic(noiseFloor float32) Type {
	return Type{logarithmic: true, noiseFloor: noiseFloor}
}

func (t Type) IsLogarithmic() bool { return t.logarithmic }

// Floor returns the value drawn as silence.
func (t Type) Floor() float32 {
	if t.logarithmic {
		return t.noiseFloor
	}
	return 0
}

func (t Type) String() string {
	if t.logarithmic {
		return fmt.Sprintf("logarithmic(%g)", t.noiseFloor)
	}
	return "linear"
}

// ParseType reads "linear", "logarithmic" or "logarithmic(-50)".
func ParseType(s string, noiseFloor float32) (Type, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "linear":
		return Linear, nil
	case s == "logarithmic":
		return Logarithmic(noiseFloor), nil
	case strings.HasPrefix(s, "logarithmic(") && strings.HasSuffix(s, ")"):
		v, err := strconv.ParseFloat(s[len("logarithmic("):len(s)-1], 32)
		if err != nil {
			return Type{}, fmt.Errorf("waveform type %q: %w", s, err)
		}
		return Logarithmic(float32(v)), nil
	}
	return Type{}, fmt.Errorf("unknown waveform type %q", s)
}

// process converts a batch in place to the plotted scale.
func (t Type) process(samples []float32) {
	for i, s := range samples {
		if math32.IsNaN(s) || math32.IsInf(s, 0) {
			s = 0
		}
		s = math32.Abs(s)
		if t.logarithmic {
			// 20*log10 with 1.0 as 0dB, clipped to [noiseFloor, 0]
			s = 20 * math32.Log10(s)
			s = math32.Max(t.noiseFloor, math32.Min(0, s))
		}
		samples[i] = s
	}
}

// Downsampler averages windows of SamplesPerPixel input samples into a
// single output sample. Input arrives in batches of any size; samples that
// do not fill a window are held until the next Write, and Flush averages
// whatever is left into one last output.
type Downsampler struct {
	Type            Type
	SamplesPerPixel int

	// Strict makes Write reject non-finite samples instead of treating them
	// as silence. Start is the source index of the first sample written,
	// used in the reported error.
	Strict bool
	Start  int

	pending []float32
	out     []float32
	max     float32
	written int
}

// New sizes the window so that total input samples yield about target
// output samples.
func New(t Type, total, target int) *Downsampler {
	spp := 1
	if target > 0 && total/target > 1 {
		spp = total / target
	}
	return &Downsampler{
		Type:            t,
		SamplesPerPixel: spp,
		max:             t.Floor(),
		out:             make([]float32, 0, total/spp+1),
	}
}

// Write consumes a batch of raw samples. The batch is not retained. In
// strict mode a batch holding a non-finite sample is rejected whole with a
// *geometry.SampleError.
func (d *Downsampler) Write(batch []float32) error {
	if d.Strict {
		for i, s := range batch {
			if math32.IsNaN(s) || math32.IsInf(s, 0) {
				return &geometry.SampleError{Index: d.Start + d.written + i, Value: s}
			}
		}
	}
	d.written += len(batch)
	d.pending = append(d.pending, batch...)

	windows := len(d.pending) / d.SamplesPerPixel
	if windows == 0 {
		return nil
	}
	n := windows * d.SamplesPerPixel
	processing := d.pending[:n]
	d.Type.process(processing)

	for w := 0; w < windows; w++ {
		d.emit(processing[w*d.SamplesPerPixel : (w+1)*d.SamplesPerPixel])
	}

	d.pending = append(d.pending[:0], d.pending[n:]...)
	return nil
}

// Flush averages the samples of an unfilled trailing window into a final
// output sample. It is a no-op when nothing is pending.
func (d *Downsampler) Flush() {
	if len(d.pending) == 0 {
		return
	}
	d.Type.process(d.pending)
	d.emit(d.pending)
	d.pending = d.pending[:0]
}

func (d *Downsampler) emit(window []float32) {
	var sum float32
	for _, s := range window {
		sum += s
	}
	avg := sum / float32(len(window))
	if avg > d.max {
		d.max = avg
	}
	d.out = append(d.out, avg)
}

// Samples returns the downsampled values written so far.
func (d *Downsampler) Samples() []float32 { return d.out }

// Max returns the largest downsampled value, never below the type's floor.
func (d *Downsampler) Max() float32 { return d.max }

// Normalize maps samples from [floor, max] into [0, 1]. A flat signal
// (max == floor) maps to all zeros.
func Normalize(samples []float32, max, floor float32) []float32 {
	out := make([]float32, len(samples))
	r := max - floor
	if r == 0 {
		return out
	}
	for i, s := range samples {
		out[i] = (s - floor) / r
	}
	return out
}
