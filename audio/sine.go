package audio

import (
	"io"

	"github.com/chewxy/math32"
)

// Sine is a generated sine wave. Samples are computed on read.
type Sine struct {
	Frequency float32
	Amplitude float32
	Rate      int
	Length    int
}

// Ensure Sine implements Source interface
var _ Source = Sine{}

// NewSine returns a one channel sine of the given length in samples.
func NewSine(frequency, amplitude float32, rate, length int) Sine {
	return Sine{Frequency: frequency, Amplitude: amplitude, Rate: rate, Length: length}
}

func (s Sine) TotalSamples() int { return s.Length }

func (s Sine) SampleRate() int { return s.Rate }

// At returns sample i.
func (s Sine) At(i int) float32 {
	if s.Rate <= 0 {
		return 0
	}
	t := float32(i) / float32(s.Rate)
	return s.Amplitude * math32.Sin(2*math32.Pi*s.Frequency*t)
}

func (s Sine) NewReader(start, end int) (Reader, error) {
	if err := checkSlice(s, start, end); err != nil {
		return nil, err
	}
	return &sineReader{sine: s, pos: start, end: end}, nil
}

type sineReader struct {
	sine     Sine
	pos, end int
}

func (r *sineReader) Read(p []float32) (int, error) {
	if r.pos >= r.end {
		return 0, io.EOF
	}
	n := min(len(p), r.end-r.pos)
	for i := 0; i < n; i++ {
		p[i] = r.sine.At(r.pos + i)
	}
	r.pos += n
	return n, nil
}
