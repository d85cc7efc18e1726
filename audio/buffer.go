package audio

import "io"

// Buffer is a decoded, in-memory mono signal.
type Buffer struct {
	Samples []float32
	Rate    int
}

// Ensure Buffer implements Source interface
var _ Source = (*Buffer)(nil)

func (b *Buffer) TotalSamples() int { return len(b.Samples) }

func (b *Buffer) SampleRate() int { return b.Rate }

func (b *Buffer) NewReader(start, end int) (Reader, error) {
	if err := checkSlice(b, start, end); err != nil {
		return nil, err
	}
	return &sliceReader{samples: b.Samples[start:end]}, nil
}

type sliceReader struct {
	samples []float32
}

func (r *sliceReader) Read(p []float32) (int, error) {
	if len(r.samples) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.samples)
	r.samples = r.samples[n:]
	return n, nil
}
