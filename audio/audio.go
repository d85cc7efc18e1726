package audio

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidSlice      = errors.New("invalid sample slice")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Source supplies mono samples in the range [-1, 1]
type Source interface {
	// TotalSamples returns the number of samples available
	TotalSamples() int

	// SampleRate returns the sample rate in Hz
	SampleRate() int

	// NewReader returns a reader over samples [start, end)
	NewReader(start, end int) (Reader, error)
}

// Reader reads consecutive samples from a Source
type Reader interface {
	// Read fills p with up to len(p) samples and returns io.EOF once the
	// slice is exhausted
	Read(p []float32) (int, error)
}

func checkSlice(src Source, start, end int) error {
	if start < 0 || end < start || end > src.TotalSamples() {
		return fmt.Errorf("[%d, %d) of %d samples: %w", start, end, src.TotalSamples(), ErrInvalidSlice)
	}
	return nil
}

// ReadAll drains r into memory.
func ReadAll(r Reader, batchSize int) ([]float32, error) {
	if batchSize <= 0 {
		batchSize = 4096
	}
	var out []float32
	batch := make([]float32, batchSize)
	for {
		n, err := r.Read(batch)
		out = append(out, batch[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
