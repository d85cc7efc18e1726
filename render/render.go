// Package render reads a slice of an audio source and turns it into a
// vertex buffer sized for a drawing area.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/d1nch8g/waveform/audio"
	"github.com/d1nch8g/waveform/geometry"
	"github.com/d1nch8g/waveform/palette"
	"github.com/d1nch8g/waveform/sampler"
	"github.com/d1nch8g/waveform/vertex"
)

var ErrEmptyRange = errors.New("empty sample range")

// Format controls how a waveform is drawn.
type Format struct {
	Type     sampler.Type
	Topology geometry.Topology
	Scheme   palette.Scheme

	// Scale is the number of output samples per unit of width, usually the
	// screen scale.
	Scale float32

	// Strict fails the render on the first non-finite source sample with a
	// *geometry.SampleError instead of drawing it as silence.
	Strict bool
}

// DefaultFormat draws linear black bars at scale 1.
func DefaultFormat() Format {
	return Format{
		Type:     sampler.Linear,
		Topology: geometry.Bars,
		Scheme:   palette.Default,
		Scale:    1,
	}
}

// Config holds the configuration for a Renderer
type Config struct {
	BatchSize int

	// Progress, if set, is called after each batch with the number of
	// source samples read so far and the total to read.
	Progress func(done, total int)
}

// Frame is the result of one render.
type Frame struct {
	Vertices []vertex.Vertex

	// Samples are the downsampled amplitudes before normalization.
	Samples         []float32
	SampleMax       float32
	SamplesPerPixel int
	Region          geometry.Region
}

// Renderer turns audio sources into vertex buffers. It keeps no state
// between renders and may be used from several goroutines.
type Renderer struct {
	config Config
	logger *slog.Logger
}

// NewRenderer creates a renderer. A nil logger uses slog.Default.
func NewRenderer(config Config, logger *slog.Logger) *Renderer {
	if config.BatchSize <= 0 {
		config.BatchSize = 4000
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{config: config, logger: logger}
}

// Render draws samples [start, end) of src into size. ctx is checked between
// batches.
func (r *Renderer) Render(ctx context.Context, src audio.Source, size geometry.Region, format Format, start, end int) (*Frame, error) {
	if end <= start {
		return nil, fmt.Errorf("[%d, %d): %w", start, end, ErrEmptyRange)
	}
	if err := size.Validate(); err != nil {
		return nil, err
	}
	if format.Scale <= 0 {
		format.Scale = 1
	}

	began := time.Now()
	target := int(size.Width * format.Scale)
	if target < 1 {
		target = 1
	}

	reader, err := src.NewReader(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to open reader: %w", err)
	}

	total := end - start
	down := sampler.New(format.Type, total, target)
	down.Strict = format.Strict
	down.Start = start
	if err := r.read(ctx, reader, down, total); err != nil {
		return nil, err
	}
	down.Flush()

	samples := down.Samples()
	normalized := sampler.Normalize(samples, down.Max(), format.Type.Floor())

	builder := geometry.Builder{
		Topology: format.Topology,
		Scheme:   format.Scheme,
		Strict:   format.Strict,
	}
	vertices, err := builder.Build(normalized, size)
	if err != nil {
		return nil, fmt.Errorf("failed to build geometry: %w", err)
	}

	r.logger.Debug("rendered waveform",
		"samples", total,
		"points", len(samples),
		"samples_per_pixel", down.SamplesPerPixel,
		"vertices", len(vertices),
		"type", format.Type.String(),
		"elapsed", time.Since(began),
	)

	return &Frame{
		Vertices:        vertices,
		Samples:         samples,
		SampleMax:       down.Max(),
		SamplesPerPixel: down.SamplesPerPixel,
		Region:          size,
	}, nil
}

func (r *Renderer) read(ctx context.Context, reader audio.Reader, down *sampler.Downsampler, total int) error {
	batch := make([]float32, r.config.BatchSize)
	done := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := reader.Read(batch)
		if n > 0 {
			if err := down.Write(batch[:n]); err != nil {
				return fmt.Errorf("failed to downsample audio: %w", err)
			}
			done += n
			if r.config.Progress != nil {
				r.config.Progress(done, total)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read audio: %w", err)
		}
	}
}
