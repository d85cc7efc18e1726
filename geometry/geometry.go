// Package geometry turns normalized waveform samples into colored vertices.
//
// Every sample produces exactly two vertices drawn as one line segment, so
// sample i owns output vertices 2i and 2i+1. Positions are in local drawing
// space with the origin at the bottom-left corner of the region, y growing
// upwards and z fixed at 0. Sample i is placed at x = i/(n-1) * Width; a
// lone sample sits on the left edge.
package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/d1nch8g/waveform/palette"
	"github.com/d1nch8g/waveform/vertex"
)

// VerticesPerSample is the number of vertices emitted for one sample.
const VerticesPerSample = 2

var (
	ErrInvalidRegion = errors.New("invalid drawing region")
	ErrInvalidSample = errors.New("invalid sample value")
	ErrInvalidRange  = errors.New("invalid sample range")
)

// Region is the drawing area, in the same units as vertex positions.
type Region struct {
	Width  float32
	Height float32
}

// Validate reports whether geometry can be projected into r.
func (r Region) Validate() error {
	if !finite(r.Width) || !finite(r.Height) || r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%gx%g: %w", r.Width, r.Height, ErrInvalidRegion)
	}
	return nil
}

// Topology selects where the two vertices of a sample are placed.
type Topology int

const (
	// Bars draws from the vertical middle to the middle displaced by
	// amplitude times half the height.
	Bars Topology = iota

	// Mirrored draws symmetrically around the vertical middle, spanning
	// amplitude times the full height.
	Mirrored
)

func (t Topology) String() string {
	switch t {
	case Bars:
		return "bars"
	case Mirrored:
		return "mirrored"
	}
	return fmt.Sprintf("Topology(%d)", int(t))
}

// ParseTopology is the inverse of Topology.String.
func ParseTopology(s string) (Topology, error) {
	switch s {
	case "", "bars":
		return Bars, nil
	case "mirrored":
		return Mirrored, nil
	}
	return 0, fmt.Errorf("unknown topology %q", s)
}

// SampleError reports a non-finite sample in strict mode.
type SampleError struct {
	Index int
	Value float32
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %d: %v is not finite", e.Index, e.Value)
}

func (e *SampleError) Unwrap() error { return ErrInvalidSample }

// Builder holds the policy for converting samples. The zero value draws
// black bars and clamps invalid samples.
type Builder struct {
	Topology Topology
	Scheme   palette.Scheme

	// Strict rejects non-finite samples with a *SampleError instead of
	// clamping them. No vertices are returned alongside the error.
	Strict bool
}

// Build converts samples into 2*len(samples) vertices inside region.
//
// Outside strict mode NaN becomes 0, infinities become ±1 and finite values
// are clamped to [-1, 1]. Empty input yields an empty slice.
func (b Builder) Build(samples []float32, region Region) ([]vertex.Vertex, error) {
	return b.BuildRange(samples, 0, len(samples), region)
}

// BuildRange converts a chunk of a larger buffer. The chunk starts at sample
// index start of a buffer holding total samples; x positions are computed
// against total, so consecutive chunks concatenate into the Build output for
// the whole buffer.
func (b Builder) BuildRange(samples []float32, start, total int, region Region) ([]vertex.Vertex, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}
	if start < 0 || start+len(samples) > total {
		return nil, fmt.Errorf("chunk %d+%d of %d: %w", start, len(samples), total, ErrInvalidRange)
	}
	if b.Strict {
		for i, s := range samples {
			if !finite(s) {
				return nil, &SampleError{Index: start + i, Value: s}
			}
		}
	}

	scheme := b.Scheme
	if scheme == nil {
		scheme = palette.Default
	}
	if sp, ok := scheme.(palette.Spanner); ok {
		scheme = sp.Span(total)
	}

	var step float32
	if total > 1 {
		step = region.Width / float32(total-1)
	}
	middle := region.Height / 2
	half := region.Height / 2

	out := make([]vertex.Vertex, 0, len(samples)*VerticesPerSample)
	for i, s := range samples {
		index := start + i
		a := Clamp(s)
		x := step * float32(index)
		color := sanitize(scheme.Color(index, a))

		var y0, y1 float32
		switch b.Topology {
		case Mirrored:
			y0, y1 = middle-a*half, middle+a*half
		default:
			y0, y1 = middle, middle+a*half
		}

		out = append(out,
			vertex.Vertex{Position: vertex.Vec3{x, y0, 0}, Color: color},
			vertex.Vertex{Position: vertex.Vec3{x, y1, 0}, Color: color},
		)
	}
	return out, nil
}

// Clamp maps a sample into [-1, 1]. NaN becomes 0.
func Clamp(s float32) float32 {
	switch {
	case math32.IsNaN(s):
		return 0
	case s > 1:
		return 1
	case s < -1:
		return -1
	}
	return s
}

// sanitize keeps colors that a scheme computed out of range from reaching
// the buffer.
func sanitize(c vertex.Vec3) vertex.Vec3 {
	for i, v := range c {
		switch {
		case !finite(v), v < 0:
			c[i] = 0
		case v > 1:
			c[i] = 1
		}
	}
	return c
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
