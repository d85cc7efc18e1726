// Package palette maps waveform samples to vertex colors.
package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/d1nch8g/waveform/vertex"
)

var ErrInvalidColor = errors.New("invalid color")

var (
	Black = vertex.Vec3{0, 0, 0}
	White = vertex.Vec3{1, 1, 1}
)

// Scheme assigns a color to the sample at index with the given amplitude.
// Implementations must return a color for every index the builder passes.
type Scheme interface {
	Color(index int, amplitude float32) vertex.Vec3
}

// Default is used when no scheme is configured.
var Default Scheme = Solid(Black)

// Solid colors every sample the same.
type Solid vertex.Vec3

func (s Solid) Color(int, float32) vertex.Vec3 { return vertex.Vec3(s) }

// Spanner is implemented by schemes that depend on the number of samples
// drawn. The builder calls Span with that number before coloring.
type Spanner interface {
	Span(total int) Scheme
}

// Gradient blends From to To across Count samples by index. A zero Count
// stretches the gradient over whatever buffer it is drawn into.
type Gradient struct {
	From, To vertex.Vec3
	Count    int
}

// Span fills in a zero Count with total. An explicit Count is kept.
func (g Gradient) Span(total int) Scheme {
	if g.Count > 0 {
		return g
	}
	g.Count = total
	return g
}

func (g Gradient) Color(index int, _ float32) vertex.Vec3 {
	if g.Count <= 1 {
		return g.From
	}
	t := float32(index) / float32(g.Count-1)
	return Lerp(g.From, g.To, t)
}

// Heat blends Low to High by the magnitude of the amplitude.
type Heat struct {
	Low, High vertex.Vec3
}

func (h Heat) Color(_ int, amplitude float32) vertex.Vec3 {
	return Lerp(h.Low, h.High, math32.Abs(amplitude))
}

// Func adapts a plain function to a Scheme.
type Func func(index int, amplitude float32) vertex.Vec3

func (f Func) Color(index int, amplitude float32) vertex.Vec3 { return f(index, amplitude) }

// Lerp blends a to b, with t clamped to [0, 1].
func Lerp(a, b vertex.Vec3, t float32) vertex.Vec3 {
	t = math32.Max(0, math32.Min(1, t))
	var out vertex.Vec3
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// Parse reads a "#rrggbb" or "rrggbb" hex color.
func Parse(s string) (vertex.Vec3, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return vertex.Vec3{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}

	var c vertex.Vec3
	for i := range c {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return vertex.Vec3{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
		}
		c[i] = float32(v) / 255
	}
	return c, nil
}
