package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d1nch8g/waveform/vertex"
)

func TestSolid(t *testing.T) {
	s := Solid(vertex.Vec3{0.2, 0.4, 0.6})
	assert.Equal(t, vertex.Vec3{0.2, 0.4, 0.6}, s.Color(0, 1))
	assert.Equal(t, vertex.Vec3{0.2, 0.4, 0.6}, s.Color(1000, -1))
	assert.Equal(t, Black, Default.Color(3, 0.5))
}

func TestGradient(t *testing.T) {
	g := Gradient{From: Black, To: White, Count: 3}
	assert.Equal(t, Black, g.Color(0, 0))
	assert.Equal(t, vertex.Vec3{0.5, 0.5, 0.5}, g.Color(1, 0))
	assert.Equal(t, White, g.Color(2, 0))

	// past the end clamps to the last color
	assert.Equal(t, White, g.Color(7, 0))

	single := Gradient{From: White, To: Black, Count: 1}
	assert.Equal(t, White, single.Color(0, 0))
}

func TestGradientSpan(t *testing.T) {
	open := Gradient{From: Black, To: White}
	assert.Equal(t, Gradient{From: Black, To: White, Count: 4}, open.Span(4))
	assert.Equal(t, White, open.Span(4).Color(3, 0))

	fixed := Gradient{From: Black, To: White, Count: 10}
	assert.Equal(t, fixed, fixed.Span(4), "explicit count is kept")
}

func TestHeat(t *testing.T) {
	h := Heat{Low: Black, High: vertex.Vec3{1, 0, 0}}
	assert.Equal(t, Black, h.Color(0, 0))
	assert.Equal(t, vertex.Vec3{0.5, 0, 0}, h.Color(0, -0.5))
	assert.Equal(t, vertex.Vec3{1, 0, 0}, h.Color(0, 4))
}

func TestFunc(t *testing.T) {
	f := Func(func(i int, _ float32) vertex.Vec3 { return vertex.Vec3{float32(i), 0, 0} })
	assert.Equal(t, vertex.Vec3{2, 0, 0}, f.Color(2, 0))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want vertex.Vec3
	}{
		{"#000000", Black},
		{"ffffff", White},
		{" #FF0000 ", vertex.Vec3{1, 0, 0}},
		{"#0000ff", vertex.Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#fff", "#gg0000", "1234567"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, bad)
	}
}
