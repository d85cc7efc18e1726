package vertex

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	var v Vertex
	assert.Equal(t, uintptr(Size), unsafe.Sizeof(v))
	assert.Equal(t, uintptr(PositionOffset), unsafe.Offsetof(v.Position))
	assert.Equal(t, uintptr(ColorOffset), unsafe.Offsetof(v.Color))

	stride := 0
	for _, a := range Attributes {
		assert.Equal(t, stride, a.Offset)
		stride += a.Components * 4
	}
	assert.Equal(t, Size, stride)
}

func TestEquality(t *testing.T) {
	a := Vertex{Position: Vec3{1, 2, 0}, Color: Vec3{0.5, 0.5, 1}}
	b := Vertex{Position: Vec3{1, 2, 0}, Color: Vec3{0.5, 0.5, 1}}
	assert.True(t, a == b)

	b.Color[2] = 0.9
	assert.False(t, a == b)
}

func TestFloats(t *testing.T) {
	vs := []Vertex{
		{Position: Vec3{1, 2, 3}, Color: Vec3{0.1, 0.2, 0.3}},
		{Position: Vec3{4, 5, 6}, Color: Vec3{0.4, 0.5, 0.6}},
	}
	assert.Equal(t, []float32{1, 2, 3, 0.1, 0.2, 0.3, 4, 5, 6, 0.4, 0.5, 0.6}, Floats(vs))
	assert.Empty(t, Floats(nil))
}

func TestBytes(t *testing.T) {
	vs := []Vertex{
		{Position: Vec3{1, -1, 0}, Color: Vec3{1, 0, 0}},
		{Position: Vec3{0.25, 50, 0}, Color: Vec3{0, 0.5, 1}},
		{Position: Vec3{300, 0, 0}, Color: Vec3{0, 0, 0}},
	}

	buf := Bytes(binary.LittleEndian, vs)
	require.Len(t, buf, len(vs)*Size)
	assert.Equal(t, math.Float32bits(-1), binary.LittleEndian.Uint32(buf[4:]))
	assert.Equal(t, math.Float32bits(0.5), binary.LittleEndian.Uint32(buf[Size+ColorOffset+4:]))

	got, err := Decode(binary.LittleEndian, buf)
	require.NoError(t, err)
	assert.Equal(t, vs, got)

	_, err = Decode(binary.LittleEndian, buf[:Size+3])
	assert.ErrorIs(t, err, ErrBufferSize)
}

func TestBytesBigEndian(t *testing.T) {
	vs := []Vertex{{Position: Vec3{2, 0, 0}}}
	buf := Bytes(binary.BigEndian, vs)
	assert.Equal(t, math.Float32bits(2), binary.BigEndian.Uint32(buf))

	got, err := Decode(binary.BigEndian, buf)
	require.NoError(t, err)
	assert.Equal(t, vs, got)
}
