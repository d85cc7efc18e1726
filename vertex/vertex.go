// Package vertex defines the colored vertex record uploaded to a GPU vertex
// buffer when drawing a waveform.
package vertex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"golang.org/x/mobile/exp/f32"
)

const (
	// Components is the number of float32 values in one vertex.
	Components = 6

	// Size is the byte size of one vertex. There is no padding.
	Size = Components * 4

	PositionOffset = 0
	ColorOffset    = 3 * 4
)

var ErrBufferSize = errors.New("buffer length is not a multiple of the vertex size")

// Vec3 is three ordered float32 components.
type Vec3 [3]float32

// Vertex is a position in drawing space and an RGB color in [0, 1].
// Alpha is implied opaque.
type Vertex struct {
	Position Vec3
	Color    Vec3
}

// Attribute describes one float3 attribute inside an interleaved vertex buffer.
type Attribute struct {
	Location   int
	Offset     int
	Components int
}

// Attributes lists the vertex attributes in buffer order. The stride of the
// buffer is Size.
var Attributes = []Attribute{
	{Location: 0, Offset: PositionOffset, Components: 3},
	{Location: 1, Offset: ColorOffset, Components: 3},
}

// Floats flattens vertices into position and color components, six per vertex.
func Floats(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*Components)
	for _, v := range vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2])
		out = append(out, v.Color[0], v.Color[1], v.Color[2])
	}
	return out
}

// Bytes packs vertices into a contiguous buffer ready for upload.
func Bytes(order binary.ByteOrder, vertices []Vertex) []byte {
	return f32.Bytes(order, Floats(vertices)...)
}

// Decode reads a buffer produced by Bytes.
func Decode(order binary.ByteOrder, buf []byte) ([]Vertex, error) {
	if len(buf)%Size != 0 {
		return nil, fmt.Errorf("decode %d bytes: %w", len(buf), ErrBufferSize)
	}

	vertices := make([]Vertex, len(buf)/Size)
	for i := range vertices {
		rec := buf[i*Size : (i+1)*Size]
		for c := 0; c < 3; c++ {
			vertices[i].Position[c] = math.Float32frombits(order.Uint32(rec[PositionOffset+c*4:]))
			vertices[i].Color[c] = math.Float32frombits(order.Uint32(rec[ColorOffset+c*4:]))
		}
	}
	return vertices, nil
}
