package render

import "fmt"

// ColorVertex is the GPU layout for colored geometry: pos2 + color4.
type ColorVertex struct {
	Position [2]float32
	Color    [4]float32
}

// TextureVertex is the GPU layout for textured geometry: pos2 + uv2.
type TextureVertex struct {
	Position [2]float32
	UV       [2]float32
}

// Strides in bytes, matching the vertex attribute layouts of the backends.
const (
	ColorVertexStride   = (2 + 4) * 4
	TextureVertexStride = (2 + 2) * 4
)

// MaxIndexedVertices is the most vertices a single buffer may address with
// 16-bit indices.
const MaxIndexedVertices = 1 << 16

// Buffers is an indexed triangle list.
type Buffers[V any] struct {
	Vertices []V
	Indices  []uint16
}

func (b *Buffers[V]) Empty() bool { return len(b.Indices) == 0 }

// Validate checks the triangle-list invariants: indices come in triples and
// every index addresses an existing vertex.
func (b *Buffers[V]) Validate() error {
	if len(b.Indices)%3 != 0 {
		return fmt.Errorf("render: %d indices is not a multiple of 3", len(b.Indices))
	}
	for i, idx := range b.Indices {
		if int(idx) >= len(b.Vertices) {
			return fmt.Errorf("render: index %d at %d out of range (%d vertices)", idx, i, len(b.Vertices))
		}
	}
	return nil
}

// Append adds other's triangles to b, rebasing other's indices. It reports
// false, leaving b untouched, when the merged buffer would overflow 16-bit
// indices.
func (b *Buffers[V]) Append(other Buffers[V]) bool {
	base := len(b.Vertices)
	if base+len(other.Vertices) > MaxIndexedVertices {
		return false
	}
	b.Vertices = append(b.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		b.Indices = append(b.Indices, uint16(base)+idx)
	}
	return true
}
