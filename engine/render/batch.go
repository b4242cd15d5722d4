package render

import "github.com/hubastard/xenon/engine/geom"

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	Presents  int
	DrawCalls int
	Vertices  int
	Indices   int
	Textures  int
}

// ItemKind tells which buffer of an Item is populated.
type ItemKind int

const (
	ItemColored ItemKind = iota
	ItemTextured
)

// Item is one draw call worth of geometry.
type Item struct {
	Kind     ItemKind
	Texture  TextureID
	Colored  Buffers[ColorVertex]
	Textured Buffers[TextureVertex]
}

// Batch accumulates submitted geometry for the next present. Consecutive
// submissions of the same kind (and texture) are merged into one item as long
// as 16-bit indices suffice; submission order is preserved across items.
type Batch struct {
	items []Item
}

func (b *Batch) AddColored(buf Buffers[ColorVertex]) {
	if buf.Empty() {
		return
	}
	if n := len(b.items); n > 0 && b.items[n-1].Kind == ItemColored {
		if b.items[n-1].Colored.Append(buf) {
			return
		}
	}
	var it Item
	it.Kind = ItemColored
	it.Colored.Append(buf)
	b.items = append(b.items, it)
}

func (b *Batch) AddTextured(tex TextureID, buf Buffers[TextureVertex]) {
	if buf.Empty() {
		return
	}
	if n := len(b.items); n > 0 && b.items[n-1].Kind == ItemTextured && b.items[n-1].Texture == tex {
		if b.items[n-1].Textured.Append(buf) {
			return
		}
	}
	it := Item{Kind: ItemTextured, Texture: tex}
	it.Textured.Append(buf)
	b.items = append(b.items, it)
}

// Items returns the pending draw items in submission order.
func (b *Batch) Items() []Item { return b.items }

func (b *Batch) Empty() bool { return len(b.items) == 0 }

// Reset drops all pending geometry.
func (b *Batch) Reset() {
	for i := range b.items {
		b.items[i] = Item{}
	}
	b.items = b.items[:0]
}

// Stats reports what the pending items would cost to draw.
func (b *Batch) Stats() Statistics {
	var s Statistics
	s.DrawCalls = len(b.items)
	for _, it := range b.items {
		switch it.Kind {
		case ItemColored:
			s.Vertices += len(it.Colored.Vertices)
			s.Indices += len(it.Colored.Indices)
		case ItemTextured:
			s.Vertices += len(it.Textured.Vertices)
			s.Indices += len(it.Textured.Indices)
		}
	}
	return s
}

// TextureTable maps stable IDs to backend texture handles. Entries are
// never replaced or removed.
type TextureTable[T any] struct {
	slots []T
}

func (t *TextureTable[T]) Add(tex T) TextureID {
	t.slots = append(t.slots, tex)
	return TextureID(len(t.slots) - 1)
}

func (t *TextureTable[T]) Get(id TextureID) (T, bool) {
	if int(id) >= len(t.slots) {
		var zero T
		return zero, false
	}
	return t.slots[id], true
}

func (t *TextureTable[T]) Len() int { return len(t.slots) }

// All returns the registered handles indexed by TextureID.
func (t *TextureTable[T]) All() []T { return t.slots }

// Viewport remembers the last applied size and scale factor so backends can
// make Resize idempotent.
type Viewport struct {
	Size  geom.Size
	Scale float32
	set   bool
}

// Update records size and scale and reports whether they differ from the
// previous call.
func (v *Viewport) Update(size geom.Size, scale float32) bool {
	if v.set && v.Size == size && v.Scale == scale {
		return false
	}
	v.Size, v.Scale, v.set = size, scale, true
	return true
}

// Physical returns the viewport size in device pixels.
func (v *Viewport) Physical() (w, h int) {
	return int(v.Size.Width*v.Scale + 0.5), int(v.Size.Height*v.Scale + 0.5)
}
