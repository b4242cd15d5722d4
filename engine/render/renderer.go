// Package render defines the contract between the toolkit core and a GPU
// (or software) backend, plus the accumulation helpers backends share.
package render

import (
	"errors"
	"image"

	"github.com/hubastard/xenon/engine/geom"
)

var (
	// ErrBackendSetup is matched by errors from backend construction. No
	// partially initialized renderer is ever returned alongside it.
	ErrBackendSetup = errors.New("render: backend setup failed")

	// ErrContractViolation is matched by misuse of a renderer outside its
	// render context.
	ErrContractViolation = errors.New("render: contract violation")
)

// TextureID indexes a renderer's texture table. IDs are stable for the
// renderer's lifetime.
type TextureID uint32

// Renderer is the sink for tessellated geometry.
//
// Add* calls accumulate in submission order, later objects drawing on top.
// Render flushes everything in one present and clears the accumulation; if
// nothing was added it returns without presenting. Resize must be idempotent
// and take effect before the next Render. RegisterTexture never
// deduplicates: registering the same image twice yields two IDs.
type Renderer interface {
	Name() string
	Resize(size geom.Size, scale float32)
	AddColoredObject(buf Buffers[ColorVertex])
	AddTexturedObject(tex TextureID, buf Buffers[TextureVertex])
	RegisterTexture(img image.Image) (TextureID, error)
	Render() error
}
