package render

import "fmt"

// RenderState is the render context a renderer was configured for. It
// carries the owning renderer's name so mismatched pairs can be caught.
type RenderState struct {
	renderer string
}

// Bind configures state for r and returns it.
func Bind(r Renderer, state *RenderState) *RenderState {
	state.renderer = r.Name()
	return state
}

// Owner returns the name of the renderer state was bound to.
func (s *RenderState) Owner() string { return s.renderer }

// MismatchError reports a renderer used with a state bound to another one.
type MismatchError struct {
	Expected, Got string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("render: renderer mismatch: state belongs to %q, got %q", e.Expected, e.Got)
}

func (e *MismatchError) Is(target error) bool { return target == ErrContractViolation }

// Present renders r into state. Unless built with the release tag it first
// panics with a *MismatchError if state was bound to another renderer.
func Present(r Renderer, state *RenderState) error {
	if checkContext {
		if err := Check(r, state); err != nil {
			panic(err)
		}
	}
	return PresentUnchecked(r)
}

// PresentUnchecked renders r without checking its render context.
func PresentUnchecked(r Renderer) error { return r.Render() }

// Check returns a *MismatchError if state does not belong to r.
func Check(r Renderer, state *RenderState) error {
	if state.renderer != r.Name() {
		return &MismatchError{Expected: state.renderer, Got: r.Name()}
	}
	return nil
}
