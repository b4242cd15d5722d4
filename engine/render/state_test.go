//go:build !release

package render_test

import (
	"errors"
	"image"
	"testing"

	"github.com/hubastard/xenon/engine/geom"
	"github.com/hubastard/xenon/engine/render"
)

type namedRenderer struct {
	name    string
	renders int
}

func (n *namedRenderer) Name() string { return n.name }

func (n *namedRenderer) Resize(geom.Size, float32) {}

func (n *namedRenderer) AddColoredObject(render.Buffers[render.ColorVertex]) {}

func (n *namedRenderer) AddTexturedObject(render.TextureID, render.Buffers[render.TextureVertex]) {}

func (n *namedRenderer) RegisterTexture(image.Image) (render.TextureID, error) { return 0, nil }

func (n *namedRenderer) Render() error {
	n.renders++
	return nil
}

func TestPresentMatchingState(t *testing.T) {
	r := &namedRenderer{name: "soft"}
	var st render.RenderState
	render.Bind(r, &st)
	if st.Owner() != "soft" {
		t.Fatalf("Owner() = %q", st.Owner())
	}
	if err := render.Present(r, &st); err != nil {
		t.Fatal(err)
	}
	if r.renders != 1 {
		t.Errorf("renders = %d, want 1", r.renders)
	}
}

func TestPresentMismatchPanics(t *testing.T) {
	a := &namedRenderer{name: "gl"}
	b := &namedRenderer{name: "soft"}
	var st render.RenderState
	render.Bind(a, &st)

	defer func() {
		v := recover()
		err, ok := v.(error)
		if !ok {
			t.Fatalf("recovered %v, want error", v)
		}
		var me *render.MismatchError
		if !errors.As(err, &me) || me.Expected != "gl" || me.Got != "soft" {
			t.Errorf("panic = %v", err)
		}
		if !errors.Is(err, render.ErrContractViolation) {
			t.Errorf("panic %v does not match ErrContractViolation", err)
		}
		if b.renders != 0 {
			t.Errorf("mismatched renderer rendered %d times", b.renders)
		}
	}()
	render.Present(b, &st)
}

func TestPresentUncheckedSkipsCheck(t *testing.T) {
	b := &namedRenderer{name: "soft"}
	if err := render.PresentUnchecked(b); err != nil {
		t.Fatal(err)
	}
	var st render.RenderState
	render.Bind(&namedRenderer{name: "gl"}, &st)
	if err := render.Check(b, &st); !errors.Is(err, render.ErrContractViolation) {
		t.Errorf("Check = %v", err)
	}
}
