package input

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/xenon/engine/geom"
)

type keySnapshot struct {
	Down, Pressed, Released bool
}

func snapKey(in *Input, k Key) keySnapshot {
	return keySnapshot{in.IsDown(k), in.IsPressed(k), in.IsReleased(k)}
}

func TestKeyPressLifecycle(t *testing.T) {
	keys := []Key{KeySpace, KeyA, KeyEscape, Key9}
	for _, k := range keys {
		in := New(geom.Rect(0, 0, 100, 100))
		in.ProcessPressed(k)
		if in.IsPressed(k) {
			t.Fatalf("key %v pressed before Update", k)
		}
		in.Update()
		if got, want := snapKey(in, k), (keySnapshot{Down: true, Pressed: true}); got != want {
			t.Errorf("after first Update: got %+v, want %+v", got, want)
		}
		in.Update()
		if got, want := snapKey(in, k), (keySnapshot{Down: true}); got != want {
			t.Errorf("after second Update: got %+v, want %+v", got, want)
		}
	}
}

func TestArrowKeysTrackedIndependently(t *testing.T) {
	in := New(geom.Rect(0, 0, 100, 100))
	in.ProcessPressed(KeyArrowDown)
	in.Update()
	if got := in.KeyState(KeyArrowDown); got != KeyPressed {
		t.Fatalf("arrow down state = %v, want pressed", got)
	}
	in.Update()
	if got := in.KeyState(KeyArrowDown); got != KeyDown {
		t.Fatalf("arrow down state = %v, want down", got)
	}
	for _, k := range []Key{KeyArrowLeft, KeyArrowRight, KeyArrowUp} {
		if in.IsDown(k) {
			t.Errorf("key %v down without a press", k)
		}
	}
}

func TestKeyReleaseLifecycle(t *testing.T) {
	in := New(geom.Rect(0, 0, 100, 100))
	in.ProcessPressed(KeyW)
	in.Update()
	in.Update()

	in.ProcessReleased(KeyW)
	in.Update()
	if got, want := snapKey(in, KeyW), (keySnapshot{Released: true}); got != want {
		t.Errorf("release tick: got %+v, want %+v", got, want)
	}
	in.Update()
	if got := snapKey(in, KeyW); got != (keySnapshot{}) {
		t.Errorf("after release decay: got %+v, want all false", got)
	}
	if in.KeyState(KeyW) != KeyNone {
		t.Errorf("state = %v, want none", in.KeyState(KeyW))
	}
}

func TestPressAndReleaseSameTickReleaseWins(t *testing.T) {
	in := New(geom.Rect(0, 0, 10, 10))
	in.ProcessPressed(KeyQ)
	in.ProcessReleased(KeyQ)
	in.Update()
	if !in.IsReleased(KeyQ) || in.IsDown(KeyQ) {
		t.Errorf("got %+v, want released only", snapKey(in, KeyQ))
	}
}

func TestUpdateIdempotentWithoutEvents(t *testing.T) {
	in := New(geom.Rect(0, 0, 100, 100))
	in.ProcessPressed(KeyA)
	in.ProcessReleased(KeyB)
	in.ProcessMouseMove(geom.Pt(10, 10))
	if err := in.ProcessMouseClick(MouseLeft); err != nil {
		t.Fatal(err)
	}
	in.Update()
	in.Update()

	snapshot := func() []any {
		p, ok := in.IsMouseDown(MouseLeft)
		return []any{snapKey(in, KeyA), snapKey(in, KeyB), p, ok, in.NeedsUpdate()}
	}
	first := snapshot()
	in.Update()
	if diff := cmp.Diff(first, snapshot()); diff != "" {
		t.Errorf("Update changed settled state (-before +after):\n%s", diff)
	}
}

func TestMouseClickScenario(t *testing.T) {
	in := New(geom.Rect(0, 0, 100, 100))
	in.ProcessMouseMove(geom.Pt(50, 50))
	if err := in.ProcessMouseClick(MouseLeft); err != nil {
		t.Fatal(err)
	}
	in.Update()

	p, ok := in.IsMouseClicked(MouseLeft)
	if !ok || p != geom.Pt(50, 50) {
		t.Fatalf("IsMouseClicked = %v, %v; want (50,50), true", p, ok)
	}

	in.Update()
	if p, ok := in.IsMouseDown(MouseLeft); !ok || p != geom.Pt(50, 50) {
		t.Errorf("IsMouseDown = %v, %v; want (50,50), true", p, ok)
	}
	if _, ok := in.IsMouseClicked(MouseLeft); ok {
		t.Error("IsMouseClicked still true on second tick")
	}
}

func TestMouseOutsideBounds(t *testing.T) {
	in := New(geom.Rect(0, 0, 100, 100))
	in.ProcessMouseMove(geom.Pt(20, 20))
	_ = in.ProcessMouseClick(MouseRight)
	in.Update()
	if _, ok := in.IsMouseClicked(MouseRight); !ok {
		t.Fatal("click inside bounds not reported")
	}
	in.ProcessMouseMove(geom.Pt(150, 20))
	if _, ok := in.IsMouseClicked(MouseRight); ok {
		t.Error("click reported with pointer outside bounds")
	}
	in.Update()
	if _, ok := in.IsMouseDown(MouseRight); ok {
		t.Error("down reported with pointer outside bounds")
	}
}

func TestMousePositionTranslatedAndClamped(t *testing.T) {
	tests := []struct {
		name   string
		bounds geom.Box
		pos    geom.Point
		want   geom.Point
	}{
		{"origin", geom.Rect(0, 0, 100, 100), geom.Pt(10, 20), geom.Pt(10, 20)},
		{"offset", geom.Rect(10, 10, 200, 200), geom.Pt(30, 40), geom.Pt(40, 50)},
		{"clamped", geom.Rect(50, 50, 100, 100), geom.Pt(60, 99), geom.Pt(100, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New(tt.bounds)
			in.ProcessMouseMove(tt.pos)
			_ = in.ProcessMouseClick(MouseMiddle)
			in.Update()
			got, ok := in.IsMouseClicked(MouseMiddle)
			if !ok {
				t.Fatal("click not reported")
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if mp := in.MousePosition(); mp != tt.want {
				t.Errorf("MousePosition = %v, want %v", mp, tt.want)
			}
		})
	}
}

func TestMouseReleaseLifecycle(t *testing.T) {
	in := New(geom.Rect(0, 0, 10, 10))
	in.ProcessMouseMove(geom.Pt(1, 1))
	_ = in.ProcessMouseClick(MouseLeft)
	in.Update()
	_ = in.ProcessMouseRelease(MouseLeft)
	in.Update()
	if _, ok := in.IsMouseReleased(MouseLeft); !ok {
		t.Error("release not reported")
	}
	in.Update()
	if s := in.MouseState(MouseLeft); s != MouseNone {
		t.Errorf("state = %v, want none", s)
	}
}

func TestFirstMouseEventWinsPerTick(t *testing.T) {
	in := New(geom.Rect(0, 0, 10, 10))
	_ = in.ProcessMouseClick(MouseLeft)
	_ = in.ProcessMouseRelease(MouseLeft)
	_ = in.ProcessMouseRelease(MouseRight)
	in.Update()
	if s := in.MouseState(MouseLeft); s != MouseClicked {
		t.Errorf("left = %v, want clicked", s)
	}
	if s := in.MouseState(MouseRight); s != MouseReleased {
		t.Errorf("right = %v, want released", s)
	}
	if in.NeedsUpdate() {
		t.Error("unconsumed events survived Update")
	}
}

func TestNeedsUpdate(t *testing.T) {
	in := New(geom.Rect(0, 0, 10, 10))
	if in.NeedsUpdate() {
		t.Fatal("fresh input needs update")
	}
	in.ProcessMouseMove(geom.Pt(1, 1))
	if in.NeedsUpdate() {
		t.Error("mouse move must not require update")
	}
	in.ProcessReleased(KeyA)
	if !in.NeedsUpdate() {
		t.Error("buffered release not reported")
	}
	in.Update()
	if in.NeedsUpdate() {
		t.Error("buffers not drained")
	}
}

func TestUnsupportedButton(t *testing.T) {
	in := New(geom.Rect(0, 0, 10, 10))
	err := in.ProcessMouseClick(OtherButton(1))
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Fatalf("err = %v, want ErrUnsupportedInput", err)
	}
	var be *UnsupportedButtonError
	if !errors.As(err, &be) || be.Button != OtherButton(1) {
		t.Errorf("err = %#v, want button other(1)", err)
	}
	if in.NeedsUpdate() {
		t.Error("unsupported event was buffered")
	}
	if err := in.ProcessMouseRelease(OtherButton(0)); err == nil {
		t.Error("release of unsupported button accepted")
	}

	defer func() {
		r := recover()
		if err, ok := r.(error); !ok || !errors.Is(err, ErrUnsupportedInput) {
			t.Errorf("recovered %v, want unsupported input panic", r)
		}
	}()
	in.IsMouseDown(OtherButton(2))
}
