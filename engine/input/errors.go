package input

import (
	"errors"
	"fmt"
)

// ErrUnsupportedInput is matched by every error reporting an input device or
// button without defined semantics.
var ErrUnsupportedInput = errors.New("input: unsupported input device")

// UnsupportedButtonError reports a pointer button outside left/middle/right.
type UnsupportedButtonError struct {
	Button MouseButton
	Op     string
}

func (e *UnsupportedButtonError) Error() string {
	return fmt.Sprintf("input: %s: mouse button %s is not supported", e.Op, e.Button)
}

func (e *UnsupportedButtonError) Is(target error) bool { return target == ErrUnsupportedInput }
