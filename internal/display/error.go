package display

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds    = errors.New("outside of the screen")
	ErrRegionOverlap  = errors.New("value region overlaps the label")
	ErrRegionTooSmall = errors.New("value region is too small for the duty text")
)

// Error is a failure while rendering or committing a frame.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("display %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
