package cfgfile

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the config file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrParse matches every *ParseError.
	ErrParse = errors.New("malformed config file")

	// ErrInterpolationCycle indicates values that reference each other in a loop.
	ErrInterpolationCycle = errors.New("interpolation cycle")
)

// ParseError reports a syntax or interpolation failure in a config file.
type ParseError struct {
	Path string
	Line int // 1-based; 0 when the failure is not tied to a line
	Msg  string
	Err  error // optional underlying kind, e.g. ErrInterpolationCycle
}

func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return fmt.Sprintf("%s: %s: %s", loc, ErrParse, e.Msg)
}

// Is makes errors.Is(err, ErrParse) true for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
