package geom

import "errors"

var (
	// ErrBadGeometry is returned when a "WxH+X+Y" string cannot be parsed
	ErrBadGeometry = errors.New("malformed geometry")

	// ErrDegenerate is returned when a rect is too small to be a usable panel
	ErrDegenerate = errors.New("degenerate geometry")
)
