package proximity

import "github.com/rotisserie/eris"

var (
	// ErrShapeMismatch is returned when a value grid's dimensions differ
	// from its grid's declared dimensions, or when rows are ragged.
	ErrShapeMismatch = eris.New("proximity: shape mismatch")
	// ErrDegenerateTransform is returned when a pixel size is not positive.
	ErrDegenerateTransform = eris.New("proximity: degenerate transform")
	// ErrIndexOutOfRange is returned when a cell lies outside its grid.
	ErrIndexOutOfRange = eris.New("proximity: index out of range")
)
