package dc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndex is returned for a layer, wire, superlayer or track
	// index outside its valid range.
	ErrInvalidIndex = errors.New("invalid index")
	// ErrWeightCount is returned by SetWeights when the weight vector does
	// not have one entry per track.
	ErrWeightCount = errors.New("weight count does not match track count")
	// ErrNotReset is returned by Read when the sector still holds the
	// previous event.
	ErrNotReset = errors.New("sector not reset since previous event")
)

func indexError(what string, v, limit int) error {
	return fmt.Errorf("%s %d out of range [0,%d): %w", what, v, limit, ErrInvalidIndex)
}
