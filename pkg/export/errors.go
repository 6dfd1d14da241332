package export

import (
	"errors"
	"fmt"

	"github.com/gardar/faixa/pkg/geometry"
)

var (
	ErrNoImage = errors.New("no image loaded")
	// ErrInvalidDPI is the geometry sentinel, re-exported for callers of this package.
	ErrInvalidDPI = geometry.ErrInvalidDPI
)

// TileError is a failure while exporting one sheet. It aborts the whole session.
type TileError struct {
	Index int    // 1-based, row-major
	ID    string // L{row}C{col}
	Err   error
}

func (e *TileError) Error() string {
	return fmt.Sprintf("failed to export sheet %d (%s): %v", e.Index, e.ID, e.Err)
}

func (e *TileError) Unwrap() error { return e.Err }
