package geometry

import (
	"fmt"
	"regexp"
	"strconv"
)

// Cell is one grid position. Row and Col are 0-based.
type Cell struct {
	Row int
	Col int
}

// Index returns the 1-based row-major index of the cell in a grid with the given columns.
func (c Cell) Index(columns int) int {
	return c.Row*columns + c.Col + 1
}

// ID returns the sheet identifier printed on labels and used in file names, e.g. "L1C3".
func (c Cell) ID() string {
	return fmt.Sprintf("L%dC%d", c.Row+1, c.Col+1)
}

// CheckerParity is 0 or 1 alternating across the grid like a checkerboard.
func (c Cell) CheckerParity() int {
	return (c.Row + c.Col) % 2
}

var idPattern = regexp.MustCompile(`^L([1-9][0-9]*)C([1-9][0-9]*)$`)

// ParseID is the inverse of Cell.ID.
func ParseID(id string) (Cell, error) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return Cell{}, fmt.Errorf("invalid sheet identifier %q", id)
	}
	row, err := strconv.Atoi(m[1])
	if err != nil {
		return Cell{}, fmt.Errorf("invalid sheet row in %q: %w", id, err)
	}
	col, err := strconv.Atoi(m[2])
	if err != nil {
		return Cell{}, fmt.Errorf("invalid sheet column in %q: %w", id, err)
	}
	return Cell{Row: row - 1, Col: col - 1}, nil
}

// CellFromIndex is the inverse of Cell.Index.
func CellFromIndex(index, columns int) (Cell, error) {
	if columns < 1 || index < 1 {
		return Cell{}, fmt.Errorf("invalid sheet index %d for %d columns", index, columns)
	}
	i := index - 1
	return Cell{Row: i / columns, Col: i % columns}, nil
}

// Cells returns every cell of the grid in row-major order.
func (g Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Total)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	}
	return cells
}

// Contains reports whether the cell lies inside the grid.
func (g Grid) Contains(c Cell) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < g.Rows && c.Col < g.Columns
}
