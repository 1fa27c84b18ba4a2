package sheets

import (
	"fmt"
	"strings"
)

// Grid is the rectangular-by-convention cell matrix of a value range.
// Rows may be ragged: the API omits trailing empty cells.
type Grid [][]string

// Cell returns the raw cell at (row, col), or "" when either index falls
// outside the fetched range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	if col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// TrimmedCell is Cell with surrounding whitespace removed.
func (g Grid) TrimmedCell(row, col int) string {
	return strings.TrimSpace(g.Cell(row, col))
}

// DataRows returns the number of rows after the header row.
func (g Grid) DataRows() int {
	if len(g) <= 1 {
		return 0
	}
	return len(g) - 1
}

func toGrid(values [][]interface{}) Grid {
	grid := make(Grid, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for i, v := range row {
			switch cell := v.(type) {
			case string:
				cells[i] = cell
			case nil:
				cells[i] = ""
			default:
				cells[i] = fmt.Sprint(cell)
			}
		}
		grid = append(grid, cells)
	}
	return grid
}
