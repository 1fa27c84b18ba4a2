package clergy

import (
	"fmt"
	"io"

	"github.com/tagumdiocese/directory/internal/sheets"
)

// Inspect writes every row of the priests sheet with 1-based row numbers,
// marking category rows and the scheme they select.
func Inspect(w io.Writer, g sheets.Grid) error {
	if len(g) == 0 {
		_, err := fmt.Fprintln(w, "No data found in priests sheet")
		return err
	}

	if _, err := fmt.Fprintf(w, "Total rows: %d\n", len(g)); err != nil {
		return err
	}
	for row := range g {
		var err error
		if row > 0 && IsCategoryRow(g, row) {
			category := g.TrimmedCell(row, 0)
			_, err = fmt.Fprintf(w, "\n=== ROW %d: CATEGORY %q (%s) ===\n", row+1, category, SchemeFor(category))
		} else {
			_, err = fmt.Fprintf(w, "ROW %d: A=%q | B=%q | C=%q | D=%q\n",
				row+1, g.Cell(row, 0), g.Cell(row, 1), g.Cell(row, 2), g.Cell(row, 3))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
