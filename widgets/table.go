package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// TableColumn defines a column in a Table.
type TableColumn struct {
	Width int         // fixed character width
	Style vaxis.Style // applied to all cells in this column
}

// Table renders rows of text with fixed-width columns using WriteCell.
// Each row is a []string matching the Columns slice.
type Table struct {
	Columns []TableColumn
	Rows    [][]string
	Styles  [][]vaxis.Style // optional per-cell styles, overriding the column style when set
	Gap     int             // spaces between columns (default 1)
	RowGap  int             // blank rows between data rows
}

// cellStyle returns the style for the data cell at (row, col).
func (t *Table) cellStyle(row, col int) vaxis.Style {
	if row < len(t.Styles) && col < len(t.Styles[row]) && t.Styles[row][col] != (vaxis.Style{}) {
		return t.Styles[row][col]
	}
	return t.Columns[col].Style
}

// writeText writes s into surf at (col, row), stopping at maxWidth.
func writeText(surf *vxfw.Surface, col, row uint16, maxWidth int, s string, style vaxis.Style) {
	pos := 0
	for _, ch := range vaxis.Characters(s) {
		if pos+ch.Width > maxWidth {
			break
		}
		surf.WriteCell(col+uint16(pos), row, vaxis.Cell{
			Character: ch,
			Style:     style,
		})
		pos += ch.Width
	}
}

// Draw renders all rows, RowGap blank rows apart.
func (t *Table) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	gap := t.Gap
	if gap == 0 {
		gap = 1
	}

	totalRows := len(t.Rows)
	if totalRows > 0 {
		totalRows += (totalRows - 1) * t.RowGap
	}

	height := uint16(totalRows)
	if height > ctx.Max.Height {
		height = ctx.Max.Height
	}

	s := vxfw.NewSurface(ctx.Max.Width, height, t)
	row := uint16(0)

	// Data rows
	for r, cells := range t.Rows {
		if r > 0 {
			row += uint16(t.RowGap)
		}
		if row >= height {
			break
		}
		col := uint16(0)
		for i, c := range t.Columns {
			if int(col) >= int(ctx.Max.Width) {
				break
			}
			text := ""
			if i < len(cells) {
				text = cells[i]
			}
			style := t.cellStyle(r, i)
			writeText(&s, col, row, c.Width, text, style)
			col += uint16(c.Width + gap)
		}
		row++
	}

	return s, nil
}
