package views_test

import (
	"strings"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

func testDrawContext(w, h uint16) vxfw.DrawContext {
	return vxfw.DrawContext{
		Max: vxfw.Size{Width: w, Height: h},
		Min: vxfw.Size{},
		Characters: func(s string) []vaxis.Character {
			chars := make([]vaxis.Character, 0, len(s))
			for _, r := range s {
				chars = append(chars, vaxis.Character{Grapheme: string(r), Width: 1})
			}
			return chars
		},
	}
}

// composite flattens a surface tree into a grid of cells the size of s.
func composite(s vxfw.Surface) [][]vaxis.Cell {
	grid := make([][]vaxis.Cell, s.Size.Height)
	for r := range grid {
		grid[r] = make([]vaxis.Cell, s.Size.Width)
	}
	paint(grid, s, 0, 0)
	return grid
}

func paint(grid [][]vaxis.Cell, s vxfw.Surface, row, col int) {
	w := int(s.Size.Width)
	for i, cell := range s.Buffer {
		if cell.Character.Grapheme == "" || w == 0 {
			continue
		}
		r, c := row+i/w, col+i%w
		if r >= 0 && r < len(grid) && c >= 0 && c < len(grid[r]) {
			grid[r][c] = cell
		}
	}
	for _, child := range s.Children {
		paint(grid, child.Surface, row+child.Origin.Row, col+child.Origin.Col)
	}
}

// screenText returns each composited row as a string, unset cells as spaces.
func screenText(s vxfw.Surface) []string {
	grid := composite(s)
	lines := make([]string, len(grid))
	for r, cells := range grid {
		var b strings.Builder
		for _, c := range cells {
			if c.Character.Grapheme == "" {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.Character.Grapheme)
		}
		lines[r] = b.String()
	}
	return lines
}

// findCell returns the composited cell holding the first rune of text.
func findCell(s vxfw.Surface, text string) (vaxis.Cell, bool) {
	first := []rune(text)[0]
	for r, line := range screenText(s) {
		idx := strings.Index(line, text)
		if idx < 0 {
			continue
		}
		col := len([]rune(line[:idx]))
		cell := composite(s)[r][col]
		if []rune(cell.Character.Grapheme)[0] == first {
			return cell, true
		}
	}
	return vaxis.Cell{}, false
}
