package widgets_test

import (
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

// rowText returns the graphemes of one surface row, with unset cells as spaces.
func rowText(s vxfw.Surface, row int) string {
	w := int(s.Size.Width)
	out := make([]byte, 0, w)
	for col := 0; col < w; col++ {
		g := s.Buffer[row*w+col].Character.Grapheme
		if g == "" {
			g = " "
		}
		out = append(out, g...)
	}
	return string(out)
}
