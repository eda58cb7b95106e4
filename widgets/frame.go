package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// Thick box-drawing set used for the frame border.
const (
	frameTopLeft     = "┏"
	frameTopRight    = "┓"
	frameBottomLeft  = "┗"
	frameBottomRight = "┛"
	frameHorizontal  = "━"
	frameVertical    = "┃"
)

// Frame draws a thick border with a title in the top edge and renders Child
// inside it.
//
//	┏ TITLE ━━━━━━━━━┓
//	┃ child          ┃
//	┗━━━━━━━━━━━━━━━━┛
type Frame struct {
	Title      string
	TitleStyle vaxis.Style
	Child      vxfw.Widget // may be nil
}

// Draw renders the border over the full available area and the child inside.
func (f *Frame) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	w, h := ctx.Max.Width, ctx.Max.Height
	s := vxfw.NewSurface(w, h, f)
	if w < 2 || h < 2 {
		return s, nil
	}

	put := func(col, row uint16, g string, style vaxis.Style) {
		for _, ch := range ctx.Characters(g) {
			s.WriteCell(col, row, vaxis.Cell{Character: ch, Style: style})
		}
	}

	for col := uint16(1); col < w-1; col++ {
		put(col, 0, frameHorizontal, vaxis.Style{})
		put(col, h-1, frameHorizontal, vaxis.Style{})
	}
	for row := uint16(1); row < h-1; row++ {
		put(0, row, frameVertical, vaxis.Style{})
		put(w-1, row, frameVertical, vaxis.Style{})
	}
	put(0, 0, frameTopLeft, vaxis.Style{})
	put(w-1, 0, frameTopRight, vaxis.Style{})
	put(0, h-1, frameBottomLeft, vaxis.Style{})
	put(w-1, h-1, frameBottomRight, vaxis.Style{})

	// Title is clipped so the corners stay intact
	if f.Title != "" && w > 4 {
		writeText(&s, 2, 0, int(w)-4, f.Title, f.TitleStyle)
	}

	if f.Child == nil || w < 3 || h < 3 {
		return s, nil
	}
	childSurf, err := f.Child.Draw(ctx.WithMax(vxfw.Size{Width: w - 2, Height: h - 2}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(1, 1, childSurf)
	return s, nil
}
