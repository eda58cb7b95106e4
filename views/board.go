package views

import (
	"fmt"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/deevus/arrivals-tui/internal/board"
	"github.com/deevus/arrivals-tui/internal/transit"
	"github.com/deevus/arrivals-tui/widgets"
	"github.com/dustin/go-humanize"
)

// Title is drawn in the top border of the board.
const Title = " TIEMPOS DE LLEGADA EN PARADAS CERCANAS BUSES "

const (
	labelWidth = 12
	gaugeWidth = 20
)

var (
	titleStyle  = vaxis.Style{Foreground: vaxis.IndexColor(3), Attribute: vaxis.AttrBold}
	labelStyle  = vaxis.Style{Foreground: vaxis.IndexColor(6), Attribute: vaxis.AttrBold}
	valueStyle  = vaxis.Style{Foreground: vaxis.IndexColor(3)}
	urgentStyle = vaxis.Style{Foreground: vaxis.IndexColor(1), Attribute: vaxis.AttrBold}
	dimStyle    = vaxis.Style{Attribute: vaxis.AttrDim}
)

// BoardViewParams holds configuration for creating a BoardView.
type BoardViewParams struct {
	State           *board.State
	RefreshInterval time.Duration
	// Busy reports whether a poll is in flight. Optional.
	Busy func() bool
	// Now defaults to time.Now; tests can pin it.
	Now func() time.Time
}

// BoardView displays one row per line with its latest arrivals.
type BoardView struct {
	state           *board.State
	refreshInterval time.Duration
	busy            func() bool
	now             func() time.Time
}

// Row is the rendered content of one line.
type Row struct {
	Label  string
	Value  string
	Urgent bool
}

// NewBoardView creates a BoardView backed by the given params.
func NewBoardView(p BoardViewParams) *BoardView {
	bv := &BoardView{
		state:           p.State,
		refreshInterval: p.RefreshInterval,
		busy:            p.Busy,
		now:             p.Now,
	}
	if bv.now == nil {
		bv.now = time.Now
	}
	return bv
}

// Rows returns the board rows in display order. Lines that have not been
// polled yet show transit.Placeholder.
func (bv *BoardView) Rows() []Row {
	lines := bv.state.Lines()
	rows := make([]Row, 0, len(lines))
	for _, l := range lines {
		v, ok := bv.state.Value(l.Name)
		if !ok {
			v = transit.Placeholder
		}
		rows = append(rows, Row{
			Label:  l.Label(),
			Value:  v,
			Urgent: transit.IsUrgent(v),
		})
	}
	return rows
}

// StatusText returns the footer line describing freshness and keys.
func (bv *BoardView) StatusText() string {
	updated := "not updated yet"
	if at := bv.state.UpdatedAt(); !at.IsZero() {
		updated = "updated " + humanize.RelTime(at, bv.now(), "ago", "from now")
	}
	return fmt.Sprintf("%s · q quit · r refresh", updated)
}

// refreshProgress returns the fraction of the refresh interval elapsed since
// the last update (0–100) and the gauge suffix.
func (bv *BoardView) refreshProgress() (float64, string) {
	if bv.busy != nil && bv.busy() {
		return 100, "refreshing…"
	}
	at := bv.state.UpdatedAt()
	if at.IsZero() || bv.refreshInterval <= 0 {
		return 0, ""
	}
	elapsed := bv.now().Sub(at)
	remaining := (bv.refreshInterval - elapsed).Round(time.Second)
	if remaining < 0 {
		remaining = 0
	}
	pct := float64(elapsed) / float64(bv.refreshInterval) * 100
	return pct, "in " + remaining.String()
}

// Draw renders the framed board.
func (bv *BoardView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	frame := &widgets.Frame{
		Title:      Title,
		TitleStyle: titleStyle,
		Child:      &boardBody{bv: bv},
	}
	return frame.Draw(ctx)
}

// boardBody is the content inside the frame: the line table, then the
// refresh gauge and status line pinned to the bottom.
type boardBody struct {
	bv *BoardView
}

func (b *boardBody) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, b)
	width := int(ctx.Max.Width)
	height := int(ctx.Max.Height)

	// One column and row of margin around the table
	if width > 2 && height > 2 {
		valueWidth := width - 2 - labelWidth - 1
		if valueWidth < 1 {
			valueWidth = 1
		}
		rows := b.bv.Rows()
		tbl := &widgets.Table{
			Columns: []widgets.TableColumn{
				{Width: labelWidth, Style: labelStyle},
				{Width: valueWidth, Style: valueStyle},
			},
			RowGap: 1,
		}
		for _, r := range rows {
			tbl.Rows = append(tbl.Rows, []string{r.Label, r.Value})
			style := vaxis.Style{}
			if r.Urgent {
				style = urgentStyle
			}
			tbl.Styles = append(tbl.Styles, []vaxis.Style{{}, style})
		}
		tblSurf, err := tbl.Draw(ctx.WithMax(vxfw.Size{Width: uint16(width - 2), Height: uint16(height - 2)}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(1, 1, tblSurf)
	}

	// Footer needs two rows below the table's top margin
	if height < 4 {
		return s, nil
	}

	pct, suffix := b.bv.refreshProgress()
	gauge := &widgets.BarGauge{
		Label:    "NEXT",
		Value:    pct,
		Suffix:   suffix,
		BarWidth: gaugeWidth,
		Color:    vaxis.IndexColor(6),
	}
	gaugeSurf, err := gauge.Draw(ctx.WithMax(vxfw.Size{Width: uint16(max(width-2, 0)), Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(1, height-2, gaugeSurf)

	status := richtext.New([]vaxis.Segment{
		{Text: b.bv.StatusText(), Style: dimStyle},
	})
	statusSurf, err := status.Draw(ctx.WithMax(vxfw.Size{Width: uint16(max(width-2, 0)), Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(1, height-1, statusSurf)

	return s, nil
}
