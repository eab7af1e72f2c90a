package autocomplete

import "github.com/hawklogic/ccserve/pkg/cursor"

// computeAnchor turns a cursor snapshot into the panel anchor. The caret's
// horizontal offset comes from measuring the pre-cursor slice of the current
// line in the editor font; vertical placement is line-height times line
// number, adjusted for the editor box and its scroll offsets. The anchor is
// clamped so the panel never leaves the viewport: it flips above the caret
// when there is no room below and clamps horizontally.
func computeAnchor(ctx cursor.Context, m Metrics, panelW, panelH float64) Position {
	if m == nil {
		return Position{}
	}

	bounds := m.Bounds()
	scrollX, scrollY := m.Scroll()
	lineHeight := m.LineHeight()

	col := ctx.Column
	if col > len(ctx.LineText) {
		col = len(ctx.LineText)
	}
	caretX := bounds.X + m.MeasureWidth(ctx.LineText[:col]) - scrollX
	caretTop := bounds.Y + float64(ctx.Line)*lineHeight - scrollY

	pos := Position{X: caretX, Y: caretTop + lineHeight}

	viewW, viewH := m.Viewport()
	if pos.Y+panelH > viewH && caretTop-panelH >= 0 {
		pos.Y = caretTop - panelH
		pos.Above = true
	}
	if pos.X+panelW > viewW {
		pos.X = viewW - panelW
	}
	if pos.X < 0 {
		pos.X = 0
	}
	return pos
}
