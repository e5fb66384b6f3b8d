package render

// Rows from the top: info line, path input, candidate list, status line.
type layoutMetrics struct {
	width      int
	infoY      int
	inputY     int
	listStartY int
	listEndY   int // exclusive
	statusY    int
}

const (
	inputPrompt    = "> "
	addMarker      = " + "
	rowIndentWidth = 3
)

func computeLayout(w, h int) layoutMetrics {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	metrics := layoutMetrics{
		width:      w,
		infoY:      0,
		inputY:     1,
		listStartY: 2,
		statusY:    h - 1,
	}
	metrics.listEndY = metrics.statusY
	if metrics.listEndY < metrics.listStartY {
		metrics.listEndY = metrics.listStartY
	}
	if h < 3 {
		// Too short for anything but the input.
		metrics.infoY = -1
		metrics.inputY = 0
		metrics.statusY = -1
		metrics.listStartY = h
		metrics.listEndY = h
	}
	return metrics
}

func (m layoutMetrics) visibleRows() int {
	if m.listEndY <= m.listStartY {
		return 0
	}
	return m.listEndY - m.listStartY
}

// scrollForCursor returns the first visible index so that cursor stays in
// view. Without a cursor the current offset is kept, clamped to the list.
func scrollForCursor(cursor, scroll, visible, count int) int {
	if visible <= 0 || count <= visible {
		return 0
	}
	if cursor >= 0 {
		if cursor < scroll {
			scroll = cursor
		}
		if cursor >= scroll+visible {
			scroll = cursor - visible + 1
		}
	}
	if maxScroll := count - visible; scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// visibleRow records where a list item was drawn so mouse clicks can be
// mapped back to it. addStart is -1 when the row has no add marker.
type visibleRow struct {
	y        int
	index    int
	addStart int
}

// Hit is the list row under a mouse position.
type Hit struct {
	Index int
	// AddProject is set when the click landed on the "+" marker.
	AddProject bool
}

// HitTest maps a screen position to the row drawn there by the last Render.
func (r *Renderer) HitTest(x, y int) (Hit, bool) {
	for _, row := range r.rows {
		if row.y != y {
			continue
		}
		return Hit{
			Index:      row.index,
			AddProject: row.addStart >= 0 && x >= row.addStart,
		}, true
	}
	return Hit{}, false
}
