package render

import (
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/ropen/internal/fs"
	statepkg "github.com/kk-code-lab/ropen/internal/state"
	textutil "github.com/kk-code-lab/ropen/internal/textutil"
)

const (
	infoTitle        = " ropen "
	infoMessage      = "Enter the path for the file to open or create."
	loadingMessage   = "listing…"
	inputPlaceholder = "/path/to/file.txt"
)

// Notice is a transient message shown in the status line.
type Notice struct {
	Title  string
	Detail string
	Error  bool
}

// IsZero reports whether there is nothing to show.
func (n Notice) IsZero() bool {
	return n.Title == "" && n.Detail == ""
}

func (n Notice) text() string {
	switch {
	case n.Detail == "":
		return " " + n.Title
	case n.Title == "":
		return " " + n.Detail
	default:
		return " " + n.Title + ": " + n.Detail
	}
}

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes

	scroll int
	rows   []visibleRow
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the picker for session. notice replaces the key hints when set.
func (r *Renderer) Render(session *statepkg.Session, notice Notice) {
	r.screen.Clear()

	w, h := r.screen.Size()
	layout := computeLayout(w, h)

	r.drawInfoLine(session, layout)
	r.drawInput(session, layout)
	r.drawList(session, layout)
	r.drawStatusLine(session, notice, layout)

	r.screen.Show()
}

func (r *Renderer) drawInfoLine(session *statepkg.Session, layout layoutMetrics) {
	if layout.infoY < 0 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.InfoFg)
	w := layout.width

	x := r.drawTextLine(0, layout.infoY, w, infoTitle, style.Bold(true).Foreground(r.theme.Foreground))
	x = r.drawTextLine(x, layout.infoY, w-x, " "+infoMessage, style)

	if session != nil && session.Loading {
		loading := " " + loadingMessage + " "
		start := w - r.measureTextWidth(loading)
		if start > x {
			r.fillRow(x, layout.infoY, start, style)
			x = r.drawTextLine(start, layout.infoY, w-start, loading, style.Italic(true))
		}
	}
	r.fillRow(x, layout.infoY, w, style)
}

func (r *Renderer) drawInput(session *statepkg.Session, layout layoutMetrics) {
	if layout.inputY < 0 || layout.width == 0 {
		return
	}
	y := layout.inputY
	maxX := layout.width
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	caretStyle := style.Background(r.theme.CaretBg).Foreground(r.theme.CaretFg)

	x := r.drawTextLine(0, y, maxX, inputPrompt, style.Bold(true))

	var input statepkg.InputState
	if session != nil {
		input = session.Input
	}
	runes := []rune(input.Text)
	caret := min(max(input.Caret, 0), len(runes))

	if len(runes) == 0 {
		x = r.drawStyledRune(x, y, maxX, '█', caretStyle)
		x = r.drawTextLine(x, y, maxX-x, inputPlaceholder, style.Foreground(r.theme.PlaceholderFg))
		r.fillRow(x, y, maxX, style)
		return
	}

	// Keep the caret visible by dropping runes from the left.
	available := maxX - x - 1
	_, dropped := textutil.TrimLeftToWidth(string(runes[:caret]), available)
	if dropped > 0 {
		x = r.drawTextLine(x, y, maxX-x, ellipsis, style.Foreground(r.theme.PlaceholderFg))
		_, dropped = textutil.TrimLeftToWidth(string(runes[:caret]), available-1)
	}

	for idx := dropped; idx < len(runes); idx++ {
		if x >= maxX {
			break
		}
		runeStyle := style
		if idx == caret {
			runeStyle = caretStyle
		}
		x = r.drawSanitizedRune(x, y, maxX, runes[idx], runeStyle)
	}
	if caret == len(runes) && x < maxX {
		x = r.drawStyledRune(x, y, maxX, '█', caretStyle)
	}
	r.fillRow(x, y, maxX, style)
}

func (r *Renderer) drawList(session *statepkg.Session, layout layoutMetrics) {
	r.rows = r.rows[:0]
	visible := layout.visibleRows()
	if session == nil || visible == 0 {
		return
	}

	baseStyle := tcell.StyleDefault.Background(r.theme.Background)
	items := session.Items
	r.scroll = scrollForCursor(session.Cursor, r.scroll, visible, len(items))

	fragment := session.CurrentPath.Fragment
	y := layout.listStartY
	for idx := r.scroll; idx < len(items) && y < layout.listEndY; idx++ {
		r.drawListRow(items[idx], idx == session.Cursor, idx, y, fragment, layout, baseStyle)
		y++
	}

	for ; y < layout.listEndY; y++ {
		r.fillRow(0, y, layout.width, baseStyle)
	}
}

func (r *Renderer) drawListRow(item statepkg.ListItem, selected bool, index, y int, fragment string, layout layoutMetrics, baseStyle tcell.Style) {
	w := layout.width
	label := item.Label()
	hidden := !item.Parent && fsutil.IsHidden(item.Path.Full, label)

	var rowStyle tcell.Style
	switch {
	case selected:
		rowStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	case item.IsDir():
		rowStyle = baseStyle.Foreground(r.theme.DirectoryFg)
	default:
		rowStyle = baseStyle.Foreground(r.theme.FileFg)
	}
	if hidden && !selected {
		rowStyle = rowStyle.Foreground(r.theme.HiddenFg)
	}
	matchStyle := rowStyle.Foreground(r.theme.MatchFg).Bold(true)
	if selected {
		matchStyle = rowStyle.Bold(true).Underline(true)
	}

	// Icon: / for directories, space for files
	icon := "   "
	if item.IsDir() {
		icon = " / "
	}

	markerStart := -1
	nameLimit := w
	if item.CanAddProject {
		markerWidth := r.measureTextWidth(addMarker)
		if w-markerWidth > rowIndentWidth {
			markerStart = w - markerWidth
			nameLimit = markerStart
		}
	}

	x := r.drawTextLine(0, y, w, icon, rowStyle)
	display := r.truncateTextToWidth(label, nameLimit-x)
	x = r.drawHighlightedText(x, y, nameLimit, display, highlightOffsets(item, display, fragment), rowStyle, matchStyle)
	r.fillRow(x, y, nameLimit, rowStyle)

	if markerStart >= 0 {
		markerStyle := rowStyle.Foreground(r.theme.AddProjectFg).Bold(true)
		if selected {
			markerStyle = rowStyle.Bold(true)
		}
		r.drawTextLine(markerStart, y, w-markerStart, addMarker, markerStyle)
	}

	r.rows = append(r.rows, visibleRow{y: y, index: index, addStart: markerStart})
}

// highlightOffsets returns the byte offsets of display to emphasise. Fuzzy
// matches carry their own offsets; prefix matches highlight the typed prefix.
// Offsets past a truncation point are dropped.
func highlightOffsets(item statepkg.ListItem, display, fragment string) map[int]bool {
	if item.Parent {
		return nil
	}
	limit := len(display)
	if display != item.Label() {
		limit -= len(ellipsis)
	}

	offsets := make(map[int]bool)
	if len(item.Highlights) > 0 {
		for _, off := range item.Highlights {
			if off < limit {
				offsets[off] = true
			}
		}
		return offsets
	}

	prefix := utf8.RuneCountInString(fragment)
	for off := range display {
		if prefix == 0 || off >= limit {
			break
		}
		offsets[off] = true
		prefix--
	}
	return offsets
}

func (r *Renderer) drawStatusLine(session *statepkg.Session, notice Notice, layout layoutMetrics) {
	if layout.statusY < 0 {
		return
	}
	w := layout.width
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	var text string
	switch {
	case !notice.IsZero() && notice.Error:
		style = tcell.StyleDefault.Background(r.theme.ErrorBg).Foreground(r.theme.ErrorFg)
		text = notice.text()
	case !notice.IsZero():
		style = tcell.StyleDefault.Background(r.theme.SuccessBg).Foreground(r.theme.SuccessFg)
		text = notice.text()
	default:
		text = buildFooterHelpText(canAddSelectedProject(session))
	}

	text = r.truncateTextToWidth(textutil.SanitizeTerminalText(text), w)
	x := r.drawTextLine(0, layout.statusY, w, text, style)
	r.fillRow(x, layout.statusY, w, style)
}

func canAddSelectedProject(session *statepkg.Session) bool {
	if session == nil {
		return false
	}
	item, ok := session.SelectedItem()
	return ok && item.CanAddProject && item.Kind == fsutil.KindDirectory
}
