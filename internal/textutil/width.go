package textutil

import "github.com/mattn/go-runewidth"

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += RuneWidth(ru)
	}
	return width
}

// RuneWidth is the column width of a single rune; zero-width runes count as
// one column because they are drawn as their own cell.
func RuneWidth(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w <= 0 {
		w = 1
	}
	return w
}

// TrimLeftToWidth drops runes from the start of text until it fits in
// width columns. The second result is the number of runes dropped.
func TrimLeftToWidth(text string, width int) (string, int) {
	runes := []rune(text)
	total := 0
	for _, ru := range runes {
		total += RuneWidth(ru)
	}
	dropped := 0
	for total > width && dropped < len(runes) {
		total -= RuneWidth(runes[dropped])
		dropped++
	}
	return string(runes[dropped:]), dropped
}
