package state

import "unicode"

func clampCaret(runes []rune, caret int) int {
	if caret < 0 {
		return 0
	}
	if caret > len(runes) {
		return len(runes)
	}
	return caret
}

func insertRune(in InputState, ch rune) InputState {
	runes := []rune(in.Text)
	cursor := clampCaret(runes, in.Caret)

	var buffer []rune
	buffer = append(buffer, runes[:cursor]...)
	buffer = append(buffer, ch)
	buffer = append(buffer, runes[cursor:]...)
	return InputState{Text: string(buffer), Caret: cursor + 1}
}

func backspace(in InputState) (InputState, bool) {
	runes := []rune(in.Text)
	cursor := clampCaret(runes, in.Caret)
	if cursor == 0 {
		return in, false
	}
	buffer := append([]rune{}, runes[:cursor-1]...)
	buffer = append(buffer, runes[cursor:]...)
	return InputState{Text: string(buffer), Caret: cursor - 1}, true
}

func deleteForward(in InputState) (InputState, bool) {
	runes := []rune(in.Text)
	cursor := clampCaret(runes, in.Caret)
	if cursor >= len(runes) {
		return in, false
	}
	buffer := append([]rune{}, runes[:cursor]...)
	buffer = append(buffer, runes[cursor+1:]...)
	return InputState{Text: string(buffer), Caret: cursor}, true
}

func moveCaret(in InputState, direction string) InputState {
	runes := []rune(in.Text)
	cursor := clampCaret(runes, in.Caret)
	switch direction {
	case "left":
		if cursor > 0 {
			cursor--
		}
	case "right":
		if cursor < len(runes) {
			cursor++
		}
	case "word-left":
		cursor = previousWordBoundary(runes, cursor)
	case "word-right":
		cursor = nextWordBoundary(runes, cursor)
	case "home":
		cursor = 0
	case "end":
		cursor = len(runes)
	}
	in.Caret = cursor
	return in
}

// Word motion stops at separators, dots and dashes so it walks path segments.
func isPathWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func previousWordBoundary(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	i := pos - 1
	for i >= 0 && !isPathWordChar(runes[i]) {
		i--
	}
	for i >= 0 && isPathWordChar(runes[i]) {
		i--
	}
	return i + 1
}

func nextWordBoundary(runes []rune, pos int) int {
	if pos >= len(runes) {
		return len(runes)
	}
	if pos < 0 {
		pos = 0
	}

	i := pos
	for i < len(runes) && !isPathWordChar(runes[i]) {
		i++
	}
	for i < len(runes) && isPathWordChar(runes[i]) {
		i++
	}
	return i
}
