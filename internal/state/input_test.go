package state

import "testing"

func TestInputEditing(t *testing.T) {
	in := InputState{Text: "/ab", Caret: 2}

	in = insertRune(in, 'x')
	if in.Text != "/axb" || in.Caret != 3 {
		t.Fatalf("insert: %+v", in)
	}

	in, changed := backspace(in)
	if !changed || in.Text != "/ab" || in.Caret != 2 {
		t.Fatalf("backspace: %+v", in)
	}

	in, changed = deleteForward(in)
	if !changed || in.Text != "/a" || in.Caret != 2 {
		t.Fatalf("delete: %+v", in)
	}

	if _, changed = deleteForward(in); changed {
		t.Fatalf("delete at end must be a no-op")
	}
	if _, changed = backspace(InputState{Text: "abc", Caret: 0}); changed {
		t.Fatalf("backspace at start must be a no-op")
	}
}

func TestInputEditingMultibyte(t *testing.T) {
	in := InputState{Text: "/zaż", Caret: 4}
	in, _ = backspace(in)
	if in.Text != "/za" || in.Caret != 3 {
		t.Fatalf("backspace over multibyte rune: %+v", in)
	}
}

func TestMoveCaret(t *testing.T) {
	tests := []struct {
		direction string
		from      int
		want      int
	}{
		{direction: "left", from: 0, want: 0},
		{direction: "left", from: 5, want: 4},
		{direction: "right", from: 14, want: 14},
		{direction: "home", from: 9, want: 0},
		{direction: "end", from: 0, want: 14},
		{direction: "word-left", from: 14, want: 11},
		{direction: "word-left", from: 11, want: 5},
		{direction: "word-right", from: 0, want: 4},
		{direction: "word-right", from: 4, want: 10},
	}
	for _, tt := range tests {
		got := moveCaret(InputState{Text: "/usr/local/bin", Caret: tt.from}, tt.direction).Caret
		if got != tt.want {
			t.Fatalf("%s from %d = %d, want %d", tt.direction, tt.from, got, tt.want)
		}
	}
}
