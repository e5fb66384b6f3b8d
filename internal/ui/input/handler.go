package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/ropen/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the picker should close.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	alt := ev.Modifiers()&tcell.ModAlt != 0

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		ih.actionChan <- statepkg.CloseAction{}
		return false

	case tcell.KeyEnter:
		if alt {
			ih.actionChan <- statepkg.ConfirmSelectedOrFirstAction{}
		} else {
			ih.actionChan <- statepkg.ConfirmAction{}
		}
		return true

	case tcell.KeyCtrlO:
		ih.actionChan <- statepkg.ConfirmSelectedOrFirstAction{}
		return true

	case tcell.KeyTab:
		ih.actionChan <- statepkg.AutocompleteAction{}
		return true

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.UndoAction{}
		return true

	case tcell.KeyCtrlW:
		ih.actionChan <- statepkg.DeletePathComponentAction{}
		return true

	case tcell.KeyUp, tcell.KeyCtrlP:
		ih.actionChan <- statepkg.MoveCursorAction{Direction: "up"}
		return true

	case tcell.KeyDown, tcell.KeyCtrlN:
		ih.actionChan <- statepkg.MoveCursorAction{Direction: "down"}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.MoveCursorTopAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.MoveCursorBottomAction{}
		return true

	case tcell.KeyLeft:
		if ctrl || alt {
			ih.actionChan <- statepkg.InputMoveCaretAction{Direction: "word-left"}
		} else {
			ih.actionChan <- statepkg.InputMoveCaretAction{Direction: "left"}
		}
		return true

	case tcell.KeyRight:
		if ctrl || alt {
			ih.actionChan <- statepkg.InputMoveCaretAction{Direction: "word-right"}
		} else {
			ih.actionChan <- statepkg.InputMoveCaretAction{Direction: "right"}
		}
		return true

	case tcell.KeyHome, tcell.KeyCtrlA:
		ih.actionChan <- statepkg.InputMoveCaretAction{Direction: "home"}
		return true

	case tcell.KeyEnd, tcell.KeyCtrlE:
		ih.actionChan <- statepkg.InputMoveCaretAction{Direction: "end"}
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.InputBackspaceAction{}
		return true

	case tcell.KeyDelete:
		ih.actionChan <- statepkg.InputDeleteAction{}
		return true

	case tcell.KeyCtrlU:
		ih.actionChan <- statepkg.InputSetTextAction{Text: ""}
		return true

	case tcell.KeyCtrlT:
		ih.actionChan <- statepkg.AddSelectedProjectFolderAction{}
		return true

	case tcell.KeyCtrlY:
		ih.actionChan <- statepkg.CopyPathAction{}
		return true

	case tcell.KeyCtrlV:
		ih.actionChan <- statepkg.ConfirmAction{Split: statepkg.SplitRight}
		return true

	case tcell.KeyCtrlS:
		ih.actionChan <- statepkg.ConfirmAction{Split: statepkg.SplitDown}
		return true

	case tcell.KeyRune:
		r := ev.Rune()
		if alt {
			// Alt+h/j/k/l opens in a split on that side.
			if split, ok := splitForRune(r); ok {
				ih.actionChan <- statepkg.ConfirmAction{Split: split}
			}
			return true
		}
		ih.actionChan <- statepkg.InputCharAction{Char: r}
		return true

	default:
		return true
	}
}

func splitForRune(r rune) (statepkg.Split, bool) {
	switch r {
	case 'h', 'H':
		return statepkg.SplitLeft, true
	case 'j', 'J':
		return statepkg.SplitDown, true
	case 'k', 'K':
		return statepkg.SplitUp, true
	case 'l', 'L':
		return statepkg.SplitRight, true
	}
	return statepkg.SplitNone, false
}
