package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/ropen/internal/state"
)

// Run opens the picker and processes events until it closes.
func (app *Application) Run() {
	app.handleAction(statepkg.ToggleAction{})
	app.processActions()
	app.render()

	eventChan := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	for app.session.Open {
		renderPending := false

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
		if renderPending && app.session.Open {
			app.render()
		}
	}
}

func (app *Application) render() {
	app.renderer.Render(app.session, app.host.Notice())
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		app.host.ClearNotice()
		app.input.ProcessEvent(ev)
	case *tcell.EventResize:
		app.screen.Sync()
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps wheel scrolling to cursor moves and a primary click to
// the row (or its "+" marker) under the pointer.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0
	wasDown := app.buttonDown
	app.buttonDown = pressed

	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.MoveCursorAction{Direction: "up"}
		return true
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.MoveCursorAction{Direction: "down"}
		return true
	case !pressed || wasDown:
		// Only the press edge counts; drags and releases are ignored.
		return false
	}

	x, y := ev.Position()
	hit, ok := app.renderer.HitTest(x, y)
	if !ok || hit.Index < 0 || hit.Index >= len(app.session.Items) {
		return false
	}
	app.host.ClearNotice()

	item := app.session.Items[hit.Index]
	if hit.AddProject {
		app.actionCh <- statepkg.AddProjectFolderAction{Path: item.Path}
	} else {
		app.actionCh <- statepkg.ClickPathAction{Path: item.Path}
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}
	if _, err := app.reducer.Reduce(app.session, action); err != nil {
		app.logger.Warn("action failed", "action", fmt.Sprintf("%T", action), "err", err)
	}
	return true
}
