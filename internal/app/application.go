package app

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/ropen/internal/fs"
	"github.com/kk-code-lab/ropen/internal/fspath"
	"github.com/kk-code-lab/ropen/internal/logging"
	"github.com/kk-code-lab/ropen/internal/search"
	statepkg "github.com/kk-code-lab/ropen/internal/state"
	inputui "github.com/kk-code-lab/ropen/internal/ui/input"
	renderui "github.com/kk-code-lab/ropen/internal/ui/render"
)

// Config carries the picker settings the application wires into the engine
// and the reducer.
type Config struct {
	Options         statepkg.Options
	IgnoredPatterns []string
	HideDotfiles    bool
	// Locale is the BCP 47 tag used to order the list.
	Locale string
	Logger *slog.Logger
}

// Application represents the running picker.
type Application struct {
	screen     tcell.Screen
	session    *statepkg.Session
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	host       *TerminalHost
	actionCh   chan statepkg.Action
	logger     *slog.Logger
	buttonDown bool
}

// NewApplication initialises screen (a terminal screen when nil) and wires
// the picker around host.
func NewApplication(screen tcell.Screen, host *TerminalHost, cfg Config) (*Application, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	host.beep = func() { _ = screen.Beep() }

	resolver := fsutil.NewResolver(host.ProjectDirectories)
	fsys := fsutil.OS{}
	engine := search.NewEngine(fsys, resolver, search.EngineConfig{
		Ignore:       search.NewIgnoreFilter(cfg.IgnoredPatterns, logger),
		Cache:        search.NewCache(),
		Logger:       logger,
		HideDotfiles: cfg.HideDotfiles,
		Collator:     fspath.NewCollator(cfg.Locale),
	})
	reducer := statepkg.NewStateReducer(statepkg.ReducerConfig{
		Engine:  engine,
		Creator: fsys,
		Host:    host,
		Options: cfg.Options,
		Home:    resolver.Home,
		Logger:  logger,
	})

	actionCh := make(chan statepkg.Action, 10)
	session := statepkg.NewSession()
	session.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})
	session.CandidateLoader = statepkg.NewAsyncCandidateLoader(reducer.BuildItems)

	return &Application{
		screen:   screen,
		session:  session,
		reducer:  reducer,
		renderer: renderui.NewRenderer(screen),
		input:    inputui.NewInputHandler(actionCh),
		host:     host,
		actionCh: actionCh,
		logger:   logger,
	}, nil
}

// Events exposes the open/create notifications of the picker.
func (app *Application) Events() *statepkg.Events {
	return app.reducer.Events()
}

// Close restores the terminal.
func (app *Application) Close() error {
	app.screen.Fini()
	return nil
}
