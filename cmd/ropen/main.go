package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	apppkg "github.com/kk-code-lab/ropen/internal/app"
	"github.com/kk-code-lab/ropen/internal/config"
	"github.com/kk-code-lab/ropen/internal/fspath"
	"github.com/kk-code-lab/ropen/internal/logging"
	"github.com/kk-code-lab/ropen/internal/shellsetup"
	statepkg "github.com/kk-code-lab/ropen/internal/state"
)

const setupAuto = "auto"

type cliOptions struct {
	configPath   string
	projects     []string
	activeFile   string
	fuzzy        bool
	shortcuts    bool
	createDirs   bool
	createFiles  bool
	hideDotfiles bool
	initial      string
	printOnly    bool
	logFile      string
	logLevel     string
	setup        string
	initConfig   bool
	help         bool

	flags *pflag.FlagSet
}

func newFlagSet(opts *cliOptions, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("ropen", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.configPath, "config", "c", "", "Config file (default "+config.DefaultPath()+")")
	fs.StringArrayVarP(&opts.projects, "project", "p", nil, "Project folder; repeat for more, the first is primary (default: current directory)")
	fs.StringVarP(&opts.activeFile, "file", "f", "", "File treated as the one being edited")
	fs.BoolVar(&opts.fuzzy, "fuzzy", false, "Match entries fuzzily instead of by prefix")
	fs.BoolVar(&opts.shortcuts, "shortcuts", false, "Enable the //, ~/ and :/ shortcuts")
	fs.BoolVar(&opts.createDirs, "create-dirs", false, "Create a missing directory when a directory path is confirmed")
	fs.BoolVar(&opts.createFiles, "create-files", false, "Create missing files before opening them")
	fs.BoolVar(&opts.hideDotfiles, "hide-dotfiles", false, "Hide entries starting with a dot")
	fs.StringVar(&opts.initial, "initial", "", `Initial input: "Active file's directory", "Project root" or "Empty"`)
	fs.BoolVar(&opts.printOnly, "print", false, "Print the chosen path instead of opening an editor")
	fs.StringVar(&opts.logFile, "log-file", "", "Append logs to this file")
	fs.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	fs.StringVar(&opts.setup, "setup", "", "Print a shell function for print-mode integration (optionally force SHELL)")
	fs.Lookup("setup").NoOptDefVal = setupAuto
	fs.BoolVar(&opts.initConfig, "init-config", false, "Write the effective config file and exit")
	fs.BoolVarP(&opts.help, "help", "h", false, "Show this help message")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "ropen - open or create a file by typing its path\n\n")
		fmt.Fprintf(stderr, "USAGE:\n    ropen [OPTIONS]\n\nOPTIONS:\n")
		fs.PrintDefaults()
	}
	opts.flags = fs
	return fs
}

func parseFlags(args []string, stderr io.Writer) (*cliOptions, error) {
	opts := &cliOptions{}
	fs := newFlagSet(opts, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return opts, nil
}

func (o *cliOptions) changed(name string) bool {
	return o.flags != nil && o.flags.Changed(name)
}

// applyOverrides lets explicitly set flags win over config file values.
func (o *cliOptions) applyOverrides(cfg *config.Config) error {
	if o.changed("fuzzy") {
		cfg.FuzzyMatch = o.fuzzy
	}
	if o.changed("shortcuts") {
		cfg.HelmDirSwitch = o.shortcuts
	}
	if o.changed("create-dirs") {
		cfg.CreateDirectories = o.createDirs
	}
	if o.changed("create-files") {
		cfg.CreateFileInstantly = o.createFiles
	}
	if o.changed("hide-dotfiles") {
		cfg.HideDotfiles = o.hideDotfiles
	}
	if o.changed("initial") {
		policy, err := fspath.ParseInitialPolicy(o.initial)
		if err != nil {
			return fmt.Errorf("--initial: %w", err)
		}
		cfg.DefaultInputValue = policy
	}
	return nil
}

// projectDirs returns absolute project folders, falling back to cwd.
func (o *cliOptions) projectDirs() ([]string, error) {
	dirs := o.projects
	if len(dirs) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		return []string{cwd}, nil
	}
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve project %q: %w", dir, err)
		}
		out = append(out, abs)
	}
	return out, nil
}

func stateOptions(cfg config.Config) statepkg.Options {
	return statepkg.Options{
		CreateDirectories:   cfg.CreateDirectories,
		CreateFileInstantly: cfg.CreateFileInstantly,
		HelmDirSwitch:       cfg.HelmDirSwitch,
		DefaultInputValue:   cfg.DefaultInputValue,
		FuzzyMatch:          cfg.FuzzyMatch,
	}
}

func newLogger(o *cliOptions) (*slog.Logger, io.Closer, error) {
	if o.logFile == "" {
		return logging.Discard(), io.NopCloser(nil), nil
	}
	return logging.NewFileLogger(o.logFile, logging.LevelFromString(o.logLevel))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "ropen: %v\n", err)
		return 2
	}
	if opts.help {
		opts.flags.Usage()
		return 0
	}

	if opts.setup != "" {
		shell := opts.setup
		if shell == setupAuto {
			shell = ""
		}
		if err := shellsetup.PrintSetup(stdout, shell, shellsetup.Config{}); err != nil {
			fmt.Fprintf(stderr, "ropen: %v\n", err)
			return 1
		}
		return 0
	}

	cfg, cfgPath, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "ropen: %v\n", err)
		return 1
	}
	if err := opts.applyOverrides(&cfg); err != nil {
		fmt.Fprintf(stderr, "ropen: %v\n", err)
		return 2
	}
	if opts.initConfig {
		if err := config.Save(cfg, cfgPath); err != nil {
			fmt.Fprintf(stderr, "ropen: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "wrote %s\n", cfgPath)
		return 0
	}

	logger, closer, err := newLogger(opts)
	if err != nil {
		fmt.Fprintf(stderr, "ropen: %v\n", err)
		return 1
	}
	defer func() {
		_ = closer.Close()
	}()

	projects, err := opts.projectDirs()
	if err != nil {
		fmt.Fprintf(stderr, "ropen: %v\n", err)
		return 1
	}
	activeFile := opts.activeFile
	if activeFile != "" {
		if abs, err := filepath.Abs(activeFile); err == nil {
			activeFile = abs
		}
	}

	var editor []string
	if !opts.printOnly {
		cmd, ok := apppkg.DetectEditorCommand(cfg.Editor)
		if !ok {
			fmt.Fprintln(stderr, "ropen: no editor found; set $VISUAL or $EDITOR, or use --print")
			return 1
		}
		editor = cmd
	}

	logger.Info("starting", "config", cfgPath, "projects", projects, "print", opts.printOnly)

	host := apppkg.NewTerminalHost(apppkg.HostConfig{
		ActiveFile: activeFile,
		Projects:   projects,
		Editor:     editor,
		PrintOnly:  opts.printOnly,
		Logger:     logger,
	})

	// Set UTF-8 as fallback encoding so non-ASCII names display correctly.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	application, err := apppkg.NewApplication(nil, host, apppkg.Config{
		Options:         stateOptions(cfg),
		IgnoredPatterns: cfg.IgnoredPatterns,
		HideDotfiles:    cfg.HideDotfiles,
		Locale:          cfg.Locale,
		Logger:          logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "ropen: initializing terminal: %v\n", err)
		return 1
	}
	unsubscribe := application.Events().OnDidCreatePath(func(path string) {
		logger.Info("created", "path", path)
	})
	defer unsubscribe()

	application.Run()
	_ = application.Close()

	code := 0
	if notice := host.Notice(); !notice.IsZero() {
		fmt.Fprintf(stderr, "%s: %s\n", notice.Title, notice.Detail)
		if notice.Error {
			code = 1
		}
	}

	for _, req := range host.Opened() {
		if host.PrintOnly() {
			fmt.Fprintln(stdout, req.Path)
			continue
		}
		if err := host.LaunchEditor(req); err != nil {
			fmt.Fprintf(stderr, "ropen: %v\n", err)
			return 1
		}
	}
	return code
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
