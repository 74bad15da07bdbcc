// Package cmd implements the CLI command structure for duke.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/duke-go/internal/command"
	"github.com/nibzard/duke-go/internal/config"
	"github.com/nibzard/duke-go/internal/logging"
	"github.com/nibzard/duke-go/internal/render"
	"github.com/nibzard/duke-go/internal/repl"
	"github.com/nibzard/duke-go/internal/storage"
	"github.com/nibzard/duke-go/internal/task"
	"github.com/nibzard/duke-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// stdin is where the repl reads commands from.
var stdin io.Reader = os.Stdin

// Run executes the duke CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("duke", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	subcommand := "repl"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "repl":
		return replCommand(ctx, cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "exec":
		return execCommand(cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// app is an opened task store with an interpreter over its contents.
type app struct {
	logger *log.Logger
	store  storage.Gateway
	tasks  *task.List
	interp *command.Interpreter
	logs   *logging.SessionLog
}

// openApp loads the configured store. With sessionLog set, log output goes
// to a new session log file; otherwise it goes to stderr.
func openApp(cfg *config.Config, sessionLog bool) (*app, error) {
	a := &app{}
	logOut := io.Writer(os.Stderr)
	if sessionLog {
		logs, err := logging.NewSessionLog(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: session log disabled: %v\n", err)
		} else {
			a.logs = logs
			logOut = logs.Writer()
		}
	}
	a.logger = logging.NewFromConfig(logOut, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	store, err := storage.Open(storage.Backend(cfg.Backend), cfg.StorePath(), storage.Options{
		SchemaPath: cfg.SchemaFile,
		Strict:     cfg.Strict,
		Logger:     a.logger,
	})
	if err != nil {
		_ = a.logs.Close()
		return nil, fmt.Errorf("opening store: %w", err)
	}
	a.store = store

	loaded, err := store.Load()
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	a.logger.Debug("tasks loaded", "backend", cfg.Backend, "path", cfg.StorePath(), "count", len(loaded))

	a.tasks = task.NewList(loaded...)
	a.interp = command.New(a.tasks, store, render.New(), command.WithLogger(a.logger))
	return a, nil
}

func (a *app) session() *repl.Session {
	return repl.NewSession(a.interp,
		repl.WithGreeting(render.New().Greeting()),
		repl.WithLogger(a.logger),
	)
}

// Close releases the store and the session log.
func (a *app) Close() error {
	err := a.store.Close()
	if lerr := a.logs.Close(); err == nil {
		err = lerr
	}
	return err
}

// replCommand reads commands from stdin until bye or end of input.
func replCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	a, err := openApp(cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	err = a.session().Run(ctx, stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// tuiCommand runs the same session behind the terminal UI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	a, err := openApp(cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	return ui.Run(ctx, a.session(), a.tasks)
}

// execCommand interprets its arguments as one command line.
func execCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("exec requires a command, e.g. duke exec todo read book")
	}
	a, err := openApp(cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.interp.Interpret(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(strings.TrimRight(resp, "\n"))
	return nil
}

// lsCommand prints the task list.
func lsCommand(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	a, err := openApp(cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Println(render.New().RenderList(a.tasks.All()))
	return nil
}

// tailCommand tails the latest session log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("duke tail", flag.ContinueOnError)
	follow := fs.Bool("follow", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "f", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Println("No log files found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(ctx, os.Stdout, logPath, *n, *follow)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("duke version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Duke - a personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  duke [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  repl          Read commands from stdin (default command)")
	fmt.Fprintln(w, "  tui           Launch terminal UI")
	fmt.Fprintln(w, "  exec <cmd>    Run a single command, e.g. duke exec todo read book")
	fmt.Fprintln(w, "  ls            List tasks")
	fmt.Fprintln(w, "  doctor        Check config and task file validity")
	fmt.Fprintln(w, "  export        Write all tasks as JSON or YAML")
	fmt.Fprintln(w, "  init          Create .duke/ with an example config and the record schema")
	fmt.Fprintln(w, "  tail          Tail the latest session log")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task commands (repl, tui and exec):")
	fmt.Fprintln(w, "  list, todo <desc>, deadline <desc> /by <time>, event <desc> /at <time>,")
	fmt.Fprintln(w, "  done <n>, delete <n>, find <text>, bye")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (json|yaml) (default \"json\")")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Write to file instead of stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Init Options (use with 'init' command):")
	fmt.Fprintln(w, "  -force")
	fmt.Fprintln(w, "        Overwrite existing files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
