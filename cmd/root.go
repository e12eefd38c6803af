// Package cmd implements the CLI command structure for taskflow.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskflow/internal/config"
	"github.com/nibzard/taskflow/internal/logging"
	"github.com/nibzard/taskflow/internal/store"
	"github.com/nibzard/taskflow/internal/task"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitValidation  = 3
	ExitNotFound    = 4
	ExitMalformed   = 5
	ExitInterrupted = 130
)

// usageError reports a missing, extra or unparsable command-line argument.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	var ue *usageError
	var fe *config.FlagError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &ue), errors.As(err, &fe):
		return ExitUsage
	case errors.Is(err, task.ErrValidation):
		return ExitValidation
	case errors.Is(err, task.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, task.ErrMalformedStore):
		return ExitMalformed
	default:
		return ExitError
	}
}

// app carries the resolved configuration and output streams for one run.
type app struct {
	cws    *config.ConfigWithSources
	cfg    *config.Config
	svc    *task.Service
	out    io.Writer
	errOut io.Writer
	logger *log.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		out:    stdout,
		errOut: stderr,
		logger: logging.New(stderr, logging.DefaultOptions()),
	}
}

// Run executes the taskflow CLI.
func Run(ctx context.Context, args []string) error {
	return newApp(os.Stdout, os.Stderr).run(ctx, args)
}

// Execute runs the CLI, logs any error to stderr and returns the exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	err := a.run(ctx, args)
	if err == nil {
		return ExitOK
	}
	if ctx.Err() != nil {
		a.logger.Warn("Interrupted")
		return ExitInterrupted
	}
	a.logger.Errorf("Error: %v", err)
	return ExitCode(err)
}

func (a *app) run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskflow", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	fs.Usage = func() {
		printUsage(fs, a.errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	a.cws = cws
	a.cfg = cws.Config
	a.logger = logging.New(a.errOut, a.cfg.LogOptions())
	a.logger.Debug("resolved config",
		"store", a.cfg.StoreFile,
		"backend", a.cfg.StoreBackend,
		"schema", a.cfg.SchemaFile,
		"files", cws.Files,
	)

	if *help {
		printUsage(fs, a.out)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, a.errOut)
		return usagef("missing command")
	}
	subcommand, remainingArgs := remainingArgs[0], remainingArgs[1:]

	// Commands that do not touch the store
	switch subcommand {
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, a.out)
		return nil
	case "config":
		return a.configCommand(remainingArgs)
	case "init":
		return a.initCommand(remainingArgs)
	}

	backend, err := store.Open(a.cfg.StoreBackend, a.cfg.StoreOptions())
	if err != nil {
		return err
	}
	a.svc = task.NewService(backend)

	switch subcommand {
	case "create":
		return a.createCommand(remainingArgs)
	case "list":
		return a.listCommand(remainingArgs)
	case "get":
		return a.getCommand(remainingArgs)
	case "update":
		return a.updateCommand(remainingArgs)
	case "delete":
		return a.deleteCommand(remainingArgs)
	case "board":
		return a.boardCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	default:
		printUsage(fs, a.errOut)
		return usagef("unknown command: %s", subcommand)
	}
}

// newCommandFlags returns a flag set for a subcommand that reports errors to
// stderr.
func (a *app) newCommandFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("taskflow "+name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parseArgs parses flags that may appear before, between or after
// positional arguments and returns the positionals in order. Everything
// after "--" is positional.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positionals []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, &usageError{msg: err.Error()}
		}
		rest := fs.Args()
		consumed := args[:len(args)-len(rest)]
		if len(consumed) > 0 && consumed[len(consumed)-1] == "--" {
			return append(positionals, rest...), nil
		}
		if len(rest) == 0 {
			return positionals, nil
		}
		positionals = append(positionals, rest[0])
		args = rest[1:]
	}
}

// parseID parses a task id argument.
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, usagef("invalid task id %q", s)
	}
	return id, nil
}

// requireID parses the single id positional of get, update and delete.
func requireID(command string, positionals []string) (int, error) {
	switch {
	case len(positionals) == 0:
		return 0, usagef("%s: missing task id", command)
	case len(positionals) > 1:
		return 0, usagef("%s: unexpected arguments: %v", command, positionals[1:])
	}
	return parseID(positionals[0])
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.out, "taskflow version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskflow - A personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskflow [global options] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  create <title> [description]   Create a task")
	fmt.Fprintln(w, "  list [-status S] [-priority P] List tasks")
	fmt.Fprintln(w, "  get <id>                       Show a task")
	fmt.Fprintln(w, "  update <id> [options]          Update a task")
	fmt.Fprintln(w, "  delete <id>                    Delete a task")
	fmt.Fprintln(w, "  board [-status S] [-priority P] Show the interactive board")
	fmt.Fprintln(w, "  doctor [-v]                    Check config and store validity")
	fmt.Fprintln(w, "  init [-force] [-write-schema]  Write taskflow.toml and an empty store")
	fmt.Fprintln(w, "  config                         Show the effective configuration")
	fmt.Fprintln(w, "  version                        Show version information")
	fmt.Fprintln(w, "  help                           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task ids are positive integers.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Update Options (use with 'update' command):")
	fmt.Fprintln(w, "  -title string")
	fmt.Fprintln(w, "        New title")
	fmt.Fprintln(w, "  -description string")
	fmt.Fprintln(w, "        New description (empty clears it)")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintf(w, "        New status (%s)\n", joinStatuses())
	fmt.Fprintln(w, "  -priority string")
	fmt.Fprintf(w, "        New priority (%s, case-insensitive)\n", joinPriorities())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage, 3 validation, 4 not found, 5 malformed store")
}

func joinStatuses() string {
	names := make([]string, 0, len(task.Statuses()))
	for _, s := range task.Statuses() {
		names = append(names, strconv.Quote(string(s)))
	}
	return strings.Join(names, ", ")
}

func joinPriorities() string {
	names := make([]string, 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
