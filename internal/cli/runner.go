package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Makepad-fr/todosql/internal/store/sqlstore"
	"github.com/Makepad-fr/todosql/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options wire the runner to its environment.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Run dispatches one command and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	opt = opt.withDefaults()

	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root := newRootCmd(opt)
	root.SetArgs(args)
	root.SetOut(opt.Stdout)
	root.SetErr(opt.Stderr)

	err := checkCommand(root, args)
	if err == nil {
		err = root.ExecuteContext(ctx)
	}
	if err == nil {
		return ExitOK
	}

	var ae *ArgumentError
	if errors.As(err, &ae) {
		opt.Logger.Debug("argument error", "err", err)
		ui.Fail(opt.Stderr, err.Error())
		return ExitUsage
	}
	opt.Logger.Debug("command failed", "err", err)
	ui.Fail(opt.Stderr, err.Error())
	return ExitError
}

const usageLine = "Usage: help"

const longHelp = `todo - a tiny SQLite-backed todo list

Usage:
  todo <command> <db-path> [-t|--text <string>] [-i|--id <integer>]

Commands:
  init  <db>            Create the todos table if it is missing
  add   <db> -t <text>  Add a new todo
  list  <db>            List unchecked todos
  all   <db>            List every todo
  check <db> -i <id>    Mark a todo as checked
  browse <db>           Interactive view (check with space, add with a)
  help                  Print usage

Examples:
  todo init todos.sqlite
  todo add todos.sqlite -t "buy milk"
  todo all todos.sqlite
  todo check todos.sqlite -i 1`

func newRootCmd(opt Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "todo <command> <db-path>",
		Short:         "A tiny SQLite-backed todo list",
		Long:          longHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Any token that is not a subcommand lands here.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &ArgumentError{Msg: "missing command, run `todo help`"}
			}
			return unknownCommand(args[0])
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	// unknown flags after an unknown command must not mask the command error
	root.FParseErrWhitelist.UnknownFlags = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ArgumentError{Err: err}
	})

	root.SetHelpCommand(newHelpCmd())
	root.AddCommand(
		newInitCmd(opt),
		newListCmd(opt),
		newAllCmd(opt),
		newCheckCmd(opt),
		newAddCmd(opt),
		newBrowseCmd(opt),
	)
	return root
}

// checkCommand rejects a command token that is not one of the visible
// subcommands before cobra sees it. cobra would otherwise run its hidden
// completion commands, or answer -h for an unknown command.
func checkCommand(root *cobra.Command, args []string) error {
	token := ""
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			token = a
			break
		}
	}
	if token == "" {
		// no command at all; root reports it, or prints help for -h
		return nil
	}
	root.InitDefaultHelpCmd()
	for _, c := range root.Commands() {
		if !c.Hidden && (c.Name() == token || c.HasAlias(token)) {
			return nil
		}
	}
	return unknownCommand(token)
}

func unknownCommand(token string) error {
	return &ArgumentError{Msg: fmt.Sprintf("Unknown command %s, exiting", token)}
}

// dbPathArg validates the single positional database path.
func dbPathArg(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 1:
		return nil
	case 0:
		return &ArgumentError{Msg: fmt.Sprintf("%s: missing database path", cmd.Name())}
	default:
		return &ArgumentError{Msg: fmt.Sprintf("%s: expected one database path, got %d arguments", cmd.Name(), len(args))}
	}
}

// requireFlag reports a missing flag as an ArgumentError.
func requireFlag(cmd *cobra.Command, name string) error {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return &ArgumentError{Msg: fmt.Sprintf("%s: missing required flag %s", cmd.Name(), flagLabel(f, name))}
	}
	return nil
}

func flagLabel(f *pflag.Flag, name string) string {
	if f == nil || f.Shorthand == "" {
		return "--" + name
	}
	return "-" + f.Shorthand + "|--" + f.Name
}

// withStore opens the database only for commands that need it and closes it afterwards.
func withStore(cmd *cobra.Command, opt Options, path string, fn func(*sqlstore.Store) error) (err error) {
	s, err := sqlstore.Open(cmd.Context(), path, opt.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return fn(s)
}
