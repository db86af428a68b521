package cli

import (
	"fmt"
	"iter"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todosql/internal/model"
	"github.com/Makepad-fr/todosql/internal/store/sqlstore"
	"github.com/Makepad-fr/todosql/internal/tui"
	"github.com/Makepad-fr/todosql/internal/ui"
)

// -------------- subcommand impls ----------------

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [db-path]",
		Short: "Print usage",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return &ArgumentError{Msg: "help: too many arguments"}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), usageLine)
			return err
		},
	}
}

func newInitCmd(opt Options) *cobra.Command {
	return &cobra.Command{
		Use:   "init <db-path>",
		Short: "Create the todos table if it is missing",
		Args:  dbPathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opt, args[0], func(s *sqlstore.Store) error {
				opt.Logger.Debug("dispatch", "command", "init", "db", args[0])
				return s.Init(cmd.Context())
			})
		},
	}
}

func newListCmd(opt Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list <db-path>",
		Short: "List unchecked todos",
		Args:  dbPathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opt, args[0], func(s *sqlstore.Store) error {
				opt.Logger.Debug("dispatch", "command", "list", "db", args[0])
				return printTodos(cmd, s.Unchecked(cmd.Context()))
			})
		},
	}
}

func newAllCmd(opt Options) *cobra.Command {
	return &cobra.Command{
		Use:   "all <db-path>",
		Short: "List every todo",
		Args:  dbPathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opt, args[0], func(s *sqlstore.Store) error {
				opt.Logger.Debug("dispatch", "command", "all", "db", args[0])
				return printTodos(cmd, s.All(cmd.Context()))
			})
		},
	}
}

func newCheckCmd(opt Options) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "check <db-path> -i <id>",
		Short: "Mark a todo as checked",
		Args:  dbPathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(cmd, "id"); err != nil {
				return err
			}
			return withStore(cmd, opt, args[0], func(s *sqlstore.Store) error {
				opt.Logger.Debug("dispatch", "command", "check", "db", args[0], "id", id)
				return s.Check(cmd.Context(), id)
			})
		},
	}
	cmd.Flags().Int64VarP(&id, "id", "i", 0, "id of the todo to check")
	return cmd
}

func newAddCmd(opt Options) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "add <db-path> -t <text>",
		Short: "Add a new todo",
		Args:  dbPathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(cmd, "text"); err != nil {
				return err
			}
			return withStore(cmd, opt, args[0], func(s *sqlstore.Store) error {
				id, err := s.Add(cmd.Context(), text)
				if err != nil {
					return err
				}
				opt.Logger.Debug("dispatch", "command", "add", "db", args[0], "id", id)
				return nil
			})
		},
	}
	// empty text is stored as-is
	cmd.Flags().StringVarP(&text, "text", "t", "", "text of the new todo")
	return cmd
}

func newBrowseCmd(opt Options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <db-path>",
		Short: "Interactive view: check with space, add with a",
		Args:  dbPathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opt, args[0], func(s *sqlstore.Store) error {
				opt.Logger.Debug("dispatch", "command", "browse", "db", args[0])
				ch, err := tui.Run(cmd.Context(), s)
				if err != nil {
					return err
				}
				if !ch.Empty() {
					ui.OK(cmd.OutOrStdout(), fmt.Sprintf("saved: %d checked, %d added", len(ch.Check), len(ch.Add)))
				}
				return nil
			})
		},
	}
}

// -------------- rendering helpers --------------

// printTodos writes one record per line as rows arrive.
func printTodos(cmd *cobra.Command, todos iter.Seq2[model.Todo, error]) error {
	w := cmd.OutOrStdout()
	for td, err := range todos {
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, td.String()); err != nil {
			return err
		}
	}
	return nil
}
