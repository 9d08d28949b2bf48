package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var group bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadManager(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			renderList(cmd.OutOrStdout(), m.Todos(), group)
			return nil
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "show pending todos before completed ones")
	return cmd
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadManager(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			created, err := m.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), fmt.Sprintf("added %s %s", shortID(created.ID), created.Text))
			return nil
		},
	}
}

func newDoneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a todo between pending and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadManager(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			todo, err := resolveID(m.Todos(), args[0])
			if err != nil {
				return err
			}
			if err := m.Toggle(cmd.Context(), todo.ID); err != nil {
				return err
			}
			state := "completed"
			if todo.Completed {
				state = "pending"
			}
			ok(cmd.OutOrStdout(), fmt.Sprintf("%s is now %s", todo.Text, state))
			return nil
		},
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Change the text of a todo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadManager(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			todo, err := resolveID(m.Todos(), args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if err := m.Update(cmd.Context(), todo.ID, patchText(text)); err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), fmt.Sprintf("updated %s", shortID(todo.ID)))
			return nil
		},
	}
}

func newRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadManager(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			todo, err := resolveID(m.Todos(), args[0])
			if err != nil {
				return err
			}
			if err := m.Delete(cmd.Context(), todo.ID); err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), fmt.Sprintf("deleted %s", todo.Text))
			return nil
		},
	}
}

func newClearCompletedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadManager(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			done, _ := m.Todos().Counts()
			if err := m.ClearCompleted(cmd.Context()); err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), fmt.Sprintf("cleared %d completed", done))
			return nil
		},
	}
}

func newClearAllCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-all",
		Short: "Delete every todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadManager(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			if err := m.ClearAll(cmd.Context()); err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), "all todos deleted")
			return nil
		},
	}
}
