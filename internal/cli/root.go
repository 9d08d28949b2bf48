package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/todo-lite/internal/client"
)

const (
	defaultServer  = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
	serverEnv      = "TODO_SERVER"
)

type rootOptions struct {
	server  string
	timeout time.Duration
	verbose bool
}

// NewRootCmd builds the todo command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage todos on a todo-lite server",
		Long: `todo talks to a todo-lite server and edits its single shared list.
Every command loads the full list first; ids may be shortened to any
unique prefix.`,
		SilenceUsage: true,
	}

	server := os.Getenv(serverEnv)
	if server == "" {
		server = defaultServer
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", server, "server base URL (env "+serverEnv+")")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "per-request timeout")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newDoneCmd(opts),
		newEditCmd(opts),
		newRmCmd(opts),
		newClearCompletedCmd(opts),
		newClearAllCmd(opts),
	)

	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	if !o.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadManager returns a manager whose cache already holds the server's list.
func (o *rootOptions) loadManager(ctx context.Context, cmd *cobra.Command) (*client.Manager, error) {
	logger := o.logger(cmd)
	m := client.NewManager(client.NewHTTPClient(o.server, o.timeout), logger)
	if err := m.Load(ctx); err != nil {
		return nil, err
	}
	logger.Debug("loaded todos", "server", o.server, "count", len(m.Todos()))
	return m, nil
}
