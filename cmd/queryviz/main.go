package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var root = &cobra.Command{
		Use:           "queryviz",
		Short:         "Step through the logical execution of a SQL query",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runREPL,
	}
	root.PersistentFlags().String("config", ".", "directory holding config.yaml")
	addCommands(root)

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
