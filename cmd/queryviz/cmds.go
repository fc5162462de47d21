package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/leengari/queryviz/databases"
	"github.com/leengari/queryviz/internal/config"
	"github.com/leengari/queryviz/internal/console"
	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/engine"
	"github.com/leengari/queryviz/internal/logging"
	"github.com/leengari/queryviz/internal/metrics"
	"github.com/leengari/queryviz/internal/network"
	"github.com/leengari/queryviz/internal/plan"
	"github.com/leengari/queryviz/internal/planner"
	"github.com/leengari/queryviz/internal/render"
	"github.com/leengari/queryviz/internal/repl"
)

// seedDatabase is the embedded database every command runs on
const seedDatabase = "main"

func addCommands(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Step through the query interactively",
		Args:  cobra.NoArgs,
		RunE:  runREPL}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve controllers over line-delimited JSON on TCP",
		Args:  cobra.NoArgs,
		RunE:  runServe}
	cmd.Flags().Int("port", 0, "port to listen on (default: server.port)")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "frame step",
		Short: "Print the frame of one step (0-7 or a name)",
		Args:  cobra.ExactArgs(1),
		RunE:  runFrame}
	cmd.Flags().Bool("json", false, "print the frame as JSON")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "plan step",
		Short: "Print the plan tree of one step",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlan}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "steps",
		Short: "List every step with its description",
		Args:  cobra.NoArgs,
		Run:   runSteps}
	root.AddCommand(cmd)
}

// app is what every command needs once config and logging are set up
type app struct {
	cfg     config.Config
	engine  *engine.Engine
	closeFn func()
}

func setup(cmd *cobra.Command) (*app, error) {
	dir, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	logger, closeFn, err := logging.SetupLogger(cfg.Log, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	eng, err := engine.Load(databases.Content, seedDatabase, cfg.Engine())
	if err != nil {
		closeFn()
		return nil, err
	}

	return &app{cfg: cfg, engine: eng, closeFn: closeFn}, nil
}

func parseStepArg(command, arg string) (stage.Step, error) {
	s, err := engine.ParseStep(command, arg)
	if err != nil {
		return 0, err
	}
	return stage.Clamp(s), nil
}

func runREPL(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.closeFn()

	ctrl := a.engine.NewController()
	defer ctrl.Close()
	ctrl.AddObserver(engine.NewLoggingObserver())

	slog.Debug("Starting REPL mode...", "session_id", ctrl.SessionID())
	return repl.Start(cmd.Context(), ctrl, cmd.InOrStdin(), cmd.OutOrStdout())
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.closeFn()

	port := a.cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}

	var observers []engine.Observer
	if addr := a.cfg.Server.MetricsAddr; addr != "" {
		reg := prometheus.NewRegistry()
		observers = append(observers, metrics.NewObserver(reg))

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv := &http.Server{Addr: addr, Handler: mux}

		go func() {
			slog.Info("Serving metrics", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	slog.Info("Starting Server mode...")
	return network.NewServer(a.engine, observers...).Start(cmd.Context(), port)
}

func runFrame(cmd *cobra.Command, args []string) error {
	step, err := parseStepArg("frame", args[0])
	if err != nil {
		return err
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.closeFn()

	f := a.engine.Frame(step)
	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encoding frame: %w", err)
		}
		return nil
	}

	render.Frame(out, f)
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	step, err := parseStepArg("plan", args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), plan.PrintTree(planner.Plan(step)))
	return nil
}

func runSteps(cmd *cobra.Command, args []string) {
	render.Steps(cmd.OutOrStdout(), console.Infos(), stage.Step(-1))
}
