package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ib-77/procflow/pkg/flow"
	"github.com/ib-77/procflow/pkg/flow/config"
	"github.com/ib-77/procflow/pkg/flow/logging"
)

type runOptions struct {
	strategy   string
	maxWorkers int
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <plan.toml>",
		Short: "Run every task of a plan and report results in order",
		Long: `Run every [[task]] of a plan file and print one line per task, in plan
order. The exit status is non-zero when any task fails.

Settings are applied in this order, later ones winning: built-in defaults,
--config file, PROCFLOW_* environment variables, the plan file, flags.

Examples:
  # Run a plan with the strategy it declares
  flowctl run build.toml

  # Force parallel execution with at most 2 workers
  flowctl run build.toml --strategy parallel --max-workers 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "execution strategy: sequential, parallel or hybrid")
	cmd.Flags().IntVar(&opts.maxWorkers, "max-workers", 0, "worker pool size (0 computes it from CPU count)")
	return cmd
}

func runPlan(cmd *cobra.Command, root *rootOptions, opts *runOptions, path string) error {
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return err
	}

	plan, err := LoadPlan(path)
	if err != nil {
		return err
	}

	engine := resolveEngine(cfg.Engine, plan, opts)
	if root.logLevel != "" {
		cfg.Logging.Level = root.logLevel
	}
	if root.logFormat != "" {
		cfg.Logging.Format = root.logFormat
	}

	logger, err := logging.NewLoggerTo(&cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	name := plan.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	process, err := flow.NewFromConfig[CommandOutput](name, engine, flow.WithLogger(logger))
	if err != nil {
		return err
	}
	for _, t := range plan.Tasks {
		if err := process.AddTaskNamed(t.Name, t.Task()); err != nil {
			return err
		}
	}

	logger.Debug(cmd.Context(), "running plan",
		zap.String("plan", path),
		zap.Int("tasks", process.Len()),
	)

	results, err := process.Execute(cmd.Context())
	if err != nil {
		return err
	}

	report(cmd.OutOrStdout(), process.Tasks(), results)

	if failures := flow.Failures(results); len(failures) > 0 {
		return fmt.Errorf("%d of %d tasks failed", len(failures), len(results))
	}
	return nil
}

// resolveEngine layers plan and flag settings over the loaded config.
func resolveEngine(engine config.Engine, plan *Plan, opts *runOptions) config.Engine {
	if plan.Strategy != "" {
		engine.Strategy = plan.Strategy
	}
	if plan.MaxWorkers > 0 {
		engine.MaxWorkers = plan.MaxWorkers
	}
	if opts.strategy != "" {
		engine.Strategy = opts.strategy
	}
	if opts.maxWorkers != 0 {
		engine.MaxWorkers = opts.maxWorkers
	}
	return engine
}

func report(w io.Writer, units []flow.TaskUnit[CommandOutput], results []flow.Result[CommandOutput]) {
	for i, r := range results {
		name := units[i].Name
		elapsed := r.Duration().Round(time.Millisecond)
		if r.IsSuccess() {
			fmt.Fprintf(w, "ok    %-20s %s\n", name, elapsed)
			continue
		}
		cause := r.Err()
		if f, ok := r.Failure(); ok {
			cause = f.Err
		}
		fmt.Fprintf(w, "FAIL  %-20s %s  %v\n", name, elapsed, cause)
	}
}
