package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phorms/enki/internal/dataset"
	"github.com/phorms/enki/internal/engine"
	"github.com/phorms/enki/internal/export"
	"github.com/phorms/enki/internal/runspec"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	OutDir   string
	Workers  int

	// Tokens allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens engine.TokenGenerator
}

// RunEntry is one selection's outcome in the run result.
type RunEntry struct {
	Table       string `json:"table"`
	RunToken    string `json:"run_token"`
	Fingerprint string `json:"fingerprint"`
	Export      string `json:"export,omitempty"`
}

// RunResult is the success payload of the run command.
type RunResult struct {
	N       int64      `json:"n"`
	Entries []RunEntry `json:"entries"`
}

func (r RunResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Completed %d run(s) over %d row(s)", len(r.Entries), r.N)
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "\n%s  %s  %s", e.Table, e.RunToken, e.Fingerprint)
		if e.Export != "" {
			fmt.Fprintf(&b, "  %s", e.Export)
		}
	}
	return b.String()
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <run-spec>",
		Short: "Execute a run spec against the engine",
		Long: `Execute a run spec: generate the base dataset for its N and apply
every selection in order.

The run spec is a CUE or YAML file naming N and the selections; group
names expand to their tables. The batch is fail-fast: the first failing
selection aborts the run, and already completed selections are still
stored and exported.

Example:
  enki run run.cue
  enki run run.yaml --db runs.db --out-dir ./exports --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for run storage")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "", "directory for resolved JSON exports")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "worker count for row transformation (0 = all CPUs)")

	return cmd
}

func runBatch(opts *RunOptions, specPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	slog.Info("loading run spec", "path", specPath)
	spec, err := runspec.Load(specPath)
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("loading run spec: %v", err))
	}
	slog.Info("run spec loaded", "n", spec.N, "selections", len(spec.Selections))

	space, err := loadSpace(opts.RootOptions)
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("loading config: %v", err))
	}

	var st *export.Store
	if opts.Database != "" {
		slog.Info("opening database", "path", opts.Database)
		st, err = export.Open(opts.Database)
		if err != nil {
			return failCommand(formatter, fmt.Sprintf("opening database: %v", err))
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
	}

	engineOpts := []engine.Option{}
	if opts.Workers > 0 {
		engineOpts = append(engineOpts, engine.WithWorkers(opts.Workers))
	}
	if opts.Tokens != nil {
		engineOpts = append(engineOpts, engine.WithTokenGenerator(opts.Tokens))
	}
	eng := engine.New(space, engineOpts...)

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, aborting run", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	base, err := eng.Generate(spec.N)
	if err != nil {
		return failDomain(formatter, err)
	}
	slog.Info("base dataset generated", "rows", base.Len())

	transformed, batchErr := eng.ApplyBatch(ctx, base, spec.Selections)

	// Completed datasets are persisted even when the batch failed.
	result := RunResult{N: spec.N}
	for _, tr := range transformed {
		entry, err := sinkRun(ctx, st, opts.OutDir, tr)
		if err != nil {
			return failCommand(formatter, err.Error())
		}
		slog.Info("run completed", "table", tr.Table, "run_token", tr.RunToken)
		result.Entries = append(result.Entries, entry)
	}

	if batchErr != nil {
		if be, ok := engine.AsBatchError(batchErr); ok {
			slog.Error("batch aborted", "selection", be.Index, "table", be.Table, "error", be.Err)
		}
		return failDomain(formatter, batchErr)
	}

	return formatter.Success(result)
}

// sinkRun stores and exports one completed dataset.
func sinkRun(ctx context.Context, st *export.Store, outDir string, tr *dataset.Transformed) (RunEntry, error) {
	fingerprint, err := dataset.Fingerprint(tr.CanonicalMap())
	if err != nil {
		return RunEntry{}, fmt.Errorf("fingerprinting dataset: %w", err)
	}

	entry := RunEntry{Table: tr.Table, RunToken: tr.RunToken, Fingerprint: fingerprint}

	if st != nil {
		if err := st.SaveTransformed(ctx, tr); err != nil {
			return RunEntry{}, fmt.Errorf("saving run: %w", err)
		}
	}
	if outDir != "" {
		path, err := export.ExportFile(outDir, tr)
		if err != nil {
			return RunEntry{}, fmt.Errorf("exporting dataset: %w", err)
		}
		entry.Export = path
	}

	return entry, nil
}
