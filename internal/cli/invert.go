package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phorms/enki/internal/dataset"
	"github.com/phorms/enki/internal/engine"
	"github.com/phorms/enki/internal/export"
)

// InvertOptions holds flags for the invert command.
type InvertOptions struct {
	*RootOptions
	Database string
	Output   string
}

// InvertResult is the success payload of the invert command.
type InvertResult struct {
	RunToken    string `json:"run_token"`
	Table       string `json:"table"`
	N           int64  `json:"n"`
	Fingerprint string `json:"fingerprint"`
	Output      string `json:"output,omitempty"`
}

func (r InvertResult) String() string {
	s := fmt.Sprintf("Inverted %s run %s back to %d base row(s)\nBase fingerprint: %s", r.Table, r.RunToken, r.N, r.Fingerprint)
	if r.Output != "" {
		s += "\nWritten to: " + r.Output
	}
	return s
}

// NewInvertCommand creates the invert command.
func NewInvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "invert <run-token>",
		Short: "Recover the base dataset from a stored run",
		Long: `Load a stored run and invert its table, recovering the base dataset.

Only reversible tables can be inverted; a run produced by a one-way
table fails with NOT_REVERSIBLE.

Example:
  enki invert --db runs.db 0191e8a4-...
  enki invert --db runs.db 0191e8a4-... --output base.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the recovered canonical dataset to a file")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runInvert(opts *InvertOptions, runToken string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := export.Open(opts.Database)
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("opening database: %v", err))
	}
	defer st.Close()

	tr, err := st.LoadTransformed(cmd.Context(), runToken)
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("loading run: %v", err))
	}

	eng := engine.New(tr.Space)
	base, err := eng.Invert(tr)
	if err != nil {
		return failDomain(formatter, err)
	}

	fingerprint, err := dataset.Fingerprint(base.CanonicalMap())
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("fingerprinting dataset: %v", err))
	}

	result := InvertResult{
		RunToken:    tr.RunToken,
		Table:       tr.Table,
		N:           base.N,
		Fingerprint: fingerprint,
	}

	if opts.Output != "" {
		data, err := dataset.MarshalCanonical(base.CanonicalMap())
		if err != nil {
			return failCommand(formatter, fmt.Sprintf("marshaling dataset: %v", err))
		}
		if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
			return failCommand(formatter, fmt.Sprintf("writing output file: %v", err))
		}
		result.Output = opts.Output
	}

	return formatter.Success(result)
}
