package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phorms/enki/internal/dataset"
	"github.com/phorms/enki/internal/engine"
	"github.com/phorms/enki/internal/export"
	"github.com/phorms/enki/internal/modtable"
)

// TransformOptions holds flags for the transform command.
type TransformOptions struct {
	*RootOptions
	Params   []string // key=value pairs
	Database string   // optional SQLite store
	OutDir   string   // optional JSON export directory

	// Tokens allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens engine.TokenGenerator
}

// TransformResult is the success payload of the transform command.
type TransformResult struct {
	N           int64             `json:"n"`
	Table       string            `json:"table"`
	Params      map[string]string `json:"params"`
	RunToken    string            `json:"run_token"`
	Fingerprint string            `json:"fingerprint"`
	Export      string            `json:"export,omitempty"`
}

func (r TransformResult) String() string {
	s := fmt.Sprintf("Applied %s to %d row(s)\nRun token: %s\nFingerprint: %s", r.Table, r.N, r.RunToken, r.Fingerprint)
	if r.Export != "" {
		s += "\nExported to: " + r.Export
	}
	return s
}

// NewTransformCommand creates the transform command.
func NewTransformCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TransformOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "transform <n> <table>",
		Short: "Apply one mod table to the base dataset for N",
		Long: `Generate the base dataset for N and apply a mod table to it.

Parameters take key=value form and must match the table's schema;
omitted parameters fall back to their declared defaults.

Example:
  enki transform 128 chromatic
  enki transform 128 harmonic --param chord=major7 --db runs.db
  enki transform 128 modal --out-dir ./exports`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Params, "param", nil, "table parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for run storage")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "", "directory for the resolved JSON export")

	return cmd
}

func runTransform(opts *TransformOptions, nArg, table string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	n, err := strconv.ParseInt(nArg, 10, 64)
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("invalid n %q: not an integer", nArg))
	}

	params, err := parseParams(opts.Params)
	if err != nil {
		return failCommand(formatter, err.Error())
	}

	space, err := loadSpace(opts.RootOptions)
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("loading config: %v", err))
	}

	engineOpts := []engine.Option{}
	if opts.Tokens != nil {
		engineOpts = append(engineOpts, engine.WithTokenGenerator(opts.Tokens))
	}
	eng := engine.New(space, engineOpts...)

	base, err := eng.Generate(n)
	if err != nil {
		return failDomain(formatter, err)
	}

	tr, err := eng.Apply(cmd.Context(), base, modtable.Selection{Table: table, Params: params})
	if err != nil {
		return failDomain(formatter, err)
	}

	fingerprint, err := dataset.Fingerprint(tr.CanonicalMap())
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("fingerprinting dataset: %v", err))
	}

	result := TransformResult{
		N:           tr.N,
		Table:       tr.Table,
		Params:      tr.Params,
		RunToken:    tr.RunToken,
		Fingerprint: fingerprint,
	}

	if opts.Database != "" {
		st, err := export.Open(opts.Database)
		if err != nil {
			return failCommand(formatter, fmt.Sprintf("opening database: %v", err))
		}
		defer st.Close()
		if err := st.SaveTransformed(cmd.Context(), tr); err != nil {
			return failCommand(formatter, fmt.Sprintf("saving run: %v", err))
		}
	}

	if opts.OutDir != "" {
		path, err := export.ExportFile(opts.OutDir, tr)
		if err != nil {
			return failCommand(formatter, fmt.Sprintf("exporting dataset: %v", err))
		}
		result.Export = path
	}

	return formatter.Success(result)
}

// parseParams splits repeated key=value flags into a parameter bundle.
func parseParams(pairs []string) (modtable.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := modtable.Params{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: want key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}
