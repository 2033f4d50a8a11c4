package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phorms/enki/internal/dataset"
	"github.com/phorms/enki/internal/engine"
	"github.com/phorms/enki/internal/modtable"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
}

// VerifyCheck is one table's round-trip result.
type VerifyCheck struct {
	Table  string `json:"table"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// VerifyResult is the payload of the verify command.
type VerifyResult struct {
	N      int64         `json:"n"`
	Checks []VerifyCheck `json:"checks"`
	Passed bool          `json:"passed"`
}

func (r VerifyResult) String() string {
	var b strings.Builder
	for _, c := range r.Checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%s  %s", status, c.Table)
		if c.Detail != "" {
			fmt.Fprintf(&b, "  (%s)", c.Detail)
		}
		b.WriteString("\n")
	}
	if r.Passed {
		fmt.Fprintf(&b, "All %d check(s) passed", len(r.Checks))
	} else {
		fmt.Fprintf(&b, "Verification failed")
	}
	return b.String()
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <n> [table...]",
		Short: "Verify mod table round trips",
		Long: `Verify that applying and inverting mod tables recovers the base
dataset exactly.

Each named table is applied to the base dataset for N with default
parameters, inverted, and the recovered dataset's fingerprint compared
against the original. With no tables named, every reversible table in
the catalog is checked.

Exit code 1 means at least one check failed.

Example:
  enki verify 500
  enki verify 500 chromatic modal`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args[0], args[1:], cmd)
		},
	}

	return cmd
}

func runVerify(opts *VerifyOptions, nArg string, tables []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	n, err := strconv.ParseInt(nArg, 10, 64)
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("invalid n %q: not an integer", nArg))
	}

	space, err := loadSpace(opts.RootOptions)
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("loading config: %v", err))
	}

	if len(tables) == 0 {
		for _, info := range modtable.List() {
			if info.Reversible {
				tables = append(tables, info.Name)
			}
		}
	}

	eng := engine.New(space)
	base, err := eng.Generate(n)
	if err != nil {
		return failDomain(formatter, err)
	}

	want, err := dataset.Fingerprint(base.CanonicalMap())
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("fingerprinting dataset: %v", err))
	}

	result := VerifyResult{N: n, Passed: true}
	for _, table := range tables {
		check := verifyTable(cmd, eng, base, table, want)
		if !check.Passed {
			result.Passed = false
		}
		result.Checks = append(result.Checks, check)
	}

	if err := formatter.Success(result); err != nil {
		return WrapExitError(ExitCommandError, "writing output", err)
	}
	if !result.Passed {
		return NewExitError(ExitFailure, "verification failed")
	}
	return nil
}

func verifyTable(cmd *cobra.Command, eng *engine.Engine, base *dataset.Base, table, want string) VerifyCheck {
	check := VerifyCheck{Table: table}

	tr, err := eng.Apply(cmd.Context(), base, modtable.Selection{Table: table})
	if err != nil {
		check.Detail = err.Error()
		return check
	}

	recovered, err := eng.Invert(tr)
	if err != nil {
		check.Detail = err.Error()
		return check
	}

	got, err := dataset.Fingerprint(recovered.CanonicalMap())
	if err != nil {
		check.Detail = err.Error()
		return check
	}

	if got != want {
		check.Detail = fmt.Sprintf("fingerprint mismatch: want %s, got %s", want, got)
		return check
	}

	check.Passed = true
	return check
}
