package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phorms/enki/internal/dataset"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output string // output file path for the canonical dataset
}

// GenerateResult is the success payload of the generate command.
type GenerateResult struct {
	N           int64  `json:"n"`
	RowCount    int    `json:"row_count"`
	Capacity    int64  `json:"capacity"`
	Fingerprint string `json:"fingerprint"`
	Output      string `json:"output,omitempty"`
}

func (r GenerateResult) String() string {
	s := fmt.Sprintf("Generated %d row(s) (capacity %d)\nFingerprint: %s", r.RowCount, r.Capacity, r.Fingerprint)
	if r.Output != "" {
		s += "\nWritten to: " + r.Output
	}
	return s
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <n>",
		Short: "Generate the base dataset for N",
		Long: `Generate the first N rows of the dimension space's enumeration.

Each row is the mixed-radix decomposition of its index into duration,
note, octave, and modifier-set positions. The dataset is deterministic:
equal N and space always yield byte-identical canonical JSON.

Example:
  enki generate 128
  enki generate 128 --output base.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the canonical dataset to a file")

	return cmd
}

func runGenerate(opts *GenerateOptions, arg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("invalid n %q: not an integer", arg))
	}

	space, err := loadSpace(opts.RootOptions)
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("loading config: %v", err))
	}

	base, err := dataset.Build(space, n)
	if err != nil {
		return failDomain(formatter, err)
	}

	fingerprint, err := dataset.Fingerprint(base.CanonicalMap())
	if err != nil {
		return failCommand(formatter, fmt.Sprintf("fingerprinting dataset: %v", err))
	}

	result := GenerateResult{
		N:           base.N,
		RowCount:    base.Len(),
		Capacity:    space.Capacity(),
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
