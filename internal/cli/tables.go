package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phorms/enki/internal/modtable"
)

// TablesOptions holds flags for the tables command.
type TablesOptions struct {
	*RootOptions
	Group string
}

// TableInfo is one catalog entry in the tables listing.
type TableInfo struct {
	Name       string      `json:"name"`
	Reversible bool        `json:"reversible"`
	Params     []ParamInfo `json:"params,omitempty"`
}

// ParamInfo describes one parameter of a table.
type ParamInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Default     string   `json:"default"`
}

// TablesResult is the success payload of the tables command.
type TablesResult struct {
	Tables []TableInfo `json:"tables"`
}

func (r TablesResult) String() string {
	var b strings.Builder
	for i, t := range r.Tables {
		if i > 0 {
			b.WriteString("\n")
		}
		reversible := "one-way"
		if t.Reversible {
			reversible = "reversible"
		}
		fmt.Fprintf(&b, "%s (%s)", t.Name, reversible)
		for _, p := range t.Params {
			fmt.Fprintf(&b, "\n  %s: %s (options: %s; default: %s)",
				p.Name, p.Description, strings.Join(p.Options, ", "), p.Default)
		}
	}
	return b.String()
}

// NewTablesCommand creates the tables command.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TablesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the mod table catalog",
		Long: `List every registered mod table with its parameters.

Each entry shows whether the table declares an inverse and the closed
option set of every parameter.

Example:
  enki tables
  enki tables --group music`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Group, "group", "", "restrict to a selection group (all|music)")

	return cmd
}

func runTables(opts *TablesOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	names := modtable.Names()
	if opts.Group != "" {
		grouped, ok := modtable.Group(opts.Group)
		if !ok {
			return failCommand(formatter, fmt.Sprintf("unknown group %q", opts.Group))
		}
		names = grouped
	}

	result := TablesResult{}
	for _, name := range names {
		tbl, err := modtable.Lookup(name)
		if err != nil {
			return failDomain(formatter, err)
		}
		info := TableInfo{Name: tbl.Name(), Reversible: tbl.Reversible()}
		for _, p := range tbl.Schema() {
			info.Params = append(info.Params, ParamInfo{
				Name:        p.Name,
				Description: p.Description,
				Options:     p.Options,
				Default:     p.Default,
			})
		}
		result.Tables = append(result.Tables, info)
	}

	return formatter.Success(result)
}
