package runspec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/phorms/enki/internal/modtable"
)

// RunSpec is a loaded and normalized run specification.
type RunSpec struct {
	N          int64
	Selections []modtable.Selection
}

// Load reads a run spec file, dispatching on extension: .cue files go
// through the CUE compiler, .yaml/.yml through the YAML decoder. The
// returned spec is normalized.
func Load(path string) (*RunSpec, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return LoadCUE(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return nil, &LoadError{
			Field:   "file",
			Message: fmt.Sprintf("unsupported run spec extension %q (want .cue, .yaml, or .yml)", ext),
		}
	}
}

// normalize expands selection groups and validates every selection
// against its table's parameter schema. Group selections carry no
// params; the group's tables run with defaults.
func normalize(spec *RunSpec) (*RunSpec, error) {
	if spec.N < 0 {
		return nil, &LoadError{
			Field:   "n",
			Message: fmt.Sprintf("n must be non-negative, got %d", spec.N),
		}
	}
	if len(spec.Selections) == 0 {
		return nil, &LoadError{
			Field:   "select",
			Message: "at least one selection is required",
		}
	}

	out := &RunSpec{N: spec.N}
	for i, sel := range spec.Selections {
		if names, ok := modtable.Group(sel.Table); ok {
			if len(sel.Params) > 0 {
				return nil, &LoadError{
					Field:   fmt.Sprintf("select[%d]", i),
					Message: fmt.Sprintf("group %q cannot carry params", sel.Table),
				}
			}
			for _, name := range names {
				out.Selections = append(out.Selections, modtable.Selection{Table: name})
			}
			continue
		}

		tbl, err := modtable.Lookup(sel.Table)
		if err != nil {
			return nil, &LoadError{
				Field:   fmt.Sprintf("select[%d].table", i),
				Message: err.Error(),
			}
		}
		if err := tbl.Schema().Validate(sel.Table, sel.Params); err != nil {
			return nil, &LoadError{
				Field:   fmt.Sprintf("select[%d].params", i),
				Message: err.Error(),
			}
		}
		out.Selections = append(out.Selections, sel)
	}
	return out, nil
}
