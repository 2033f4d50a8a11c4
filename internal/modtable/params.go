package modtable

import (
	"fmt"
	"slices"
)

// Params is a flat bundle of table parameters: option name to chosen
// value. Tables read it only after schema validation.
type Params map[string]string

// Selection names a table together with its parameters. Selections
// are what the engine and the run-spec loader exchange.
type Selection struct {
	Table  string
	Params Params
}

// ParamSpec declares one parameter: its name, the closed set of legal
// option values, and the default applied when the caller omits it.
type ParamSpec struct {
	Name        string
	Description string
	Options     []string
	Default     string
}

// Schema is a table's declared parameter list, in declaration order.
type Schema []ParamSpec

// Validate checks a parameter bundle against the schema. Unknown
// names and undeclared option values fail with UNKNOWN_PARAMETER.
func (s Schema) Validate(table string, p Params) error {
	for name, value := range p {
		spec, ok := s.lookup(name)
		if !ok {
			return &SelectionError{
				Code:    ErrCodeUnknownParameter,
				Table:   table,
				Param:   name,
				Message: fmt.Sprintf("unknown parameter %q", name),
			}
		}
		if !slices.Contains(spec.Options, value) {
			return &SelectionError{
				Code:    ErrCodeUnknownParameter,
				Table:   table,
				Param:   name,
				Message: fmt.Sprintf("parameter %q: unknown option %q (want one of %v)", name, value, spec.Options),
			}
		}
	}
	return nil
}

// Resolve validates a bundle and fills in defaults for every omitted
// parameter, returning a complete copy. The input is not modified.
func (s Schema) Resolve(table string, p Params) (Params, error) {
	if err := s.Validate(table, p); err != nil {
		return nil, err
	}
	resolved := make(Params, len(s))
	for _, spec := range s {
		resolved[spec.Name] = spec.Default
	}
	for name, value := range p {
		resolved[name] = value
	}
	return resolved, nil
}

func (s Schema) lookup(name string) (ParamSpec, bool) {
	for _, spec := range s {
		if spec.Name == name {
			return spec, true
		}
	}
	return ParamSpec{}, false
}
