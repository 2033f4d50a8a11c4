package runspec

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/phorms/enki/internal/modtable"
)

// LoadCUE compiles a CUE run spec file. The file must define a "run"
// struct with an integer "n" and a "select" list.
func LoadCUE(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run spec: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	return CompileRun(v.LookupPath(cue.ParsePath("run")))
}

// CompileRun parses a CUE value into a RunSpec.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the run struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`run: { n: 6, select: [...] }`)
//	spec, err := CompileRun(v.LookupPath(cue.ParsePath("run")))
func CompileRun(v cue.Value) (*RunSpec, error) {
	if !v.Exists() {
		return nil, &LoadError{
			Field:   "run",
			Message: "run struct is required",
		}
	}
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &RunSpec{}

	nVal := v.LookupPath(cue.ParsePath("n"))
	if !nVal.Exists() {
		return nil, &LoadError{
			Field:   "n",
			Message: "n is required",
			Pos:     v.Pos(),
		}
	}
	n, err := nVal.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	spec.N = n

	selVal := v.LookupPath(cue.ParsePath("select"))
	if selVal.Exists() {
		iter, err := selVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			sel, err := compileSelection(iter.Value())
			if err != nil {
				return nil, err
			}
			spec.Selections = append(spec.Selections, sel)
		}
	}

	return normalize(spec)
}

// compileSelection parses a single selection entry. Supports a bare
// string naming a table or group, or a struct with table and params.
func compileSelection(v cue.Value) (modtable.Selection, error) {
	var sel modtable.Selection

	if name, err := v.String(); err == nil {
		sel.Table = name
		return sel, nil
	}

	tableVal := v.LookupPath(cue.ParsePath("table"))
	if !tableVal.Exists() {
		return sel, &LoadError{
			Field:   "select",
			Message: "selection requires a table name",
			Pos:     v.Pos(),
		}
	}
	table, err := tableVal.String()
	if err != nil {
		return sel, formatCUEError(err)
	}
	sel.Table = table

	paramsVal := v.LookupPath(cue.ParsePath("params"))
	if paramsVal.Exists() {
		iter, err := paramsVal.Fields()
		if err != nil {
			return sel, formatCUEError(err)
		}
		sel.Params = modtable.Params{}
		for iter.Next() {
			val, err := iter.Value().String()
			if err != nil {
				return sel, formatCUEError(err)
			}
			sel.Params[iter.Label()] = val
		}
	}

	return sel, nil
}
