package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phorms/enki/internal/dataset"
	"github.com/phorms/enki/internal/dimension"
)

// Filename returns the conventional export file name for a dataset:
// phorms_N<rowcount>_<table>.json.
func Filename(tr *dataset.Transformed) string {
	return fmt.Sprintf("phorms_N%d_%s.json", tr.Len(), tr.Table)
}

// DisplayDocument renders a transformed dataset with every dimension
// position resolved to its display value. The result is a plain map
// suitable for canonical marshaling.
func DisplayDocument(tr *dataset.Transformed) (map[string]any, error) {
	fingerprint, err := dataset.Fingerprint(tr.CanonicalMap())
	if err != nil {
		return nil, err
	}

	rows := make([]any, len(tr.Rows))
	for i, r := range tr.Rows {
		row, err := displayRow(tr.Space, r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r.Index, err)
		}
		rows[i] = row
	}

	params := make(map[string]any, len(tr.Params))
	for k, v := range tr.Params {
		params[k] = v
	}

	return map[string]any{
		"n":           tr.N,
		"table":       tr.Table,
		"params":      params,
		"run_token":   tr.RunToken,
		"fingerprint": fingerprint,
		"space": map[string]any{
			"chi_size":        tr.Space.ChiSize,
			"theta_size":      tr.Space.ThetaSize,
			"lambda_size":     tr.Space.LambdaSize,
			"epsilon_catalog": tr.Space.EpsilonCatalog,
		},
		"rows": rows,
	}, nil
}

func displayRow(sp dataset.Space, r dataset.TransformedRow) (map[string]any, error) {
	duration, err := dimension.ChiAt(r.Chi)
	if err != nil {
		return nil, err
	}
	note, err := dimension.ThetaAt(r.Theta)
	if err != nil {
		return nil, err
	}
	octave, err := dimension.LambdaAt(r.Lambda)
	if err != nil {
		return nil, err
	}
	modifiers, err := dimension.EpsilonSet(r.Epsilon, sp.EpsilonCatalog)
	if err != nil {
		return nil, err
	}

	names := make([]any, len(modifiers))
	for i, m := range modifiers {
		names[i] = m.Name
	}

	return map[string]any{
		"index":     r.Index,
		"duration":  duration.Name,
		"note":      note.Step,
		"octave":    int64(octave.Number),
		"modifiers": names,
	}, nil
}

// WriteJSON writes the resolved dataset as canonical JSON.
func WriteJSON(w io.Writer, tr *dataset.Transformed) error {
	doc, err := DisplayDocument(tr)
	if err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	data, err := dataset.MarshalCanonical(doc)
	if err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

// ExportFile writes the dataset to dir under the conventional file
// name and returns the path.
func ExportFile(dir string, tr *dataset.Transformed) (string, error) {
	path := filepath.Join(dir, Filename(tr))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export json: %w", err)
	}
	if err := WriteJSON(f, tr); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export json: %w", err)
	}
	return path, nil
}
