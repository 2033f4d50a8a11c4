package export

import (
	"context"
	"fmt"

	"github.com/phorms/enki/internal/dataset"
)

// SaveTransformed inserts a transformed dataset into the store.
// The runs record and all row tuples are written in one transaction.
// Uses ON CONFLICT(run_token) DO NOTHING for idempotency - saving the
// same run twice is a no-op, not an error.
//
// Params are serialized to canonical JSON so equal bundles compare
// equal as stored text.
func (s *Store) SaveTransformed(ctx context.Context, tr *dataset.Transformed) error {
	paramsJSON, err := marshalParams(tr.Params)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	fingerprint, err := dataset.Fingerprint(tr.CanonicalMap())
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(run_token, n, table_name, params, chi_size, theta_size, lambda_size, epsilon_catalog, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_token) DO NOTHING
	`,
		tr.RunToken,
		tr.N,
		tr.Table,
		paramsJSON,
		tr.Space.ChiSize,
		tr.Space.ThetaSize,
		tr.Space.LambdaSize,
		tr.Space.EpsilonCatalog,
		fingerprint,
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	// Conflict means the run is already stored; rows came with it.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_rows (run_token, idx, chi, theta, lambda, epsilon)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	defer stmt.Close()

	for _, r := range tr.Rows {
		if _, err := stmt.ExecContext(ctx, tr.RunToken, r.Index, r.Chi, r.Theta, r.Lambda, r.Epsilon); err != nil {
			return fmt.Errorf("save run row %d: %w", r.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	return nil
}

func marshalParams(params map[string]string) (string, error) {
	m := make(map[string]any, len(params))
	for k, v := range params {
		m[k] = v
	}
	data, err := dataset.MarshalCanonical(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
