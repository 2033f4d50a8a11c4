package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phorms/enki/internal/dataset"
)

// ErrRunNotFound is returned when no run exists for a run token.
var ErrRunNotFound = errors.New("run not found")

// RunInfo is a stored run's summary record.
type RunInfo struct {
	RunToken    string
	N           int64
	Table       string
	Fingerprint string
	CreatedAt   string
}

// LoadTransformed reads a stored run back into a transformed dataset.
// Rows come back ordered by index, so the loaded dataset fingerprints
// identically to the one that was saved.
func (s *Store) LoadTransformed(ctx context.Context, runToken string) (*dataset.Transformed, error) {
	var (
		tr         dataset.Transformed
		paramsJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT run_token, n, table_name, params, chi_size, theta_size, lambda_size, epsilon_catalog
		FROM runs
		WHERE run_token = ?
	`, runToken).Scan(
		&tr.RunToken,
		&tr.N,
		&tr.Table,
		&paramsJSON,
		&tr.Space.ChiSize,
		&tr.Space.ThetaSize,
		&tr.Space.LambdaSize,
		&tr.Space.EpsilonCatalog,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %q: %w", runToken, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}

	if err := json.Unmarshal([]byte(paramsJSON), &tr.Params); err != nil {
		return nil, fmt.Errorf("load run params: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, chi, theta, lambda, epsilon
		FROM run_rows
		WHERE run_token = ?
		ORDER BY idx ASC
	`, runToken)
	if err != nil {
		return nil, fmt.Errorf("query run rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		r := dataset.TransformedRow{Table: tr.Table}
		if err := rows.Scan(&r.Index, &r.Chi, &r.Theta, &r.Lambda, &r.Epsilon); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		tr.Rows = append(tr.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}

	return &tr, nil
}

// ListRuns returns summaries of all stored runs, newest first with
// run token as tiebreaker so the order is deterministic.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token, n, table_name, fingerprint, created_at
		FROM runs
		ORDER BY created_at DESC, run_token DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var infos []RunInfo
	for rows.Next() {
		var info RunInfo
		if err := rows.Scan(&info.RunToken, &info.N, &info.Table, &info.Fingerprint, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	if infos == nil {
		infos = []RunInfo{}
	}

	return infos, nil
}

// Fingerprint returns the stored fingerprint for a run token.
func (s *Store) Fingerprint(ctx context.Context, runToken string) (string, error) {
	var fp string
	err := s.db.QueryRowContext(ctx, `
		SELECT fingerprint FROM runs WHERE run_token = ?
	`, runToken).Scan(&fp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("run %q: %w", runToken, ErrRunNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("load fingerprint: %w", err)
	}
	return fp, nil
}
