package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

// reportStore implements driven.ReportStore.
type reportStore struct {
	store *Store
}

var _ driven.ReportStore = (*reportStore)(nil)

// Save stores a report and its findings in one transaction.
// Saving an existing ID replaces the report.
func (s *reportStore) Save(ctx context.Context, report *domain.Report) error {
	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return fmt.Errorf("marshalling summary: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", report.ID); err != nil {
		return fmt.Errorf("replacing report: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports (id, corpus_version, generated_at, fatal, advisory, summary)
		VALUES (?, ?, ?, ?, ?, ?)
	`, report.ID, report.CorpusVersion, report.GeneratedAt.UTC(),
		report.Summary.Fatal, report.Summary.Advisory, string(summaryJSON))
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings (report_id, seq, kind, severity, item_index, unit_position, message, remediation_hint, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing findings insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range report.Findings {
		detailsJSON, err := json.Marshal(f.Details)
		if err != nil {
			return fmt.Errorf("marshalling finding %d: %w", i, err)
		}
		var pos sql.NullInt64
		if f.UnitPosition != nil {
			pos = sql.NullInt64{Int64: int64(*f.UnitPosition), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, report.ID, i, string(f.Kind), string(f.Severity),
			f.ItemIndex, pos, f.Message, f.RemediationHint, string(detailsJSON)); err != nil {
			return fmt.Errorf("saving finding %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}

// Get retrieves a report with its findings in stored order.
func (s *reportStore) Get(ctx context.Context, id string) (*domain.Report, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, corpus_version, generated_at, summary FROM reports WHERE id = ?
	`, id)

	var report domain.Report
	var generatedAt sql.NullTime
	var summaryJSON string
	if err := row.Scan(&report.ID, &report.CorpusVersion, &generatedAt, &summaryJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}
	if generatedAt.Valid {
		report.GeneratedAt = generatedAt.Time.UTC()
	}
	if err := json.Unmarshal([]byte(summaryJSON), &report.Summary); err != nil {
		return nil, fmt.Errorf("unmarshalling summary: %w", err)
	}

	findings, err := s.findings(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Findings = findings

	return &report, nil
}

func (s *reportStore) findings(ctx context.Context, reportID string) ([]domain.Finding, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT kind, severity, item_index, unit_position, message, remediation_hint, details
		FROM findings WHERE report_id = ? ORDER BY seq
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("querying findings: %w", err)
	}
	defer rows.Close()

	findings := []domain.Finding{}
	for rows.Next() {
		var f domain.Finding
		var kind, severity, detailsJSON string
		var pos sql.NullInt64
		if err := rows.Scan(&kind, &severity, &f.ItemIndex, &pos, &f.Message, &f.RemediationHint, &detailsJSON); err != nil {
			return nil, fmt.Errorf("scanning finding: %w", err)
		}
		f.Kind = domain.FindingKind(kind)
		f.Severity = domain.Severity(severity)
		if pos.Valid {
			f.UnitPosition = domain.PositionRef(domain.Position(pos.Int64))
		}
		if err := json.Unmarshal([]byte(detailsJSON), &f.Details); err != nil {
			return nil, fmt.Errorf("unmarshalling finding details: %w", err)
		}
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// List returns report headers, most recent first.
func (s *reportStore) List(ctx context.Context, limit int) ([]domain.ReportSummary, error) {
	query := `
		SELECT id, corpus_version, generated_at, fatal, advisory
		FROM reports ORDER BY generated_at DESC, id
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var out []domain.ReportSummary
	for rows.Next() {
		var r domain.ReportSummary
		var generatedAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.CorpusVersion, &generatedAt, &r.Fatal, &r.Advisory); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		if generatedAt.Valid {
			r.GeneratedAt = generatedAt.Time.UTC()
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Delete removes a report; its findings cascade.
func (s *reportStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
