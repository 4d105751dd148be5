package listings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"listing-backend/internal/listings/validators"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const runColumns = `
id, user_id, status, raw_text, options, classifier, fields, validation,
quality_score, summary, error_code, error_message, created_at, updated_at`

// Create inserts a new run.
func (r *PGRepo) Create(ctx context.Context, run Run) error {
	const query = `
INSERT INTO listing_runs (
	id, user_id, status, raw_text, options, classifier, fields, validation,
	quality_score, summary, error_code, error_message, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`

	options, err := json.Marshal(run.Options)
	if err != nil {
		return err
	}
	classifier, err := marshalNullable(run.Classifier)
	if err != nil {
		return err
	}
	fields, err := marshalNullable(run.Fields)
	if err != nil {
		return err
	}
	validation, err := marshalNullable(run.Validation)
	if err != nil {
		return err
	}
	summary, err := marshalNullable(run.Summary)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		run.ID,
		run.UserID,
		run.Status,
		run.RawText,
		options,
		classifier,
		fields,
		validation,
		run.QualityScore,
		summary,
		nullString(run.ErrorCode),
		nullString(run.ErrorMessage),
		run.CreatedAt,
	)
	return err
}

// GetByID returns a run by ID.
func (r *PGRepo) GetByID(ctx context.Context, runID string) (Run, error) {
	const query = `
SELECT ` + runColumns + `
FROM listing_runs
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	return run, err
}

// Update replaces the mutable columns of an existing run.
func (r *PGRepo) Update(ctx context.Context, run Run) error {
	const query = `
UPDATE listing_runs
SET status = $1,
    classifier = $2::jsonb,
    fields = $3::jsonb,
    validation = $4::jsonb,
    quality_score = $5,
    summary = $6::jsonb,
    error_code = $7,
    error_message = $8,
    updated_at = now()
WHERE id = $9`

	classifier, err := marshalNullable(run.Classifier)
	if err != nil {
		return err
	}
	fields, err := marshalNullable(run.Fields)
	if err != nil {
		return err
	}
	validation, err := marshalNullable(run.Validation)
	if err != nil {
		return err
	}
	summary, err := marshalNullable(run.Summary)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query,
		run.Status,
		classifier,
		fields,
		validation,
		run.QualityScore,
		summary,
		nullString(run.ErrorCode),
		nullString(run.ErrorMessage),
		run.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser lists runs for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT ` + runColumns + `
FROM listing_runs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var options, classifier, fields, validation, summary sql.NullString
	var errorCode, errorMessage sql.NullString
	if err := row.Scan(
		&run.ID,
		&run.UserID,
		&run.Status,
		&run.RawText,
		&options,
		&classifier,
		&fields,
		&validation,
		&run.QualityScore,
		&summary,
		&errorCode,
		&errorMessage,
		&run.CreatedAt,
		&run.UpdatedAt,
	); err != nil {
		return Run{}, err
	}
	if options.Valid {
		_ = json.Unmarshal([]byte(options.String), &run.Options)
	}
	if classifier.Valid {
		run.Classifier = &ClassifierContext{}
		if err := json.Unmarshal([]byte(classifier.String), run.Classifier); err != nil {
			run.Classifier = nil
		}
	}
	if fields.Valid {
		run.Fields = &Fields{}
		if err := json.Unmarshal([]byte(fields.String), run.Fields); err != nil {
			run.Fields = nil
		}
	}
	if validation.Valid {
		run.Validation = &validators.ValidationResult{}
		if err := json.Unmarshal([]byte(validation.String), run.Validation); err != nil {
			run.Validation = nil
		}
	}
	if summary.Valid {
		run.Summary = &RunSummary{}
		if err := json.Unmarshal([]byte(summary.String), run.Summary); err != nil {
			run.Summary = nil
		}
	}
	if errorCode.Valid {
		run.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		run.ErrorMessage = errorMessage.String
	}
	return run, nil
}

func marshalNullable(value any) (any, error) {
	switch v := value.(type) {
	case *ClassifierContext:
		if v == nil {
			return nil, nil
		}
	case *Fields:
		if v == nil {
			return nil, nil
		}
	case *validators.ValidationResult:
		if v == nil {
			return nil, nil
		}
	case *RunSummary:
		if v == nil {
			return nil, nil
		}
	}
	return json.Marshal(value)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
