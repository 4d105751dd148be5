package budget

import (
	"context"
	"database/sql"
	"errors"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed budget store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Total(ctx context.Context, day string) (float64, error) {
	var total float64
	err := s.DB.QueryRowContext(ctx, `
SELECT total_usd FROM budget_spend WHERE day = $1`, day).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *pgStore) Add(ctx context.Context, day string, cost float64) (float64, error) {
	var total float64
	err := s.DB.QueryRowContext(ctx, `
INSERT INTO budget_spend (day, total_usd)
VALUES ($1, $2)
ON CONFLICT (day) DO UPDATE SET total_usd = budget_spend.total_usd + EXCLUDED.total_usd
RETURNING total_usd`, day, cost).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
