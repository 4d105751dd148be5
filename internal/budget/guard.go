// Package budget tracks daily LLM spend and gates generation when the
// configured limit is reached.
package budget

import (
	"context"
	"time"
)

type store interface {
	Total(ctx context.Context, day string) (float64, error)
	Add(ctx context.Context, day string, cost float64) (float64, error)
}

// Status is the result of a budget precheck.
type Status struct {
	OK    bool    `json:"ok"`
	Total float64 `json:"total"`
	Limit float64 `json:"limit"`
	Ratio float64 `json:"ratio"`
	Hard  bool    `json:"hard"`
}

// Guard enforces a daily USD spend limit. With HardStop set, a failed
// precheck blocks generation; otherwise callers may log and proceed.
type Guard struct {
	store    store
	limitUSD float64
	hardStop bool
	now      func() time.Time
}

// NewGuard constructs a Guard with an in-memory store.
func NewGuard(limitUSD float64, hardStop bool) *Guard {
	return &Guard{store: newMemoryStore(), limitUSD: limitUSD, hardStop: hardStop, now: time.Now}
}

// NewPostgresGuard constructs a Guard backed by Postgres.
func NewPostgresGuard(pgStore store, limitUSD float64, hardStop bool) *Guard {
	return &Guard{store: pgStore, limitUSD: limitUSD, hardStop: hardStop, now: time.Now}
}

func (g *Guard) dayKey() string {
	return g.now().UTC().Format("2006-01-02")
}

// Precheck reports today's spend against the limit.
func (g *Guard) Precheck(ctx context.Context) (Status, error) {
	total, err := g.store.Total(ctx, g.dayKey())
	if err != nil {
		return Status{}, err
	}
	ratio := 0.0
	if g.limitUSD > 0 {
		ratio = total / g.limitUSD
	}
	return Status{
		OK:    total < g.limitUSD,
		Total: total,
		Limit: g.limitUSD,
		Ratio: ratio,
		Hard:  g.hardStop,
	}, nil
}

// Add records spend for today. Negative costs are ignored.
func (g *Guard) Add(ctx context.Context, costUSD float64) (float64, error) {
	if costUSD < 0 {
		costUSD = 0
	}
	return g.store.Add(ctx, g.dayKey(), costUSD)
}
