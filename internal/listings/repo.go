package listings

import "context"

// Repo defines persistence operations for generation runs.
type Repo interface {
	Create(ctx context.Context, run Run) error
	GetByID(ctx context.Context, runID string) (Run, error)
	Update(ctx context.Context, run Run) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Run, error)
}
