package summaries

import "context"

// SummariesRepo defines persistence operations for summaries.
type SummariesRepo interface {
	Create(ctx context.Context, s Summary) error
	ListByUser(ctx context.Context, userId string, limit, offset int) ([]Summary, error)
	GetByID(ctx context.Context, userId, summaryID string) (Summary, error)
}
