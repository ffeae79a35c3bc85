package summaries

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of SummariesRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Summary // userId -> summaries
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Summary),
	}
}

// Create stores a summary for a user.
func (r *MemoryRepo) Create(ctx context.Context, s Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.UserID] = append(r.data[s.UserID], s)
	return nil
}

// ListByUser returns summaries for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Same limit clamping as the Postgres and Firestore backends.
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	userSums := r.data[userId]
	r.mu.RUnlock()

	if len(userSums) == 0 || offset >= len(userSums) {
		return []Summary{}, nil
	}

	sums := make([]Summary, len(userSums))
	copy(sums, userSums)
	sort.Slice(sums, func(i, j int) bool {
		return sums[i].CreatedAt.After(sums[j].CreatedAt)
	})

	end := len(sums)
	if offset+limit < end {
		end = offset + limit
	}

	return sums[offset:end], nil
}

// GetByID returns a summary by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, summaryID string) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sums := r.data[userId]
	for i := range sums {
		if sums[i].ID == summaryID {
			return sums[i], nil
		}
	}
	return Summary{}, ErrNotFound
}

var _ SummariesRepo = (*MemoryRepo)(nil)
