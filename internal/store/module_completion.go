package store

import (
	"context"

	"pathlight.app/interviews/core/db"
)

type moduleCompletionStore struct {
	q db.Querier
}

func newModuleCompletionStore(q db.Querier) ModuleCompletionStore {
	return &moduleCompletionStore{q: q}
}

func (s *moduleCompletionStore) CountCompleted(ctx context.Context, userID int64, moduleIDs []int64) (int, error) {
	if len(moduleIDs) == 0 {
		return 0, nil
	}
	var count int
	err := s.q.QueryRow(ctx, `
		SELECT count(*) FROM module_completions
		WHERE user_id = $1 AND module_id = ANY($2)`,
		userID, moduleIDs,
	).Scan(&count)
	return count, err
}
