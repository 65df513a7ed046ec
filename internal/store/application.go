package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pathlight.app/interviews/core/db"
	"pathlight.app/interviews/internal/model"
)

type applicationStore struct {
	q db.Querier
}

func newApplicationStore(q db.Querier) ApplicationStore {
	return &applicationStore{q: q}
}

const applicationColumns = `id, candidate_id, reviewer_id, position, status, created_at, updated_at`

func (s *applicationStore) GetByID(ctx context.Context, applicationID int64) (*model.Application, error) {
	row := s.q.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, applicationID)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (s *applicationStore) UpdateStatus(ctx context.Context, applicationID int64, status model.ApplicationStatus) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE applications SET status = $1, updated_at = now() WHERE id = $2`,
		string(status), applicationID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *applicationStore) ListByReviewer(ctx context.Context, reviewerID int64) ([]model.Application, error) {
	return s.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE reviewer_id = $1 ORDER BY created_at`, reviewerID)
}

func (s *applicationStore) ListByCandidate(ctx context.Context, candidateID int64) ([]model.Application, error) {
	return s.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE candidate_id = $1 ORDER BY created_at`, candidateID)
}

func (s *applicationStore) list(ctx context.Context, query string, arg any) ([]model.Application, error) {
	rows, err := s.q.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func scanApplication(row pgx.Row) (*model.Application, error) {
	var (
		app    model.Application
		status string
	)
	err := row.Scan(&app.ID, &app.CandidateID, &app.ReviewerID, &app.Position, &status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	app.Status = model.ApplicationStatus(status)
	return &app, nil
}
