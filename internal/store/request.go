package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pathlight.app/interviews/core/db"
	"pathlight.app/interviews/internal/model"
)

type requestStore struct {
	q db.Querier
}

func newRequestStore(q db.Querier) RequestStore {
	return &requestStore{q: q}
}

const requestColumns = `id, owner_id, owner_kind, preferred_windows, note, status, created_at, updated_at`

func (s *requestStore) Create(ctx context.Context, req *model.AvailabilityRequest) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO availability_requests (id, owner_id, owner_kind, preferred_windows, note, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+requestColumns,
		req.ID, req.Owner.ID, string(req.Owner.Kind), req.PreferredWindows, req.Note, string(req.Status),
	)
	created, err := scanRequest(row)
	if err != nil {
		return fmt.Errorf("inserting availability request: %w", err)
	}
	*req = *created
	return nil
}

func (s *requestStore) GetByID(ctx context.Context, requestID int64) (*model.AvailabilityRequest, error) {
	row := s.q.QueryRow(ctx, `SELECT `+requestColumns+` FROM availability_requests WHERE id = $1`, requestID)
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *requestStore) ListByOwner(ctx context.Context, owner model.OwnerRef) ([]model.AvailabilityRequest, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+requestColumns+` FROM availability_requests
		WHERE owner_id = $1 AND owner_kind = $2
		ORDER BY created_at`,
		owner.ID, string(owner.Kind),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []model.AvailabilityRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// TransitionStatus guards the accept/decline race the same way slot
// confirmation does: the status check lives in the UPDATE itself.
func (s *requestStore) TransitionStatus(ctx context.Context, requestID int64, from, to model.RequestStatus) (*model.AvailabilityRequest, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE availability_requests SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
		RETURNING `+requestColumns,
		string(to), requestID, string(from),
	)
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyTransitionFailure(ctx, requestID)
		}
		return nil, fmt.Errorf("transitioning availability request: %w", err)
	}
	return req, nil
}

func (s *requestStore) classifyTransitionFailure(ctx context.Context, requestID int64) error {
	var status string
	err := s.q.QueryRow(ctx, `SELECT status FROM availability_requests WHERE id = $1`, requestID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrConflict
}

func scanRequest(row pgx.Row) (*model.AvailabilityRequest, error) {
	var (
		req       model.AvailabilityRequest
		ownerKind string
		status    string
	)
	err := row.Scan(
		&req.ID, &req.Owner.ID, &ownerKind, &req.PreferredWindows, &req.Note,
		&status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	req.Owner.Kind = model.OwnerKind(ownerKind)
	req.Status = model.RequestStatus(status)
	return &req, nil
}
