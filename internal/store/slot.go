package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pathlight.app/interviews/common/id"
	"pathlight.app/interviews/core/db"
	"pathlight.app/interviews/internal/model"
)

type slotStore struct {
	q db.Querier
}

func newSlotStore(q db.Querier) SlotStore {
	return &slotStore{q: q}
}

const slotColumns = `id, owner_id, owner_kind, scheduled_at, duration_minutes, meeting_link, status, proposed_by_role, created_at, updated_at`

func (s *slotStore) CreateSlots(ctx context.Context, owner model.OwnerRef, specs []model.SlotSpec, proposedBy model.Role) ([]model.InterviewSlot, error) {
	slots := make([]model.InterviewSlot, 0, len(specs))
	for _, spec := range specs {
		row := s.q.QueryRow(ctx, `
			INSERT INTO interview_slots (id, owner_id, owner_kind, scheduled_at, duration_minutes, meeting_link, status, proposed_by_role)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+slotColumns,
			id.New(), owner.ID, string(owner.Kind), spec.ScheduledAt, spec.DurationMinutes,
			spec.MeetingLink, string(model.SlotStatusProposed), string(proposedBy),
		)
		slot, err := scanSlot(row)
		if err != nil {
			return nil, fmt.Errorf("inserting slot: %w", err)
		}
		slots = append(slots, *slot)
	}
	return slots, nil
}

func (s *slotStore) GetByID(ctx context.Context, slotID int64) (*model.InterviewSlot, error) {
	row := s.q.QueryRow(ctx, `SELECT `+slotColumns+` FROM interview_slots WHERE id = $1`, slotID)
	slot, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return slot, nil
}

func (s *slotStore) ListByOwner(ctx context.Context, owner model.OwnerRef) ([]model.InterviewSlot, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+slotColumns+` FROM interview_slots
		WHERE owner_id = $1 AND owner_kind = $2
		ORDER BY scheduled_at`,
		owner.ID, string(owner.Kind),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []model.InterviewSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}
	return slots, rows.Err()
}

func (s *slotStore) HasActiveSlot(ctx context.Context, owner model.OwnerRef) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM interview_slots
			WHERE owner_id = $1 AND owner_kind = $2 AND status IN ('confirmed', 'completed')
		)`,
		owner.ID, string(owner.Kind),
	).Scan(&exists)
	return exists, err
}

// TransitionSlot is the compare-and-set at the heart of confirmation. The
// UPDATE's WHERE clause carries the full guard, so under concurrent confirms
// on siblings exactly one row update wins; the loser matches zero rows and is
// reported as ErrConflict. The partial unique index on (owner, active status)
// backs the same invariant at the storage level.
func (s *slotStore) TransitionSlot(ctx context.Context, slotID int64, from, to model.SlotStatus) (*model.InterviewSlot, error) {
	query := `
		UPDATE interview_slots SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`
	if to == model.SlotStatusConfirmed {
		query += `
		AND NOT EXISTS (
			SELECT 1 FROM interview_slots sibling
			WHERE sibling.owner_id = interview_slots.owner_id
			  AND sibling.owner_kind = interview_slots.owner_kind
			  AND sibling.status IN ('confirmed', 'completed')
		)`
	}
	query += `
		RETURNING ` + slotColumns

	row := s.q.QueryRow(ctx, query, string(to), slotID, string(from))
	slot, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyTransitionFailure(ctx, slotID)
		}
		if isConfirmRaceLoss(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("transitioning slot: %w", err)
	}

	if to == model.SlotStatusConfirmed {
		if err := s.supersedeSiblings(ctx, slot); err != nil {
			return nil, err
		}
	}

	return slot, nil
}

// isConfirmRaceLoss reports whether err is the storage-level signature of
// losing a simultaneous confirmation. Two transactions confirming different
// siblings both pass the NOT EXISTS guard on their own snapshots; the loser
// then trips the partial unique index on the owner's active slot (23505), or
// the cross supersede updates deadlock (40P01) or fail serialization (40001).
func isConfirmRaceLoss(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "23505", "40P01", "40001":
		return true
	}
	return false
}

func (s *slotStore) classifyTransitionFailure(ctx context.Context, slotID int64) error {
	var status string
	err := s.q.QueryRow(ctx, `SELECT status FROM interview_slots WHERE id = $1`, slotID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrConflict
}

func (s *slotStore) supersedeSiblings(ctx context.Context, confirmed *model.InterviewSlot) error {
	_, err := s.q.Exec(ctx, `
		UPDATE interview_slots SET status = $1, updated_at = now()
		WHERE owner_id = $2 AND owner_kind = $3 AND id <> $4 AND status = $5`,
		string(model.SlotStatusSuperseded), confirmed.Owner.ID, string(confirmed.Owner.Kind),
		confirmed.ID, string(model.SlotStatusProposed),
	)
	if err != nil {
		if isConfirmRaceLoss(err) {
			return ErrConflict
		}
		return fmt.Errorf("superseding siblings: %w", err)
	}
	return nil
}

func scanSlot(row pgx.Row) (*model.InterviewSlot, error) {
	var (
		slot      model.InterviewSlot
		ownerKind string
		status    string
		role      string
	)
	err := row.Scan(
		&slot.ID, &slot.Owner.ID, &ownerKind, &slot.ScheduledAt, &slot.DurationMinutes,
		&slot.MeetingLink, &status, &role, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	slot.Owner.Kind = model.OwnerKind(ownerKind)
	slot.Status = model.SlotStatus(status)
	slot.ProposedByRole = model.Role(role)
	return &slot, nil
}
