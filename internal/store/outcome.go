package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pathlight.app/interviews/core/db"
	"pathlight.app/interviews/internal/model"
)

type outcomeStore struct {
	q db.Querier
}

func newOutcomeStore(q db.Querier) OutcomeStore {
	return &outcomeStore{q: q}
}

const outcomeColumns = `id, owner_id, owner_kind, slot_id, recommendation, content, strengths, concerns, outcome, review_notes, recorded_by, created_at`

func (s *outcomeStore) Create(ctx context.Context, outcome *model.InterviewOutcome) error {
	var recommendation, result *string
	if outcome.Recommendation != nil {
		v := string(*outcome.Recommendation)
		recommendation = &v
	}
	if outcome.Result != nil {
		v := string(*outcome.Result)
		result = &v
	}

	row := s.q.QueryRow(ctx, `
		INSERT INTO interview_outcomes (id, owner_id, owner_kind, slot_id, recommendation, content, strengths, concerns, outcome, review_notes, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+outcomeColumns,
		outcome.ID, outcome.Owner.ID, string(outcome.Owner.Kind), outcome.SlotID,
		recommendation, outcome.Content, outcome.Strengths, outcome.Concerns,
		result, outcome.ReviewNotes, outcome.RecordedBy,
	)
	created, err := scanOutcome(row)
	if err != nil {
		return fmt.Errorf("inserting outcome: %w", err)
	}
	*outcome = *created
	return nil
}

func (s *outcomeStore) GetByOwner(ctx context.Context, owner model.OwnerRef) (*model.InterviewOutcome, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+outcomeColumns+` FROM interview_outcomes
		WHERE owner_id = $1 AND owner_kind = $2`,
		owner.ID, string(owner.Kind),
	)
	outcome, err := scanOutcome(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return outcome, nil
}

func scanOutcome(row pgx.Row) (*model.InterviewOutcome, error) {
	var (
		outcome        model.InterviewOutcome
		ownerKind      string
		recommendation *string
		result         *string
	)
	err := row.Scan(
		&outcome.ID, &outcome.Owner.ID, &ownerKind, &outcome.SlotID,
		&recommendation, &outcome.Content, &outcome.Strengths, &outcome.Concerns,
		&result, &outcome.ReviewNotes, &outcome.RecordedBy, &outcome.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	outcome.Owner.Kind = model.OwnerKind(ownerKind)
	if recommendation != nil {
		v := model.Recommendation(*recommendation)
		outcome.Recommendation = &v
	}
	if result != nil {
		v := model.ReadinessResult(*result)
		outcome.Result = &v
	}
	return &outcome, nil
}
