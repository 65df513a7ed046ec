package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pathlight.app/interviews/core/db"
	"pathlight.app/interviews/internal/model"
)

type gateStore struct {
	q db.Querier
}

func newGateStore(q db.Querier) GateStore {
	return &gateStore{q: q}
}

const gateColumns = `id, instructor_id, reviewer_id, pathway, status, created_at, updated_at`

func (s *gateStore) GetByID(ctx context.Context, gateID int64) (*model.ReadinessGate, error) {
	row := s.q.QueryRow(ctx, `SELECT `+gateColumns+` FROM readiness_gates WHERE id = $1`, gateID)
	gate, err := scanGate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.loadRequiredModules(ctx, gate); err != nil {
		return nil, err
	}
	return gate, nil
}

func (s *gateStore) UpdateStatus(ctx context.Context, gateID int64, status model.GateStatus) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE readiness_gates SET status = $1, updated_at = now() WHERE id = $2`,
		string(status), gateID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gateStore) ListByReviewer(ctx context.Context, reviewerID int64) ([]model.ReadinessGate, error) {
	return s.list(ctx, `SELECT `+gateColumns+` FROM readiness_gates WHERE reviewer_id = $1 ORDER BY created_at`, reviewerID)
}

func (s *gateStore) ListByInstructor(ctx context.Context, instructorID int64) ([]model.ReadinessGate, error) {
	return s.list(ctx, `SELECT `+gateColumns+` FROM readiness_gates WHERE instructor_id = $1 ORDER BY created_at`, instructorID)
}

func (s *gateStore) list(ctx context.Context, query string, arg any) ([]model.ReadinessGate, error) {
	rows, err := s.q.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gates []model.ReadinessGate
	for rows.Next() {
		gate, err := scanGate(rows)
		if err != nil {
			return nil, err
		}
		gates = append(gates, *gate)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range gates {
		if err := s.loadRequiredModules(ctx, &gates[i]); err != nil {
			return nil, err
		}
	}
	return gates, nil
}

func (s *gateStore) loadRequiredModules(ctx context.Context, gate *model.ReadinessGate) error {
	rows, err := s.q.Query(ctx, `SELECT module_id FROM gate_required_modules WHERE gate_id = $1 ORDER BY module_id`, gate.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var moduleID int64
		if err := rows.Scan(&moduleID); err != nil {
			return err
		}
		gate.RequiredModuleIDs = append(gate.RequiredModuleIDs, moduleID)
	}
	return rows.Err()
}

func scanGate(row pgx.Row) (*model.ReadinessGate, error) {
	var (
		gate   model.ReadinessGate
		status string
	)
	err := row.Scan(&gate.ID, &gate.InstructorID, &gate.ReviewerID, &gate.Pathway, &status, &gate.CreatedAt, &gate.UpdatedAt)
	if err != nil {
		return nil, err
	}
	gate.Status = model.GateStatus(status)
	return &gate, nil
}
