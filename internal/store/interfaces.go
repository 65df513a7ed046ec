package store

import (
	"context"
	"errors"

	"pathlight.app/interviews/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a guarded transition loses: the row was not in
// the expected state, or a sibling slot already holds the confirmation.
var ErrConflict = errors.New("conflict")

// SlotStore is the single writer surface for interview slots. Every status
// change goes through TransitionSlot's compare-and-set; nothing else mutates
// a slot row.
type SlotStore interface {
	// CreateSlots inserts all specs as proposed slots for the owner. Callers
	// needing all-or-nothing run it inside a transaction.
	CreateSlots(ctx context.Context, owner model.OwnerRef, specs []model.SlotSpec, proposedBy model.Role) ([]model.InterviewSlot, error)
	GetByID(ctx context.Context, id int64) (*model.InterviewSlot, error)
	ListByOwner(ctx context.Context, owner model.OwnerRef) ([]model.InterviewSlot, error)
	// TransitionSlot moves a slot from exactly `from` to `to`. Transitions to
	// confirmed additionally require that no sibling of the same owner is
	// confirmed or completed, and supersede all remaining proposed siblings.
	// Run inside a transaction when confirming. Losing the guard returns
	// ErrConflict; an unknown id returns ErrNotFound.
	TransitionSlot(ctx context.Context, slotID int64, from, to model.SlotStatus) (*model.InterviewSlot, error)
	// HasActiveSlot reports whether the owner already has a confirmed or
	// completed slot.
	HasActiveSlot(ctx context.Context, owner model.OwnerRef) (bool, error)
}

// RequestStore persists availability requests.
type RequestStore interface {
	Create(ctx context.Context, req *model.AvailabilityRequest) error
	GetByID(ctx context.Context, id int64) (*model.AvailabilityRequest, error)
	ListByOwner(ctx context.Context, owner model.OwnerRef) ([]model.AvailabilityRequest, error)
	// TransitionStatus is a compare-and-set on the request status; returns
	// ErrConflict when the request is no longer in `from`.
	TransitionStatus(ctx context.Context, id int64, from, to model.RequestStatus) (*model.AvailabilityRequest, error)
}

// ApplicationStore reads hiring-pipeline owners and advances their status.
type ApplicationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Application, error)
	UpdateStatus(ctx context.Context, id int64, status model.ApplicationStatus) error
	ListByReviewer(ctx context.Context, reviewerID int64) ([]model.Application, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]model.Application, error)
}

// GateStore reads certification-pipeline owners and advances their status.
type GateStore interface {
	GetByID(ctx context.Context, id int64) (*model.ReadinessGate, error)
	UpdateStatus(ctx context.Context, id int64, status model.GateStatus) error
	ListByReviewer(ctx context.Context, reviewerID int64) ([]model.ReadinessGate, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]model.ReadinessGate, error)
}

// ModuleCompletionStore answers which of a gate's required training modules
// the instructor has completed.
type ModuleCompletionStore interface {
	CountCompleted(ctx context.Context, userID int64, moduleIDs []int64) (int, error)
}

// OutcomeStore persists terminal interview outcomes, one per owner.
type OutcomeStore interface {
	Create(ctx context.Context, outcome *model.InterviewOutcome) error
	GetByOwner(ctx context.Context, owner model.OwnerRef) (*model.InterviewOutcome, error)
}
