package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pathlight.app/interviews/internal/apperr"
	"pathlight.app/interviews/internal/events"
	"pathlight.app/interviews/internal/model"
	"pathlight.app/interviews/internal/store"
)

// SlotProposalService posts candidate interview slots. It only ever creates
// proposed slots; confirmation and completion live elsewhere.
type SlotProposalService interface {
	PostSlotsBulk(ctx context.Context, actor model.Principal, owner model.OwnerRef, specs []model.SlotSpec) ([]model.InterviewSlot, error)
	CancelSlot(ctx context.Context, actor model.Principal, slotID int64) (*model.InterviewSlot, error)
}

type slotProposalService struct {
	txRunner TxRunner
	producer events.Producer
}

func NewSlotProposalService(txRunner TxRunner, producer events.Producer) SlotProposalService {
	return &slotProposalService{txRunner: txRunner, producer: producer}
}

func (s *slotProposalService) PostSlotsBulk(ctx context.Context, actor model.Principal, owner model.OwnerRef, specs []model.SlotSpec) ([]model.InterviewSlot, error) {
	if !actor.Role.CanReview() {
		return nil, apperr.Unauthorized("only reviewers may post interview slots")
	}
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}

	var created []model.InterviewSlot
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := requireOpenOwner(ctx, stores, owner); err != nil {
			return err
		}
		slots, err := stores.Slots().CreateSlots(ctx, owner, specs, actor.Role)
		if err != nil {
			return fmt.Errorf("creating slots: %w", err)
		}
		created = slots
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventSlotsProposed,
		Owner:     owner,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
	})

	slog.InfoContext(ctx, "interview slots proposed",
		"owner_id", owner.ID,
		"owner_kind", owner.Kind,
		"count", len(created),
	)
	return created, nil
}

func (s *slotProposalService) CancelSlot(ctx context.Context, actor model.Principal, slotID int64) (*model.InterviewSlot, error) {
	if !actor.Role.CanReview() {
		return nil, apperr.Unauthorized("only reviewers may cancel proposed slots")
	}

	var cancelled *model.InterviewSlot
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		slot, err := stores.Slots().GetByID(ctx, slotID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.NotFound("slot", slotID)
			}
			return fmt.Errorf("getting slot: %w", err)
		}
		if _, err := requireOpenOwner(ctx, stores, slot.Owner); err != nil {
			return err
		}
		cancelled, err = stores.Slots().TransitionSlot(ctx, slotID, model.SlotStatusProposed, model.SlotStatusCancelled)
		if err != nil {
			return mapTransitionErr(err, slotID, "slot is no longer proposed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventSlotCancelled,
		Owner:     cancelled.Owner,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		SlotID:    &cancelled.ID,
	})

	slog.InfoContext(ctx, "proposed slot cancelled", "slot_id", slotID)
	return cancelled, nil
}

func (s *slotProposalService) publish(ctx context.Context, ev events.Event) {
	if err := s.producer.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "event publish failed", "type", ev.Type, "error", err)
	}
}

func validateSpecs(specs []model.SlotSpec) error {
	if len(specs) == 0 {
		return apperr.Validation("slots", "at least one slot is required")
	}
	if len(specs) > model.MaxSlotsPerProposal {
		return apperr.Validation("slots", fmt.Sprintf("at most %d slots may be proposed", model.MaxSlotsPerProposal))
	}
	for i, spec := range specs {
		if spec.ScheduledAt.IsZero() {
			return apperr.Validation(fmt.Sprintf("slots[%d].scheduled_at", i), "must be a valid timestamp")
		}
		if spec.DurationMinutes < model.MinSlotDuration || spec.DurationMinutes > model.MaxSlotDuration {
			return apperr.Validation(
				fmt.Sprintf("slots[%d].duration_minutes", i),
				fmt.Sprintf("must be between %d and %d", model.MinSlotDuration, model.MaxSlotDuration),
			)
		}
	}
	return nil
}

// mapTransitionErr translates store-level transition failures into the typed
// errors commands surface.
func mapTransitionErr(err error, id int64, conflictReason string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound("slot", id)
	case errors.Is(err, store.ErrConflict):
		return apperr.Conflict(conflictReason)
	default:
		return err
	}
}
