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

// SlotConfirmationService confirms one proposed slot per owner. This is the
// single place where the double-booking race resolves: concurrent confirms on
// siblings race on the store's compare-and-set, one wins, the rest get a
// conflict telling the caller to refresh.
type SlotConfirmationService interface {
	Confirm(ctx context.Context, actor model.Principal, slotID int64) (*model.InterviewSlot, error)
}

type slotConfirmationService struct {
	txRunner TxRunner
	producer events.Producer
}

func NewSlotConfirmationService(txRunner TxRunner, producer events.Producer) SlotConfirmationService {
	return &slotConfirmationService{txRunner: txRunner, producer: producer}
}

func (s *slotConfirmationService) Confirm(ctx context.Context, actor model.Principal, slotID int64) (*model.InterviewSlot, error) {
	if !actor.Role.CanReview() {
		return nil, apperr.Unauthorized("only reviewers may confirm interview slots")
	}

	var confirmed *model.InterviewSlot
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

		confirmed, err = stores.Slots().TransitionSlot(ctx, slotID, model.SlotStatusProposed, model.SlotStatusConfirmed)
		if err != nil {
			return mapTransitionErr(err, slotID, "another slot was confirmed first; refresh and retry")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.producer.Publish(ctx, events.Event{
		Type:      events.EventSlotConfirmed,
		Owner:     confirmed.Owner,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		SlotID:    &confirmed.ID,
	}); err != nil {
		slog.WarnContext(ctx, "event publish failed", "type", events.EventSlotConfirmed, "error", err)
	}

	slog.InfoContext(ctx, "interview slot confirmed",
		"slot_id", confirmed.ID,
		"owner_id", confirmed.Owner.ID,
		"scheduled_at", confirmed.ScheduledAt,
	)
	return confirmed, nil
}
