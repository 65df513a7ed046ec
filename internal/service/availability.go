package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pathlight.app/interviews/common/id"
	"pathlight.app/interviews/internal/apperr"
	"pathlight.app/interviews/internal/events"
	"pathlight.app/interviews/internal/model"
	"pathlight.app/interviews/internal/store"
)

// AvailabilityRequestService handles the interviewee-initiated scheduling
// path: preferred windows in, one confirmed slot out on acceptance.
type AvailabilityRequestService interface {
	SubmitRequest(ctx context.Context, actor model.Principal, owner model.OwnerRef, windows []time.Time, note *string) (*model.AvailabilityRequest, error)
	AcceptRequest(ctx context.Context, actor model.Principal, requestID int64, scheduledAt time.Time, durationMinutes int, meetingLink *string) (*model.InterviewSlot, error)
	DeclineRequest(ctx context.Context, actor model.Principal, requestID int64) (*model.AvailabilityRequest, error)
}

type availabilityRequestService struct {
	txRunner TxRunner
	producer events.Producer
}

func NewAvailabilityRequestService(txRunner TxRunner, producer events.Producer) AvailabilityRequestService {
	return &availabilityRequestService{txRunner: txRunner, producer: producer}
}

func (s *availabilityRequestService) SubmitRequest(ctx context.Context, actor model.Principal, owner model.OwnerRef, windows []time.Time, note *string) (*model.AvailabilityRequest, error) {
	if !actor.Role.IsInterviewee() {
		return nil, apperr.Unauthorized("only the interviewee may request availability")
	}
	if len(windows) == 0 {
		return nil, apperr.Validation("preferred_windows", "at least one window is required")
	}
	if len(windows) > model.MaxSlotsPerProposal {
		return nil, apperr.Validation("preferred_windows", fmt.Sprintf("at most %d windows may be proposed", model.MaxSlotsPerProposal))
	}
	for i, w := range windows {
		if w.IsZero() {
			return nil, apperr.Validation(fmt.Sprintf("preferred_windows[%d]", i), "must be a valid timestamp")
		}
	}

	req := &model.AvailabilityRequest{
		ID:               id.New(),
		Owner:            owner,
		PreferredWindows: windows,
		Note:             note,
		Status:           model.RequestStatusPending,
	}

	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		ownerRecord, err := requireOpenOwner(ctx, stores, owner)
		if err != nil {
			return err
		}
		if ownerRecord.IntervieweeID() != actor.UserID {
			return apperr.Unauthorized("availability requests may only target your own record")
		}
		if err := stores.Requests().Create(ctx, req); err != nil {
			return fmt.Errorf("creating availability request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRequestSubmitted,
		Owner:     owner,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		RequestID: &req.ID,
	})

	slog.InfoContext(ctx, "availability request submitted",
		"request_id", req.ID,
		"owner_id", owner.ID,
		"windows", len(windows),
	)
	return req, nil
}

// AcceptRequest flips the request to accepted and creates the one confirmed
// slot, in a single transaction. The slot goes through the same guarded
// proposed-to-confirmed transition as reviewer confirmation, so an owner that
// already holds a confirmed or completed slot makes the accept fail with a
// conflict, and any open proposals get superseded atomically.
func (s *availabilityRequestService) AcceptRequest(ctx context.Context, actor model.Principal, requestID int64, scheduledAt time.Time, durationMinutes int, meetingLink *string) (*model.InterviewSlot, error) {
	if !actor.Role.CanReview() {
		return nil, apperr.Unauthorized("only reviewers may accept availability requests")
	}
	if scheduledAt.IsZero() {
		return nil, apperr.Validation("scheduled_at", "must be a valid timestamp")
	}
	if durationMinutes < model.MinSlotDuration || durationMinutes > model.MaxSlotDuration {
		return nil, apperr.Validation("duration_minutes",
			fmt.Sprintf("must be between %d and %d", model.MinSlotDuration, model.MaxSlotDuration))
	}

	var confirmed *model.InterviewSlot
	var owner model.OwnerRef
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		req, err := stores.Requests().GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.NotFound("availability request", requestID)
			}
			return fmt.Errorf("getting availability request: %w", err)
		}
		owner = req.Owner

		if _, err := requireOpenOwner(ctx, stores, req.Owner); err != nil {
			return err
		}

		// Fail fast before touching the request; the guarded transition below
		// still catches a slot confirmed between this check and the update.
		active, err := stores.Slots().HasActiveSlot(ctx, req.Owner)
		if err != nil {
			return fmt.Errorf("checking active slot: %w", err)
		}
		if active {
			return apperr.Conflict("owner already has a confirmed interview slot")
		}

		if _, err := stores.Requests().TransitionStatus(ctx, requestID, model.RequestStatusPending, model.RequestStatusAccepted); err != nil {
			switch {
			case errors.Is(err, store.ErrConflict):
				return apperr.Conflict("availability request was already accepted or declined")
			case errors.Is(err, store.ErrNotFound):
				return apperr.NotFound("availability request", requestID)
			default:
				return fmt.Errorf("accepting availability request: %w", err)
			}
		}

		spec := model.SlotSpec{ScheduledAt: scheduledAt, DurationMinutes: durationMinutes, MeetingLink: meetingLink}
		slots, err := stores.Slots().CreateSlots(ctx, req.Owner, []model.SlotSpec{spec}, actor.Role)
		if err != nil {
			return fmt.Errorf("creating slot: %w", err)
		}

		confirmed, err = stores.Slots().TransitionSlot(ctx, slots[0].ID, model.SlotStatusProposed, model.SlotStatusConfirmed)
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				return apperr.Conflict("owner already has a confirmed interview slot")
			}
			return fmt.Errorf("confirming slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRequestAccepted,
		Owner:     owner,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		SlotID:    &confirmed.ID,
		RequestID: &requestID,
	})

	slog.InfoContext(ctx, "availability request accepted",
		"request_id", requestID,
		"slot_id", confirmed.ID,
		"scheduled_at", confirmed.ScheduledAt,
	)
	return confirmed, nil
}

func (s *availabilityRequestService) DeclineRequest(ctx context.Context, actor model.Principal, requestID int64) (*model.AvailabilityRequest, error) {
	if !actor.Role.CanReview() {
		return nil, apperr.Unauthorized("only reviewers may decline availability requests")
	}

	var declined *model.AvailabilityRequest
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		var err error
		declined, err = stores.Requests().TransitionStatus(ctx, requestID, model.RequestStatusPending, model.RequestStatusDeclined)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrConflict):
				return apperr.Conflict("availability request was already accepted or declined")
			case errors.Is(err, store.ErrNotFound):
				return apperr.NotFound("availability request", requestID)
			default:
				return fmt.Errorf("declining availability request: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRequestDeclined,
		Owner:     declined.Owner,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		RequestID: &requestID,
	})

	slog.InfoContext(ctx, "availability request declined", "request_id", requestID)
	return declined, nil
}

func (s *availabilityRequestService) publish(ctx context.Context, ev events.Event) {
	if err := s.producer.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "event publish failed", "type", ev.Type, "error", err)
	}
}
