package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pathlight.app/interviews/common/id"
	"pathlight.app/interviews/internal/apperr"
	"pathlight.app/interviews/internal/events"
	"pathlight.app/interviews/internal/model"
	"pathlight.app/interviews/internal/store"
)

// HiringOutcomeInput carries the reviewer's hiring verdict.
type HiringOutcomeInput struct {
	Recommendation model.Recommendation
	Content        string
	Strengths      *string
	Concerns       *string
}

// InterviewCompletionService records terminal outcomes and drives the owner's
// downstream status transition. Completion is the only code that moves a
// confirmed slot to completed.
type InterviewCompletionService interface {
	// CompleteHiring completes the application's confirmed slot and records
	// the recommendation.
	CompleteHiring(ctx context.Context, actor model.Principal, applicationID, slotID int64, input HiringOutcomeInput) (*model.InterviewOutcome, error)
	// SaveHiringNote records a hiring outcome with no scheduled slot, the
	// fallback when the conversation happened outside the scheduler.
	SaveHiringNote(ctx context.Context, actor model.Principal, applicationID int64, input HiringOutcomeInput) (*model.InterviewOutcome, error)
	// CompleteReadiness records the certification verdict. Waive is admin
	// only, needs no slot and is valid from any non-terminal gate state;
	// every other result requires the gate's confirmed slot.
	CompleteReadiness(ctx context.Context, actor model.Principal, gateID int64, slotID *int64, result model.ReadinessResult, reviewNotes *string) (*model.InterviewOutcome, error)
}

type interviewCompletionService struct {
	txRunner TxRunner
	producer events.Producer
}

func NewInterviewCompletionService(txRunner TxRunner, producer events.Producer) InterviewCompletionService {
	return &interviewCompletionService{txRunner: txRunner, producer: producer}
}

func (s *interviewCompletionService) CompleteHiring(ctx context.Context, actor model.Principal, applicationID, slotID int64, input HiringOutcomeInput) (*model.InterviewOutcome, error) {
	if err := validateHiringInput(actor, input); err != nil {
		return nil, err
	}

	ref := model.OwnerRef{ID: applicationID, Kind: model.OwnerKindApplication}
	var outcome *model.InterviewOutcome
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := requireOpenOwner(ctx, stores, ref); err != nil {
			return err
		}

		slot, err := stores.Slots().GetByID(ctx, slotID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.NotFound("slot", slotID)
			}
			return fmt.Errorf("getting slot: %w", err)
		}
		if slot.Owner != ref {
			return apperr.Validation("slot_id", "slot does not belong to this application")
		}

		if _, err := stores.Slots().TransitionSlot(ctx, slotID, model.SlotStatusConfirmed, model.SlotStatusCompleted); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return apperr.InvalidState("completion requires a confirmed slot")
			}
			return mapTransitionErr(err, slotID, "")
		}

		outcome = hiringOutcome(ref, &slotID, actor.UserID, input)
		if err := stores.Outcomes().Create(ctx, outcome); err != nil {
			return fmt.Errorf("recording outcome: %w", err)
		}

		return s.advanceApplication(ctx, stores, applicationID)
	})
	if err != nil {
		return nil, err
	}

	s.publishOutcome(ctx, ref, actor, &slotID)
	slog.InfoContext(ctx, "hiring interview completed",
		"application_id", applicationID,
		"slot_id", slotID,
		"recommendation", input.Recommendation,
	)
	return outcome, nil
}

func (s *interviewCompletionService) SaveHiringNote(ctx context.Context, actor model.Principal, applicationID int64, input HiringOutcomeInput) (*model.InterviewOutcome, error) {
	if err := validateHiringInput(actor, input); err != nil {
		return nil, err
	}

	ref := model.OwnerRef{ID: applicationID, Kind: model.OwnerKindApplication}
	var outcome *model.InterviewOutcome
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := requireOpenOwner(ctx, stores, ref); err != nil {
			return err
		}

		outcome = hiringOutcome(ref, nil, actor.UserID, input)
		if err := stores.Outcomes().Create(ctx, outcome); err != nil {
			return fmt.Errorf("recording outcome: %w", err)
		}

		return s.advanceApplication(ctx, stores, applicationID)
	})
	if err != nil {
		return nil, err
	}

	s.publishOutcome(ctx, ref, actor, nil)
	slog.InfoContext(ctx, "hiring interview note saved",
		"application_id", applicationID,
		"recommendation", input.Recommendation,
	)
	return outcome, nil
}

func (s *interviewCompletionService) CompleteReadiness(ctx context.Context, actor model.Principal, gateID int64, slotID *int64, result model.ReadinessResult, reviewNotes *string) (*model.InterviewOutcome, error) {
	if !actor.Role.CanReview() {
		return nil, apperr.Unauthorized("only reviewers may record readiness outcomes")
	}
	if !result.IsValid() {
		return nil, apperr.Validation("outcome", "unknown readiness outcome")
	}
	if result == model.ReadinessWaive {
		if actor.Role != model.RoleAdmin {
			return nil, apperr.Unauthorized("waiving a readiness interview requires an admin")
		}
	} else if slotID == nil {
		return nil, apperr.Validation("slot_id", "a confirmed slot is required unless the interview is waived")
	}

	ref := model.OwnerRef{ID: gateID, Kind: model.OwnerKindReadinessGate}
	var outcome *model.InterviewOutcome
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		owner, err := requireOpenOwner(ctx, stores, ref)
		if err != nil {
			return err
		}

		if result != model.ReadinessWaive {
			gate := owner.(*model.ReadinessGate)
			if err := requireModulesComplete(ctx, stores, gate); err != nil {
				return err
			}

			slot, err := stores.Slots().GetByID(ctx, *slotID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return apperr.NotFound("slot", *slotID)
				}
				return fmt.Errorf("getting slot: %w", err)
			}
			if slot.Owner != ref {
				return apperr.Validation("slot_id", "slot does not belong to this gate")
			}
			if _, err := stores.Slots().TransitionSlot(ctx, *slotID, model.SlotStatusConfirmed, model.SlotStatusCompleted); err != nil {
				if errors.Is(err, store.ErrConflict) {
					return apperr.InvalidState("completion requires a confirmed slot")
				}
				return mapTransitionErr(err, *slotID, "")
			}
		}

		outcome = &model.InterviewOutcome{
			ID:          id.New(),
			Owner:       ref,
			SlotID:      slotID,
			Result:      &result,
			ReviewNotes: reviewNotes,
			RecordedBy:  actor.UserID,
		}
		if err := stores.Outcomes().Create(ctx, outcome); err != nil {
			return fmt.Errorf("recording outcome: %w", err)
		}

		if err := stores.Gates().UpdateStatus(ctx, gateID, model.GateStatusCompleted); err != nil {
			return fmt.Errorf("advancing gate: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOutcome(ctx, ref, actor, slotID)
	slog.InfoContext(ctx, "readiness interview completed",
		"gate_id", gateID,
		"outcome", result,
	)
	return outcome, nil
}

// requireModulesComplete rejects a non-waived readiness outcome while any
// required training module is still incomplete: the gate is blocked, not
// scheduled, no matter what its slots say. A waive bypasses this on purpose.
func requireModulesComplete(ctx context.Context, stores StoreProvider, gate *model.ReadinessGate) error {
	if len(gate.RequiredModuleIDs) == 0 {
		return nil
	}
	completed, err := stores.ModuleCompletions().CountCompleted(ctx, gate.InstructorID, gate.RequiredModuleIDs)
	if err != nil {
		return fmt.Errorf("counting module completions: %w", err)
	}
	if required := len(gate.RequiredModuleIDs); completed < required {
		return apperr.InvalidState(fmt.Sprintf("%d of %d required modules incomplete", required-completed, required))
	}
	return nil
}

// advanceApplication hands the application to the decisioning stage; the
// accept/reject decision itself belongs to the surrounding portal.
func (s *interviewCompletionService) advanceApplication(ctx context.Context, stores StoreProvider, applicationID int64) error {
	if err := stores.Applications().UpdateStatus(ctx, applicationID, model.ApplicationStatusDecisioning); err != nil {
		return fmt.Errorf("advancing application: %w", err)
	}
	return nil
}

func (s *interviewCompletionService) publishOutcome(ctx context.Context, owner model.OwnerRef, actor model.Principal, slotID *int64) {
	if err := s.producer.Publish(ctx, events.Event{
		Type:      events.EventOutcomeRecorded,
		Owner:     owner,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		SlotID:    slotID,
	}); err != nil {
		slog.WarnContext(ctx, "event publish failed", "type", events.EventOutcomeRecorded, "error", err)
	}
}

func validateHiringInput(actor model.Principal, input HiringOutcomeInput) error {
	if !actor.Role.CanReview() {
		return apperr.Unauthorized("only reviewers may record hiring outcomes")
	}
	if !input.Recommendation.IsValid() {
		return apperr.Validation("recommendation", "unknown recommendation")
	}
	if strings.TrimSpace(input.Content) == "" {
		return apperr.Validation("content", "interview notes are required")
	}
	return nil
}

func hiringOutcome(owner model.OwnerRef, slotID *int64, recordedBy int64, input HiringOutcomeInput) *model.InterviewOutcome {
	recommendation := input.Recommendation
	content := input.Content
	return &model.InterviewOutcome{
		ID:             id.New(),
		Owner:          owner,
		SlotID:         slotID,
		Recommendation: &recommendation,
		Content:        &content,
		Strengths:      input.Strengths,
		Concerns:       input.Concerns,
		RecordedBy:     recordedBy,
	}
}
