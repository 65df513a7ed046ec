package handler_test

import (
	"context"
	"time"

	"pathlight.app/interviews/internal/model"
	"pathlight.app/interviews/internal/service"
	"pathlight.app/interviews/internal/task"
)

type mockProposalService struct {
	postSlotsBulkFn func(ctx context.Context, actor model.Principal, owner model.OwnerRef, specs []model.SlotSpec) ([]model.InterviewSlot, error)
	cancelSlotFn    func(ctx context.Context, actor model.Principal, slotID int64) (*model.InterviewSlot, error)
}

func (m *mockProposalService) PostSlotsBulk(ctx context.Context, actor model.Principal, owner model.OwnerRef, specs []model.SlotSpec) ([]model.InterviewSlot, error) {
	if m.postSlotsBulkFn != nil {
		return m.postSlotsBulkFn(ctx, actor, owner, specs)
	}
	return nil, nil
}

func (m *mockProposalService) CancelSlot(ctx context.Context, actor model.Principal, slotID int64) (*model.InterviewSlot, error) {
	if m.cancelSlotFn != nil {
		return m.cancelSlotFn(ctx, actor, slotID)
	}
	return nil, nil
}

type mockAvailabilityService struct {
	submitFn  func(ctx context.Context, actor model.Principal, owner model.OwnerRef, windows []time.Time, note *string) (*model.AvailabilityRequest, error)
	acceptFn  func(ctx context.Context, actor model.Principal, requestID int64, scheduledAt time.Time, durationMinutes int, meetingLink *string) (*model.InterviewSlot, error)
	declineFn func(ctx context.Context, actor model.Principal, requestID int64) (*model.AvailabilityRequest, error)
}

func (m *mockAvailabilityService) SubmitRequest(ctx context.Context, actor model.Principal, owner model.OwnerRef, windows []time.Time, note *string) (*model.AvailabilityRequest, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, actor, owner, windows, note)
	}
	return nil, nil
}

func (m *mockAvailabilityService) AcceptRequest(ctx context.Context, actor model.Principal, requestID int64, scheduledAt time.Time, durationMinutes int, meetingLink *string) (*model.InterviewSlot, error) {
	if m.acceptFn != nil {
		return m.acceptFn(ctx, actor, requestID, scheduledAt, durationMinutes, meetingLink)
	}
	return nil, nil
}

func (m *mockAvailabilityService) DeclineRequest(ctx context.Context, actor model.Principal, requestID int64) (*model.AvailabilityRequest, error) {
	if m.declineFn != nil {
		return m.declineFn(ctx, actor, requestID)
	}
	return nil, nil
}

type mockConfirmationService struct {
	confirmFn func(ctx context.Context, actor model.Principal, slotID int64) (*model.InterviewSlot, error)
}

func (m *mockConfirmationService) Confirm(ctx context.Context, actor model.Principal, slotID int64) (*model.InterviewSlot, error) {
	if m.confirmFn != nil {
		return m.confirmFn(ctx, actor, slotID)
	}
	return nil, nil
}

type mockCompletionService struct {
	completeHiringFn    func(ctx context.Context, actor model.Principal, applicationID, slotID int64, input service.HiringOutcomeInput) (*model.InterviewOutcome, error)
	saveHiringNoteFn    func(ctx context.Context, actor model.Principal, applicationID int64, input service.HiringOutcomeInput) (*model.InterviewOutcome, error)
	completeReadinessFn func(ctx context.Context, actor model.Principal, gateID int64, slotID *int64, result model.ReadinessResult, reviewNotes *string) (*model.InterviewOutcome, error)
}

func (m *mockCompletionService) CompleteHiring(ctx context.Context, actor model.Principal, applicationID, slotID int64, input service.HiringOutcomeInput) (*model.InterviewOutcome, error) {
	if m.completeHiringFn != nil {
		return m.completeHiringFn(ctx, actor, applicationID, slotID, input)
	}
	return nil, nil
}

func (m *mockCompletionService) SaveHiringNote(ctx context.Context, actor model.Principal, applicationID int64, input service.HiringOutcomeInput) (*model.InterviewOutcome, error) {
	if m.saveHiringNoteFn != nil {
		return m.saveHiringNoteFn(ctx, actor, applicationID, input)
	}
	return nil, nil
}

func (m *mockCompletionService) CompleteReadiness(ctx context.Context, actor model.Principal, gateID int64, slotID *int64, result model.ReadinessResult, reviewNotes *string) (*model.InterviewOutcome, error) {
	if m.completeReadinessFn != nil {
		return m.completeReadinessFn(ctx, actor, gateID, slotID, result, reviewNotes)
	}
	return nil, nil
}

type mockTaskService struct {
	listTasksFn func(ctx context.Context, viewer model.Principal) ([]task.InterviewTask, error)
	getTaskFn   func(ctx context.Context, viewer model.Principal, owner model.OwnerRef) (*task.InterviewTask, error)
}

func (m *mockTaskService) ListTasks(ctx context.Context, viewer model.Principal) ([]task.InterviewTask, error) {
	if m.listTasksFn != nil {
		return m.listTasksFn(ctx, viewer)
	}
	return nil, nil
}

func (m *mockTaskService) GetTask(ctx context.Context, viewer model.Principal, owner model.OwnerRef) (*task.InterviewTask, error) {
	if m.getTaskFn != nil {
		return m.getTaskFn(ctx, viewer, owner)
	}
	return &task.InterviewTask{Owner: owner, Stage: task.StageNeedsAction, PrimaryAction: task.OpenDetails{}}, nil
}
