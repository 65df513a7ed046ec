package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pathlight.app/interviews/internal/apperr"
	"pathlight.app/interviews/internal/model"
	"pathlight.app/interviews/internal/store"
	"pathlight.app/interviews/internal/task"
)

// TaskQueryService is the read side: it assembles derivation inputs from the
// stores and hands them to the pure engine. It never mutates anything.
type TaskQueryService interface {
	ListTasks(ctx context.Context, viewer model.Principal) ([]task.InterviewTask, error)
	GetTask(ctx context.Context, viewer model.Principal, owner model.OwnerRef) (*task.InterviewTask, error)
}

type taskQueryService struct {
	stores StoreProvider
}

func NewTaskQueryService(stores StoreProvider) TaskQueryService {
	return &taskQueryService{stores: stores}
}

func (s *taskQueryService) ListTasks(ctx context.Context, viewer model.Principal) ([]task.InterviewTask, error) {
	owners, err := s.ownersFor(ctx, viewer)
	if err != nil {
		return nil, err
	}

	tasks := make([]task.InterviewTask, 0, len(owners))
	for _, owner := range owners {
		// One broken owner record degrades to a blocked task instead of
		// failing the whole feed.
		t, err := s.buildTask(ctx, viewer, owner)
		if err != nil {
			slog.WarnContext(ctx, "task derivation inputs unavailable",
				"owner_id", owner.Ref().ID,
				"owner_kind", owner.Ref().Kind,
				"error", err,
			)
			t = brokenTask(owner)
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (s *taskQueryService) GetTask(ctx context.Context, viewer model.Principal, ref model.OwnerRef) (*task.InterviewTask, error) {
	owner, err := resolveOwner(ctx, s.stores, ref)
	if err != nil {
		return nil, err
	}
	return s.buildTask(ctx, viewer, owner)
}

func (s *taskQueryService) ownersFor(ctx context.Context, viewer model.Principal) ([]model.Owner, error) {
	var owners []model.Owner

	switch viewer.Role {
	case model.RoleReviewer, model.RoleAdmin:
		apps, err := s.stores.Applications().ListByReviewer(ctx, viewer.UserID)
		if err != nil {
			return nil, fmt.Errorf("listing applications: %w", err)
		}
		for i := range apps {
			owners = append(owners, &apps[i])
		}
		gates, err := s.stores.Gates().ListByReviewer(ctx, viewer.UserID)
		if err != nil {
			return nil, fmt.Errorf("listing gates: %w", err)
		}
		for i := range gates {
			owners = append(owners, &gates[i])
		}
	case model.RoleCandidate:
		apps, err := s.stores.Applications().ListByCandidate(ctx, viewer.UserID)
		if err != nil {
			return nil, fmt.Errorf("listing applications: %w", err)
		}
		for i := range apps {
			owners = append(owners, &apps[i])
		}
	case model.RoleInstructor:
		gates, err := s.stores.Gates().ListByInstructor(ctx, viewer.UserID)
		if err != nil {
			return nil, fmt.Errorf("listing gates: %w", err)
		}
		for i := range gates {
			owners = append(owners, &gates[i])
		}
	default:
		return nil, apperr.Unauthorized("unknown role")
	}

	return owners, nil
}

func (s *taskQueryService) buildTask(ctx context.Context, viewer model.Principal, owner model.Owner) (*task.InterviewTask, error) {
	ref := owner.Ref()

	slots, err := s.stores.Slots().ListByOwner(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}

	requests, err := s.stores.Requests().ListByOwner(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}

	outcome, err := s.stores.Outcomes().GetByOwner(ctx, ref)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting outcome: %w", err)
	}

	prereqs, err := s.prerequisites(ctx, owner)
	if err != nil {
		return nil, err
	}

	derived := task.Derive(task.Input{
		Owner:    owner,
		Prereqs:  prereqs,
		Slots:    slots,
		Requests: requests,
		Outcome:  outcome,
		Viewer:   viewer,
		Now:      time.Now(),
	})
	return &derived, nil
}

// prerequisites resolves the conditions gating each owner kind: applications
// must have reached the interview stage, gates need every required training
// module completed by the instructor.
func (s *taskQueryService) prerequisites(ctx context.Context, owner model.Owner) ([]task.Prerequisite, error) {
	switch o := owner.(type) {
	case *model.Application:
		if o.InterviewClosed() || o.ReadyForInterview() {
			return nil, nil
		}
		return []task.Prerequisite{{
			Description: fmt.Sprintf("application is still in the %s stage", o.Status),
			Met:         false,
		}}, nil
	case *model.ReadinessGate:
		if len(o.RequiredModuleIDs) == 0 {
			return nil, nil
		}
		completed, err := s.stores.ModuleCompletions().CountCompleted(ctx, o.InstructorID, o.RequiredModuleIDs)
		if err != nil {
			return nil, fmt.Errorf("counting module completions: %w", err)
		}
		required := len(o.RequiredModuleIDs)
		if completed >= required {
			return nil, nil
		}
		return []task.Prerequisite{{
			Description: fmt.Sprintf("%d of %d required modules incomplete", required-completed, required),
			Met:         false,
		}}, nil
	default:
		return nil, nil
	}
}

func brokenTask(owner model.Owner) *task.InterviewTask {
	return &task.InterviewTask{
		Owner:         owner.Ref(),
		Title:         owner.DisplayTitle(),
		Subtitle:      owner.DisplaySubtitle(),
		Stage:         task.StageBlocked,
		Blockers:      []string{"interview records are temporarily unavailable"},
		PrimaryAction: task.OpenDetails{},
	}
}
