package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pathlight.app/interviews/internal/apperr"
	"pathlight.app/interviews/internal/model"
	"pathlight.app/interviews/internal/service"
	"pathlight.app/interviews/internal/task"
)

var _ = Describe("TaskQueryService", func() {
	var (
		svc      service.TaskQueryService
		stores   *mockStores
		ctx      context.Context
		reviewer model.Principal
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStores()
		svc = service.NewTaskQueryService(stores)
		reviewer = model.Principal{UserID: 7, Role: model.RoleReviewer}
	})

	Describe("ListTasks", func() {
		Context("when the viewer is a reviewer", func() {
			It("should combine applications and gates into one feed", func() {
				stores.applications.listByReviewerFn = func(_ context.Context, reviewerID int64) ([]model.Application, error) {
					Expect(reviewerID).To(Equal(int64(7)))
					return []model.Application{
						{ID: 100, CandidateID: 42, Position: "Backend Engineer", Status: model.ApplicationStatusInterview},
					}, nil
				}
				stores.gates.listByReviewerFn = func(_ context.Context, _ int64) ([]model.ReadinessGate, error) {
					return []model.ReadinessGate{
						{ID: 200, InstructorID: 55, Pathway: "Data Engineering", Status: model.GateStatusOpen},
					}, nil
				}

				tasks, err := svc.ListTasks(ctx, reviewer)

				Expect(err).NotTo(HaveOccurred())
				Expect(tasks).To(HaveLen(2))
				Expect(tasks[0].Owner.Kind).To(Equal(model.OwnerKindApplication))
				Expect(tasks[1].Owner.Kind).To(Equal(model.OwnerKindReadinessGate))
			})
		})

		Context("when the viewer is a candidate", func() {
			It("should only list their own applications", func() {
				candidate := model.Principal{UserID: 42, Role: model.RoleCandidate}
				stores.applications.listByCandidateFn = func(_ context.Context, candidateID int64) ([]model.Application, error) {
					Expect(candidateID).To(Equal(int64(42)))
					return []model.Application{
						{ID: 100, CandidateID: 42, Position: "Backend Engineer", Status: model.ApplicationStatusInterview},
					}, nil
				}

				tasks, err := svc.ListTasks(ctx, candidate)

				Expect(err).NotTo(HaveOccurred())
				Expect(tasks).To(HaveLen(1))
			})
		})

		Context("when one owner's records fail to load", func() {
			It("should degrade that task to blocked instead of failing the feed", func() {
				stores.applications.listByReviewerFn = func(_ context.Context, _ int64) ([]model.Application, error) {
					return []model.Application{
						{ID: 100, CandidateID: 42, Position: "Backend Engineer", Status: model.ApplicationStatusInterview},
					}, nil
				}
				stores.slots.listByOwnerFn = func(_ context.Context, _ model.OwnerRef) ([]model.InterviewSlot, error) {
					return nil, errors.New("connection reset")
				}

				tasks, err := svc.ListTasks(ctx, reviewer)

				Expect(err).NotTo(HaveOccurred())
				Expect(tasks).To(HaveLen(1))
				Expect(tasks[0].Stage).To(Equal(task.StageBlocked))
				Expect(tasks[0].Blockers).To(ContainElement("interview records are temporarily unavailable"))
			})
		})

		Context("when the viewer's role is unknown", func() {
			It("should return an authorization error", func() {
				_, err := svc.ListTasks(ctx, model.Principal{UserID: 1, Role: "auditor"})

				var authErr *apperr.AuthorizationError
				Expect(errors.As(err, &authErr)).To(BeTrue())
			})
		})
	})

	Describe("GetTask", func() {
		Context("for a gate with incomplete required modules", func() {
			It("should block the task and name the remaining count", func() {
				stores.gates.getByIDFn = func(_ context.Context, _ int64) (*model.ReadinessGate, error) {
					return &model.ReadinessGate{
						ID:                200,
						InstructorID:      55,
						Pathway:           "Data Engineering",
						Status:            model.GateStatusOpen,
						RequiredModuleIDs: []int64{1, 2, 3, 4, 5},
					}, nil
				}
				stores.moduleCompletions.countCompletedFn = func(_ context.Context, userID int64, moduleIDs []int64) (int, error) {
					Expect(userID).To(Equal(int64(55)))
					Expect(moduleIDs).To(HaveLen(5))
					return 3, nil
				}

				t, err := svc.GetTask(ctx, reviewer, model.OwnerRef{ID: 200, Kind: model.OwnerKindReadinessGate})

				Expect(err).NotTo(HaveOccurred())
				Expect(t.Stage).To(Equal(task.StageBlocked))
				Expect(t.Blockers).To(ContainElement("2 of 5 required modules incomplete"))
			})
		})

		Context("for an application still in screening", func() {
			It("should block the task with the stage blocker", func() {
				stores.applications.getByIDFn = func(_ context.Context, _ int64) (*model.Application, error) {
					return &model.Application{ID: 100, CandidateID: 42, Status: model.ApplicationStatusScreening}, nil
				}

				t, err := svc.GetTask(ctx, reviewer, model.OwnerRef{ID: 100, Kind: model.OwnerKindApplication})

				Expect(err).NotTo(HaveOccurred())
				Expect(t.Stage).To(Equal(task.StageBlocked))
				Expect(t.Blockers).To(ContainElement("application is still in the screening stage"))
			})
		})

		Context("for an interview-stage application with a confirmed slot", func() {
			It("should return a scheduled task", func() {
				stores.applications.getByIDFn = func(_ context.Context, _ int64) (*model.Application, error) {
					return &model.Application{ID: 100, CandidateID: 42, Status: model.ApplicationStatusInterview}, nil
				}
				stores.slots.listByOwnerFn = func(_ context.Context, owner model.OwnerRef) ([]model.InterviewSlot, error) {
					return []model.InterviewSlot{{ID: 11, Owner: owner, Status: model.SlotStatusConfirmed}}, nil
				}

				t, err := svc.GetTask(ctx, reviewer, model.OwnerRef{ID: 100, Kind: model.OwnerKindApplication})

				Expect(err).NotTo(HaveOccurred())
				Expect(t.Stage).To(Equal(task.StageScheduled))
				Expect(t.PrimaryAction.Kind()).To(Equal(task.ActionKindCompleteHiringInterview))
			})
		})

		Context("when the owner does not exist", func() {
			It("should return not found", func() {
				_, err := svc.GetTask(ctx, reviewer, model.OwnerRef{ID: 999, Kind: model.OwnerKindApplication})

				var nfErr *apperr.NotFoundError
				Expect(errors.As(err, &nfErr)).To(BeTrue())
			})
		})
	})
})
