package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pathlight.app/interviews/common/id"
	"pathlight.app/interviews/internal/apperr"
	"pathlight.app/interviews/internal/events"
	"pathlight.app/interviews/internal/model"
	"pathlight.app/interviews/internal/service"
	"pathlight.app/interviews/internal/store"
)

var _ = Describe("AvailabilityRequestService", func() {
	var (
		svc       service.AvailabilityRequestService
		stores    *mockStores
		producer  *mockProducer
		ctx       context.Context
		reviewer  model.Principal
		candidate model.Principal
		owner     model.OwnerRef
	)

	windows := func(n int) []time.Time {
		out := make([]time.Time, n)
		for i := range out {
			out[i] = time.Now().Add(time.Duration(i+1) * 24 * time.Hour)
		}
		return out
	}

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStores()
		producer = &mockProducer{}
		svc = service.NewAvailabilityRequestService(stores, producer)
		reviewer = model.Principal{UserID: 7, Role: model.RoleReviewer}
		candidate = model.Principal{UserID: 42, Role: model.RoleCandidate}
		owner = model.OwnerRef{ID: 100, Kind: model.OwnerKindApplication}

		stores.applications.getByIDFn = func(_ context.Context, _ int64) (*model.Application, error) {
			return &model.Application{
				ID:          100,
				CandidateID: 42,
				Position:    "Backend Engineer",
				Status:      model.ApplicationStatusInterview,
			}, nil
		}

		Expect(id.Init(1)).To(Succeed())
	})

	Describe("SubmitRequest", func() {
		Context("when the interviewee submits valid windows", func() {
			It("should create a pending request and publish an event", func() {
				var captured *model.AvailabilityRequest
				stores.requests.createFn = func(_ context.Context, req *model.AvailabilityRequest) error {
					captured = req
					return nil
				}

				req, err := svc.SubmitRequest(ctx, candidate, owner, windows(2), nil)

				Expect(err).NotTo(HaveOccurred())
				Expect(req.ID).NotTo(BeZero())
				Expect(req.Status).To(Equal(model.RequestStatusPending))
				Expect(req.PreferredWindows).To(HaveLen(2))
				Expect(captured).NotTo(BeNil())
				Expect(producer.published).To(HaveLen(1))
				Expect(producer.published[0].Type).To(Equal(events.EventRequestSubmitted))
			})
		})

		Context("when the actor is not the interviewee on the record", func() {
			It("should reject another candidate's submission", func() {
				other := model.Principal{UserID: 43, Role: model.RoleCandidate}

				_, err := svc.SubmitRequest(ctx, other, owner, windows(1), nil)

				var authErr *apperr.AuthorizationError
				Expect(errors.As(err, &authErr)).To(BeTrue())
			})

			It("should reject a reviewer outright", func() {
				_, err := svc.SubmitRequest(ctx, reviewer, owner, windows(1), nil)

				var authErr *apperr.AuthorizationError
				Expect(errors.As(err, &authErr)).To(BeTrue())
				Expect(stores.txCalls).To(BeZero())
			})
		})

		Context("when the windows are invalid", func() {
			It("should reject an empty set", func() {
				_, err := svc.SubmitRequest(ctx, candidate, owner, nil, nil)

				var valErr *apperr.ValidationError
				Expect(errors.As(err, &valErr)).To(BeTrue())
			})

			It("should reject more than three windows", func() {
				_, err := svc.SubmitRequest(ctx, candidate, owner, windows(4), nil)

				var valErr *apperr.ValidationError
				Expect(errors.As(err, &valErr)).To(BeTrue())
			})
		})
	})

	Describe("AcceptRequest", func() {
		pendingRequest := func(requestID int64) {
			stores.requests.getByIDFn = func(_ context.Context, _ int64) (*model.AvailabilityRequest, error) {
				return &model.AvailabilityRequest{
					ID:               requestID,
					Owner:            owner,
					PreferredWindows: windows(2),
					Status:           model.RequestStatusPending,
				}, nil
			}
			stores.requests.transitionFn = func(_ context.Context, rid int64, from, to model.RequestStatus) (*model.AvailabilityRequest, error) {
				Expect(from).To(Equal(model.RequestStatusPending))
				Expect(to).To(Equal(model.RequestStatusAccepted))
				return &model.AvailabilityRequest{ID: rid, Owner: owner, Status: to}, nil
			}
		}

		Context("when the request is pending", func() {
			It("should accept it and hand back one confirmed slot", func() {
				pendingRequest(9)
				scheduledAt := time.Now().Add(72 * time.Hour)
				stores.slots.createSlotsFn = func(_ context.Context, o model.OwnerRef, specs []model.SlotSpec, _ model.Role) ([]model.InterviewSlot, error) {
					Expect(specs).To(HaveLen(1))
					return []model.InterviewSlot{{
						ID:              77,
						Owner:           o,
						ScheduledAt:     specs[0].ScheduledAt,
						DurationMinutes: specs[0].DurationMinutes,
						Status:          model.SlotStatusProposed,
					}}, nil
				}
				stores.slots.transitionFn = func(_ context.Context, slotID int64, from, to model.SlotStatus) (*model.InterviewSlot, error) {
					Expect(slotID).To(Equal(int64(77)))
					Expect(from).To(Equal(model.SlotStatusProposed))
					Expect(to).To(Equal(model.SlotStatusConfirmed))
					return &model.InterviewSlot{ID: slotID, Owner: owner, ScheduledAt: scheduledAt, Status: to}, nil
				}

				slot, err := svc.AcceptRequest(ctx, reviewer, 9, scheduledAt, 60, nil)

				Expect(err).NotTo(HaveOccurred())
				Expect(slot.Status).To(Equal(model.SlotStatusConfirmed))
				Expect(stores.txCalls).To(Equal(1))
				Expect(producer.published).To(HaveLen(1))
				Expect(producer.published[0].Type).To(Equal(events.EventRequestAccepted))
			})
		})

		Context("when the request was already accepted or declined", func() {
			It("should return a conflict", func() {
				pendingRequest(9)
				stores.requests.transitionFn = func(_ context.Context, _ int64, _, _ model.RequestStatus) (*model.AvailabilityRequest, error) {
					return nil, store.ErrConflict
				}

				_, err := svc.AcceptRequest(ctx, reviewer, 9, time.Now().Add(72*time.Hour), 60, nil)

				var conflictErr *apperr.ConflictError
				Expect(errors.As(err, &conflictErr)).To(BeTrue())
				Expect(stores.slots.createSlotsCalls).To(BeZero())
			})
		})

		Context("when the owner already holds a confirmed slot at check time", func() {
			It("should fail fast before touching the request", func() {
				pendingRequest(9)
				stores.slots.hasActiveSlotFn = func(_ context.Context, _ model.OwnerRef) (bool, error) {
					return true, nil
				}
				stores.requests.transitionFn = func(_ context.Context, _ int64, _, _ model.RequestStatus) (*model.AvailabilityRequest, error) {
					Fail("request must not transition when the owner is already booked")
					return nil, nil
				}

				_, err := svc.AcceptRequest(ctx, reviewer, 9, time.Now().Add(72*time.Hour), 60, nil)

				var conflictErr *apperr.ConflictError
				Expect(errors.As(err, &conflictErr)).To(BeTrue())
			})
		})

		Context("when a slot gets confirmed between check and update", func() {
			It("should fail the accept with a conflict from the guarded transition", func() {
				pendingRequest(9)
				stores.slots.createSlotsFn = func(_ context.Context, o model.OwnerRef, specs []model.SlotSpec, _ model.Role) ([]model.InterviewSlot, error) {
					return []model.InterviewSlot{{ID: 78, Owner: o, Status: model.SlotStatusProposed}}, nil
				}
				stores.slots.transitionFn = func(_ context.Context, _ int64, _, _ model.SlotStatus) (*model.InterviewSlot, error) {
					return nil, store.ErrConflict
				}

				_, err := svc.AcceptRequest(ctx, reviewer, 9, time.Now().Add(72*time.Hour), 60, nil)

				var conflictErr *apperr.ConflictError
				Expect(errors.As(err, &conflictErr)).To(BeTrue())
				Expect(producer.published).To(BeEmpty())
			})
		})

		Context("when the actor cannot review", func() {
			It("should reject the accept", func() {
				_, err := svc.AcceptRequest(ctx, candidate, 9, time.Now().Add(72*time.Hour), 60, nil)

				var authErr *apperr.AuthorizationError
				Expect(errors.As(err, &authErr)).To(BeTrue())
			})
		})

		Context("when the duration is out of range", func() {
			It("should return a validation error", func() {
				_, err := svc.AcceptRequest(ctx, reviewer, 9, time.Now().Add(72*time.Hour), 10, nil)

				var valErr *apperr.ValidationError
				Expect(errors.As(err, &valErr)).To(BeTrue())
			})
		})
	})

	Describe("DeclineRequest", func() {
		Context("when the request is pending", func() {
			It("should decline it and publish an event", func() {
				stores.requests.transitionFn = func(_ context.Context, rid int64, from, to model.RequestStatus) (*model.AvailabilityRequest, error) {
					Expect(from).To(Equal(model.RequestStatusPending))
					Expect(to).To(Equal(model.RequestStatusDeclined))
					return &model.AvailabilityRequest{ID: rid, Owner: owner, Status: to}, nil
				}

				declined, err := svc.DeclineRequest(ctx, reviewer, 9)

				Expect(err).NotTo(HaveOccurred())
				Expect(declined.Status).To(Equal(model.RequestStatusDeclined))
				Expect(producer.published).To(HaveLen(1))
				Expect(producer.published[0].Type).To(Equal(events.EventRequestDeclined))
			})
		})

		Context("when the request is no longer pending", func() {
			It("should return a conflict", func() {
				stores.requests.transitionFn = func(_ context.Context, _ int64, _, _ model.RequestStatus) (*model.AvailabilityRequest, error) {
					return nil, store.ErrConflict
				}

				_, err := svc.DeclineRequest(ctx, reviewer, 9)

				var conflictErr *apperr.ConflictError
				Expect(errors.As(err, &conflictErr)).To(BeTrue())
			})
		})
	})
})
