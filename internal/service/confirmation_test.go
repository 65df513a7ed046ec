package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pathlight.app/interviews/internal/apperr"
	"pathlight.app/interviews/internal/events"
	"pathlight.app/interviews/internal/model"
	"pathlight.app/interviews/internal/service"
	"pathlight.app/interviews/internal/store"
)

var _ = Describe("SlotConfirmationService", func() {
	var (
		svc      service.SlotConfirmationService
		stores   *mockStores
		producer *mockProducer
		ctx      context.Context
		reviewer model.Principal
		owner    model.OwnerRef
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStores()
		producer = &mockProducer{}
		svc = service.NewSlotConfirmationService(stores, producer)
		reviewer = model.Principal{UserID: 7, Role: model.RoleReviewer}
		owner = model.OwnerRef{ID: 200, Kind: model.OwnerKindReadinessGate}

		stores.gates.getByIDFn = func(_ context.Context, _ int64) (*model.ReadinessGate, error) {
			return &model.ReadinessGate{ID: 200, InstructorID: 55, Pathway: "Data Engineering", Status: model.GateStatusOpen}, nil
		}
		stores.slots.getByIDFn = func(_ context.Context, slotID int64) (*model.InterviewSlot, error) {
			return &model.InterviewSlot{
				ID:          slotID,
				Owner:       owner,
				ScheduledAt: time.Now().Add(48 * time.Hour),
				Status:      model.SlotStatusProposed,
			}, nil
		}
	})

	Describe("Confirm", func() {
		Context("when the slot is proposed and no sibling is active", func() {
			It("should confirm the slot and publish an event", func() {
				stores.slots.transitionFn = func(_ context.Context, slotID int64, from, to model.SlotStatus) (*model.InterviewSlot, error) {
					Expect(from).To(Equal(model.SlotStatusProposed))
					Expect(to).To(Equal(model.SlotStatusConfirmed))
					return &model.InterviewSlot{ID: slotID, Owner: owner, Status: to}, nil
				}

				confirmed, err := svc.Confirm(ctx, reviewer, 11)

				Expect(err).NotTo(HaveOccurred())
				Expect(confirmed.Status).To(Equal(model.SlotStatusConfirmed))
				Expect(stores.txCalls).To(Equal(1))
				Expect(producer.published).To(HaveLen(1))
				Expect(producer.published[0].Type).To(Equal(events.EventSlotConfirmed))
				Expect(*producer.published[0].SlotID).To(Equal(int64(11)))
			})
		})

		Context("when a sibling slot won the race", func() {
			It("should surface the lost compare-and-set as a conflict", func() {
				stores.slots.transitionFn = func(_ context.Context, _ int64, _, _ model.SlotStatus) (*model.InterviewSlot, error) {
					return nil, store.ErrConflict
				}

				_, err := svc.Confirm(ctx, reviewer, 11)

				var conflictErr *apperr.ConflictError
				Expect(errors.As(err, &conflictErr)).To(BeTrue())
				Expect(producer.published).To(BeEmpty())
			})
		})

		Context("when the actor is the interviewee", func() {
			It("should reject the confirmation", func() {
				instructor := model.Principal{UserID: 55, Role: model.RoleInstructor}

				_, err := svc.Confirm(ctx, instructor, 11)

				var authErr *apperr.AuthorizationError
				Expect(errors.As(err, &authErr)).To(BeTrue())
				Expect(stores.slots.transitionCalls).To(BeZero())
			})
		})

		Context("when the gate is already completed", func() {
			It("should return a state error", func() {
				stores.gates.getByIDFn = func(_ context.Context, _ int64) (*model.ReadinessGate, error) {
					return &model.ReadinessGate{ID: 200, Status: model.GateStatusCompleted}, nil
				}

				_, err := svc.Confirm(ctx, reviewer, 11)

				var stateErr *apperr.StateError
				Expect(errors.As(err, &stateErr)).To(BeTrue())
			})
		})

		Context("when the slot does not exist", func() {
			It("should return not found", func() {
				stores.slots.getByIDFn = nil

				_, err := svc.Confirm(ctx, reviewer, 999)

				var nfErr *apperr.NotFoundError
				Expect(errors.As(err, &nfErr)).To(BeTrue())
			})
		})
	})
})
