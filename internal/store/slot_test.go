package store_test

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pathlight.app/interviews/internal/model"
	"pathlight.app/interviews/internal/store"
)

// fakeQuerier stubs the pgx surface the stores run on, so the error
// classification can be exercised without a live database.
type fakeQuerier struct {
	queryRowFn func(sql string, args ...any) pgx.Row
	execFn     func(sql string, args ...any) (pgconn.CommandTag, error)
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	return f.queryRowFn(sql, args...)
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.execFn != nil {
		return f.execFn(sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

// errRow fails every scan with a fixed error.
type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }

// slotRow scans one interview slot in the stores' column order.
type slotRow struct {
	slot model.InterviewSlot
}

func (r slotRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.slot.ID
	*(dest[1].(*int64)) = r.slot.Owner.ID
	*(dest[2].(*string)) = string(r.slot.Owner.Kind)
	*(dest[3].(*time.Time)) = r.slot.ScheduledAt
	*(dest[4].(*int)) = r.slot.DurationMinutes
	*(dest[5].(**string)) = r.slot.MeetingLink
	*(dest[6].(*string)) = string(r.slot.Status)
	*(dest[7].(*string)) = string(r.slot.ProposedByRole)
	*(dest[8].(*time.Time)) = r.slot.CreatedAt
	*(dest[9].(*time.Time)) = r.slot.UpdatedAt
	return nil
}

var _ = Describe("SlotStore", func() {
	var (
		ctx   context.Context
		owner model.OwnerRef
	)

	BeforeEach(func() {
		ctx = context.Background()
		owner = model.OwnerRef{ID: 100, Kind: model.OwnerKindApplication}
	})

	Describe("TransitionSlot under a simultaneous confirm race", func() {
		Context("when the loser trips the active-slot unique index", func() {
			It("should report the unique violation as a conflict", func() {
				q := &fakeQuerier{
					queryRowFn: func(_ string, _ ...any) pgx.Row {
						return errRow{err: &pgconn.PgError{
							Code:           "23505",
							ConstraintName: "uniq_interview_slots_active",
						}}
					},
				}

				_, err := store.NewStores(q).Slots().TransitionSlot(ctx, 11, model.SlotStatusProposed, model.SlotStatusConfirmed)

				Expect(errors.Is(err, store.ErrConflict)).To(BeTrue())
			})
		})

		Context("when the cross supersede updates deadlock", func() {
			It("should report the deadlock as a conflict", func() {
				q := &fakeQuerier{
					queryRowFn: func(_ string, _ ...any) pgx.Row {
						return slotRow{slot: model.InterviewSlot{
							ID:     11,
							Owner:  owner,
							Status: model.SlotStatusConfirmed,
						}}
					},
					execFn: func(_ string, _ ...any) (pgconn.CommandTag, error) {
						return pgconn.CommandTag{}, &pgconn.PgError{Code: "40P01"}
					},
				}

				_, err := store.NewStores(q).Slots().TransitionSlot(ctx, 11, model.SlotStatusProposed, model.SlotStatusConfirmed)

				Expect(errors.Is(err, store.ErrConflict)).To(BeTrue())
			})
		})

		Context("when the transaction fails serialization", func() {
			It("should report the retry-able failure as a conflict", func() {
				q := &fakeQuerier{
					queryRowFn: func(_ string, _ ...any) pgx.Row {
						return errRow{err: &pgconn.PgError{Code: "40001"}}
					},
				}

				_, err := store.NewStores(q).Slots().TransitionSlot(ctx, 11, model.SlotStatusProposed, model.SlotStatusConfirmed)

				Expect(errors.Is(err, store.ErrConflict)).To(BeTrue())
			})
		})

		Context("when the database fails for an unrelated reason", func() {
			It("should pass the error through unmapped", func() {
				q := &fakeQuerier{
					queryRowFn: func(_ string, _ ...any) pgx.Row {
						return errRow{err: errors.New("connection reset")}
					},
				}

				_, err := store.NewStores(q).Slots().TransitionSlot(ctx, 11, model.SlotStatusProposed, model.SlotStatusConfirmed)

				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, store.ErrConflict)).To(BeFalse())
				Expect(errors.Is(err, store.ErrNotFound)).To(BeFalse())
			})
		})
	})
})
