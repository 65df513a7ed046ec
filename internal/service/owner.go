package service

import (
	"context"
	"errors"
	"fmt"

	"pathlight.app/interviews/internal/apperr"
	"pathlight.app/interviews/internal/model"
	"pathlight.app/interviews/internal/store"
)

// ownerEntity names owner kinds in NotFound errors.
func ownerEntity(kind model.OwnerKind) string {
	if kind == model.OwnerKindApplication {
		return "application"
	}
	return "readiness gate"
}

// resolveOwner loads the concrete owner behind a ref through its kind's store.
func resolveOwner(ctx context.Context, stores StoreProvider, ref model.OwnerRef) (model.Owner, error) {
	switch ref.Kind {
	case model.OwnerKindApplication:
		app, err := stores.Applications().GetByID(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperr.NotFound(ownerEntity(ref.Kind), ref.ID)
			}
			return nil, fmt.Errorf("getting application: %w", err)
		}
		return app, nil
	case model.OwnerKindReadinessGate:
		gate, err := stores.Gates().GetByID(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperr.NotFound(ownerEntity(ref.Kind), ref.ID)
			}
			return nil, fmt.Errorf("getting readiness gate: %w", err)
		}
		return gate, nil
	default:
		return nil, apperr.Validation("owner_kind", "unknown owner kind")
	}
}

// requireOpenOwner resolves the owner and rejects any mutating command once
// its interview sub-state is terminal, either through the owner status or a
// recorded outcome.
func requireOpenOwner(ctx context.Context, stores StoreProvider, ref model.OwnerRef) (model.Owner, error) {
	owner, err := resolveOwner(ctx, stores, ref)
	if err != nil {
		return nil, err
	}
	if owner.InterviewClosed() {
		return nil, apperr.InvalidState(fmt.Sprintf("%s %d interview is already completed", ownerEntity(ref.Kind), ref.ID))
	}
	if _, err := stores.Outcomes().GetByOwner(ctx, ref); err == nil {
		return nil, apperr.InvalidState(fmt.Sprintf("%s %d already has a recorded outcome", ownerEntity(ref.Kind), ref.ID))
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking outcome: %w", err)
	}
	return owner, nil
}
