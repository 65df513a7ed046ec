package service

import (
	"context"

	"pathlight.app/interviews/core/db"
	"pathlight.app/interviews/internal/store"
)

// StoreProvider exposes the stores needed by a transactional operation.
type StoreProvider interface {
	Slots() store.SlotStore
	Requests() store.RequestStore
	Applications() store.ApplicationStore
	Gates() store.GateStore
	ModuleCompletions() store.ModuleCompletionStore
	Outcomes() store.OutcomeStore
}

// TxRunner runs functions within a database transaction and provides stores
// bound to that transaction. Confirmation, acceptance and completion all run
// through it so their multi-row writes land atomically.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(database *db.DB) TxRunner {
	return &dbTxRunner{db: database}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q db.Querier) error {
		return fn(store.NewStores(q))
	})
}
