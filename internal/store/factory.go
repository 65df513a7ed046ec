package store

import "pathlight.app/interviews/core/db"

// Stores groups the typed stores over one Querier, which is either the pool
// or a transaction (see service.TxRunner).
type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Slots() SlotStore {
	return newSlotStore(s.q)
}

func (s *Stores) Requests() RequestStore {
	return newRequestStore(s.q)
}

func (s *Stores) Applications() ApplicationStore {
	return newApplicationStore(s.q)
}

func (s *Stores) Gates() GateStore {
	return newGateStore(s.q)
}

func (s *Stores) ModuleCompletions() ModuleCompletionStore {
	return newModuleCompletionStore(s.q)
}

func (s *Stores) Outcomes() OutcomeStore {
	return newOutcomeStore(s.q)
}
