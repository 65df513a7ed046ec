package service

import (
	"pathlight.app/interviews/internal/events"
	"pathlight.app/interviews/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	producer events.Producer
}

func NewServices(stores *store.Stores, txRunner TxRunner, producer events.Producer) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		producer: producer,
	}
}

func (s *Services) Proposals() SlotProposalService {
	return NewSlotProposalService(s.txRunner, s.producer)
}

func (s *Services) Availability() AvailabilityRequestService {
	return NewAvailabilityRequestService(s.txRunner, s.producer)
}

func (s *Services) Confirmation() SlotConfirmationService {
	return NewSlotConfirmationService(s.txRunner, s.producer)
}

func (s *Services) Completion() InterviewCompletionService {
	return NewInterviewCompletionService(s.txRunner, s.producer)
}

func (s *Services) Tasks() TaskQueryService {
	return NewTaskQueryService(s.stores)
}
