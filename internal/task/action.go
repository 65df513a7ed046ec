package task

import "time"

// ActionKind names each Action variant for wire serialization.
type ActionKind string

const (
	ActionKindOpenDetails                ActionKind = "open_details"
	ActionKindConfirmSlot                ActionKind = "confirm_slot"
	ActionKindPostSlotsBulk              ActionKind = "post_slots_bulk"
	ActionKindCompleteHiringInterview    ActionKind = "complete_hiring_interview"
	ActionKindAddRecommendationNote      ActionKind = "add_recommendation_note"
	ActionKindConfirmReadinessSlot       ActionKind = "confirm_readiness_slot"
	ActionKindRequestAvailability        ActionKind = "request_availability"
	ActionKindPostReadinessSlotsBulk     ActionKind = "post_readiness_slots_bulk"
	ActionKindAcceptAvailabilityRequest  ActionKind = "accept_availability_request"
	ActionKindCompleteReadinessInterview ActionKind = "complete_readiness_interview"
)

// Action is the closed set of primary actions a task can offer. Each variant
// carries only what its caller needs; none performs I/O. The unexported
// marker keeps the set closed so switches over variants stay exhaustive.
type Action interface {
	Kind() ActionKind
	isAction()
}

// OpenDetails links through to the owner record with nothing to mutate.
type OpenDetails struct{}

// ConfirmSlot confirms one proposed application interview slot.
type ConfirmSlot struct {
	SlotID int64
}

// PostSlotsBulk posts up to three candidate slots for an application.
type PostSlotsBulk struct {
	OwnerID     int64
	DefaultTime time.Time
}

// CompleteHiringInterview records the hiring outcome for a confirmed slot.
type CompleteHiringInterview struct {
	ApplicationID int64
	SlotID        int64
}

// AddRecommendationNote records a hiring outcome with no scheduled slot.
type AddRecommendationNote struct {
	ApplicationID int64
}

// ConfirmReadinessSlot confirms one proposed readiness interview slot.
type ConfirmReadinessSlot struct {
	SlotID int64
}

// RequestAvailability lets the interviewee propose preferred windows.
type RequestAvailability struct {
	OwnerID     int64
	DefaultTime time.Time
}

// PostReadinessSlotsBulk posts up to three candidate slots for a gate.
type PostReadinessSlotsBulk struct {
	OwnerID int64
	GateID  int64
}

// AcceptAvailabilityRequest accepts a pending availability request.
type AcceptAvailabilityRequest struct {
	RequestID int64
}

// CompleteReadinessInterview records the readiness outcome. SlotID is nil on
// the waive path.
type CompleteReadinessInterview struct {
	GateID int64
	SlotID *int64
}

func (OpenDetails) Kind() ActionKind                { return ActionKindOpenDetails }
func (ConfirmSlot) Kind() ActionKind                { return ActionKindConfirmSlot }
func (PostSlotsBulk) Kind() ActionKind              { return ActionKindPostSlotsBulk }
func (CompleteHiringInterview) Kind() ActionKind    { return ActionKindCompleteHiringInterview }
func (AddRecommendationNote) Kind() ActionKind      { return ActionKindAddRecommendationNote }
func (ConfirmReadinessSlot) Kind() ActionKind       { return ActionKindConfirmReadinessSlot }
func (RequestAvailability) Kind() ActionKind        { return ActionKindRequestAvailability }
func (PostReadinessSlotsBulk) Kind() ActionKind     { return ActionKindPostReadinessSlotsBulk }
func (AcceptAvailabilityRequest) Kind() ActionKind  { return ActionKindAcceptAvailabilityRequest }
func (CompleteReadinessInterview) Kind() ActionKind { return ActionKindCompleteReadinessInterview }

func (OpenDetails) isAction()                {}
func (ConfirmSlot) isAction()                {}
func (PostSlotsBulk) isAction()              {}
func (CompleteHiringInterview) isAction()    {}
func (AddRecommendationNote) isAction()      {}
func (ConfirmReadinessSlot) isAction()       {}
func (RequestAvailability) isAction()        {}
func (PostReadinessSlotsBulk) isAction()     {}
func (AcceptAvailabilityRequest) isAction()  {}
func (CompleteReadinessInterview) isAction() {}
