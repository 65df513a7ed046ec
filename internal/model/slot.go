package model

import "time"

type SlotStatus string

const (
	SlotStatusProposed   SlotStatus = "proposed"
	SlotStatusConfirmed  SlotStatus = "confirmed"
	SlotStatusCompleted  SlotStatus = "completed"
	SlotStatusSuperseded SlotStatus = "superseded"
	SlotStatusCancelled  SlotStatus = "cancelled"
)

func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusProposed, SlotStatusConfirmed, SlotStatusCompleted,
		SlotStatusSuperseded, SlotStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the slot can no longer change state.
func (s SlotStatus) IsTerminal() bool {
	return s == SlotStatusCompleted || s == SlotStatusSuperseded || s == SlotStatusCancelled
}

// Slot duration bounds in minutes.
const (
	MinSlotDuration = 15
	MaxSlotDuration = 180
)

// MaxSlotsPerProposal bounds a bulk proposal; the same bound applies to
// preferred windows on an availability request.
const MaxSlotsPerProposal = 3

// InterviewSlot is a proposed or confirmed interview time for one owner.
// Invariant: per owner at most one slot is confirmed or completed at any time.
type InterviewSlot struct {
	ID              int64      `json:"id"`
	Owner           OwnerRef   `json:"-"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	DurationMinutes int        `json:"duration_minutes"`
	MeetingLink     *string    `json:"meeting_link,omitempty"`
	Status          SlotStatus `json:"status"`
	ProposedByRole  Role       `json:"proposed_by_role"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SlotSpec is the caller-supplied portion of a slot. Callers supply explicit
// timestamps; no implicit time generation happens here.
type SlotSpec struct {
	ScheduledAt     time.Time
	DurationMinutes int
	MeetingLink     *string
}
