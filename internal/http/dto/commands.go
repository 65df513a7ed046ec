package dto

import (
	"time"

	"pathlight.app/interviews/internal/model"
)

type SlotSpecRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=15,max=180"`
	MeetingLink     *string   `json:"meeting_link,omitempty" binding:"omitempty,url,max=2048"`
}

func (r SlotSpecRequest) ToSpec() model.SlotSpec {
	return model.SlotSpec{
		ScheduledAt:     r.ScheduledAt,
		DurationMinutes: r.DurationMinutes,
		MeetingLink:     r.MeetingLink,
	}
}

type PostSlotsRequest struct {
	Slots []SlotSpecRequest `json:"slots" binding:"required,min=1,max=3,dive"`
}

func (r PostSlotsRequest) ToSpecs() []model.SlotSpec {
	specs := make([]model.SlotSpec, len(r.Slots))
	for i, s := range r.Slots {
		specs[i] = s.ToSpec()
	}
	return specs
}

type SubmitAvailabilityRequest struct {
	OwnerID          int64       `json:"owner_id,string" binding:"required"`
	OwnerKind        string      `json:"owner_kind" binding:"required,oneof=application readiness_gate"`
	PreferredWindows []time.Time `json:"preferred_windows" binding:"required,min=1,max=3"`
	Note             *string     `json:"note,omitempty" binding:"omitempty,max=2000"`
}

type AcceptAvailabilityRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=15,max=180"`
	MeetingLink     *string   `json:"meeting_link,omitempty" binding:"omitempty,url,max=2048"`
}

type CompleteHiringRequest struct {
	SlotID         int64   `json:"slot_id,string" binding:"required"`
	Recommendation string  `json:"recommendation" binding:"required,oneof=strong_yes yes maybe no"`
	Content        string  `json:"content" binding:"required"`
	Strengths      *string `json:"strengths,omitempty"`
	Concerns       *string `json:"concerns,omitempty"`
}

type HiringNoteRequest struct {
	Recommendation string  `json:"recommendation" binding:"required,oneof=strong_yes yes maybe no"`
	Content        string  `json:"content" binding:"required"`
	Strengths      *string `json:"strengths,omitempty"`
	Concerns       *string `json:"concerns,omitempty"`
}

type CompleteReadinessRequest struct {
	SlotID      *int64  `json:"slot_id,string,omitempty"`
	Outcome     string  `json:"outcome" binding:"required,oneof=pass hold fail waive"`
	ReviewNotes *string `json:"review_notes,omitempty" binding:"omitempty,max=5000"`
}
