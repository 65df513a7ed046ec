package dto

import (
	"time"

	"pathlight.app/interviews/internal/task"
)

// ActionResponse is the wire form of a task's primary action: a kind plus the
// variant's payload fields, nothing dynamic.
type ActionResponse struct {
	Kind          string     `json:"kind"`
	SlotID        *int64     `json:"slot_id,string,omitempty"`
	OwnerID       *int64     `json:"owner_id,string,omitempty"`
	ApplicationID *int64     `json:"application_id,string,omitempty"`
	GateID        *int64     `json:"gate_id,string,omitempty"`
	RequestID     *int64     `json:"request_id,string,omitempty"`
	DefaultTime   *time.Time `json:"default_time,omitempty"`
}

type LinkResponse struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type TaskResponse struct {
	OwnerID        int64          `json:"owner_id,string"`
	OwnerKind      string         `json:"owner_kind"`
	Title          string         `json:"title"`
	Subtitle       string         `json:"subtitle"`
	Detail         string         `json:"detail,omitempty"`
	Stage          string         `json:"stage"`
	Blockers       []string       `json:"blockers,omitempty"`
	PrimaryAction  ActionResponse `json:"primary_action"`
	SecondaryLinks []LinkResponse `json:"secondary_links,omitempty"`
}

func ToTaskResponse(t *task.InterviewTask) TaskResponse {
	resp := TaskResponse{
		OwnerID:       t.Owner.ID,
		OwnerKind:     string(t.Owner.Kind),
		Title:         t.Title,
		Subtitle:      t.Subtitle,
		Detail:        t.Detail,
		Stage:         string(t.Stage),
		Blockers:      t.Blockers,
		PrimaryAction: toActionResponse(t.PrimaryAction),
	}
	for _, link := range t.SecondaryLinks {
		resp.SecondaryLinks = append(resp.SecondaryLinks, LinkResponse{Label: link.Label, Href: link.Href})
	}
	return resp
}

func toActionResponse(a task.Action) ActionResponse {
	resp := ActionResponse{Kind: string(a.Kind())}
	switch v := a.(type) {
	case task.OpenDetails:
	case task.ConfirmSlot:
		resp.SlotID = &v.SlotID
	case task.PostSlotsBulk:
		resp.OwnerID = &v.OwnerID
		resp.DefaultTime = &v.DefaultTime
	case task.CompleteHiringInterview:
		resp.ApplicationID = &v.ApplicationID
		resp.SlotID = &v.SlotID
	case task.AddRecommendationNote:
		resp.ApplicationID = &v.ApplicationID
	case task.ConfirmReadinessSlot:
		resp.SlotID = &v.SlotID
	case task.RequestAvailability:
		resp.OwnerID = &v.OwnerID
		resp.DefaultTime = &v.DefaultTime
	case task.PostReadinessSlotsBulk:
		resp.OwnerID = &v.OwnerID
		resp.GateID = &v.GateID
	case task.AcceptAvailabilityRequest:
		resp.RequestID = &v.RequestID
	case task.CompleteReadinessInterview:
		resp.GateID = &v.GateID
		resp.SlotID = v.SlotID
	}
	return resp
}
