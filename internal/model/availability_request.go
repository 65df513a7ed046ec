package model

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusDeclined RequestStatus = "declined"
)

// AvailabilityRequest is an interviewee-submitted set of preferred time
// windows, awaiting a reviewer's acceptance. Accepting creates exactly one
// confirmed slot; a request is never accepted twice.
type AvailabilityRequest struct {
	ID               int64         `json:"id"`
	Owner            OwnerRef      `json:"-"`
	PreferredWindows []time.Time   `json:"preferred_windows"`
	Note             *string       `json:"note,omitempty"`
	Status           RequestStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func (r *AvailabilityRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}
