package model

import (
	"fmt"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusScreening   ApplicationStatus = "screening"
	ApplicationStatusInterview   ApplicationStatus = "interview"
	ApplicationStatusDecisioning ApplicationStatus = "decisioning"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// Application is the hiring-pipeline owner. The surrounding portal manages
// its form data; this core only reads the fields relevant to interview
// orchestration and advances Status when an outcome is recorded.
type Application struct {
	ID          int64             `json:"id"`
	CandidateID int64             `json:"candidate_id"`
	ReviewerID  *int64            `json:"reviewer_id,omitempty"`
	Position    string            `json:"position"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (a *Application) Ref() OwnerRef {
	return OwnerRef{ID: a.ID, Kind: OwnerKindApplication}
}

func (a *Application) IntervieweeID() int64 {
	return a.CandidateID
}

func (a *Application) InterviewClosed() bool {
	switch a.Status {
	case ApplicationStatusDecisioning, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// ReadyForInterview reports whether the application has cleared the stages
// that precede interviewing. Earlier stages show up as blockers.
func (a *Application) ReadyForInterview() bool {
	return a.Status == ApplicationStatusInterview
}

func (a *Application) DisplayTitle() string {
	return fmt.Sprintf("Interview for %s", a.Position)
}

func (a *Application) DisplaySubtitle() string {
	return "Hiring application"
}
