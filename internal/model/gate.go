package model

import (
	"fmt"
	"time"
)

type GateStatus string

const (
	GateStatusOpen      GateStatus = "open"
	GateStatusCompleted GateStatus = "completed"
)

// ReadinessGate is the certification-pipeline owner: an instructor must pass
// a readiness interview before teaching a pathway. Required training modules
// gate the interview itself.
type ReadinessGate struct {
	ID                int64      `json:"id"`
	InstructorID      int64      `json:"instructor_id"`
	ReviewerID        *int64     `json:"reviewer_id,omitempty"`
	Pathway           string     `json:"pathway"`
	Status            GateStatus `json:"status"`
	RequiredModuleIDs []int64    `json:"required_module_ids,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (g *ReadinessGate) Ref() OwnerRef {
	return OwnerRef{ID: g.ID, Kind: OwnerKindReadinessGate}
}

func (g *ReadinessGate) IntervieweeID() int64 {
	return g.InstructorID
}

func (g *ReadinessGate) InterviewClosed() bool {
	return g.Status == GateStatusCompleted
}

func (g *ReadinessGate) DisplayTitle() string {
	return fmt.Sprintf("Readiness interview for %s", g.Pathway)
}

func (g *ReadinessGate) DisplaySubtitle() string {
	return "Instructor certification"
}
