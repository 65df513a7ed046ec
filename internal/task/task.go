package task

import "pathlight.app/interviews/internal/model"

// Stage is the derived status a viewer sees for one owner's interview.
type Stage string

const (
	StageBlocked     Stage = "blocked"
	StageNeedsAction Stage = "needs_action"
	StageScheduled   Stage = "scheduled"
	StageCompleted   Stage = "completed"
)

// Link is a non-mutating navigation target shown alongside the primary action.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// InterviewTask is the derived read view for one owner. It is never
// persisted; every read recomputes it from the underlying records.
type InterviewTask struct {
	Owner          model.OwnerRef
	Title          string
	Subtitle       string
	Detail         string
	Stage          Stage
	Blockers       []string
	PrimaryAction  Action
	SecondaryLinks []Link
}

// Prerequisite is one condition that must hold before an interview can be
// scheduled, already resolved to met/unmet by the caller.
type Prerequisite struct {
	Description string
	Met         bool
}
