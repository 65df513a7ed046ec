package model

import "time"

// Recommendation is the hiring interview verdict.
type Recommendation string

const (
	RecommendationStrongYes Recommendation = "strong_yes"
	RecommendationYes       Recommendation = "yes"
	RecommendationMaybe     Recommendation = "maybe"
	RecommendationNo        Recommendation = "no"
)

func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendationStrongYes, RecommendationYes, RecommendationMaybe, RecommendationNo:
		return true
	default:
		return false
	}
}

// IsPositive reports whether the recommendation advances the application
// toward an offer rather than rejection.
func (r Recommendation) IsPositive() bool {
	return r == RecommendationStrongYes || r == RecommendationYes
}

// ReadinessResult is the certification interview verdict.
type ReadinessResult string

const (
	ReadinessPass ReadinessResult = "pass"
	ReadinessHold ReadinessResult = "hold"
	ReadinessFail ReadinessResult = "fail"
	// ReadinessWaive bypasses the interview entirely. Admin only, valid from
	// any non-terminal gate state, needs no slot.
	ReadinessWaive ReadinessResult = "waive"
)

func (r ReadinessResult) IsValid() bool {
	switch r {
	case ReadinessPass, ReadinessHold, ReadinessFail, ReadinessWaive:
		return true
	default:
		return false
	}
}

// InterviewOutcome is the terminal record for one owner. Exactly one of the
// hiring fields (Recommendation/Content) or the readiness fields
// (Result/ReviewNotes) is populated, matching the owner kind.
type InterviewOutcome struct {
	ID     int64    `json:"id"`
	Owner  OwnerRef `json:"-"`
	SlotID *int64   `json:"slot_id,omitempty"`

	Recommendation *Recommendation `json:"recommendation,omitempty"`
	Content        *string         `json:"content,omitempty"`
	Strengths      *string         `json:"strengths,omitempty"`
	Concerns       *string         `json:"concerns,omitempty"`

	Result      *ReadinessResult `json:"outcome,omitempty"`
	ReviewNotes *string          `json:"review_notes,omitempty"`

	RecordedBy int64     `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
