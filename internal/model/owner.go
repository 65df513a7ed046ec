package model

// OwnerKind discriminates the two pipelines an interview can belong to.
type OwnerKind string

const (
	OwnerKindApplication   OwnerKind = "application"
	OwnerKindReadinessGate OwnerKind = "readiness_gate"
)

func (k OwnerKind) IsValid() bool {
	return k == OwnerKindApplication || k == OwnerKindReadinessGate
}

// OwnerRef identifies one owner across both pipelines. Slots, requests and
// outcomes are keyed by it.
type OwnerRef struct {
	ID   int64
	Kind OwnerKind
}

// Owner is the shared surface of Application and ReadinessGate. The slot and
// derivation code is written once against this interface instead of branching
// per pipeline.
type Owner interface {
	Ref() OwnerRef
	// IntervieweeID is the user on the receiving side: the candidate for an
	// application, the instructor for a gate.
	IntervieweeID() int64
	// InterviewClosed reports whether the owner's interview sub-state is
	// terminal; no slot or request command is valid once it is.
	InterviewClosed() bool
	DisplayTitle() string
	DisplaySubtitle() string
}
