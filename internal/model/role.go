package model

// Role is the acting user's role as resolved by the upstream gateway.
// Session and role resolution are outside this service; commands receive the
// role as plain data and gate on it.
type Role string

const (
	RoleReviewer   Role = "reviewer"
	RoleAdmin      Role = "admin"
	RoleCandidate  Role = "candidate"
	RoleInstructor Role = "instructor"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleReviewer, RoleAdmin, RoleCandidate, RoleInstructor:
		return true
	default:
		return false
	}
}

// CanReview reports whether the role may post, confirm and complete slots.
func (r Role) CanReview() bool {
	return r == RoleReviewer || r == RoleAdmin
}

// IsInterviewee reports whether the role sits on the receiving side of an
// interview: candidates for applications, instructors for readiness gates.
func (r Role) IsInterviewee() bool {
	return r == RoleCandidate || r == RoleInstructor
}

// Principal is the authenticated caller forwarded by the gateway.
type Principal struct {
	UserID int64
	Role   Role
}
