package task

import (
	"fmt"
	"time"

	"pathlight.app/interviews/internal/model"
)

// Input carries everything Derive needs, already fetched. Derive itself never
// touches storage and never fails: broken or missing records degrade to a
// BLOCKED task instead of an error, so one bad owner cannot take down a feed.
type Input struct {
	Owner    model.Owner
	Prereqs  []Prerequisite
	Slots    []model.InterviewSlot
	Requests []model.AvailabilityRequest
	Outcome  *model.InterviewOutcome
	Viewer   model.Principal
	Now      time.Time
}

// Derive computes the task view for one owner. Precedence: blockers, then a
// recorded outcome, then a confirmed slot, then open proposals/requests, then
// the empty state where scheduling has not started.
func Derive(in Input) InterviewTask {
	if in.Owner == nil {
		return InterviewTask{
			Title:         "Interview",
			Stage:         StageBlocked,
			Blockers:      []string{"owner record unavailable"},
			PrimaryAction: OpenDetails{},
		}
	}

	t := InterviewTask{
		Owner:          in.Owner.Ref(),
		Title:          in.Owner.DisplayTitle(),
		Subtitle:       in.Owner.DisplaySubtitle(),
		SecondaryLinks: []Link{detailsLink(in.Owner.Ref())},
	}

	if blockers := unmetBlockers(in.Prereqs); len(blockers) > 0 {
		t.Stage = StageBlocked
		t.Blockers = blockers
		t.PrimaryAction = OpenDetails{}
		return t
	}

	if in.Outcome != nil {
		t.Stage = StageCompleted
		t.Detail = "Interview completed"
		t.PrimaryAction = OpenDetails{}
		return t
	}

	if confirmed := firstSlotWithStatus(in.Slots, model.SlotStatusConfirmed); confirmed != nil {
		t.Stage = StageScheduled
		t.Detail = fmt.Sprintf("Scheduled for %s", confirmed.ScheduledAt.Format(time.RFC1123))
		t.PrimaryAction = completeAction(in.Owner.Ref(), confirmed.ID, in.Viewer)
		return t
	}

	proposed := firstSlotWithStatus(in.Slots, model.SlotStatusProposed)
	pending := firstPendingRequest(in.Requests)
	if proposed != nil || pending != nil {
		t.Stage = StageNeedsAction
		t.Detail = awaitingDetail(proposed)
		t.PrimaryAction = reviewAction(in.Owner.Ref(), proposed, pending, in.Viewer)
		return t
	}

	t.Stage = StageNeedsAction
	t.Detail = "No interview scheduled yet"
	t.PrimaryAction = scheduleAction(in, &t)
	return t
}

func unmetBlockers(prereqs []Prerequisite) []string {
	var blockers []string
	for _, p := range prereqs {
		if !p.Met {
			blockers = append(blockers, p.Description)
		}
	}
	return blockers
}

func firstSlotWithStatus(slots []model.InterviewSlot, status model.SlotStatus) *model.InterviewSlot {
	for i := range slots {
		if slots[i].Status == status {
			return &slots[i]
		}
	}
	return nil
}

func firstPendingRequest(requests []model.AvailabilityRequest) *model.AvailabilityRequest {
	for i := range requests {
		if requests[i].IsPending() {
			return &requests[i]
		}
	}
	return nil
}

func completeAction(owner model.OwnerRef, slotID int64, viewer model.Principal) Action {
	if !viewer.Role.CanReview() {
		return OpenDetails{}
	}
	if owner.Kind == model.OwnerKindApplication {
		return CompleteHiringInterview{ApplicationID: owner.ID, SlotID: slotID}
	}
	return CompleteReadinessInterview{GateID: owner.ID, SlotID: &slotID}
}

// reviewAction picks the reviewer's next move when proposals or requests are
// open. Proposed slots take precedence over pending requests. Interviewees
// have nothing to act on here; a reviewer holds the ball.
func reviewAction(owner model.OwnerRef, proposed *model.InterviewSlot, pending *model.AvailabilityRequest, viewer model.Principal) Action {
	if !viewer.Role.CanReview() {
		return OpenDetails{}
	}
	if proposed != nil {
		if owner.Kind == model.OwnerKindApplication {
			return ConfirmSlot{SlotID: proposed.ID}
		}
		return ConfirmReadinessSlot{SlotID: proposed.ID}
	}
	return AcceptAvailabilityRequest{RequestID: pending.ID}
}

// scheduleAction covers the empty state: nothing proposed, nothing pending.
// Reviewers post slots; interviewees request availability. An application
// whose every prior slot fizzled out (all cancelled or superseded without a
// confirmation surviving) falls back to the note-only completion path.
func scheduleAction(in Input, t *InterviewTask) Action {
	owner := in.Owner.Ref()

	if !in.Viewer.Role.CanReview() {
		return RequestAvailability{OwnerID: owner.ID, DefaultTime: defaultProposalTime(in.Now)}
	}

	if owner.Kind == model.OwnerKindApplication {
		if len(in.Slots) > 0 {
			return AddRecommendationNote{ApplicationID: owner.ID}
		}
		t.SecondaryLinks = append(t.SecondaryLinks, Link{
			Label: "Record note without interview",
			Href:  fmt.Sprintf("/applications/%d/interview-note", owner.ID),
		})
		return PostSlotsBulk{OwnerID: owner.ID, DefaultTime: defaultProposalTime(in.Now)}
	}

	return PostReadinessSlotsBulk{OwnerID: owner.ID, GateID: owner.ID}
}

func awaitingDetail(proposed *model.InterviewSlot) string {
	if proposed != nil {
		return "Awaiting slot confirmation"
	}
	return "Availability request awaiting review"
}

func detailsLink(owner model.OwnerRef) Link {
	if owner.Kind == model.OwnerKindApplication {
		return Link{Label: "View application", Href: fmt.Sprintf("/applications/%d", owner.ID)}
	}
	return Link{Label: "View readiness gate", Href: fmt.Sprintf("/readiness-gates/%d", owner.ID)}
}

// defaultProposalTime suggests the first whole hour at least a day out, a
// seed for the scheduling form rather than a commitment.
func defaultProposalTime(now time.Time) time.Time {
	if now.IsZero() {
		now = time.Now()
	}
	return now.Add(24 * time.Hour).Truncate(time.Hour).Add(time.Hour)
}
