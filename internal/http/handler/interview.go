package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pathlight.app/interviews/common/logger"
	"pathlight.app/interviews/internal/http/dto"
	"pathlight.app/interviews/internal/http/middleware"
	"pathlight.app/interviews/internal/model"
	"pathlight.app/interviews/internal/service"
)

// InterviewHandler exposes the scheduling and completion commands. Every
// mutating command responds with the owner's refreshed task view so the UI
// can re-render without a second round trip.
type InterviewHandler struct {
	proposals    service.SlotProposalService
	availability service.AvailabilityRequestService
	confirmation service.SlotConfirmationService
	completion   service.InterviewCompletionService
	tasks        service.TaskQueryService
}

func NewInterviewHandler(
	proposals service.SlotProposalService,
	availability service.AvailabilityRequestService,
	confirmation service.SlotConfirmationService,
	completion service.InterviewCompletionService,
	tasks service.TaskQueryService,
) *InterviewHandler {
	return &InterviewHandler{
		proposals:    proposals,
		availability: availability,
		confirmation: confirmation,
		completion:   completion,
		tasks:        tasks,
	}
}

// PostApplicationSlots posts 1-3 proposed slots for an application.
func (h *InterviewHandler) PostApplicationSlots(c *gin.Context) {
	h.postSlots(c, model.OwnerKindApplication)
}

// PostGateSlots posts 1-3 proposed slots for a readiness gate.
func (h *InterviewHandler) PostGateSlots(c *gin.Context) {
	h.postSlots(c, model.OwnerKindReadinessGate)
}

func (h *InterviewHandler) postSlots(c *gin.Context, kind model.OwnerKind) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.PostSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	actor := middleware.GetPrincipal(c)
	owner := model.OwnerRef{ID: ownerID, Kind: kind}
	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
		OwnerID:   logger.Ptr(owner.ID),
		OwnerKind: logger.Ptr(string(owner.Kind)),
	})
	if _, err := h.proposals.PostSlotsBulk(ctx, actor, owner, req.ToSpecs()); err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTask(c, actor, owner, http.StatusCreated)
}

// ConfirmSlot confirms a proposed slot for either owner kind.
func (h *InterviewHandler) ConfirmSlot(c *gin.Context) {
	slotID, ok := pathID(c, "id")
	if !ok {
		return
	}

	actor := middleware.GetPrincipal(c)
	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{SlotID: logger.Ptr(slotID)})
	slot, err := h.confirmation.Confirm(ctx, actor, slotID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTask(c, actor, slot.Owner, http.StatusOK)
}

// CancelSlot retracts a proposed slot.
func (h *InterviewHandler) CancelSlot(c *gin.Context) {
	slotID, ok := pathID(c, "id")
	if !ok {
		return
	}

	actor := middleware.GetPrincipal(c)
	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{SlotID: logger.Ptr(slotID)})
	slot, err := h.proposals.CancelSlot(ctx, actor, slotID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTask(c, actor, slot.Owner, http.StatusOK)
}

// CompleteApplicationInterview records the hiring outcome for a confirmed slot.
func (h *InterviewHandler) CompleteApplicationInterview(c *gin.Context) {
	applicationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CompleteHiringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	actor := middleware.GetPrincipal(c)
	input := service.HiringOutcomeInput{
		Recommendation: model.Recommendation(req.Recommendation),
		Content:        req.Content,
		Strengths:      req.Strengths,
		Concerns:       req.Concerns,
	}
	if _, err := h.completion.CompleteHiring(c.Request.Context(), actor, applicationID, req.SlotID, input); err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTask(c, actor, model.OwnerRef{ID: applicationID, Kind: model.OwnerKindApplication}, http.StatusOK)
}

// SaveApplicationNote records a hiring outcome without a scheduled slot.
func (h *InterviewHandler) SaveApplicationNote(c *gin.Context) {
	applicationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.HiringNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	actor := middleware.GetPrincipal(c)
	input := service.HiringOutcomeInput{
		Recommendation: model.Recommendation(req.Recommendation),
		Content:        req.Content,
		Strengths:      req.Strengths,
		Concerns:       req.Concerns,
	}
	if _, err := h.completion.SaveHiringNote(c.Request.Context(), actor, applicationID, input); err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTask(c, actor, model.OwnerRef{ID: applicationID, Kind: model.OwnerKindApplication}, http.StatusOK)
}

// SubmitAvailability lets the interviewee propose preferred time windows.
func (h *InterviewHandler) SubmitAvailability(c *gin.Context) {
	var req dto.SubmitAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	actor := middleware.GetPrincipal(c)
	owner := model.OwnerRef{ID: req.OwnerID, Kind: model.OwnerKind(req.OwnerKind)}
	if _, err := h.availability.SubmitRequest(c.Request.Context(), actor, owner, req.PreferredWindows, req.Note); err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTask(c, actor, owner, http.StatusCreated)
}

// AcceptAvailability accepts a pending request, confirming one slot.
func (h *InterviewHandler) AcceptAvailability(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AcceptAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	actor := middleware.GetPrincipal(c)
	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{RequestID: logger.Ptr(requestID)})
	slot, err := h.availability.AcceptRequest(ctx, actor, requestID, req.ScheduledAt, req.DurationMinutes, req.MeetingLink)
	if err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTask(c, actor, slot.Owner, http.StatusOK)
}

// DeclineAvailability declines a pending request.
func (h *InterviewHandler) DeclineAvailability(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	actor := middleware.GetPrincipal(c)
	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{RequestID: logger.Ptr(requestID)})
	declined, err := h.availability.DeclineRequest(ctx, actor, requestID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTask(c, actor, declined.Owner, http.StatusOK)
}

// CompleteGateInterview records the readiness outcome, including the
// admin-only waive path.
func (h *InterviewHandler) CompleteGateInterview(c *gin.Context) {
	gateID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CompleteReadinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	actor := middleware.GetPrincipal(c)
	result := model.ReadinessResult(req.Outcome)
	if _, err := h.completion.CompleteReadiness(c.Request.Context(), actor, gateID, req.SlotID, result, req.ReviewNotes); err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTask(c, actor, model.OwnerRef{ID: gateID, Kind: model.OwnerKindReadinessGate}, http.StatusOK)
}

// ListTasks returns the viewer's derived task feed.
func (h *InterviewHandler) ListTasks(c *gin.Context) {
	actor := middleware.GetPrincipal(c)
	tasks, err := h.tasks.ListTasks(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = dto.ToTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, gin.H{"tasks": resp})
}

func (h *InterviewHandler) respondWithTask(c *gin.Context, actor model.Principal, owner model.OwnerRef, status int) {
	t, err := h.tasks.GetTask(c.Request.Context(), actor, owner)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, dto.ToTaskResponse(t))
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
