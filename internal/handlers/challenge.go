package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/fitness-challenge-api/internal/dto"
	apierrors "github.com/yukikurage/fitness-challenge-api/internal/errors"
	"github.com/yukikurage/fitness-challenge-api/internal/middleware"
	"github.com/yukikurage/fitness-challenge-api/internal/services"
)

// ChallengeHandler coordinates fitness challenge HTTP handlers, including
// the completion endpoint.
type ChallengeHandler struct {
	challengeService *services.ChallengeService
	aiService        *services.AIService
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(challengeService *services.ChallengeService, aiService *services.AIService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		aiService:        aiService,
	}
}

// ListActiveChallenges returns challenges the caller has not completed yet.
func (h *ChallengeHandler) ListActiveChallenges(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	challenges, err := h.challengeService.ListActiveChallenges(userID)
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChallengeDTOs(challenges))
}

// ListChallengesByCreator returns challenges created by the given user.
func (h *ChallengeHandler) ListChallengesByCreator(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	challenges, err := h.challengeService.ListChallengesByCreator(userID)
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChallengeDTOs(challenges))
}

// GetCompletedCount returns how many challenges the caller completed.
func (h *ChallengeHandler) GetCompletedCount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	count, err := h.challengeService.CountCompleted(userID)
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"completedChallenges": count})
}

// GetChallenge returns a challenge by ID.
func (h *ChallengeHandler) GetChallenge(c *gin.Context) {
	challengeID, ok := parseIDParam(c, "challenge_id")
	if !ok {
		return
	}

	challenge, err := h.challengeService.GetChallenge(challengeID)
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChallengeDTO(*challenge))
}

// CreateChallenge creates a new fitness challenge.
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateChallengeRequest struct {
		Challenge   string `json:"challenge" binding:"required"`
		Skillpoints int    `json:"skillpoints" binding:"required"`
	}

	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Challenge description or skillpoints missing")
		return
	}

	challenge, err := h.challengeService.CreateChallenge(services.CreateChallengeInput{
		Challenge:   req.Challenge,
		Skillpoints: req.Skillpoints,
		CreatorID:   userID,
	})
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChallengeDTO(*challenge))
}

// UpdateChallenge updates a challenge (creator only).
func (h *ChallengeHandler) UpdateChallenge(c *gin.Context) {
	challengeID, ok := parseIDParam(c, "challenge_id")
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateChallengeRequest struct {
		Challenge   string `json:"challenge" binding:"required"`
		Skillpoints int    `json:"skillpoints" binding:"required"`
	}

	var req UpdateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing challenge or skillpoints")
		return
	}

	challenge, err := h.challengeService.UpdateChallenge(challengeID, services.UpdateChallengeInput{
		Challenge:   req.Challenge,
		Skillpoints: req.Skillpoints,
		ActorID:     userID,
	})
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChallengeDTO(*challenge))
}

// DeleteChallenge removes a challenge (creator only).
func (h *ChallengeHandler) DeleteChallenge(c *gin.Context) {
	challengeID, ok := parseIDParam(c, "challenge_id")
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.challengeService.DeleteChallenge(challengeID, userID); err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted successfully"})
}

// CompleteChallenge records a completion and awards skillpoints, applying
// any active spell bonus.
func (h *ChallengeHandler) CompleteChallenge(c *gin.Context) {
	challengeID, ok := parseIDParam(c, "challenge_id")
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CompleteRequest struct {
		Completed *bool  `json:"completed"`
		ReviewAmt int    `json:"review_amt"`
		Notes     string `json:"notes"`
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Completion notes or review stars missing")
		return
	}

	// Legacy clients may omit the flag; a completion defaults to done.
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	result, err := h.challengeService.CompleteChallenge(services.CompleteChallengeInput{
		UserID:      userID,
		ChallengeID: challengeID,
		Completed:   completed,
		ReviewAmt:   req.ReviewAmt,
		Notes:       req.Notes,
	})
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CompletionResultDTO{
		Completion:  dto.ToCompletionDTO(*result.Completion),
		Earned:      result.Earned,
		Skillpoints: result.User.Skillpoints,
	})
}

// ListCompletions returns the completions recorded against a challenge.
func (h *ChallengeHandler) ListCompletions(c *gin.Context) {
	challengeID, ok := parseIDParam(c, "challenge_id")
	if !ok {
		return
	}

	completions, err := h.challengeService.ListCompletionsForChallenge(challengeID)
	if err != nil {
		respondChallengeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompletionDTOs(completions))
}

// GenerateChallenges suggests challenges for a goal using the AI service.
func (h *ChallengeHandler) GenerateChallenges(c *gin.Context) {
	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI generation is not configured")
		return
	}

	type GenerateRequest struct {
		Goal  string `json:"goal" binding:"required"`
		Count int    `json:"count"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Goal is required")
		return
	}

	suggestions, err := h.aiService.GenerateChallenges(c.Request.Context(), req.Goal, req.Count)
	if err != nil {
		apierrors.ServiceUnavailable(c, "Failed to generate challenges")
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenges": suggestions})
}

func respondChallengeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChallengeTextRequired),
		errors.Is(err, services.ErrSkillpointsRequired),
		errors.Is(err, services.ErrInvalidReviewAmount),
		errors.Is(err, services.ErrNotesRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotChallengeCreator):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrChallengeNotFound),
		errors.Is(err, services.ErrUserOrChallengeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyCompleted):
		apierrors.Conflict(c, "You have already completed this challenge")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

// parseUintQuery reads an optional numeric query parameter.
func parseUintQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
