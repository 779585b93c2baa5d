package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/fitness-challenge-api/internal/dto"
	apierrors "github.com/yukikurage/fitness-challenge-api/internal/errors"
	"github.com/yukikurage/fitness-challenge-api/internal/services"
	"github.com/yukikurage/fitness-challenge-api/internal/utils"
)

// CompletionHandler coordinates standalone completion record handlers.
type CompletionHandler struct {
	completionService *services.CompletionService
}

// NewCompletionHandler creates a new CompletionHandler.
func NewCompletionHandler(completionService *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{
		completionService: completionService,
	}
}

// ListCompletions returns a page of completion records.
func (h *CompletionHandler) ListCompletions(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	completions, total, err := h.completionService.ListCompletions(params)
	if err != nil {
		respondCompletionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completions": dto.ToCompletionDTOs(completions),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetCompletion returns a completion by ID.
func (h *CompletionHandler) GetCompletion(c *gin.Context) {
	completionID, ok := parseIDParam(c, "complete_id")
	if !ok {
		return
	}

	completion, err := h.completionService.GetCompletion(completionID)
	if err != nil {
		respondCompletionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompletionDTO(*completion))
}

// UpdateCompletion edits a completion's notes and review stars.
func (h *CompletionHandler) UpdateCompletion(c *gin.Context) {
	completionID, ok := parseIDParam(c, "complete_id")
	if !ok {
		return
	}

	type UpdateCompletionRequest struct {
		ReviewAmt int    `json:"review_amt" binding:"required"`
		Notes     string `json:"notes" binding:"required"`
	}

	var req UpdateCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Review amount or notes missing")
		return
	}

	if err := h.completionService.UpdateCompletion(completionID, services.UpdateCompletionInput{
		ReviewAmt: req.ReviewAmt,
		Notes:     req.Notes,
	}); err != nil {
		respondCompletionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteCompletion removes a completion record.
func (h *CompletionHandler) DeleteCompletion(c *gin.Context) {
	completionID, ok := parseIDParam(c, "complete_id")
	if !ok {
		return
	}

	if err := h.completionService.DeleteCompletion(completionID); err != nil {
		respondCompletionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondCompletionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCompletionNotFound):
		apierrors.NotFound(c, "Completion not found")
	case errors.Is(err, services.ErrInvalidReviewAmount),
		errors.Is(err, services.ErrNotesRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
