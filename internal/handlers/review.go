package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/fitness-challenge-api/internal/dto"
	apierrors "github.com/yukikurage/fitness-challenge-api/internal/errors"
	"github.com/yukikurage/fitness-challenge-api/internal/middleware"
	"github.com/yukikurage/fitness-challenge-api/internal/services"
)

// ReviewHandler coordinates app review HTTP handlers.
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// ListReviews returns all app reviews, newest first.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListReviews()
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReviewDTOs(reviews))
}

// CreateReview records an app review for the caller.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ReviewRequest struct {
		ReviewAmt  int    `json:"review_amt" binding:"required"`
		ReviewText string `json:"review_text" binding:"required"`
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "review_amt and review_text are required")
		return
	}

	review, err := h.reviewService.CreateReview(userID, services.ReviewInput{
		ReviewAmt:  req.ReviewAmt,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReviewDTO(*review))
}

// UpdateReview edits the caller's review.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	type ReviewRequest struct {
		ReviewAmt  int    `json:"review_amt" binding:"required"`
		ReviewText string `json:"review_text" binding:"required"`
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "review_amt and review_text are required")
		return
	}

	review, err := h.reviewService.UpdateReview(reviewID, userID, services.ReviewInput{
		ReviewAmt:  req.ReviewAmt,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReviewDTO(*review))
}

// DeleteReview removes the caller's review.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(reviewID, userID); err != nil {
		respondReviewError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReviewNotFound):
		apierrors.NotFound(c, "Review not found")
	case errors.Is(err, services.ErrNotReviewAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidReviewAmount),
		errors.Is(err, services.ErrReviewTextRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
