package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"review-app/internal/models"
	"review-app/internal/services"
)

type ReviewService interface {
	Submit(ctx context.Context, in services.SubmitReviewInput) (*models.Review, error)
	ListRecent(ctx context.Context, limit int) ([]models.Review, error)
}

type ReviewHandler struct {
	service ReviewService
}

func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// CreateReview handles POST /api/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	review, err := h.service.Submit(c.Request.Context(), services.SubmitReviewInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		UserName:  req.UserName,
		Content:   req.Content,
		Images:    req.Images,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListRecent handles GET /api/reviews?limit=N.
func (h *ReviewHandler) ListRecent(c *gin.Context) {
	limit := models.DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	reviews, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
