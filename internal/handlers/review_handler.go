package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Andrew-O39/moviweb-app/internal/services"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	reviewService *services.ReviewService
	validate      *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the review routes with the Fiber app. The feed
// routes hang off the movie resource; edits and deletes address reviews
// directly.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	movieReviews := router.Group("/movies/:id/reviews")
	movieReviews.Get("/", h.HandleListMovieReviews)
	movieReviews.Post("/", h.HandleAddReview)

	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Patch("/:id", h.HandleUpdateReview)
	reviewRoutes.Delete("/:id", h.HandleDeleteReview)
}

// ReviewRequest represents the request body for writing or editing a
// review. Rating is optional; when present it must lie in [0, 10].
type ReviewRequest struct {
	ReviewText string   `json:"review_text" validate:"required"`
	Rating     *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
}

// HandleListMovieReviews lists the review feed for a movie. The feed
// covers every list entry sharing the movie's title.
func (h *ReviewHandler) HandleListMovieReviews(c *fiber.Ctx) error {
	movieID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid movie id",
		})
	}
	reviews, err := h.reviewService.GetMovieReviews(movieID)
	if err != nil {
		return respondError(c, err, "retrieve reviews")
	}
	return c.JSON(reviews)
}

// HandleAddReview writes a review on one of the caller's movies.
func (h *ReviewHandler) HandleAddReview(c *fiber.Ctx) error {
	movieID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid movie id",
		})
	}
	callerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not logged in",
		})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailure(c, err)
	}

	review, err := h.reviewService.AddReview(callerID, movieID, req.ReviewText, req.Rating)
	if err != nil {
		return respondError(c, err, "add review")
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleUpdateReview edits a review the caller authored. The text replaces
// unconditionally; the rating only when provided.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid review id",
		})
	}
	callerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not logged in",
		})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailure(c, err)
	}

	review, err := h.reviewService.UpdateReview(callerID, reviewID, req.ReviewText, req.Rating)
	if err != nil {
		return respondError(c, err, "update review")
	}
	return c.JSON(review)
}

// HandleDeleteReview deletes a review the caller authored.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid review id",
		})
	}
	callerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not logged in",
		})
	}

	if err := h.reviewService.DeleteReview(callerID, reviewID); err != nil {
		return respondError(c, err, "delete review")
	}
	return c.JSON(fiber.Map{
		"message": "Review deleted successfully",
	})
}
