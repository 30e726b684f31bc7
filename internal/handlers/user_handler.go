package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Andrew-O39/moviweb-app/internal/services"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userService  *services.UserService
	movieService *services.MovieService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, movieService *services.MovieService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		movieService: movieService,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id/movies", h.HandleUserMovies)
	userRoutes.Delete("/me", h.HandleDeleteAccount)
}

// HandleListUsers lists every registered user.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return respondError(c, err, "retrieve users")
	}
	return c.JSON(users)
}

// HandleUserMovies lists a user's movies. Users can only view their own
// list, mirroring the per-user dashboard of the original app.
func (h *UserHandler) HandleUserMovies(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}
	callerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not logged in",
		})
	}
	if callerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied: You can only view your own movies",
		})
	}

	movies, err := h.movieService.GetUserMovies(userID)
	if err != nil {
		return respondError(c, err, "retrieve movies")
	}
	return c.JSON(movies)
}

// HandleDeleteAccount deletes the calling user's account, cascading to
// their movies and reviews.
func (h *UserHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not logged in",
		})
	}

	if err := h.userService.DeleteAccount(callerID); err != nil {
		return respondError(c, err, "delete account")
	}
	return c.JSON(fiber.Map{
		"message": "Account deleted successfully",
	})
}
