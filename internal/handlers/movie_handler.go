package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Andrew-O39/moviweb-app/internal/models"
	"github.com/Andrew-O39/moviweb-app/internal/services"
)

// MovieHandler handles HTTP requests for movies.
type MovieHandler struct {
	movieService *services.MovieService
	validate     *validator.Validate
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(movieService *services.MovieService) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the movie routes with the Fiber app.
func (h *MovieHandler) RegisterRoutes(router fiber.Router) {
	movieRoutes := router.Group("/movies")
	movieRoutes.Get("/", h.HandleListMyMovies)
	movieRoutes.Post("/", h.HandleAddMovie)
	movieRoutes.Get("/:id", h.HandleGetMovie)
	movieRoutes.Patch("/:id", h.HandleUpdateMovie)
	movieRoutes.Delete("/:id", h.HandleDeleteMovie)
}

// AddMovieRequest carries the free-text title to resolve through the
// metadata lookup.
type AddMovieRequest struct {
	Title string `json:"title" validate:"required"`
}

// HandleListMyMovies lists the calling user's movies.
func (h *MovieHandler) HandleListMyMovies(c *fiber.Ctx) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not logged in",
		})
	}
	movies, err := h.movieService.GetUserMovies(callerID)
	if err != nil {
		return respondError(c, err, "retrieve movies")
	}
	return c.JSON(movies)
}

// HandleAddMovie adds a movie to the caller's list from a free-text title,
// enriched with details from the metadata lookup.
func (h *MovieHandler) HandleAddMovie(c *fiber.Ctx) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not logged in",
		})
	}

	var req AddMovieRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailure(c, err)
	}

	movie, err := h.movieService.AddMovieByTitle(callerID, req.Title)
	if err != nil {
		return respondError(c, err, "add movie")
	}
	return c.Status(fiber.StatusCreated).JSON(movie)
}

// HandleGetMovie retrieves a single movie by id.
func (h *MovieHandler) HandleGetMovie(c *fiber.Ctx) error {
	movieID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid movie id",
		})
	}
	movie, err := h.movieService.GetMovie(movieID)
	if err != nil {
		return respondError(c, err, "retrieve movie")
	}
	return c.JSON(movie)
}

// HandleUpdateMovie applies a partial update to one of the caller's
// movies. Omitted fields are left unchanged.
func (h *MovieHandler) HandleUpdateMovie(c *fiber.Ctx) error {
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

	var update models.MovieUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	movie, err := h.movieService.UpdateMovie(callerID, movieID, update)
	if err != nil {
		return respondError(c, err, "update movie")
	}
	return c.JSON(movie)
}

// HandleDeleteMovie deletes one of the caller's movies together with the
// reviews on that entry.
func (h *MovieHandler) HandleDeleteMovie(c *fiber.Ctx) error {
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

	if err := h.movieService.DeleteMovie(callerID, movieID); err != nil {
		return respondError(c, err, "delete movie")
	}
	return c.JSON(fiber.Map{
		"message": "Movie deleted successfully",
	})
}
