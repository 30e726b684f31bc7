package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Andrew-O39/moviweb-app/internal/database"
	"github.com/Andrew-O39/moviweb-app/internal/datamanager"
	"github.com/Andrew-O39/moviweb-app/internal/handlers"
	"github.com/Andrew-O39/moviweb-app/internal/middleware"
	"github.com/Andrew-O39/moviweb-app/internal/omdb"
	"github.com/Andrew-O39/moviweb-app/internal/services"
)

// stubLookup serves a small fixed catalog, keyed by lowercased title.
type stubLookup struct {
	catalog map[string]*omdb.MovieDetails
}

func (s stubLookup) FetchMovieDetails(title string) (*omdb.MovieDetails, error) {
	return s.catalog[strings.ToLower(title)], nil
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	lookup := stubLookup{catalog: map[string]*omdb.MovieDetails{
		"arrival": {
			Name:      "Arrival",
			Director:  "Denis Villeneuve",
			Year:      2016,
			Rating:    7.9,
			PosterURL: "http://example.com/arrival.jpg",
		},
		"dune": {
			Name:     "Dune",
			Director: "Denis Villeneuve",
			Year:     2021,
			Rating:   8.0,
		},
	}}

	dm := datamanager.NewGormDataManager(db)
	authService := services.NewAuthService(dm, "test-secret")
	userService := services.NewUserService(dm, nil)
	movieService := services.NewMovieService(dm, lookup, nil)
	reviewService := services.NewReviewService(dm)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewUserHandler(userService, movieService).RegisterRoutes(protected)
	handlers.NewMovieHandler(movieService).RegisterRoutes(protected)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(protected)

	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerUser(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()

	resp := request(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name": name, "email": email,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func addMovie(t *testing.T, app *fiber.App, token, title string) uint {
	t.Helper()

	resp := request(t, app, "POST", "/api/v1/movies/", token, fiber.Map{"title": title})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var movie struct {
		ID uint `json:"ID"`
	}
	decode(t, resp, &movie)
	require.NotZero(t, movie.ID)
	return movie.ID
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	registerUser(t, app, "Ada", "ada@example.com")

	// Duplicate registration conflicts, even with different casing.
	resp := request(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name": "Imposter", "email": "ADA@example.com",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = request(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email": "ada@example.com",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email": "nobody@example.com",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	resp := request(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name": "Ada", "email": "not-an-email",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	resp := request(t, app, "GET", "/api/v1/movies/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, "GET", "/api/v1/movies/", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMovieCRUDFlow(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app, "Ada", "ada@example.com")

	movieID := addMovie(t, app, token, "arrival")

	// Lookup resolved the free-text title to the canonical record.
	resp := request(t, app, "GET", fmt.Sprintf("/api/v1/movies/%d", movieID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var movie struct {
		Name     string  `json:"Name"`
		Director string  `json:"Director"`
		Year     int     `json:"Year"`
		Rating   float64 `json:"Rating"`
	}
	decode(t, resp, &movie)
	assert.Equal(t, "Arrival", movie.Name)
	assert.Equal(t, "Denis Villeneuve", movie.Director)
	assert.Equal(t, 2016, movie.Year)

	// Adding the same film again conflicts.
	resp = request(t, app, "POST", "/api/v1/movies/", token, fiber.Map{"title": "Arrival"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Unknown titles read as not found.
	resp = request(t, app, "POST", "/api/v1/movies/", token, fiber.Map{"title": "no such film"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Partial update touches only the rating.
	resp = request(t, app, "PATCH", fmt.Sprintf("/api/v1/movies/%d", movieID), token, fiber.Map{
		"rating": 9.5,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &movie)
	assert.Equal(t, 9.5, movie.Rating)
	assert.Equal(t, "Arrival", movie.Name)
	assert.Equal(t, 2016, movie.Year)

	resp = request(t, app, "DELETE", fmt.Sprintf("/api/v1/movies/%d", movieID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, app, "GET", fmt.Sprintf("/api/v1/movies/%d", movieID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMovieOwnership(t *testing.T) {
	app := setupApp(t)
	adaToken := registerUser(t, app, "Ada", "ada@example.com")
	graceToken := registerUser(t, app, "Grace", "grace@example.com")

	movieID := addMovie(t, app, adaToken, "arrival")

	// Anyone logged in may read it, but only the owner may change it.
	resp := request(t, app, "GET", fmt.Sprintf("/api/v1/movies/%d", movieID), graceToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, app, "PATCH", fmt.Sprintf("/api/v1/movies/%d", movieID), graceToken, fiber.Map{
		"rating": 1.0,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = request(t, app, "DELETE", fmt.Sprintf("/api/v1/movies/%d", movieID), graceToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Both users can hold the same title in their own lists.
	addMovie(t, app, graceToken, "arrival")
}

func TestReviewFlow(t *testing.T) {
	app := setupApp(t)
	adaToken := registerUser(t, app, "Ada", "ada@example.com")
	graceToken := registerUser(t, app, "Grace", "grace@example.com")

	adaMovie := addMovie(t, app, adaToken, "arrival")
	graceMovie := addMovie(t, app, graceToken, "arrival")

	resp := request(t, app, "POST", fmt.Sprintf("/api/v1/movies/%d/reviews/", adaMovie), adaToken, fiber.Map{
		"review_text": "Great film", "rating": 9.0,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var review struct {
		ID uint `json:"ID"`
	}
	decode(t, resp, &review)

	// Grace cannot review Ada's list entry, only her own.
	resp = request(t, app, "POST", fmt.Sprintf("/api/v1/movies/%d/reviews/", adaMovie), graceToken, fiber.Map{
		"review_text": "Sneaky",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = request(t, app, "POST", fmt.Sprintf("/api/v1/movies/%d/reviews/", graceMovie), graceToken, fiber.Map{
		"review_text": "Loved it",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// The feed is shared by title, so both entries list both reviews.
	resp = request(t, app, "GET", fmt.Sprintf("/api/v1/movies/%d/reviews/", adaMovie), graceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var feed []map[string]interface{}
	decode(t, resp, &feed)
	assert.Len(t, feed, 2)

	// Only the author edits or deletes a review.
	resp = request(t, app, "PATCH", fmt.Sprintf("/api/v1/reviews/%d", review.ID), graceToken, fiber.Map{
		"review_text": "Hijacked",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = request(t, app, "PATCH", fmt.Sprintf("/api/v1/reviews/%d", review.ID), adaToken, fiber.Map{
		"review_text": "Even better on rewatch",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, app, "DELETE", fmt.Sprintf("/api/v1/reviews/%d", review.ID), adaToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, app, "GET", fmt.Sprintf("/api/v1/movies/%d/reviews/", graceMovie), graceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &feed)
	assert.Len(t, feed, 1)
}

func TestReviewValidation(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app, "Ada", "ada@example.com")
	movieID := addMovie(t, app, token, "arrival")

	resp := request(t, app, "POST", fmt.Sprintf("/api/v1/movies/%d/reviews/", movieID), token, fiber.Map{
		"review_text": "",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = request(t, app, "POST", fmt.Sprintf("/api/v1/movies/%d/reviews/", movieID), token, fiber.Map{
		"review_text": "ok", "rating": 11.0,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUserMoviesVisibility(t *testing.T) {
	app := setupApp(t)
	adaToken := registerUser(t, app, "Ada", "ada@example.com")
	graceToken := registerUser(t, app, "Grace", "grace@example.com")

	addMovie(t, app, adaToken, "arrival")

	resp := request(t, app, "GET", "/api/v1/users/", adaToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var users []map[string]interface{}
	decode(t, resp, &users)
	assert.Len(t, users, 2)

	// A user's list is private to them.
	resp = request(t, app, "GET", "/api/v1/users/1/movies", adaToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, app, "GET", "/api/v1/users/1/movies", graceToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteAccountCascades(t *testing.T) {
	app := setupApp(t)
	adaToken := registerUser(t, app, "Ada", "ada@example.com")
	graceToken := registerUser(t, app, "Grace", "grace@example.com")

	adaMovie := addMovie(t, app, adaToken, "arrival")
	graceMovie := addMovie(t, app, graceToken, "arrival")

	resp := request(t, app, "POST", fmt.Sprintf("/api/v1/movies/%d/reviews/", adaMovie), adaToken, fiber.Map{
		"review_text": "Great film",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = request(t, app, "DELETE", "/api/v1/users/me", adaToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The deleted account's token no longer authenticates.
	resp = request(t, app, "GET", "/api/v1/movies/", adaToken, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Ada's movie and review are gone; Grace's same-title entry survives
	// with an empty feed.
	resp = request(t, app, "GET", fmt.Sprintf("/api/v1/movies/%d", adaMovie), graceToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = request(t, app, "GET", fmt.Sprintf("/api/v1/movies/%d/reviews/", graceMovie), graceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var feed []map[string]interface{}
	decode(t, resp, &feed)
	assert.Empty(t, feed)
}
