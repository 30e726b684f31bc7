package datamanager

import (
	"github.com/Andrew-O39/moviweb-app/internal/models"
)

// DataManager defines the interface for all persistence operations on
// users, movies and reviews.
//
// Read operations that find nothing return (nil, nil) rather than an
// error; list operations on an unknown parent return an empty slice.
// Every write executes inside one transaction, so a mid-write failure
// leaves the store in its pre-call state.
type DataManager interface {
	// GetAllUsers returns every user. Order is not significant.
	GetAllUsers() ([]models.User, error)
	// GetUserByID returns the user with the given id, or nil if absent.
	GetUserByID(id uint) (*models.User, error)
	// GetUserByEmail returns the user whose normalized email matches, or
	// nil if absent. The argument is normalized before comparison.
	GetUserByEmail(email string) (*models.User, error)
	// AddUser creates a user from a display name and an email address. The
	// email is normalized before storage and must be unique.
	AddUser(name, email string) (*models.User, error)
	// DeleteUser removes the user together with their movies, the reviews
	// attached to those movies, and every review the user authored
	// elsewhere. A no-op when the user is absent.
	DeleteUser(id uint) error

	// GetUserMovies lists the movies owned by a user. Empty when the user
	// is unknown.
	GetUserMovies(userID uint) ([]models.Movie, error)
	// GetMovieByID returns the movie with the given id, or nil if absent.
	GetMovieByID(id uint) (*models.Movie, error)
	// AddMovie creates the given movie for its owner, assigning the id
	// in place. The (owner, title) pair must be unique.
	AddMovie(movie *models.Movie) error
	// UpdateMovie applies a partial field set to a movie; nil fields are
	// left unchanged. Returns the updated movie, or nil if absent.
	UpdateMovie(id uint, update models.MovieUpdate) (*models.Movie, error)
	// DeleteMovie removes a movie and the reviews attached to that row.
	// A no-op when the movie is absent.
	DeleteMovie(id uint) error

	// GetReviewByID returns the review with the given id, or nil if absent.
	GetReviewByID(id uint) (*models.Review, error)
	// GetReviewsForMovie resolves the movie's title and returns the
	// reviews on every movie row sharing that title, across all owners.
	// Empty when the movie id is unknown.
	GetReviewsForMovie(movieID uint) ([]models.Review, error)
	// AddReview creates the given review, assigning id and created-at in
	// place. The text must be non-blank and a rating, when present, must
	// lie in [0, 10].
	AddReview(review *models.Review) error
	// UpdateReview replaces the text unconditionally and the rating only
	// when provided. Returns the updated review, or nil if absent.
	UpdateReview(id uint, text string, rating *float64) (*models.Review, error)
	// DeleteReview removes a review. A no-op when absent.
	DeleteReview(id uint) error
}
