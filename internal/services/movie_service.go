package services

import (
	"log"

	"github.com/Andrew-O39/moviweb-app/internal/datamanager"
	"github.com/Andrew-O39/moviweb-app/internal/models"
	"github.com/Andrew-O39/moviweb-app/internal/omdb"
	"github.com/Andrew-O39/moviweb-app/pkg/rabbitmq"
)

// MovieService handles the movie side of the app: adding entries enriched
// via the metadata lookup, ownership-guarded updates and deletes, and
// lifecycle event publishing.
type MovieService struct {
	dm       datamanager.DataManager
	lookup   omdb.MovieLookup
	mqClient *rabbitmq.Client
}

// NewMovieService creates a new MovieService. mqClient may be nil, in
// which case events are skipped.
func NewMovieService(dm datamanager.DataManager, lookup omdb.MovieLookup, mqClient *rabbitmq.Client) *MovieService {
	return &MovieService{
		dm:       dm,
		lookup:   lookup,
		mqClient: mqClient,
	}
}

// AddMovieByTitle resolves a free-text title through the metadata lookup
// and stores the result in the user's list. Lookup failures of any kind
// (transport, parse, unknown title) are logged and reported uniformly as
// ErrLookupMiss.
func (s *MovieService) AddMovieByTitle(userID uint, title string) (*models.Movie, error) {
	details, err := s.lookup.FetchMovieDetails(title)
	if err != nil {
		log.Printf("Movie lookup for %q failed: %v", title, err)
		details = nil
	}
	if details == nil {
		return nil, ErrLookupMiss
	}

	movie := &models.Movie{
		Name:      details.Name,
		Director:  details.Director,
		Year:      details.Year,
		Rating:    details.Rating,
		PosterURL: details.PosterURL,
		UserID:    userID,
	}
	if err := s.dm.AddMovie(movie); err != nil {
		return nil, err
	}

	s.publish("movie.added", movie)
	return movie, nil
}

// GetUserMovies lists the movies owned by a user.
func (s *MovieService) GetUserMovies(userID uint) ([]models.Movie, error) {
	return s.dm.GetUserMovies(userID)
}

// GetMovie retrieves a single movie, or ErrNotFound.
func (s *MovieService) GetMovie(id uint) (*models.Movie, error) {
	movie, err := s.dm.GetMovieByID(id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}
	return movie, nil
}

// UpdateMovie applies a partial update to a movie the caller owns.
func (s *MovieService) UpdateMovie(callerID, movieID uint, update models.MovieUpdate) (*models.Movie, error) {
	movie, err := s.dm.GetMovieByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}
	if movie.UserID != callerID {
		return nil, ErrForbidden
	}

	updated, err := s.dm.UpdateMovie(movieID, update)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// DeleteMovie removes a movie the caller owns, together with the reviews
// on that row.
func (s *MovieService) DeleteMovie(callerID, movieID uint) error {
	movie, err := s.dm.GetMovieByID(movieID)
	if err != nil {
		return err
	}
	if movie == nil {
		return ErrNotFound
	}
	if movie.UserID != callerID {
		return ErrForbidden
	}

	if err := s.dm.DeleteMovie(movieID); err != nil {
		return err
	}

	s.publish("movie.deleted", movie)
	return nil
}

// publish sends a lifecycle event, logging rather than failing the user
// operation when the broker is down or absent.
func (s *MovieService) publish(eventType string, payload interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
