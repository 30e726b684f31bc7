package services

import (
	"github.com/Andrew-O39/moviweb-app/internal/datamanager"
	"github.com/Andrew-O39/moviweb-app/internal/models"
)

// ReviewService handles review writing, editing and deletion. Authors may
// only touch their own reviews, and a review can only be attached to a
// movie in the author's own list.
type ReviewService struct {
	dm datamanager.DataManager
}

// NewReviewService creates a new ReviewService.
func NewReviewService(dm datamanager.DataManager) *ReviewService {
	return &ReviewService{
		dm: dm,
	}
}

// AddReview creates a review by the given author on one of their own
// movies.
func (s *ReviewService) AddReview(authorID, movieID uint, text string, rating *float64) (*models.Review, error) {
	movie, err := s.dm.GetMovieByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}
	if movie.UserID != authorID {
		return nil, ErrForbidden
	}

	review := &models.Review{
		UserID:     authorID,
		MovieID:    movieID,
		ReviewText: text,
		Rating:     rating,
	}
	if err := s.dm.AddReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetMovieReviews returns the review feed for a movie. The feed is shared
// across every list entry with the same title, so two users who added the
// same film see one another's reviews.
func (s *ReviewService) GetMovieReviews(movieID uint) ([]models.Review, error) {
	movie, err := s.dm.GetMovieByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}
	return s.dm.GetReviewsForMovie(movieID)
}

// UpdateReview edits a review the caller authored. The text replaces
// unconditionally; the rating only when provided.
func (s *ReviewService) UpdateReview(callerID, reviewID uint, text string, rating *float64) (*models.Review, error) {
	review, err := s.dm.GetReviewByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrNotFound
	}
	if review.UserID != callerID {
		return nil, ErrForbidden
	}

	updated, err := s.dm.UpdateReview(reviewID, text, rating)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// DeleteReview removes a review the caller authored.
func (s *ReviewService) DeleteReview(callerID, reviewID uint) error {
	review, err := s.dm.GetReviewByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrNotFound
	}
	if review.UserID != callerID {
		return ErrForbidden
	}
	return s.dm.DeleteReview(reviewID)
}
