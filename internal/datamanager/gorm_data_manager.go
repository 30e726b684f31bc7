package datamanager

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Andrew-O39/moviweb-app/internal/models"
)

// GormDataManager is the GORM implementation of DataManager. Every write
// operation runs inside a single transaction; cascading deletes are
// performed explicitly in foreign-key order rather than via declarative
// constraint annotations.
type GormDataManager struct {
	db *gorm.DB
}

// NewGormDataManager creates a new instance of GormDataManager.
func NewGormDataManager(db *gorm.DB) *GormDataManager {
	return &GormDataManager{
		db: db,
	}
}

// persistence wraps an underlying storage error so callers can detect the
// category with errors.Is(err, ErrPersistence) while keeping the cause in
// the message.
func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

func validateRating(rating *float64) error {
	if rating != nil && (*rating < 0 || *rating > 10) {
		return fmt.Errorf("%w: rating must be between 0 and 10", ErrValidation)
	}
	return nil
}

// GetAllUsers retrieves every user from the database.
func (m *GormDataManager) GetAllUsers() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := m.db.Find(&users).Error; err != nil {
		return nil, persistence("get all users", err)
	}
	return users, nil
}

// GetUserByID retrieves a user by id, returning nil when absent.
func (m *GormDataManager) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := m.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistence("get user by id", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by normalized email, returning nil when
// absent.
func (m *GormDataManager) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := m.db.First(&user, "email = ?", models.NormalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistence("get user by email", err)
	}
	return &user, nil
}

// AddUser creates a new user. The email is normalized before the duplicate
// check and before storage.
func (m *GormDataManager) AddUser(name, email string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = models.NormalizeEmail(email)
	if name == "" {
		return nil, fmt.Errorf("%w: user name cannot be empty", ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", ErrValidation)
	}

	user := models.User{Name: name, Email: email}
	err := m.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return persistence("check email uniqueness", err)
		}
		if count > 0 {
			return ErrDuplicateEmail
		}
		if err := tx.Create(&user).Error; err != nil {
			return persistence("create user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user and everything hanging off them: reviews they
// authored anywhere, reviews on their movies written by others, then the
// movies, then the user row itself. All inside one transaction.
func (m *GormDataManager) DeleteUser(id uint) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return persistence("find user for deletion", err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return persistence("delete authored reviews", err)
		}
		ownedMovies := tx.Model(&models.Movie{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("movie_id IN (?)", ownedMovies).Delete(&models.Review{}).Error; err != nil {
			return persistence("delete reviews on owned movies", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Movie{}).Error; err != nil {
			return persistence("delete owned movies", err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return persistence("delete user", err)
		}
		return nil
	})
}

// GetUserMovies lists the movies owned by a user, empty when the user is
// unknown.
func (m *GormDataManager) GetUserMovies(userID uint) ([]models.Movie, error) {
	movies := make([]models.Movie, 0)
	if err := m.db.Where("user_id = ?", userID).Find(&movies).Error; err != nil {
		return nil, persistence("get user movies", err)
	}
	return movies, nil
}

// GetMovieByID retrieves a movie by id, returning nil when absent.
func (m *GormDataManager) GetMovieByID(id uint) (*models.Movie, error) {
	var movie models.Movie
	if err := m.db.First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistence("get movie by id", err)
	}
	return &movie, nil
}

// AddMovie creates a new movie for its owner after checking the
// (owner, title) uniqueness invariant.
func (m *GormDataManager) AddMovie(movie *models.Movie) error {
	movie.Name = strings.TrimSpace(movie.Name)
	if movie.Name == "" {
		return fmt.Errorf("%w: movie name cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(movie.Director) == "" {
		return fmt.Errorf("%w: movie director cannot be empty", ErrValidation)
	}
	if movie.UserID == 0 {
		return fmt.Errorf("%w: movie must have an owner", ErrValidation)
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", movie.UserID).Count(&count).Error; err != nil {
			return persistence("check movie owner", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: user %d does not exist", ErrValidation, movie.UserID)
		}
		if err := tx.Model(&models.Movie{}).
			Where("user_id = ? AND name = ?", movie.UserID, movie.Name).
			Count(&count).Error; err != nil {
			return persistence("check movie uniqueness", err)
		}
		if count > 0 {
			return ErrDuplicateMovie
		}
		if err := tx.Create(movie).Error; err != nil {
			return persistence("create movie", err)
		}
		return nil
	})
}

// UpdateMovie applies a partial field set. Fields left nil are unchanged;
// renaming a movie re-checks the per-owner title uniqueness.
func (m *GormDataManager) UpdateMovie(id uint, update models.MovieUpdate) (*models.Movie, error) {
	var movie models.Movie
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&movie, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return persistence("find movie for update", err)
		}

		fields := map[string]interface{}{}
		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if name == "" {
				return fmt.Errorf("%w: movie name cannot be empty", ErrValidation)
			}
			var count int64
			if err := tx.Model(&models.Movie{}).
				Where("user_id = ? AND name = ? AND id <> ?", movie.UserID, name, id).
				Count(&count).Error; err != nil {
				return persistence("check movie uniqueness", err)
			}
			if count > 0 {
				return ErrDuplicateMovie
			}
			fields["name"] = name
		}
		if update.Director != nil {
			if strings.TrimSpace(*update.Director) == "" {
				return fmt.Errorf("%w: movie director cannot be empty", ErrValidation)
			}
			fields["director"] = *update.Director
		}
		if update.Year != nil {
			fields["year"] = *update.Year
		}
		if update.Rating != nil {
			fields["rating"] = *update.Rating
		}
		if update.PosterURL != nil {
			fields["poster_url"] = *update.PosterURL
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&movie).Updates(fields).Error; err != nil {
			return persistence("update movie", err)
		}
		if err := tx.First(&movie, id).Error; err != nil {
			return persistence("reload updated movie", err)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// DeleteMovie removes a movie and the reviews attached to that specific
// row. Reviews on other rows that happen to share the title are untouched.
func (m *GormDataManager) DeleteMovie(id uint) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		var movie models.Movie
		if err := tx.First(&movie, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return persistence("find movie for deletion", err)
		}
		if err := tx.Where("movie_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return persistence("delete movie reviews", err)
		}
		if err := tx.Delete(&models.Movie{}, id).Error; err != nil {
			return persistence("delete movie", err)
		}
		return nil
	})
}

// GetReviewByID retrieves a review by id, returning nil when absent.
func (m *GormDataManager) GetReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := m.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistence("get review by id", err)
	}
	return &review, nil
}

// GetReviewsForMovie returns the reviews on every movie sharing the given
// movie's title, across all owners. Review visibility is grouped by title,
// not by row id, so the same film in two users' lists shares one review
// feed.
func (m *GormDataManager) GetReviewsForMovie(movieID uint) ([]models.Review, error) {
	reviews := make([]models.Review, 0)

	movie, err := m.GetMovieByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return reviews, nil
	}

	err = m.db.
		Joins("JOIN movies ON movies.id = reviews.movie_id").
		Where("movies.name = ?", movie.Name).
		Order("reviews.id").
		Find(&reviews).Error
	if err != nil {
		return nil, persistence("get reviews for movie title", err)
	}
	return reviews, nil
}

// AddReview creates a new review after validating its text, rating and the
// referenced author and movie.
func (m *GormDataManager) AddReview(review *models.Review) error {
	if strings.TrimSpace(review.ReviewText) == "" {
		return fmt.Errorf("%w: review text cannot be empty", ErrValidation)
	}
	if err := validateRating(review.Rating); err != nil {
		return err
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", review.UserID).Count(&count).Error; err != nil {
			return persistence("check review author", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: user %d does not exist", ErrValidation, review.UserID)
		}
		if err := tx.Model(&models.Movie{}).Where("id = ?", review.MovieID).Count(&count).Error; err != nil {
			return persistence("check reviewed movie", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: movie %d does not exist", ErrValidation, review.MovieID)
		}
		if err := tx.Create(review).Error; err != nil {
			return persistence("create review", err)
		}
		return nil
	})
}

// UpdateReview replaces the text unconditionally and the rating only when
// one is provided. CreatedAt is never touched.
func (m *GormDataManager) UpdateReview(id uint, text string, rating *float64) (*models.Review, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: review text cannot be empty", ErrValidation)
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	var review models.Review
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return persistence("find review for update", err)
		}
		fields := map[string]interface{}{"review_text": text}
		if rating != nil {
			fields["rating"] = *rating
		}
		if err := tx.Model(&review).Updates(fields).Error; err != nil {
			return persistence("update review", err)
		}
		if err := tx.First(&review, id).Error; err != nil {
			return persistence("reload updated review", err)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a review, a no-op when absent.
func (m *GormDataManager) DeleteReview(id uint) error {
	if err := m.db.Delete(&models.Review{}, id).Error; err != nil {
		return persistence("delete review", err)
	}
	return nil
}
