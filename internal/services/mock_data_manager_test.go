package services_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/Andrew-O39/moviweb-app/internal/models"
)

// MockDataManager is a testify mock of the DataManager contract.
type MockDataManager struct {
	mock.Mock
}

func (m *MockDataManager) GetAllUsers() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockDataManager) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockDataManager) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockDataManager) AddUser(name, email string) (*models.User, error) {
	args := m.Called(name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockDataManager) DeleteUser(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDataManager) GetUserMovies(userID uint) ([]models.Movie, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockDataManager) GetMovieByID(id uint) (*models.Movie, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockDataManager) AddMovie(movie *models.Movie) error {
	args := m.Called(movie)
	return args.Error(0)
}

func (m *MockDataManager) UpdateMovie(id uint, update models.MovieUpdate) (*models.Movie, error) {
	args := m.Called(id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockDataManager) DeleteMovie(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDataManager) GetReviewByID(id uint) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockDataManager) GetReviewsForMovie(movieID uint) ([]models.Review, error) {
	args := m.Called(movieID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockDataManager) AddReview(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockDataManager) UpdateReview(id uint, text string, rating *float64) (*models.Review, error) {
	args := m.Called(id, text, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockDataManager) DeleteReview(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}
