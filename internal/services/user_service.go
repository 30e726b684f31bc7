package services

import (
	"log"

	"github.com/Andrew-O39/moviweb-app/internal/datamanager"
	"github.com/Andrew-O39/moviweb-app/internal/models"
	"github.com/Andrew-O39/moviweb-app/pkg/rabbitmq"
)

// UserService handles user listing and account deletion.
type UserService struct {
	dm       datamanager.DataManager
	mqClient *rabbitmq.Client
}

// NewUserService creates a new UserService. mqClient may be nil, in which
// case events are skipped.
func NewUserService(dm datamanager.DataManager, mqClient *rabbitmq.Client) *UserService {
	return &UserService{
		dm:       dm,
		mqClient: mqClient,
	}
}

// GetAllUsers retrieves all registered users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.dm.GetAllUsers()
}

// GetUser retrieves a single user, or ErrNotFound.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	user, err := s.dm.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// DeleteAccount removes the user together with their movies and reviews.
func (s *UserService) DeleteAccount(userID uint) error {
	user, err := s.dm.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.dm.DeleteUser(userID); err != nil {
		return err
	}

	if s.mqClient != nil {
		if err := s.mqClient.PublishEvent("user.deleted", user); err != nil {
			log.Printf("Warning: failed to publish user.deleted event: %v", err)
		}
	}
	return nil
}
