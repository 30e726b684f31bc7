package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/Andrew-O39/moviweb-app/internal/datamanager"
	"github.com/Andrew-O39/moviweb-app/internal/models"
)

// AuthService handles registration and email-based login. There are no
// passwords: knowing the registered email is the whole credential, and a
// signed JWT stands in for the browser session of the original design.
type AuthService struct {
	dm         datamanager.DataManager
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(dm datamanager.DataManager, jwtSecret string) *AuthService {
	return &AuthService{
		dm:         dm,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// Register creates a new account and logs it straight in, returning the
// user together with a session token. Duplicate emails surface as
// datamanager.ErrDuplicateEmail.
func (s *AuthService) Register(name, email string) (*models.User, string, error) {
	user, err := s.dm.AddUser(name, email)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email alone and returns the user with a fresh
// session token, or ErrUnknownEmail.
func (s *AuthService) Login(email string) (*models.User, string, error) {
	user, err := s.dm.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUnknownEmail
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a session token, returning the claims
// if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// UserFromClaims resolves the user a validated token belongs to. A token
// for a since-deleted account resolves to nil, which callers must treat as
// unauthenticated.
func (s *AuthService) UserFromClaims(claims jwt.MapClaims) (*models.User, error) {
	raw, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid token: missing user_id claim")
	}
	return s.dm.GetUserByID(uint(raw))
}
