package users_services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"tasktracker/internal/config"
	users_dto "tasktracker/internal/features/users/dto"
	users_models "tasktracker/internal/features/users/models"
	users_repositories "tasktracker/internal/features/users/repositories"
)

const accessTokenLifetime = 7 * 24 * time.Hour

type UserService struct {
	userRepository *users_repositories.UserRepository
	googleVerifier GoogleTokenVerifier
}

// SetGoogleVerifier replaces the verifier, used by tests to avoid real
// network calls against Google.
func (s *UserService) SetGoogleVerifier(verifier GoogleTokenVerifier) {
	s.googleVerifier = verifier
}

func (s *UserService) SignInWithGoogle(request *users_dto.GoogleSignInRequestDTO) (*users_dto.SignInResponseDTO, error) {
	identity, err := s.googleVerifier.VerifyIDToken(request.IDToken)
	if err != nil {
		return nil, err
	}

	// Stored emails are always lowercase so invitation matching stays
	// case-insensitive
	email := strings.ToLower(identity.Email)

	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if user == nil {
		user = &users_models.User{
			ID:        uuid.New(),
			Email:     email,
			Name:      identity.Name,
			AvatarURL: identity.AvatarURL,
			GoogleID:  identity.Subject,
			CreatedAt: time.Now().UTC(),
		}

		if err := s.userRepository.CreateUser(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else {
		// Google is the source of truth for profile data, refresh on every sign in
		if err := s.userRepository.UpdateUserProfile(
			user.ID, identity.Name, identity.AvatarURL, identity.Subject,
		); err != nil {
			return nil, fmt.Errorf("failed to refresh user profile: %w", err)
		}

		user.Name = identity.Name
		user.AvatarURL = identity.AvatarURL
		user.GoogleID = identity.Subject
	}

	response, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.GetEnv().JwtSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := parsedToken.Claims.(jwt.MapClaims); ok && parsedToken.Valid {
		userIDStr, ok := claims["sub"].(string)
		if !ok {
			return nil, errors.New("invalid token claims")
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, errors.New("invalid token claims")
		}

		user, err := s.userRepository.GetUserByID(userID)
		if err != nil {
			return nil, err
		}

		return user, nil
	}

	return nil, errors.New("invalid token")
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.SignInResponseDTO, error) {
	expiration := time.Now().UTC().Add(accessTokenLifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   expiration.Unix(),
		"iat":   time.Now().UTC().Unix(),
	})

	tokenString, err := token.SignedString([]byte(config.GetEnv().JwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(userID)
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(email)
}

func (s *UserService) GetCurrentUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}
