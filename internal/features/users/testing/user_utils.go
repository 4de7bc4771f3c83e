package users_testing

import (
	"fmt"
	"time"

	users_dto "tasktracker/internal/features/users/dto"
	users_models "tasktracker/internal/features/users/models"
	users_repositories "tasktracker/internal/features/users/repositories"
	users_services "tasktracker/internal/features/users/services"

	"github.com/google/uuid"
)

func CreateTestUser() *users_dto.SignInResponseDTO {
	userID := uuid.New()
	email := fmt.Sprintf("user-%s@test.com", userID.String()[:8])

	user := &users_models.User{
		ID:        userID,
		Email:     email,
		Name:      "Test User " + userID.String()[:8],
		GoogleID:  "google-" + userID.String(),
		CreatedAt: time.Now().UTC(),
	}

	userRepository := &users_repositories.UserRepository{}
	err := userRepository.CreateUser(user)
	if err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	response.Email = user.Email

	return response
}

// GetUserFromSignInResponse loads the persisted user behind a test sign in.
func GetUserFromSignInResponse(response *users_dto.SignInResponseDTO) (*users_models.User, error) {
	return users_services.GetUserService().GetUserByID(response.UserID)
}

// FakeGoogleVerifier accepts every token and asserts the identity it was
// constructed with. Install via UserService.SetGoogleVerifier.
type FakeGoogleVerifier struct {
	Identity *users_services.GoogleIdentity
	Err      error
}

func (f *FakeGoogleVerifier) VerifyIDToken(_ string) (*users_services.GoogleIdentity, error) {
	if f.Err != nil {
		return nil, f.Err
	}

	return f.Identity, nil
}
