package users_testing

import (
	"fmt"
	"math/rand"

	users_dto "teamboards-backend/internal/features/users/dto"
	users_services "teamboards-backend/internal/features/users/services"
)

// CreateTestUser registers a fresh user with a random email and signs
// it in, returning the session with the access token.
func CreateTestUser() *users_dto.SignInResponseDTO {
	email := fmt.Sprintf("user-%d@test.com", rand.Int63())
	password := "test-password-123"

	userService := users_services.GetUserService()

	err := userService.SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: password,
		Name:     "Test User",
	})
	if err != nil {
		panic(fmt.Sprintf("failed to sign up test user: %v", err))
	}

	response, err := userService.SignIn(&users_dto.SignInRequestDTO{
		Email:    email,
		Password: password,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to sign in test user: %v", err))
	}

	return response
}
