package users_services

import (
	users_repositories "tasktracker/internal/features/users/repositories"
)

var userRepository = &users_repositories.UserRepository{}

var userService = &UserService{
	userRepository: userRepository,
	googleVerifier: NewGoogleTokenVerifier(),
}

func GetUserService() *UserService {
	return userService
}
