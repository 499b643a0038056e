package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	MessageSuccessRegister     = "user registered successfully"
	MessageSuccessLogin        = "login successful"
	MessageSuccessRefreshToken = "token refreshed successfully"
	MessageSuccessGetProfile   = "profile retrieved successfully"
	MessageSuccessUpdateUser   = "user updated successfully"

	MessageFailedRegister     = "failed to register user"
	MessageFailedLogin        = "failed to login"
	MessageFailedRefreshToken = "failed to refresh token"
	MessageFailedGetProfile   = "failed to retrieve profile"
	MessageFailedUpdateUser   = "failed to update user"

	ErrUserNotFound         = errors.New("user not found")
	ErrCredentialsNotValid  = errors.New("invalid username or password")
	ErrUsernameAlreadyExist = errors.New("username already registered")
	ErrEmailAlreadyExist    = errors.New("email already registered")
	ErrInvalidRole          = errors.New("role must be donor or recipient")
)

// BannedUserError deliberately exposes identity so the client can render a
// ban notice. This is the only auth failure that does so.
type BannedUserError struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

func (e *BannedUserError) Error() string {
	return fmt.Sprintf("user %s is banned", e.Username)
}

type (
	RegisterRequest struct {
		Username    string `json:"username" validate:"required,min=3,max=30"`
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required,min=8"`
		FirstName   string `json:"first_name" validate:"required"`
		LastName    string `json:"last_name" validate:"required"`
		Role        string `json:"role" validate:"required,oneof=donor recipient"`
		PhoneNumber string `json:"phone_number" validate:"omitempty,max=15"`
		Address     string `json:"address" validate:"omitempty"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	RefreshTokenRequest struct {
		RefreshToken string `json:"refresh" validate:"required"`
	}

	UpdateUserRequest struct {
		FirstName   string `json:"first_name" validate:"omitempty"`
		LastName    string `json:"last_name" validate:"omitempty"`
		PhoneNumber string `json:"phone_number" validate:"omitempty,max=15"`
		Address     string `json:"address" validate:"omitempty"`
	}

	User struct {
		ID           string    `json:"id"`
		Username     string    `json:"username"`
		Email        string    `json:"email"`
		FirstName    string    `json:"first_name"`
		LastName     string    `json:"last_name"`
		Role         string    `json:"role"`
		PhoneNumber  string    `json:"phone_number,omitempty"`
		Address      string    `json:"address,omitempty"`
		IsBanned     bool      `json:"is_banned"`
		WarningCount int       `json:"warning_count"`
		PenaltyScore float64   `json:"penalty_score"`
		CreatedAt    time.Time `json:"created_at"`
	}

	LoginResponse struct {
		AccessToken  string `json:"access"`
		RefreshToken string `json:"refresh"`
		User         *User  `json:"user"`
	}

	RefreshTokenResponse struct {
		AccessToken string `json:"access"`
	}
)
