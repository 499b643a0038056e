package user

import (
	"context"
	"errors"

	"generosity-backend/domain"
	"generosity-backend/entities"
	"generosity-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		RefreshToken(ctx context.Context, req domain.RefreshTokenRequest) (*domain.RefreshTokenResponse, error)
		Me(ctx context.Context, userID string) (*domain.User, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (*domain.User, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func toDomainUser(u *entities.User) *domain.User {
	return &domain.User{
		ID:           u.ID.String(),
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		PhoneNumber:  u.PhoneNumber,
		Address:      u.Address,
		IsBanned:     u.IsBanned,
		WarningCount: u.WarningCount,
		PenaltyScore: u.PenaltyScore,
		CreatedAt:    u.CreatedAt,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	// Admins are seeded out of band, never self-registered.
	if req.Role != domain.RoleDonor && req.Role != domain.RoleRecipient {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, domain.ErrUsernameAlreadyExist
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExist
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:          uuid.New(),
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return toDomainUser(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialsNotValid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsNotValid
	}

	// Banned users authenticate correctly but are refused with their
	// identity attached so the client can render a ban notice.
	if user.IsBanned {
		return nil, &domain.BannedUserError{
			Username: user.Username,
			Email:    user.Email,
			Name:     user.FullName(),
		}
	}

	return &domain.LoginResponse{
		AccessToken:  s.jwtService.GenerateAccessToken(user.ID.String(), user.Role),
		RefreshToken: s.jwtService.GenerateRefreshToken(user.ID.String(), user.Role),
		User:         toDomainUser(user),
	}, nil
}

func (s *userService) RefreshToken(ctx context.Context, req domain.RefreshTokenRequest) (*domain.RefreshTokenResponse, error) {
	userID, role, err := s.jwtService.GetUserIDByRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if user.IsBanned {
		return nil, &domain.BannedUserError{
			Username: user.Username,
			Email:    user.Email,
			Name:     user.FullName(),
		}
	}

	return &domain.RefreshTokenResponse{
		AccessToken: s.jwtService.GenerateAccessToken(userID, role),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (*domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return toDomainUser(user), nil
}
