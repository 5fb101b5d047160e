package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"vehicle_rental/internal/model"
	"vehicle_rental/internal/repository"
	"vehicle_rental/internal/utils"
)

var (
	ErrEmailExists        = errors.New("Email already exists")
	ErrPhoneExists        = errors.New("Phone number already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SigninResult bundles the issued token with the authenticated user
type SigninResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthService provides signup and signin
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, error)
	Signin(ctx context.Context, req model.SigninRequest) (*SigninResult, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{userRepo: userRepo, jwtUtil: jwtUtil}
}

func validateSignup(req model.SignupRequest) []string {
	var msgs []string

	if strings.TrimSpace(req.Name) == "" {
		msgs = append(msgs, "Name is required")
	} else if len(req.Name) > 100 {
		msgs = append(msgs, "Name must be 100 characters or less")
	}

	if strings.TrimSpace(req.Email) == "" {
		msgs = append(msgs, "Email is required")
	} else {
		if !emailRegex.MatchString(req.Email) {
			msgs = append(msgs, "Invalid email format")
		}
		if req.Email != strings.ToLower(req.Email) {
			msgs = append(msgs, "Email must be lowercase")
		}
		if len(req.Email) > 150 {
			msgs = append(msgs, "Email must be 150 characters or less")
		}
	}

	if req.Password == "" {
		msgs = append(msgs, "Password is required")
	} else if len(req.Password) < 6 {
		msgs = append(msgs, "Password must be at least 6 characters long")
	}

	if req.Role != "" && !model.ValidRole(req.Role) {
		msgs = append(msgs, "Role must be either 'admin' or 'customer'")
	}

	if strings.TrimSpace(req.Phone) == "" {
		msgs = append(msgs, "Phone is required")
	} else if len(req.Phone) > 15 {
		msgs = append(msgs, "Phone must be 15 characters or less")
	}

	return msgs
}

// Signup validates and normalizes the payload, rejects duplicate email or
// phone, and stores the user with a bcrypt-hashed password.
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	if msgs := validateSignup(req); len(msgs) > 0 {
		return nil, newValidationError(msgs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	role := req.Role
	if role == "" {
		role = model.RoleCustomer
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	existing, err = s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing phone: %w", err)
	}
	if existing != nil {
		return nil, ErrPhoneExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        phone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

// Signin verifies credentials and issues a signed token embedding
// id, email, role and name.
func (s *authService) Signin(ctx context.Context, req model.SigninRequest) (*SigninResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email, user.Role, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &SigninResult{Token: token, User: user}, nil
}
