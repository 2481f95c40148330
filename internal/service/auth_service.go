package service

import (
	"context"
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/monitoring"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo   *repository.UserRepository
	BcryptCost int
}

func NewAuthService(userRepo *repository.UserRepository, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		UserRepo:   userRepo,
		BcryptCost: bcryptCost,
	}
}

type RegisterInput struct {
	FullName string
	Mobile   string
	Email    string
	Password string
}

// Register 注册新用户。返回的错误为 util.ErrEmailRegistered、*util.ValidationError 或 *util.StorageError
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	user, err := s.register(ctx, in)
	monitoring.RegistrationCounter.WithLabelValues(registrationOutcome(err)).Inc()
	return user, err
}

func (s *AuthService) register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, &util.ValidationError{Field: "email", Message: "is required"}
	}
	if in.Password == "" {
		return nil, &util.ValidationError{Field: "password", Message: "is required"}
	}

	exists, err := s.UserRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, &util.StorageError{Op: "check email", Err: err}
	}
	if exists {
		return nil, util.ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, &util.ValidationError{Field: "password", Message: "must be at most 72 bytes"}
		}
		return nil, &util.StorageError{Op: "hash password", Err: err}
	}

	user := &model.User{
		FullName: strings.TrimSpace(in.FullName),
		Mobile:   strings.TrimSpace(in.Mobile),
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			return nil, err
		}
		return nil, &util.StorageError{Op: "create user", Err: err}
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.UserRepo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return user, nil
}

func registrationOutcome(err error) string {
	var validationErr *util.ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, util.ErrEmailRegistered):
		return "duplicate_email"
	case errors.As(err, &validationErr):
		return "validation_error"
	default:
		return "storage_error"
	}
}
