package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"coursehub/internal/config"
	"coursehub/internal/models/db_models"
	"coursehub/internal/models/request_models"
	"coursehub/internal/models/response_models"
	"coursehub/internal/repositories"
	"coursehub/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.UserPrivateResponse, error)
}

type AuthConfig struct {
	Secret   []byte
	TokenTTL time.Duration
}

func AuthConfigFrom(cfg *config.Config) AuthConfig {
	return AuthConfig{Secret: []byte(cfg.JWTSecret), TokenTTL: cfg.JWTTTL}
}

type AccountService struct {
	userRepo repositories.UserRepository
	auth     AuthConfig
	logger   zerolog.Logger
}

func NewAccountService(userRepo repositories.UserRepository, auth AuthConfig, logger zerolog.Logger) AccountServiceInterface {
	return &AccountService{
		userRepo: userRepo,
		auth:     auth,
		logger:   logger.With().Str("service", "account").Logger(),
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	user, err := a.userRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(a.auth.Secret, user.ID, string(user.Role), a.auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	a.logger.Debug().Str("user_id", user.ID.String()).Dur("took", time.Since(startTime)).Msg("login succeeded")

	return &response_models.AccountLoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(a.auth.TokenTTL.Seconds()),
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.UserPrivateResponse, error) {
	email := normalizeEmail(request.Email)

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db_models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		DisplayName:  request.DisplayName,
		Phone:        request.Phone,
		Country:      request.Country,
		Role:         db_models.RoleMember,
	}

	if err := a.userRepo.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	a.logger.Info().Str("user_id", user.ID.String()).Msg("account created")
	resp := response_models.NewUserPrivateResponse(user)
	return &resp, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
