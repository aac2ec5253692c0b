package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"matcha-journal-backend/internal/domains/user/model"
	"matcha-journal-backend/internal/domains/user/repository"
	"matcha-journal-backend/internal/infrastructure/email"
	"matcha-journal-backend/internal/shared/middleware"
	"matcha-journal-backend/pkg/cache"
	"matcha-journal-backend/pkg/jwt"
	"matcha-journal-backend/pkg/logger"
)

const bcryptCost = 12

func resetTokenKey(token string) string {
	return "password:reset:" + token
}

type userService struct {
	userRepo     repository.Repository
	tokenManager *jwt.Manager
	sessions     cache.Cache
	mailer       email.Service
	resetTTL     time.Duration
}

func NewUserService(
	userRepo repository.Repository,
	tokenManager *jwt.Manager,
	sessions cache.Cache,
	mailer email.Service,
	resetTTL time.Duration,
) ServiceInterface {
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		sessions:     sessions,
		mailer:       mailer,
		resetTTL:     resetTTL,
	}
}

// =====================================================
// REGISTRATION / LOGIN
// =====================================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 3: Insert. Email uniqueness is enforced by the database
	// constraint, not a lookup, so concurrent registrations cannot both
	// succeed.
	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(passwordHash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return nil, model.NewDuplicateEmailError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := model.UserResponseFromEntity(user)
	return &resp, nil
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Look up user. An unknown email fails the same way a
	// wrong password does.
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Step 3: Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	// Step 4: Issue session token
	token, _, expiresAt, err := s.tokenManager.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &model.LoginResponse{
		User:      model.UserResponseFromEntity(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the session's token id until the token would have
// expired on its own. The token itself stays syntactically valid; the
// auth middleware rejects revoked ids.
func (s *userService) Logout(ctx context.Context, jti string) error {
	key := middleware.RevokedSessionKey(jti)
	if err := s.sessions.Set(ctx, key, "1", s.tokenManager.SessionTTL()); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// =====================================================
// PASSWORD RESET
// =====================================================

// RequestPasswordReset issues a one-shot reset token. The response is
// identical whether or not the email is registered.
func (s *userService) RequestPasswordReset(ctx context.Context, req model.ResetPasswordRequest) error {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return err
	}

	// Step 2: Look up user; an unknown email succeeds silently
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	// Step 3: Store a one-shot token
	token, err := generateSecureToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.sessions.Set(ctx, resetTokenKey(token), user.ID.String(), s.resetTTL); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	// Step 4: Send the token by email
	data := email.ResetPasswordData{
		Email:     user.Email,
		Token:     token,
		ExpiresIn: s.resetTTL.String(),
	}
	if err := s.mailer.SendResetPasswordEmail(ctx, data); err != nil {
		logger.Error("failed to send reset email", err)
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

func (s *userService) ConfirmPasswordReset(ctx context.Context, req model.ResetPasswordConfirmRequest) error {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return err
	}

	// Step 2: Consume the token. GETDEL makes reuse impossible even
	// for two concurrent confirmations with the same token.
	value, found, err := s.sessions.GetDel(ctx, resetTokenKey(req.Token))
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if !found {
		return model.NewInvalidResetTokenError()
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return model.NewInvalidResetTokenError()
	}

	// Step 3: Store the new password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(passwordHash)); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.NewInvalidResetTokenError()
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *userService) CurrentUser(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	resp := model.UserResponseFromEntity(user)
	return &resp, nil
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
