package service

import (
	"context"

	"github.com/google/uuid"

	"matcha-journal-backend/internal/domains/user/model"
)

type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, jti string) error
	RequestPasswordReset(ctx context.Context, req model.ResetPasswordRequest) error
	ConfirmPasswordReset(ctx context.Context, req model.ResetPasswordConfirmRequest) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)
}
