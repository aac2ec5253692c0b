package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"matcha-journal-backend/internal/config"
	"matcha-journal-backend/internal/domains/user/model"
	"matcha-journal-backend/internal/domains/user/service"
	"matcha-journal-backend/internal/shared/response"
	"matcha-journal-backend/pkg/logger"
)

type UserHandler struct {
	userService service.ServiceInterface
	session     config.SessionConfig
}

func NewUserHandler(userService service.ServiceInterface, session config.SessionConfig) *UserHandler {
	return &UserHandler{
		userService: userService,
		session:     session,
	}
}

// Register creates an account
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Login verifies credentials and starts a session
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	response.Success(c, http.StatusOK, resp)
}

// Logout revokes the current session
// POST /api/v1/auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	jti := c.GetString("session_jti")
	if jti == "" {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.userService.Logout(c.Request.Context(), jti); err != nil {
		h.respondError(c, err)
		return
	}

	h.clearSessionCookie(c)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// ResetPassword requests a one-shot reset token by email. The response
// does not reveal whether the email is registered.
// POST /api/v1/auth/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.userService.RequestPasswordReset(c.Request.Context(), req); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "if the email is registered, a reset token has been sent",
	})
}

// ResetPasswordConfirm consumes a reset token and sets a new password
// POST /api/v1/auth/reset-password-confirm
func (h *UserHandler) ResetPasswordConfirm(c *gin.Context) {
	var req model.ResetPasswordConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.userService.ConfirmPasswordReset(c.Request.Context(), req); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "authentication required")
		return
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.userService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return
	}

	var userErr *model.UserError
	if errors.As(err, &userErr) {
		switch userErr.Code {
		case model.ErrCodeInvalidCredentials, model.ErrCodeInvalidResetToken:
			response.ErrorResponse(c, http.StatusUnauthorized, userErr.Code, userErr.Message)
		case model.ErrCodeDuplicateEmail:
			response.ErrorResponse(c, http.StatusConflict, userErr.Code, userErr.Message)
		case model.ErrCodeUserNotFound:
			response.ErrorResponse(c, http.StatusNotFound, userErr.Code, userErr.Message)
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, userErr.Code, userErr.Message)
		}
		return
	}

	logger.Error("user operation failed", err)
	response.InternalServerError(c, "something went wrong")
}

func (h *UserHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, token, int(h.session.TokenTTL.Seconds()), "/", "", h.session.CookieSecure, true)
}

func (h *UserHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.CookieSecure, true)
}
