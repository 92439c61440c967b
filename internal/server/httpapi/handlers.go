// Package httpapi exposes the account lifecycle over HTTP. Every endpoint
// answers with the {status, data, msg} envelope; the refresh token is
// delivered to clients as an httpOnly cookie and accepted back either as
// that cookie (logout) or as an Authorization bearer header.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devesh1231/user-account-service/internal/common"
	"github.com/devesh1231/user-account-service/internal/logging"
	"github.com/devesh1231/user-account-service/internal/server/config"
	"github.com/devesh1231/user-account-service/internal/server/models"
	"github.com/devesh1231/user-account-service/internal/server/services"
)

const refreshCookieName = "refreshToken"

// AccountManager is the slice of the service layer the handlers need.
type AccountManager interface {
	Register(ctx context.Context, name, username, bio string, age int, password string) (*models.Account, error)
	Login(ctx context.Context, username, password string) (*models.Account, *services.TokenPair, error)
	Authenticate(ctx context.Context, token string) (*models.Account, error)
	Update(ctx context.Context, token string, params services.UpdateParams) (*models.Account, error)
	Delete(ctx context.Context, token, password string) (*models.Account, error)
	Logout(ctx context.Context, token string) (*models.Account, error)
}

// Handlers implements the HTTP endpoints of the account service.
type Handlers struct {
	accounts            AccountManager
	logger              logging.Logger
	refreshCookieMaxAge int
	secureCookie        bool
}

// NewHandlers constructs the endpoint set. The refresh cookie max-age is
// derived from the refresh token validity configured for the server.
func NewHandlers(accounts AccountManager, logger logging.Logger, cfg *config.Config) *Handlers {
	return &Handlers{
		accounts:            accounts,
		logger:              logger.With("component", "httpapi"),
		refreshCookieMaxAge: int(cfg.RefreshTokenValidityDuration.Seconds()),
		secureCookie:        cfg.SecureCookie,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Age      int    `json:"age"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateRequest struct {
	Name        *string `json:"name"`
	Username    *string `json:"username"`
	Bio         *string `json:"bio"`
	Age         *int    `json:"age"`
	Password    string  `json:"password"`
	NewPassword string  `json:"newPassword"`
}

type deleteRequest struct {
	Password string `json:"password"`
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// emptyAsUnset folds empty-string fields into "leave unchanged" so that
// clients sending "" for untouched fields keep their historical behavior.
func emptyAsUnset(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func (h *Handlers) setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(refreshCookieName, token, h.refreshCookieMaxAge, "/", "", h.secureCookie, true)
}

func (h *Handlers) clearRefreshCookie(c *gin.Context) {
	// cleared with the Secure attribute regardless of config
	c.SetCookie(refreshCookieName, "", -1, "/", "", true, true)
}

// Ping answers a liveness probe.
func (h *Handlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, ok(nil, "pong"))
}

// Register creates a new account. Logical failures (bad username or
// password policy, duplicate username) are reported with HTTP 200 and
// status:false in the envelope.
func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, fail("some error occurred"))
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), req.Name, req.Username, req.Bio, req.Age, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidUsername),
			errors.Is(err, common.ErrInvalidPassword),
			errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusOK, fail(err.Error()))
		default:
			h.logger.Error(c.Request.Context(), "register failed", "error", err)
			c.JSON(http.StatusOK, fail("some error occurred"))
		}
		return
	}

	c.JSON(http.StatusOK, ok(newAccountView(account), "user created successfully"))
}

// Login verifies credentials, rotates the refresh token, and sets it as
// an httpOnly cookie. The response payload carries the account and the
// short-lived session token.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, fail("Some error occurred"))
		return
	}

	account, pair, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusOK, fail("User not found"))
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusOK, fail("Incorrect password"))
		default:
			h.logger.Error(c.Request.Context(), "login failed", "error", err)
			c.JSON(http.StatusOK, fail("Some error occurred"))
		}
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, ok(LoginData{User: newAccountView(account), Token: pair.SessionToken}, "User login successful"))
}

// Details returns the account resolved from the bearer token.
func (h *Handlers) Details(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, fail("Unauthorized - Token not provided"))
		return
	}

	account, err := h.accounts.Authenticate(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, fail("User not found"))
			return
		}
		h.logger.Error(c.Request.Context(), "details failed", "error", err)
		c.JSON(http.StatusInternalServerError, fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, ok(newAccountView(account), "User details retrieved successfully"))
}

// Update mutates profile fields and, when password+newPassword are both
// supplied, replaces the stored password hash after verifying the
// current password.
func (h *Handlers) Update(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, fail("Unauthorized - Token not provided"))
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid request body"))
		return
	}

	account, err := h.accounts.Update(c.Request.Context(), token, services.UpdateParams{
		Name:        emptyAsUnset(req.Name),
		Username:    emptyAsUnset(req.Username),
		Bio:         emptyAsUnset(req.Bio),
		Age:         req.Age,
		Password:    req.Password,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, fail("User not found"))
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, fail("Incorrect password. User details not updated."))
		case errors.Is(err, common.ErrInvalidUsername), errors.Is(err, common.ErrInvalidPassword):
			c.JSON(http.StatusBadRequest, fail(err.Error()))
		default:
			h.logger.Error(c.Request.Context(), "update failed", "error", err)
			c.JSON(http.StatusInternalServerError, fail("Something bad happened"))
		}
		return
	}

	c.JSON(http.StatusOK, ok(newAccountView(account), "User details updated successfully"))
}

// Delete removes the account after verifying the password.
func (h *Handlers) Delete(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, fail("Unauthorized - Token not provided"))
		return
	}

	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid request body"))
		return
	}

	account, err := h.accounts.Delete(c.Request.Context(), token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, fail("User not found"))
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, fail("Incorrect password. Account not deleted."))
		default:
			h.logger.Error(c.Request.Context(), "delete failed", "error", err)
			c.JSON(http.StatusInternalServerError, fail("Something bad happened"))
		}
		return
	}

	c.JSON(http.StatusOK, ok(newAccountView(account), "User deleted successfully"))
}

// Logout revokes the session identified by the refresh cookie. The
// cookie is cleared even when the token no longer matches any account.
func (h *Handlers) Logout(c *gin.Context) {
	token, err := c.Cookie(refreshCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusBadRequest, fail("No refreshToken in cookies"))
		return
	}

	account, err := h.accounts.Logout(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorUnauthorized) {
			h.clearRefreshCookie(c)
			c.JSON(http.StatusUnauthorized, fail("User is not logged in"))
			return
		}
		h.logger.Error(c.Request.Context(), "logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, fail("Something went wrong during logout"))
		return
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, ok(newAccountView(account), "User logout successfully"))
}
