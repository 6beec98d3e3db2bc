package handler

import (
	"net/http"

	"github.com/karanthegodd/expense-tracker/internal/middleware"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct{}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// MeResponse represents the authenticated user
type MeResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Me returns the authenticated user's identity from the validated token
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	resp := MeResponse{UserID: userID.String()}
	if custom := middleware.GetCustomClaims(c); custom != nil {
		resp.Email = custom.Email
		resp.Name = custom.Name
	}
	return c.JSON(http.StatusOK, resp)
}
