package handler

import (
	"context"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/middleware"
	"github.com/labstack/echo/v4"
)

// setupAuthContext injects an authenticated user into the request
// context the way the auth middleware does.
func setupAuthContext(c echo.Context, userID uuid.UUID) {
	ctx := context.WithValue(c.Request().Context(), middleware.UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}

// setupAuthContextWithClaims additionally carries validated token claims.
func setupAuthContextWithClaims(c echo.Context, userID uuid.UUID, email, name string) {
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: userID.String()},
		CustomClaims:     &middleware.CustomClaims{Email: email, Name: name},
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}
