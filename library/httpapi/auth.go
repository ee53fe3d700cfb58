package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

const (
	contextKeyActor = "actor"
	bearerPrefix    = "Bearer "
	msgSignIn       = "Please sign in."
)

var errUnauthenticated = echo.NewHTTPError(http.StatusUnauthorized, msgSignIn)

// IssueToken signs an HS256 token whose subject is the external user id. Tokens are normally issued
// by the identity provider in front of this service; the function exists for tools and tests.
func IssueToken(secret []byte, externalUserID string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   externalUserID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// authenticate verifies the bearer token and resolves its subject to an active user.
// The resulting actor is stored in the echo context for the route handlers.
func authenticate(secret []byte, users shell.UserRepository) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return errUnauthenticated
			}

			var claims jwt.RegisteredClaims
			if _, err := parser.ParseWithClaims(strings.TrimPrefix(header, bearerPrefix), &claims, keyFunc); err != nil {
				return errUnauthenticated.WithInternal(err)
			}

			if claims.Subject == "" {
				return errUnauthenticated
			}

			user, err := users.FindByExternalID(c.Request().Context(), claims.Subject)
			if errors.Is(err, core.ErrNotFound) {
				return errUnauthenticated.WithInternal(err)
			}
			if err != nil {
				return err
			}

			if user.Status != core.UserActive {
				return errUnauthenticated
			}

			c.Set(contextKeyActor, user.Actor())

			return next(c)
		}
	}
}

// actorOf returns the actor resolved by authenticate.
func actorOf(c echo.Context) core.Actor {
	actor, _ := c.Get(contextKeyActor).(core.Actor)

	return actor
}
