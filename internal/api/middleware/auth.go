package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// ownerIDKey is the echo context key for the authenticated owner.
const ownerIDKey = "owner_id"

// Claims carries the owner id inside a signed token.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTAuth validates the bearer token and stores the owner id on the context.
// Every data endpoint sits behind this; the owner id scopes all queries.
func JWTAuth(cfg *config.Config) echo.MiddlewareFunc {
	secret := []byte(cfg.Auth.JWTSecret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c.Request().Header.Get("Authorization"))
			if err != nil {
				return unauthorized(c, err.Error())
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return unauthorized(c, "invalid or expired token")
			}

			ownerID := claims.UserID
			if ownerID == "" {
				ownerID = claims.Subject
			}
			if ownerID == "" {
				return unauthorized(c, "token carries no user id")
			}

			c.Set(ownerIDKey, ownerID)
			return next(c)
		}
	}
}

// OwnerID returns the authenticated owner id set by JWTAuth.
func OwnerID(c echo.Context) (string, error) {
	id, ok := c.Get(ownerIDKey).(string)
	if !ok || id == "" {
		return "", fmt.Errorf("owner id not found in request context")
	}
	return id, nil
}

// GenerateToken signs a token for the given owner. Used by tests and local
// tooling; the production identity provider issues real tokens.
func GenerateToken(secret, ownerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("malformed authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:     "unauthorized",
		Message:   msg,
		RequestID: RequestID(c),
		Timestamp: time.Now(),
	})
}
