package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ebursary-backend/internal/domain/workflow"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
)

const (
	contextActorKey = "actor"
	tokenIssuer     = "ebursary"
)

// Claims carried by API tokens: sub is the actor id.
type Claims struct {
	jwt.StandardClaims
	Name string `json:"name"`
	Role string `json:"role"`
}

var errInvalidToken = errors.New("invalid token")

// IssueToken signs an HS256 token for actor, valid for ttl from now.
func IssueToken(secret []byte, actor workflow.Actor, ttl time.Duration, now time.Time) (string, error) {
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    tokenIssuer,
			Subject:   actor.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Name: actor.Name,
		Role: string(actor.Role),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies signature, algorithm and expiry, and maps the claims to
// an Actor. Tokens without a subject or name, or with an unknown role, are refused.
func ParseToken(secret []byte, raw string) (workflow.Actor, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return workflow.Actor{}, errInvalidToken
	}
	role := workflow.ParseRole(claims.Role)
	if strings.TrimSpace(claims.Subject) == "" || strings.TrimSpace(claims.Name) == "" || !role.Known() {
		return workflow.Actor{}, errInvalidToken
	}
	return workflow.Actor{ID: claims.Subject, Name: strings.TrimSpace(claims.Name), Role: role}, nil
}

// JWTAuth requires "Authorization: Bearer <token>" and stores the actor in the
// echo context.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(h, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			actor, err := ParseToken(secret, strings.TrimSpace(raw))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}
			c.Set(contextActorKey, actor)
			return next(c)
		}
	}
}

func ActorFrom(c echo.Context) (workflow.Actor, bool) {
	a, ok := c.Get(contextActorKey).(workflow.Actor)
	return a, ok
}

// WithActor is used by tests and internal callers that authenticate elsewhere.
func WithActor(c echo.Context, a workflow.Actor) { c.Set(contextActorKey, a) }
