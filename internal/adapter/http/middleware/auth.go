package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"worktrack/internal/core/domain"
	"worktrack/pkg/apierrors"
)

const actorKey = "actor"

var errInvalidClaims = errors.New("invalid actor claims")

// ActorClaims is the bearer token payload. Authentication itself happens elsewhere;
// this service only trusts the signature.
type ActorClaims struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for actor.
func IssueToken(secret []byte, actor domain.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := ActorClaims{
		UserID: actor.UserID,
		Role:   string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies tokenString and returns the actor it names.
func ParseToken(secret []byte, tokenString string) (domain.Actor, error) {
	claims := &ActorClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return domain.Actor{}, err
	}
	if !token.Valid {
		return domain.Actor{}, errInvalidClaims
	}

	actor := domain.Actor{UserID: claims.UserID, Role: domain.Role(claims.Role)}
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee:
	default:
		return domain.Actor{}, errInvalidClaims
	}
	if actor.UserID == 0 {
		return domain.Actor{}, errInvalidClaims
	}
	return actor, nil
}

// AuthMiddleware requires a valid bearer token and stores the actor on the context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		scheme, tokenString, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, lang),
			)
			return
		}

		actor, err := ParseToken(secret, strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, lang),
			)
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

func GetActor(c *gin.Context) (domain.Actor, bool) {
	value, exists := c.Get(actorKey)
	if !exists {
		return domain.Actor{}, false
	}
	actor, ok := value.(domain.Actor)
	return actor, ok
}
