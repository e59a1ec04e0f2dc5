package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
	"github.com/dwarvesf/funds-backend/internal/view"
)

const actorKey = "funds_actor"

var (
	errMissingToken = errors.New("missing authorization header")
	errBadScheme    = errors.New("invalid authorization format")
	errInvalidToken = errors.New("invalid token")
)

// Claims carried by access tokens issued by the forum.
type Claims struct {
	jwt.RegisteredClaims
	UserID  uint `json:"user_id"`
	IsAdmin bool `json:"admin"`
}

type AuthMiddleware struct {
	secret []byte
	logger *logger.Logger
}

func NewAuthMiddleware(secret string, logger *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		secret: []byte(secret),
		logger: logger,
	}
}

// Authenticate validates the bearer token and stores the caller as a
// funds.Actor on the gin context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := m.parse(c.GetHeader("Authorization"))
		if err != nil {
			m.logger.Warn("[Authenticate][parse]", map[string]string{
				"path":  c.FullPath(),
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, view.CreateResponse[any](nil, err, nil, "unauthorized"))
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, view.CreateResponse[any](nil, funds.ErrForbidden, nil, "admin only"))
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) parse(header string) (funds.Actor, error) {
	if header == "" {
		return funds.Actor{}, errMissingToken
	}
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return funds.Actor{}, errBadScheme
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return funds.Actor{}, errors.Wrap(errInvalidToken, err.Error())
	}
	if !token.Valid {
		return funds.Actor{}, errInvalidToken
	}

	userID := claims.UserID
	if userID == 0 && claims.Subject != "" {
		id, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			return funds.Actor{}, errors.Wrap(errInvalidToken, "subject is not a user id")
		}
		userID = uint(id)
	}
	if userID == 0 {
		return funds.Actor{}, errors.Wrap(errInvalidToken, "no user id")
	}

	return funds.Actor{ID: userID, IsAdmin: claims.IsAdmin}, nil
}

// ActorFrom returns the authenticated caller, or the zero Actor on
// unauthenticated routes.
func ActorFrom(c *gin.Context) funds.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(funds.Actor); ok {
			return actor
		}
	}
	return funds.Actor{}
}

// SignToken issues an HS256 access token for actor.
func SignToken(secret string, actor funds.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(actor.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  actor.ID,
		IsAdmin: actor.IsAdmin,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
