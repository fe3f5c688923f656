package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coursehub/internal/access"
	"coursehub/internal/models/db_models"
	"coursehub/pkg/utils"
)

const ActorKey = "actor"

// UserFinder loads the user behind a token so that role changes and
// deleted accounts take effect without waiting for the token to expire.
type UserFinder interface {
	FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error)
}

// JWTAuthMiddleware resolves the caller. Requests without an Authorization
// header continue as anonymous; a header that does not verify is rejected.
func JWTAuthMiddleware(secret []byte, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			setActor(c, access.Anonymous())
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.FindById(c.Request.Context(), userID)
		if err != nil {
			utils.HandleServiceError(c, err)
			c.Abort()
			return
		}
		if user == nil {
			utils.RespondError(c, http.StatusUnauthorized, "User no longer exists")
			c.Abort()
			return
		}

		setActor(c, access.ForUser(user))
		c.Next()
	}
}

// RequireAuth rejects anonymous callers. It must run after JWTAuthMiddleware.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Actor(c).IsAnonymous() {
			utils.RespondError(c, http.StatusUnauthorized, "Authentication credentials were not provided")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Actor returns the caller attached by JWTAuthMiddleware.
func Actor(c *gin.Context) access.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if a, ok := v.(access.Actor); ok {
			return a
		}
	}
	return access.FromContext(c.Request.Context())
}

func setActor(c *gin.Context, a access.Actor) {
	c.Set(ActorKey, a)
	c.Request = c.Request.WithContext(access.WithActor(c.Request.Context(), a))
}
