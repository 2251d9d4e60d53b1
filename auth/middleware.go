package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/blogd/errors"
	"github.com/kbukum/blogd/store"
)

// ContextUserKey is the Gin context key holding the authenticated user.
const ContextUserKey = "auth.user"

// RequireAuth returns a Gin middleware that resolves the Authorization
// bearer token and stores the authenticated user in the context. Any
// failure aborts the request with the resolver's error; handlers behind
// this middleware can assume CurrentUser succeeds.
func RequireAuth(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWith(c, err)
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), tokenString)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(c *gin.Context) (*store.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*store.User)
	return user, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. A missing or malformed header is indistinguishable from a bad
// token to the client.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.InvalidToken()
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.InvalidToken()
	}
	return parts[1], nil
}

func abortWith(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	internal := apperrors.Internal(err)
	c.AbortWithStatusJSON(internal.HTTPStatus, internal.ToResponse())
}
