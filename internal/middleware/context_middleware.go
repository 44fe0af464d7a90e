package middleware

import (
	"github.com/digirioh/hub/internal/config"
	"github.com/digirioh/hub/internal/service"

	"github.com/gin-gonic/gin"
)

// ContextMiddleware resolves the session cookie into a UserContext for
// downstream handlers. Requests without a valid session still pass
// through, the exchange endpoint accepts anonymous callers.
type ContextMiddleware struct {
	auth *service.AuthService
}

func NewContextMiddleware(auth *service.AuthService) *ContextMiddleware {
	return &ContextMiddleware{
		auth: auth,
	}
}

func (m *ContextMiddleware) Init() error {
	return nil
}

func (m *ContextMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := m.auth.GetSessionCookie(c)

		if err != nil || cookie.UserID == "" {
			c.Set("context", &config.UserContext{})
			c.Next()
			return
		}

		c.Set("context", &config.UserContext{
			UserID:     cookie.UserID,
			Email:      cookie.Email,
			Name:       cookie.Name,
			IsLoggedIn: true,
		})
		c.Next()
	}
}
