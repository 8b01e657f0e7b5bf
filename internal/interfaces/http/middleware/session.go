// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tienda-org/storefront/internal/config"
)

const cartSessionKey = "cart_id"

// Sessions installs the signed cookie session that carries the cart id
func Sessions(cfg *config.Config) gin.HandlerFunc {
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		Secure:   cfg.Session.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(cfg.Session.CookieName, store)
}

// CartSessionID returns the session's cart id, assigning one on first use
func CartSessionID(c *gin.Context) (string, error) {
	session := sessions.Default(c)
	if id, ok := session.Get(cartSessionKey).(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	session.Set(cartSessionKey, id)
	if err := session.Save(); err != nil {
		return "", err
	}
	return id, nil
}
