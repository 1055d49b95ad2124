package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warinth/barlink-backend/sessions"
	"github.com/warinth/barlink-backend/utils"
)

// SessionCookieName cookie yang membawa id session tamu.
const SessionCookieName = "barlink_session"

// SessionContextKey key di gin context untuk snapshot session.
const SessionContextKey = "guest_session"

// SessionMiddleware mewajibkan session tamu yang masih hidup. Snapshot
// session disimpan di context supaya handler tidak membaca store dua kali.
func SessionMiddleware(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookieName)
		if err != nil || id == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("belum check-in"))
			c.Abort()
			return
		}

		sess, ok := store.Get(id)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("session kadaluarsa, silakan check-in lagi"))
			c.Abort()
			return
		}

		c.Set(SessionContextKey, sess)
		c.Next()
	}
}

// GetSession mengambil snapshot session yang sudah ditaruh middleware.
func GetSession(c *gin.Context) (sessions.Session, bool) {
	v, ok := c.Get(SessionContextKey)
	if !ok {
		return sessions.Session{}, false
	}
	sess, ok := v.(sessions.Session)
	return sess, ok
}
