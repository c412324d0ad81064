package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"symptom-predictor/internal/service"
)

const (
	sessionCookieName = "session"
	sessionIDKey      = "session_id"
)

// sessionMiddleware lee la cookie firmada y guarda el id de sesión en el contexto.
// Una cookie ausente o inválida no corta el request; la sesión se crea al primer uso.
func sessionMiddleware(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions != nil {
			if token, err := c.Cookie(sessionCookieName); err == nil {
				if id, err := sessions.Parse(token); err == nil {
					c.Set(sessionIDKey, id)
				}
			}
		}
		c.Next()
	}
}

// GetSessionID obtiene el id de sesión desde el contexto.
func GetSessionID(c *gin.Context) (string, bool) {
	val, ok := c.Get(sessionIDKey)
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// ensureSession devuelve la sesión actual o emite una nueva y la envía como cookie.
func ensureSession(c *gin.Context, sessions *service.SessionService) (string, error) {
	if id, ok := GetSessionID(c); ok {
		return id, nil
	}
	id, token, err := sessions.Issue()
	if err != nil {
		return "", err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(sessions.TTL().Seconds()), "/", "", false, true)
	c.Set(sessionIDKey, id)
	return id, nil
}
