package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"resell_front_end/internal/session"
)

const sessionKey = "session"

// LoadSession charge la session du navigateur et la rend disponible aux handlers
func LoadSession(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := session.Load(store, c.Writer, c.Request)
		c.Set(sessionKey, sc)
		c.Next()
	}
}

// CurrentSession renvoie la session chargée par LoadSession
func CurrentSession(c *gin.Context) *session.Context {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sc, _ := v.(*session.Context)
	return sc
}

// SaveSession persiste la session; à appeler avant d'écrire la réponse
func SaveSession(c *gin.Context) {
	sc := CurrentSession(c)
	if sc == nil {
		return
	}
	if err := sc.Save(); err != nil {
		log.Printf("❌ Erreur sauvegarde session: %v", err)
	}
}

// RequireLogin renvoie vers /login les navigateurs sans jeton
func RequireLogin(c *gin.Context) {
	sc := CurrentSession(c)
	if sc == nil || !sc.Authenticated() {
		if isAPI(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Connexion requise"})
			return
		}
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return
	}
	c.Next()
}
