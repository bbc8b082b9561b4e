package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que la session a le rôle ADMIN avant tout appel admin
func RequireAdmin(c *gin.Context) {
	sc := CurrentSession(c)
	if sc == nil || !sc.Role().IsAdmin() {
		username := ""
		if sc != nil {
			username = sc.Username()
		}
		log.Printf("⛔ Accès admin refusé pour %q sur %s", username, c.Request.URL.Path)
		c.Redirect(http.StatusSeeOther, "/dashboard")
		c.Abort()
		return
	}
	c.Next()
}
