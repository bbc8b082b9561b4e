package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
)

// AuditAdminAction journalise une action de modération. Le handler signale
// un échec via c.Error.
func AuditAdminAction(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID := c.Param("id")

		c.Next()

		admin := ""
		if sc := CurrentSession(c); sc != nil {
			admin = sc.Username()
		}
		if last := c.Errors.Last(); last != nil {
			log.Printf("🚨 Audit admin: %s par %q sur %s ÉCHOUÉ: %v", action, admin, targetID, last.Err)
			return
		}
		log.Printf("🛡️ Audit admin: %s par %q sur %s", action, admin, targetID)
	}
}
