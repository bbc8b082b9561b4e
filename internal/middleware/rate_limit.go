package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resell_front_end/internal/session"
)

const (
	// Limites par endpoint
	LoginMaxAttempts = 5
	CartMaxAdds      = 20

	// Durées de cooldown
	LoginCooldown = 15 * time.Minute
	CartWindow    = 1 * time.Minute
)

// Counter est implémenté par cache.Counter (Redis)
type Counter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	Cooldown(ctx context.Context, key string) (time.Duration, bool)
	StartCooldown(ctx context.Context, key string, d time.Duration) error
	Reset(ctx context.Context, keys ...string) error
}

// LoginRateLimit limite les échecs de connexion par email. Sans compteur
// (pas de Redis), la limite est désactivée.
func LoginRateLimit(counter Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
		if counter == nil || email == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "login_attempts:" + email
		cooldownKey := "login_cooldown:" + email

		// Vérifier si l'email est en cooldown
		if ttl, ok := counter.Cooldown(ctx, cooldownKey); ok {
			reject(c, fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", minutes(ttl)), ttl, "/login")
			return
		}

		// Vérifier le nombre de tentatives
		attempts, err := counter.Count(ctx, key)
		if err != nil {
			log.Printf("⚠️ Rate limit login indisponible: %v", err)
		}
		if attempts >= LoginMaxAttempts {
			if err := counter.StartCooldown(ctx, cooldownKey, LoginCooldown); err != nil {
				log.Printf("⚠️ Erreur activation cooldown: %v", err)
			}
			if err := counter.Reset(ctx, key); err != nil {
				log.Printf("⚠️ Erreur réinitialisation compteur: %v", err)
			}
			reject(c, fmt.Sprintf("Trop de tentatives échouées. Compte bloqué pendant %d minutes", int(LoginCooldown.Minutes())), LoginCooldown, "/login")
			return
		}

		c.Next()

		// Le handler répond 401 sur identifiants refusés, 303 sur succès
		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			if _, err := counter.Increment(ctx, key, LoginCooldown); err != nil {
				log.Printf("⚠️ Erreur incrément tentatives: %v", err)
			}
		case http.StatusSeeOther:
			if err := counter.Reset(ctx, key, cooldownKey); err != nil {
				log.Printf("⚠️ Erreur réinitialisation compteur: %v", err)
			}
		}
	}
}

// CartRateLimit limite les ajouts au panier par navigateur (anti-spam)
func CartRateLimit(counter Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := CurrentSession(c)
		if counter == nil || sc == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "cart_add:" + sc.Owner()

		requests, err := counter.Count(ctx, key)
		if err != nil {
			log.Printf("⚠️ Rate limit panier indisponible: %v", err)
		}
		if requests >= CartMaxAdds {
			reject(c, "Trop d'ajouts au panier. Ralentissez un peu", CartWindow, "/dashboard")
			return
		}
		if _, err := counter.Increment(ctx, key, CartWindow); err != nil {
			log.Printf("⚠️ Erreur incrément panier: %v", err)
		}

		c.Next()
	}
}

// reject répond 429 en JSON pour /api, sinon flash + retour à la page
func reject(c *gin.Context, message string, retry time.Duration, fallback string) {
	c.Header("Retry-After", fmt.Sprintf("%d", int(retry.Seconds())))
	if isAPI(c) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       message,
			"retry_after": int(retry.Seconds()),
		})
		return
	}
	if sc := CurrentSession(c); sc != nil {
		sc.AddFlash(session.FlashError, message)
		if err := sc.Save(); err != nil {
			log.Printf("❌ Erreur sauvegarde session: %v", err)
		}
	}
	c.Redirect(http.StatusSeeOther, BackTo(c, fallback))
	c.Abort()
}

func isAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.HasPrefix(c.Request.URL.Path, "/ws/")
}

// BackTo renvoie le champ "next" du formulaire s'il pointe vers une page locale
func BackTo(c *gin.Context, fallback string) string {
	if p := c.PostForm("next"); strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") {
		return p
	}
	return fallback
}

func minutes(d time.Duration) int {
	m := int(d.Minutes())
	if m < 1 {
		return 1
	}
	return m
}
