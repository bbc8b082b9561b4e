package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"resell_front_end/internal/handlers"
	"resell_front_end/internal/middleware"
)

// Deps regroupe ce dont la table de routes a besoin
type Deps struct {
	Handler     *handlers.Handler
	Sessions    sessions.Store
	Counter     middleware.Counter
	CORSOrigins []string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	h := d.Handler
	r.Use(middleware.LoadSession(d.Sessions))

	// Pages publiques
	r.GET("/", h.Home)
	r.GET("/login", h.LoginPage)
	r.POST("/login", middleware.LoginRateLimit(d.Counter), h.Login)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.POST("/logout", h.Logout)

	// Pages connectées
	auth := r.Group("/", middleware.RequireLogin)
	{
		auth.GET("/dashboard", h.Dashboard)
		auth.GET("/items/:id", h.ItemDetail)
		auth.GET("/post-item", h.PostItemPage)
		auth.POST("/post-item", h.PostItem)
		auth.GET("/my-items", h.MyItems)
		auth.GET("/my-items/:id/edit", h.EditItemPage)
		auth.POST("/my-items/:id/edit", h.EditItem)
		auth.POST("/my-items/:id/delete", h.DeleteMyItem)

		auth.GET("/cart", h.Cart)
		auth.POST("/cart/add", middleware.CartRateLimit(d.Counter), h.AddToCart)
		auth.POST("/cart/remove/:id", h.RemoveFromCart)
		auth.POST("/cart/checkout", h.Checkout)
	}

	// Administration : le rôle est vérifié avant tout appel au backend
	admin := r.Group("/admin", middleware.RequireLogin, middleware.RequireAdmin)
	{
		admin.GET("", h.Admin)
		admin.POST("/items/:id/delete", middleware.AuditAdminAction("item.delete"), h.AdminDeleteItem)
		admin.POST("/users/:id/toggle-admin", middleware.AuditAdminAction("user.toggle_admin"), h.AdminToggleRole)
	}

	// API JSON des actions asynchrones
	apiCORS := corsMiddleware(d.CORSOrigins)
	r.OPTIONS("/api/*path", apiCORS)
	api := r.Group("/api", apiCORS, middleware.RequireLogin)
	{
		api.POST("/cart/add", middleware.CartRateLimit(d.Counter), h.APIAddToCart)
		api.GET("/actions/:id", h.GetAction)
		api.DELETE("/actions/:id", h.CancelAction)
	}

	r.GET("/ws/cart", middleware.RequireLogin, h.CartSocket)
}

// corsMiddleware n'ouvre l'API qu'aux origines listées dans CORS_ORIGINS
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
