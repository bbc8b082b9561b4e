package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"resell_front_end/internal/actions"
	"resell_front_end/internal/api"
	"resell_front_end/internal/cache"
	"resell_front_end/internal/config"
	"resell_front_end/internal/handlers"
	"resell_front_end/internal/middleware"
	"resell_front_end/internal/routes"
	"resell_front_end/internal/session"
)

const (
	actionRetention = 5 * time.Minute
	pruneInterval   = time.Minute
)

func main() {
	config.Load()

	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	cookieOpts := session.CookieOptions{
		MaxAge: int(cfg.SessionMaxAge.Seconds()),
		Secure: cfg.CookieSecure,
	}

	var (
		store    sessions.Store
		counter  middleware.Counter
		notifier actions.Notifier
	)

	// ✅ Redis optionnel : sessions côté serveur, rate limit, diffusion des actions
	if cfg.RedisEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := cache.InitRedis(ctx, cache.RedisConfig{
			Host:     cfg.RedisHost,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cancel()
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer rdb.Close()

		keys := [][]byte{[]byte(cfg.SessionSecret)}
		if cfg.SessionEncryptionKey != "" {
			keys = append(keys, []byte(cfg.SessionEncryptionKey))
		}
		store = cache.NewRedisStore(rdb, session.DefaultOptions(cookieOpts), keys...)
		counter = cache.NewCounter(rdb)
		notifier = cache.NewNotifier(rdb)
	} else {
		log.Println("⚠️ REDIS_HOST absent : sessions en cookie, rate limit désactivé")
		var encKey []byte
		if cfg.SessionEncryptionKey != "" {
			encKey = []byte(cfg.SessionEncryptionKey)
		}
		store = session.NewCookieStore([]byte(cfg.SessionSecret), encKey, cookieOpts)
	}

	client := api.New(cfg.APIBaseURL, nil,
		api.WithTimeout(cfg.APITimeout),
		api.WithUserAgent("resell-front/1.0"),
	)
	registry := actions.NewRegistry(notifier)
	go pruneActions(registry)

	h := handlers.New(client, registry).WithOrigins(cfg.CORSOrigins)

	r := gin.Default()
	r.HTMLRender = handlers.MustLoadTemplates()
	routes.RegisterRoutes(r, routes.Deps{
		Handler:     h,
		Sessions:    store,
		Counter:     counter,
		CORSOrigins: cfg.CORSOrigins,
	})

	log.Printf("🚀 Storefront Resell lancé sur le port %s (backend %s)", cfg.Port, client.BaseURL())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("❌ Serveur arrêté: %v", err)
	}
}

// pruneActions oublie régulièrement les actions résolues
func pruneActions(registry *actions.Registry) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for range ticker.C {
		if n := registry.Prune(actionRetention); n > 0 {
			log.Printf("🧹 %d action(s) résolue(s) oubliée(s)", n)
		}
	}
}
