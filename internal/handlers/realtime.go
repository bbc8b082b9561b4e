package handlers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"resell_front_end/internal/actions"
	"resell_front_end/internal/middleware"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
)

// checkOrigin accepte le même hôte et les origines CORS configurées
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && u.Host == r.Host {
		return true
	}
	for _, allowed := range h.origins {
		if allowed == origin {
			return true
		}
	}
	return false
}

// 🔌 GET /ws/cart : pousse la résolution des actions et le compte du panier
// confirmé par le serveur. La fermeture libère les actions du navigateur.
func (h *Handler) CartSocket(c *gin.Context) {
	sc := middleware.CurrentSession(c)
	owner := sc.Owner()
	client := h.api.WithTokens(snapshot(sc))

	upgrader := websocket.Upgrader{CheckOrigin: h.checkOrigin}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() {
		if n := h.actions.ReleaseOwner(owner); n > 0 {
			log.Printf("🧹 %d action(s) libérée(s) à la fermeture de la vue", n)
		}
	}()

	events, stop := h.actions.Subscribe(ctx, owner)
	defer stop()

	// lecture : seule la fermeture côté navigateur nous intéresse
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(v any) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(v)
	}

	if err := send(gin.H{"type": "connected", "message": "Synchronisation panier activée"}); err != nil {
		return
	}
	if cart, err := client.GetCart(ctx); err == nil {
		count := cart.Count()
		if err := send(actions.Event{Type: actions.EventCart, Count: &count}); err != nil {
			return
		}
	} else {
		log.Printf("⚠️ Panier initial indisponible: %v", err)
	}

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := send(ev); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-ticker.C:
			// Ping pour garder la connexion active
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
