package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resell_front_end/internal/actions"
	"resell_front_end/internal/api"
	"resell_front_end/internal/middleware"
	"resell_front_end/internal/session"
)

type addToCartInput struct {
	ItemID int64 `json:"itemId" binding:"required,gt=0"`
}

// 🟢 POST /api/cart/add : répond 202 avec une action pending, l'ajout part
// en arrière-plan et n'est confirmé qu'à la réponse du serveur
func (h *Handler) APIAddToCart(c *gin.Context) {
	var input addToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	sc := middleware.CurrentSession(c)
	owner := sc.Owner()
	client := h.api.WithTokens(snapshot(sc))

	a, actx := h.actions.Begin(context.Background(), owner, actions.KindAddToCart, input.ItemID)
	go h.runAddToCart(actx, client, owner, a.ID, input.ItemID)

	c.JSON(http.StatusAccepted, a)
}

func (h *Handler) runAddToCart(ctx context.Context, client *api.Client, owner, actionID string, itemID int64) {
	msg, err := client.AddToCart(ctx, itemID)
	if err != nil {
		if ctx.Err() != nil {
			// action libérée : la réponse n'intéresse plus personne
			return
		}
		log.Printf("❌ Ajout panier %d (action %s): %v", itemID, actionID, err)
		h.actions.Fail(actionID, api.UserMessage(err))
		return
	}
	if _, ok := h.actions.Confirm(actionID, msg); !ok {
		return
	}

	cart, err := client.GetCart(ctx)
	if err != nil {
		log.Printf("⚠️ Panier illisible après ajout (action %s): %v", actionID, err)
		return
	}
	h.actions.PublishCartCount(owner, cart.Count())
}

// 🟢 GET /api/actions/:id
func (h *Handler) GetAction(c *gin.Context) {
	a, ok := h.ownedAction(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, a)
}

// 🔴 DELETE /api/actions/:id : annule l'appel en cours
func (h *Handler) CancelAction(c *gin.Context) {
	a, ok := h.ownedAction(c)
	if !ok {
		return
	}
	h.actions.Release(a.ID)
	c.Status(http.StatusNoContent)
}

func (h *Handler) ownedAction(c *gin.Context) (actions.Action, bool) {
	a, ok := h.actions.Get(c.Param("id"))
	if !ok || a.Owner != middleware.CurrentSession(c).Owner() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Action introuvable"})
		return actions.Action{}, false
	}
	return a, true
}

// snapshot copie la session : le travail en arrière-plan survit à la requête
func snapshot(sc *session.Context) *session.Memory {
	m := session.NewMemory()
	if sc == nil {
		return m
	}
	tok, _ := sc.Token()
	role, _ := sc.Get(session.FieldRole)
	m.Set(tok, sc.Username(), role)
	return m
}
