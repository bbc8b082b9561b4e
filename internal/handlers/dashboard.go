package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resell_front_end/internal/api"
	"resell_front_end/internal/middleware"
	"resell_front_end/internal/session"
)

// 🟢 GET /dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	client := h.client(c)

	items, err := client.ListItems(ctx)
	if err != nil {
		h.fail(c, "liste des articles", err)
		return
	}

	// le badge du panier n'empêche pas d'afficher la liste
	count := 0
	if cart, err := client.GetCart(ctx); err != nil {
		log.Printf("⚠️ Panier indisponible pour le badge: %v", err)
	} else {
		count = cart.Count()
	}

	h.render(c, http.StatusOK, "dashboard.html", gin.H{
		"Items":     items,
		"CartCount": count,
	})
}

// 🟢 GET /items/:id
func (h *Handler) ItemDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.render(c, http.StatusBadRequest, "error.html", gin.H{"Error": "Identifiant d'article invalide"})
		return
	}
	item, err := h.client(c).GetItem(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "détail article", err)
		return
	}
	h.render(c, http.StatusOK, "item.html", gin.H{"Item": item})
}

// 🟢 POST /cart/add : le badge se met à jour au prochain rendu, pas avant la réponse
func (h *Handler) AddToCart(c *gin.Context) {
	back := middleware.BackTo(c, "/dashboard")
	itemID, ok := formID(c, "itemId")
	if !ok {
		h.flash(c, session.FlashError, "Article invalide")
		h.redirect(c, back)
		return
	}

	msg, err := h.client(c).AddToCart(c.Request.Context(), itemID)
	if err != nil {
		log.Printf("❌ Ajout panier %d: %v", itemID, err)
		h.flash(c, session.FlashError, api.UserMessage(err))
		h.redirect(c, back)
		return
	}
	if msg == "" {
		msg = "Article ajouté au panier"
	}
	h.flash(c, session.FlashSuccess, msg)
	h.redirect(c, back)
}
