package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resell_front_end/internal/api"
	"resell_front_end/internal/models"
	"resell_front_end/internal/session"
)

// 🟢 GET /cart
func (h *Handler) Cart(c *gin.Context) {
	cart, err := h.client(c).GetCart(c.Request.Context())
	if err != nil {
		h.fail(c, "panier", err)
		return
	}
	h.renderCart(c, http.StatusOK, cart, "")
}

func (h *Handler) renderCart(c *gin.Context, status int, cart *models.Cart, errMsg string) {
	h.render(c, status, "cart.html", gin.H{
		"Cart":      cart,
		"Total":     cart.Total(),
		"CartCount": cart.Count(),
		"Error":     errMsg,
	})
}

// 🔴 POST /cart/remove/:id (id de l'entrée du panier, pas de l'article)
func (h *Handler) RemoveFromCart(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.flash(c, session.FlashError, "Entrée de panier invalide")
		h.redirect(c, "/cart")
		return
	}
	if _, err := h.client(c).RemoveFromCart(c.Request.Context(), id); err != nil {
		log.Printf("❌ Retrait panier %d: %v", id, err)
		h.flash(c, session.FlashError, api.UserMessage(err))
	}
	h.redirect(c, "/cart")
}

// 🟢 POST /cart/checkout : en cas d'échec le panier est réaffiché avec le message du serveur
func (h *Handler) Checkout(c *gin.Context) {
	ctx := c.Request.Context()
	client := h.client(c)

	msg, err := client.Checkout(ctx)
	if err != nil {
		log.Printf("❌ Commande refusée: %v", err)
		cart, cartErr := client.GetCart(ctx)
		if cartErr != nil {
			h.fail(c, "panier", cartErr)
			return
		}
		h.renderCart(c, statusFor(err), cart, api.UserMessage(err))
		return
	}
	if msg == "" {
		msg = "Commande validée"
	}
	h.flash(c, session.FlashSuccess, msg)
	h.redirect(c, "/dashboard")
}
