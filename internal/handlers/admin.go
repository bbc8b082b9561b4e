package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resell_front_end/internal/api"
	"resell_front_end/internal/session"
)

const (
	adminViewItems = "items"
	adminViewUsers = "users"
)

// 🛡️ GET /admin?view=items|users (derrière middleware.RequireAdmin)
func (h *Handler) Admin(c *gin.Context) {
	ctx := c.Request.Context()
	client := h.client(c)

	view := c.DefaultQuery("view", adminViewItems)
	data := gin.H{"View": view}
	switch view {
	case adminViewUsers:
		users, err := client.AdminListUsers(ctx)
		if err != nil {
			h.fail(c, "admin utilisateurs", err)
			return
		}
		data["Users"] = users
	default:
		data["View"] = adminViewItems
		items, err := client.AdminListItems(ctx)
		if err != nil {
			h.fail(c, "admin articles", err)
			return
		}
		data["Items"] = items
	}
	h.render(c, http.StatusOK, "admin.html", data)
}

// 🛡️ POST /admin/items/:id/delete
func (h *Handler) AdminDeleteItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.flash(c, session.FlashError, "Article invalide")
		h.redirect(c, "/admin?view=items")
		return
	}
	if err := h.client(c).AdminDeleteItem(c.Request.Context(), id); err != nil {
		c.Error(err)
		h.flash(c, session.FlashError, api.UserMessage(err))
	} else {
		h.flash(c, session.FlashSuccess, "Article supprimé")
	}
	h.redirect(c, "/admin?view=items")
}

// 🛡️ POST /admin/users/:id/toggle-admin
func (h *Handler) AdminToggleRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.flash(c, session.FlashError, "Utilisateur invalide")
		h.redirect(c, "/admin?view=users")
		return
	}
	role, err := h.client(c).AdminToggleRole(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		h.flash(c, session.FlashError, api.UserMessage(err))
	} else {
		log.Printf("🔑 Utilisateur %d passe %s", id, role.Label())
		h.flash(c, session.FlashSuccess, "Nouveau rôle : "+role.Label())
	}
	h.redirect(c, "/admin?view=users")
}
