// Package handlers contient les vues du storefront : chaque vue lit le
// backend à la requête, affiche les données ou l'erreur, et renvoie les
// actions (formulaires POST) vers une redirection.
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resell_front_end/internal/actions"
	"resell_front_end/internal/api"
	"resell_front_end/internal/middleware"
	"resell_front_end/internal/session"
)

type Handler struct {
	api     *api.Client
	actions *actions.Registry
	origins []string
}

// New prend un client sans session : chaque requête le lie à la session du navigateur
func New(client *api.Client, registry *actions.Registry) *Handler {
	if registry == nil {
		registry = actions.NewRegistry(nil)
	}
	return &Handler{api: client, actions: registry}
}

// WithOrigins autorise d'autres origines pour le websocket (CORS_ORIGINS)
func (h *Handler) WithOrigins(origins []string) *Handler {
	h.origins = origins
	return h
}

func (h *Handler) Actions() *actions.Registry {
	return h.actions
}

// client renvoie le client lié à la session de la requête
func (h *Handler) client(c *gin.Context) *api.Client {
	sc := middleware.CurrentSession(c)
	if sc == nil {
		return h.api.WithTokens(nil)
	}
	return h.api.WithTokens(sc)
}

// render complète les données communes à toutes les pages et sauvegarde
// la session avant d'écrire la réponse (les flashes sont consommés ici)
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	sc := middleware.CurrentSession(c)
	data["Authenticated"] = sc != nil && sc.Authenticated()
	data["Username"] = ""
	data["IsAdmin"] = false
	data["Flashes"] = []session.Flash(nil)
	if sc != nil {
		data["Username"] = sc.Username()
		data["IsAdmin"] = sc.Role().IsAdmin()
		data["Flashes"] = sc.Flashes()
	}
	if _, ok := data["Error"]; !ok {
		data["Error"] = ""
	}
	if _, ok := data["CartCount"]; !ok {
		data["CartCount"] = 0
	}
	middleware.SaveSession(c)
	c.HTML(status, page, data)
}

// redirect sauvegarde la session puis renvoie un 303
func (h *Handler) redirect(c *gin.Context, location string) {
	middleware.SaveSession(c)
	c.Redirect(http.StatusSeeOther, location)
}

func (h *Handler) flash(c *gin.Context, kind, message string) {
	if sc := middleware.CurrentSession(c); sc != nil {
		sc.AddFlash(kind, message)
	}
}

// fail affiche l'erreur du backend sur la page d'erreur générique
func (h *Handler) fail(c *gin.Context, op string, err error) {
	log.Printf("❌ %s: %v", op, err)
	// jeton refusé : la session locale ne sert plus à rien
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		if sc := middleware.CurrentSession(c); sc != nil {
			sc.Clear()
			h.actions.ReleaseOwner(sc.Owner())
		}
		h.flash(c, session.FlashError, apiErr.UserMessage())
		h.redirect(c, "/login")
		return
	}
	h.render(c, statusFor(err), "error.html", gin.H{"Error": api.UserMessage(err)})
}

// statusFor traduit une erreur du backend en code HTTP pour la page rendue
func statusFor(err error) int {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}
	if apiErr.Kind != api.KindTransport && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func formID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.PostForm(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
