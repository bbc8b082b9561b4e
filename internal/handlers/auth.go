package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resell_front_end/internal/api"
	"resell_front_end/internal/middleware"
	"resell_front_end/internal/models"
	"resell_front_end/internal/session"
)

func (h *Handler) Home(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) LoginPage(c *gin.Context) {
	if sc := middleware.CurrentSession(c); sc != nil && sc.Authenticated() {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{"Email": ""})
}

// 🟢 POST /login
func (h *Handler) Login(c *gin.Context) {
	creds := models.Credentials{
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}
	if creds.Email == "" || creds.Password == "" {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{
			"Email": creds.Email,
			"Error": "Email et mot de passe requis",
		})
		return
	}

	resp, err := h.client(c).Login(c.Request.Context(), creds)
	if err != nil {
		log.Printf("⚠️ Connexion refusée pour %s: %v", creds.Email, err)
		h.render(c, loginStatus(err), "login.html", gin.H{
			"Email": creds.Email,
			"Error": api.UserMessage(err),
		})
		return
	}

	sc := middleware.CurrentSession(c)
	session.Start(sc, resp)
	log.Printf("✅ Connexion de %s (rôle %s, token %s...)", resp.Username, sc.Role().Label(), tokenPrefix(resp.Token))
	h.redirect(c, "/dashboard")
}

func (h *Handler) RegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{"Form": models.RegisterInput{}})
}

// 🟢 POST /register : inscription puis connexion avec les mêmes identifiants
func (h *Handler) Register(c *gin.Context) {
	in := models.RegisterInput{
		Firstname: strings.TrimSpace(c.PostForm("firstname")),
		Lastname:  strings.TrimSpace(c.PostForm("lastname")),
		Email:     strings.TrimSpace(c.PostForm("email")),
		Password:  c.PostForm("password"),
	}
	form := in
	form.Password = ""
	if in.Firstname == "" || in.Lastname == "" || in.Email == "" || in.Password == "" {
		h.render(c, http.StatusBadRequest, "register.html", gin.H{
			"Form":  form,
			"Error": "Tous les champs sont requis",
		})
		return
	}

	ctx := c.Request.Context()
	client := h.client(c)
	msg, err := client.Register(ctx, in)
	if err != nil {
		h.render(c, statusFor(err), "register.html", gin.H{
			"Form":  form,
			"Error": api.UserMessage(err),
		})
		return
	}
	log.Printf("✅ Inscription de %s: %s", in.Email, msg)

	resp, err := client.Login(ctx, models.Credentials{Email: in.Email, Password: in.Password})
	if err != nil {
		log.Printf("⚠️ Connexion automatique échouée pour %s: %v", in.Email, err)
		h.flash(c, session.FlashInfo, "Compte créé, connectez-vous.")
		h.redirect(c, "/login")
		return
	}
	session.Start(middleware.CurrentSession(c), resp)
	h.flash(c, session.FlashSuccess, "Bienvenue "+resp.Username+" !")
	h.redirect(c, "/dashboard")
}

// 🟢 POST /logout : effacement local uniquement, pas d'appel au backend
func (h *Handler) Logout(c *gin.Context) {
	if sc := middleware.CurrentSession(c); sc != nil {
		log.Printf("👋 Déconnexion de %s", sc.Username())
		sc.Clear()
		h.actions.ReleaseOwner(sc.Owner())
	}
	h.redirect(c, "/login")
}

// loginStatus : 401 pour des identifiants refusés (compté par le rate limit)
func loginStatus(err error) int {
	if api.IsKind(err, api.KindAuth) || api.IsKind(err, api.KindValidation) {
		return http.StatusUnauthorized
	}
	return statusFor(err)
}

// tokenPrefix ne garde que le début du jeton pour les logs
func tokenPrefix(token string) string {
	return token[:min(8, len(token)/2)]
}
