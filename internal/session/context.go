package session

import (
	"encoding/gob"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"resell_front_end/internal/models"
)

// CookieName est le nom du cookie de session du storefront
const CookieName = "resell_session"

const ownerKey = "sid"

// Flash est un message affiché une seule fois après une redirection
type Flash struct {
	Kind    string
	Message string
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

func init() {
	gob.Register(Flash{})
}

// Context est la session d'un navigateur, chargée pour la durée d'une requête.
// Les écritures sont visibles immédiatement et persistées par Save.
type Context struct {
	raw *sessions.Session
	r   *http.Request
	w   http.ResponseWriter
}

// Load récupère (ou crée) la session du navigateur. Un cookie illisible
// (clé changée, session Redis expirée) donne une session vide, pas une erreur.
func Load(store sessions.Store, w http.ResponseWriter, r *http.Request) *Context {
	raw, err := store.Get(r, CookieName)
	if raw == nil {
		raw = sessions.NewSession(store, CookieName)
		raw.Options = &sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
		raw.IsNew = true
	} else if err != nil {
		// store.New renvoie déjà une session vide avec ses options
		raw.Values = make(map[interface{}]interface{})
	}
	sc := &Context{raw: raw, r: r, w: w}
	if _, ok := sc.value(ownerKey); !ok {
		raw.Values[ownerKey] = uuid.NewString()
	}
	return sc
}

func (s *Context) Set(token, username, role string) {
	s.raw.Values[FieldToken] = token
	s.raw.Values[FieldUsername] = username
	s.raw.Values[FieldRole] = role
}

func (s *Context) Get(field string) (string, bool) {
	switch field {
	case FieldToken, FieldUsername, FieldRole:
		return s.value(field)
	}
	return "", false
}

// Clear retire les trois champs; l'identifiant navigateur et les flashes restent
func (s *Context) Clear() {
	for _, f := range fields {
		delete(s.raw.Values, f)
	}
}

func (s *Context) Save() error {
	return s.raw.Save(s.r, s.w)
}

func (s *Context) Token() (string, bool) {
	return nonEmpty(s.Get(FieldToken))
}

func (s *Context) Username() string {
	v, _ := s.Get(FieldUsername)
	return v
}

func (s *Context) Role() models.Role {
	v, _ := s.Get(FieldRole)
	return models.ParseRole(v)
}

func (s *Context) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// Owner identifie le navigateur (clé des actions en cours)
func (s *Context) Owner() string {
	v, _ := s.value(ownerKey)
	return v
}

func (s *Context) AddFlash(kind, message string) {
	s.raw.AddFlash(Flash{Kind: kind, Message: message})
}

// Flashes consomme les messages en attente
func (s *Context) Flashes() []Flash {
	var out []Flash
	for _, f := range s.raw.Flashes() {
		if fl, ok := f.(Flash); ok {
			out = append(out, fl)
		}
	}
	return out
}

func (s *Context) value(key string) (string, bool) {
	v, ok := s.raw.Values[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}
