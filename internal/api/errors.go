package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"
)

// Kind classe les échecs d'appel au backend
type Kind int

const (
	KindTransport  Kind = iota + 1 // aucune réponse reçue
	KindAuth                       // 401 / 403
	KindValidation                 // autres 4xx, message métier
	KindServer                     // 5xx ou réponse illisible
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error est l'échec d'une opération du client, avec le message du serveur s'il y en a un
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	// Body garde le corps JSON d'erreur tel que renvoyé par le serveur
	Body json.RawMessage
	Err  error
}

// Payload décode Body quand le serveur a renvoyé un objet JSON
func (e *Error) Payload() map[string]any {
	if len(e.Body) == 0 {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal(e.Body, &payload); err != nil {
		return nil
	}
	return payload
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage renvoie le message du serveur, ou un texte générique selon la catégorie
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindTransport:
		return "Impossible de joindre le serveur. Réessayez plus tard."
	case KindAuth:
		if e.Status == http.StatusForbidden {
			return "Accès refusé."
		}
		return "Session expirée ou invalide, veuillez vous reconnecter."
	case KindValidation:
		return "Requête refusée par le serveur."
	default:
		return "Erreur du serveur. Réessayez plus tard."
	}
}

// IsKind indique si err est une *Error de la catégorie donnée
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// UserMessage convertit n'importe quelle erreur en texte affichable
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return "Une erreur inattendue est survenue."
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

const maxMessageLen = 300

func statusError(op string, status int, body []byte) *Error {
	e := &Error{
		Op:      op,
		Kind:    kindForStatus(status),
		Status:  status,
		Message: bodyMessage(body),
	}
	if trimmed := bytes.TrimSpace(body); json.Valid(trimmed) && len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		e.Body = json.RawMessage(append([]byte(nil), trimmed...))
	}
	return e
}

// bodyMessage extrait le message d'un corps de réponse : {"message"}, {"error"},
// un objet de champs en erreur, une chaîne JSON, ou le texte brut du backend
func bodyMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}
	switch text[0] {
	case '{':
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err == nil {
			return objectMessage(payload)
		}
	case '"':
		var msg string
		if err := json.Unmarshal(body, &msg); err == nil {
			return truncate(msg)
		}
	case '<':
		// page HTML d'un proxy, pas un message utilisateur
		return ""
	}
	return truncate(text)
}

// objectMessage : le corps d'erreur Spring met la raison HTTP dans "error"
// et le vrai texte dans "message", d'où l'ordre de lecture
func objectMessage(payload map[string]any) string {
	if msg, ok := payload["message"].(string); ok && msg != "" {
		return truncate(msg)
	}
	if _, spring := payload["status"].(float64); spring {
		return ""
	}
	if msg, ok := payload["error"].(string); ok && msg != "" {
		return truncate(msg)
	}

	// {"champ": "erreur", ...} : validation par champ
	keys := make([]string, 0, len(payload))
	for k, v := range payload {
		if msg, ok := v.(string); ok && msg != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" : "+payload[k].(string))
	}
	return truncate(strings.Join(parts, ", "))
}

// truncate coupe sur une frontière de rune
func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxMessageLen {
		return s
	}
	cut := maxMessageLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
