// Package session contient l'état d'authentification côté client :
// token, username et role. Le contenu du token n'est jamais interprété.
package session

import (
	"sync"

	"resell_front_end/internal/models"
)

const (
	FieldToken    = "token"
	FieldUsername = "username"
	FieldRole     = "role"
)

var fields = []string{FieldToken, FieldUsername, FieldRole}

// Store est le contrat commun aux sessions navigateur et mémoire
type Store interface {
	Set(token, username, role string)
	Get(field string) (string, bool)
	Clear()
}

// Memory est une session en mémoire : vide à la création, vidée par Clear.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Set(token, username, role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[FieldToken] = token
	m.values[FieldUsername] = username
	m.values[FieldRole] = role
}

func (m *Memory) Get(field string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[field]
	return v, ok
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range fields {
		delete(m.values, f)
	}
}

// Token satisfait api.TokenSource
func (m *Memory) Token() (string, bool) {
	return nonEmpty(m.Get(FieldToken))
}

func (m *Memory) Role() models.Role {
	role, _ := m.Get(FieldRole)
	return models.ParseRole(role)
}

func nonEmpty(v string, ok bool) (string, bool) {
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Start ouvre la session à partir d'une réponse de connexion; le rôle est
// normalisé en USER ou ADMIN
func Start(s Store, resp *models.LoginResponse) {
	s.Set(resp.Token, resp.Username, models.ParseRole(resp.Role).Label())
}
