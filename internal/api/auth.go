package api

import (
	"context"
	"net/http"

	"resell_front_end/internal/models"
)

// Login n'écrit rien dans la session : c'est à l'appelant de le faire
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.doJSON(ctx, "Login", http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &Error{Op: "Login", Kind: KindServer, Status: http.StatusOK, Message: "Réponse de connexion sans token"}
	}
	return &resp, nil
}

// Register renvoie le message texte du backend
func (c *Client) Register(ctx context.Context, in models.RegisterInput) (string, error) {
	var msg string
	if err := c.doJSON(ctx, "Register", http.MethodPost, "/auth/register", in, &msg); err != nil {
		return "", err
	}
	return msg, nil
}
