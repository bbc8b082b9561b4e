package api

import (
	"context"
	"net/http"
	"strconv"

	"resell_front_end/internal/models"
)

// AdminListItems inclut les articles déjà achetés
func (c *Client) AdminListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.doJSON(ctx, "AdminListItems", http.MethodGet, "/admin/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AdminDeleteItem(ctx context.Context, id int64) error {
	path := "/admin/items/" + strconv.FormatInt(id, 10)
	return c.doJSON(ctx, "AdminDeleteItem", http.MethodDelete, path, nil, nil)
}

func (c *Client) AdminListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, "AdminListUsers", http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminToggleRole renvoie le nouveau rôle confirmé par le serveur
func (c *Client) AdminToggleRole(ctx context.Context, userID int64) (models.Role, error) {
	var resp models.RoleResponse
	path := "/admin/users/" + strconv.FormatInt(userID, 10) + "/toggle-admin"
	if err := c.doJSON(ctx, "AdminToggleRole", http.MethodPost, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.Role, nil
}
