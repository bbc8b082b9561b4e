package api

import (
	"context"
	"net/http"
	"strconv"

	"resell_front_end/internal/models"
)

func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := c.doJSON(ctx, "GetCart", http.MethodGet, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddToCart(ctx context.Context, itemID int64) (string, error) {
	var resp models.MessageResponse
	body := map[string]int64{"itemId": itemID}
	if err := c.doJSON(ctx, "AddToCart", http.MethodPost, "/cart/add", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RemoveFromCart prend l'id de l'entrée du panier, pas celui de l'article
func (c *Client) RemoveFromCart(ctx context.Context, cartItemID int64) (string, error) {
	var resp models.MessageResponse
	path := "/cart/remove/" + strconv.FormatInt(cartItemID, 10)
	if err := c.doJSON(ctx, "RemoveFromCart", http.MethodDelete, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) Checkout(ctx context.Context) (string, error) {
	var resp models.MessageResponse
	if err := c.doJSON(ctx, "Checkout", http.MethodPost, "/cart/checkout", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
