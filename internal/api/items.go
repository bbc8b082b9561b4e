package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"resell_front_end/internal/models"
)

func itemPath(id int64) string {
	return "/items/" + strconv.FormatInt(id, 10)
}

func (c *Client) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.doJSON(ctx, "ListItems", http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem : le backend répond 200 avec un corps vide quand l'article n'existe pas
func (c *Client) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var item *models.Item
	if err := c.doJSON(ctx, "GetItem", http.MethodGet, itemPath(id), nil, &item); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &Error{Op: "GetItem", Kind: KindValidation, Status: http.StatusNotFound, Message: "Article introuvable"}
	}
	return item, nil
}

// MyItems liste les articles mis en vente par l'utilisateur connecté
func (c *Client) MyItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.doJSON(ctx, "MyItems", http.MethodGet, "/items/my", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem envoie ImageURL tel quel, sans validation
func (c *Client) CreateItem(ctx context.Context, in models.ItemInput) (*models.Item, error) {
	var item models.Item
	if err := c.doJSON(ctx, "CreateItem", http.MethodPost, "/items", in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateItem(ctx context.Context, id int64, in models.ItemInput) (*models.Item, error) {
	var item models.Item
	if err := c.doJSON(ctx, "UpdateItem", http.MethodPut, itemPath(id), in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "DeleteItem", http.MethodDelete, itemPath(id), nil, nil)
}

// UploadImage envoie le fichier dans le champ multipart "file" et renvoie l'URL
// telle que le serveur l'a donnée
func (c *Client) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", &Error{Op: "UploadImage", Kind: KindTransport, Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", &Error{Op: "UploadImage", Kind: KindTransport, Err: fmt.Errorf("lecture fichier: %w", err)}
	}
	if err := mw.Close(); err != nil {
		return "", &Error{Op: "UploadImage", Kind: KindTransport, Err: err}
	}

	var resp models.UploadResponse
	if err := c.do(ctx, "UploadImage", http.MethodPost, "/items/upload", &buf, mw.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
