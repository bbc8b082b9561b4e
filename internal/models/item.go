package models

import "github.com/shopspring/decimal"

// Le backend attend un nombre JSON pour price, pas une chaîne
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Item struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Owner       *User           `json:"owner,omitempty"`
	Purchased   bool            `json:"purchased"`
}

// ItemInput est le corps de POST /items et PUT /items/{id}
type ItemInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}

// UploadResponse est la réponse de POST /items/upload
type UploadResponse struct {
	URL string `json:"url"`
}
