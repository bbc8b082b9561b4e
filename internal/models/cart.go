package models

import "github.com/shopspring/decimal"

type Cart struct {
	ID    int64      `json:"id"`
	User  *User      `json:"user,omitempty"`
	Items []CartItem `json:"items"`
}

// CartItem : l'article imbriqué peut manquer, les vues affichent un repli
type CartItem struct {
	ID   int64 `json:"id"`
	Item *Item `json:"item,omitempty"`
}

func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Total additionne les prix renvoyés par le serveur, pour l'affichage uniquement
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, ci := range c.Items {
		if ci.Item != nil {
			total = total.Add(ci.Item.Price)
		}
	}
	return total
}

// Contains indique si une entrée du panier référence l'article
func (c *Cart) Contains(itemID int64) bool {
	if c == nil {
		return false
	}
	for _, ci := range c.Items {
		if ci.Item != nil && ci.Item.ID == itemID {
			return true
		}
	}
	return false
}
