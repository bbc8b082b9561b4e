package backendtest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resell_front_end/internal/models"
)

// cartIDLocked crée le panier à la première utilisation
func (b *Backend) cartIDLocked(userID int64) int64 {
	id, ok := b.cartIDs[userID]
	if !ok {
		id = b.id()
		b.cartIDs[userID] = id
	}
	return id
}

func (b *Backend) getCart(c *gin.Context) {
	userID := c.GetInt64("user_id")

	b.mu.Lock()
	cart := models.Cart{ID: b.cartIDLocked(userID), Items: []models.CartItem{}}
	for _, e := range b.carts[userID] {
		ci := models.CartItem{ID: e.id}
		if item, ok := b.items[e.itemID]; ok {
			copied := *item
			copied.Owner = nil
			ci.Item = &copied
		}
		cart.Items = append(cart.Items, ci)
	}
	b.mu.Unlock()

	c.JSON(http.StatusOK, cart)
}

// addToCart ajoute une nouvelle entrée à chaque appel, même pour un article déjà présent
func (b *Backend) addToCart(c *gin.Context) {
	var input struct {
		ItemID int64 `json:"itemId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	userID := c.GetInt64("user_id")

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.items[input.ItemID]; !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Item not found"})
		return
	}
	b.cartIDLocked(userID)
	b.carts[userID] = append(b.carts[userID], cartEntry{id: b.id(), itemID: input.ItemID})
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
}

func (b *Backend) removeFromCart(c *gin.Context) {
	cartItemID, ok := paramID(c, "cartItemId")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for owner, entries := range b.carts {
		for i, e := range entries {
			if e.id != cartItemID {
				continue
			}
			if owner != userID {
				c.String(http.StatusForbidden, "Unauthorized")
				return
			}
			b.carts[owner] = append(entries[:i], entries[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart item not found"})
}

// checkout vide le panier et marque les articles comme achetés
func (b *Backend) checkout(c *gin.Context) {
	userID := c.GetInt64("user_id")

	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.carts[userID]
	if len(entries) == 0 {
		c.String(http.StatusBadRequest, "Cart is empty")
		return
	}
	for _, e := range entries {
		if item, ok := b.items[e.itemID]; ok {
			item.Purchased = true
		}
	}
	b.carts[userID] = nil
	c.JSON(http.StatusOK, gin.H{"message": "Checkout successful!"})
}
