package backendtest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resell_front_end/internal/models"
)

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func (b *Backend) listItems(c *gin.Context) {
	b.mu.Lock()
	items := b.sortedItems(nil)
	b.mu.Unlock()
	c.JSON(http.StatusOK, items)
}

func (b *Backend) myItems(c *gin.Context) {
	userID := c.GetInt64("user_id")
	b.mu.Lock()
	items := b.sortedItems(func(item *models.Item) bool {
		return item.Owner != nil && item.Owner.ID == userID
	})
	b.mu.Unlock()
	c.JSON(http.StatusOK, items)
}

// getItem répond 200 sans corps pour un id inconnu, comme le backend d'origine
func (b *Backend) getItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, found := b.Item(id)
	if !found {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (b *Backend) createItem(c *gin.Context) {
	var input models.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item"})
		return
	}
	if input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}
	userID := c.GetInt64("user_id")

	b.mu.Lock()
	item := &models.Item{
		ID:          b.id(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
	}
	if acc, ok := b.users[userID]; ok {
		owner := acc.User
		item.Owner = &owner
	}
	b.items[item.ID] = item
	created := *item
	b.mu.Unlock()

	c.JSON(http.StatusOK, created)
}

func (b *Backend) updateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input models.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	item, found := b.items[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	item.Title = input.Title
	item.Description = input.Description
	item.Price = input.Price
	item.ImageURL = input.ImageURL
	c.JSON(http.StatusOK, *item)
}

func (b *Backend) deleteItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	b.removeItemLocked(id)
	b.mu.Unlock()
	c.Status(http.StatusOK)
}

// removeItemLocked retire aussi les entrées de panier qui pointaient dessus
func (b *Backend) removeItemLocked(id int64) {
	delete(b.items, id)
	for userID, entries := range b.carts {
		kept := entries[:0]
		for _, e := range entries {
			if e.itemID != id {
				kept = append(kept, e)
			}
		}
		b.carts[userID] = kept
	}
}

func (b *Backend) uploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable file"})
		return
	}

	url := b.UploadBaseURL + uuid.NewString() + "-" + fh.Filename
	b.mu.Lock()
	b.uploads[url] = data
	b.mu.Unlock()
	c.JSON(http.StatusOK, models.UploadResponse{URL: url})
}
