package backendtest

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"resell_front_end/internal/models"
)

func (b *Backend) adminListItems(c *gin.Context) {
	b.mu.Lock()
	items := b.sortedItems(nil)
	b.mu.Unlock()
	c.JSON(http.StatusOK, items)
}

func (b *Backend) adminDeleteItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	b.removeItemLocked(id)
	b.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted by admin"})
}

func (b *Backend) adminListUsers(c *gin.Context) {
	b.mu.Lock()
	users := make([]models.User, 0, len(b.users))
	for _, acc := range b.users {
		users = append(users, acc.User)
	}
	b.mu.Unlock()
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	c.JSON(http.StatusOK, users)
}

// toggleAdmin bascule entre ROLE_USER et ROLE_ADMIN
func (b *Backend) toggleAdmin(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, found := b.users[id]
	if !found {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found"})
		return
	}
	if acc.Role == models.RoleAdmin {
		acc.Role = models.RoleUser
	} else {
		acc.Role = models.RoleAdmin
	}
	c.JSON(http.StatusOK, models.RoleResponse{Role: acc.Role})
}
