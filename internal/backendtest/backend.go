// Package backendtest est un faux backend REST en mémoire qui reproduit le
// contrat consommé par le storefront. Il sert aux tests et au développement local.
package backendtest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"resell_front_end/internal/models"
)

// Request garde la trace d'une requête reçue
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
}

type account struct {
	models.User
	passwordHash []byte
}

type cartEntry struct {
	id     int64
	itemID int64
}

type Backend struct {
	mu       sync.Mutex
	secret   []byte
	users    map[int64]*account
	items    map[int64]*models.Item
	carts    map[int64][]cartEntry // par user id
	cartIDs  map[int64]int64
	nextID   int64
	requests []Request
	uploads  map[string][]byte

	// UploadBaseURL préfixe les URLs renvoyées par /items/upload
	UploadBaseURL string
}

func New(secret string) *Backend {
	return &Backend{
		secret:        []byte(secret),
		users:         make(map[int64]*account),
		items:         make(map[int64]*models.Item),
		carts:         make(map[int64][]cartEntry),
		cartIDs:       make(map[int64]int64),
		uploads:       make(map[string][]byte),
		UploadBaseURL: "https://cdn.resell.test/",
	}
}

// Start lance le backend sur un serveur httptest fermé en fin de test
func Start(tb testing.TB) (*Backend, *httptest.Server) {
	tb.Helper()
	b := New("backendtest-secret")
	srv := httptest.NewServer(b.Handler())
	tb.Cleanup(srv.Close)
	return b, srv
}

func (b *Backend) id() int64 {
	b.nextID++
	return b.nextID
}

// SeedUser crée un compte; le mot de passe est haché avec bcrypt
func (b *Backend) SeedUser(firstname, lastname, email, password string, role models.Role) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := &account{
		User: models.User{
			ID:        b.id(),
			Firstname: firstname,
			Lastname:  lastname,
			Fullname:  firstname + " " + lastname,
			Email:     email,
			Role:      role,
		},
		passwordHash: hash,
	}
	b.users[acc.ID] = acc
	return acc.User
}

// SeedItem met un article en vente pour ownerID
func (b *Backend) SeedItem(ownerID int64, title, price string) models.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	item := &models.Item{
		ID:          b.id(),
		Title:       title,
		Description: title,
		Price:       decimal.RequireFromString(price),
	}
	if owner, ok := b.users[ownerID]; ok {
		u := owner.User
		item.Owner = &u
	}
	b.items[item.ID] = item
	return *item
}

// Requests renvoie une copie des requêtes reçues
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// LastRequest renvoie la dernière requête reçue pour method + path
func (b *Backend) LastRequest(method, path string) (Request, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		r := b.requests[i]
		if r.Method == method && r.Path == path {
			return r, true
		}
	}
	return Request{}, false
}

func (b *Backend) Item(id int64) (models.Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	item, ok := b.items[id]
	if !ok {
		return models.Item{}, false
	}
	return *item, true
}

func (b *Backend) User(id int64) (models.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.users[id]
	if !ok {
		return models.User{}, false
	}
	return acc.User, true
}

// Upload renvoie le contenu reçu pour une URL d'upload
func (b *Backend) Upload(url string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.uploads[url]
	return data, ok
}

func (b *Backend) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), b.record())

	r.POST("/auth/register", b.register)
	r.POST("/auth/login", b.login)

	auth := r.Group("/", b.authRequired())
	auth.GET("/items", b.listItems)
	auth.GET("/items/my", b.myItems)
	auth.GET("/items/:id", b.getItem)
	auth.POST("/items", b.createItem)
	auth.PUT("/items/:id", b.updateItem)
	auth.DELETE("/items/:id", b.deleteItem)
	auth.POST("/items/upload", b.uploadImage)

	auth.GET("/cart", b.getCart)
	auth.POST("/cart/add", b.addToCart)
	auth.DELETE("/cart/remove/:cartItemId", b.removeFromCart)
	auth.POST("/cart/checkout", b.checkout)

	admin := auth.Group("/admin", b.requireAdmin)
	admin.GET("/items", b.adminListItems)
	admin.DELETE("/items/:id", b.adminDeleteItem)
	admin.GET("/users", b.adminListUsers)
	admin.POST("/users/:id/toggle-admin", b.toggleAdmin)

	return r
}

func (b *Backend) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:        c.Request.Method,
			Path:          c.Request.URL.Path,
			Authorization: c.GetHeader("Authorization"),
			ContentType:   c.GetHeader("Content-Type"),
		})
		b.mu.Unlock()
		c.Next()
	}
}

// sortedItems doit être appelé sous b.mu
func (b *Backend) sortedItems(keep func(*models.Item) bool) []models.Item {
	out := make([]models.Item, 0, len(b.items))
	for _, item := range b.items {
		if keep == nil || keep(item) {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
