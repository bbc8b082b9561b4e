package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"resell_front_end/internal/api"
	"resell_front_end/internal/backendtest"
	"resell_front_end/internal/models"
	"resell_front_end/internal/session"
)

func loginAs(t *testing.T, client *api.Client, store session.Store, email, password string) {
	t.Helper()
	resp, err := client.Login(context.Background(), models.Credentials{Email: email, Password: password})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	session.Start(store, resp)
}

func TestLoginStoresSessionAndListItemsCarriesBearer(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var itemsAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			if got := r.Header.Get("Authorization"); got != "" {
				t.Errorf("login carried Authorization %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token":"t1","username":"a","role":"USER"}`))
		case "/items":
			mu.Lock()
			itemsAuth = r.Header.Get("Authorization")
			mu.Unlock()
			w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := session.NewMemory()
	client := api.New(srv.URL, store)
	loginAs(t, client, store, "a@b.com", "x")

	for field, want := range map[string]string{
		session.FieldToken:    "t1",
		session.FieldUsername: "a",
		session.FieldRole:     "USER",
	} {
		if got, _ := store.Get(field); got != want {
			t.Fatalf("session %s = %q, want %q", field, got, want)
		}
	}

	if _, err := client.ListItems(context.Background()); err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if itemsAuth != "Bearer t1" {
		t.Fatalf("Authorization = %q, want %q", itemsAuth, "Bearer t1")
	}
}

func TestLogoutSendsNoAuthorization(t *testing.T) {
	t.Parallel()

	backend, srv := backendtest.Start(t)
	backend.SeedUser("Ada", "L", "ada@resell.test", "pw", models.RoleUser)

	store := session.NewMemory()
	client := api.New(srv.URL, store)
	loginAs(t, client, store, "ada@resell.test", "pw")

	store.Clear()
	for _, f := range []string{session.FieldToken, session.FieldUsername, session.FieldRole} {
		if _, ok := store.Get(f); ok {
			t.Fatalf("%s still set after Clear", f)
		}
	}

	_, err := client.GetCart(context.Background())
	if !api.IsKind(err, api.KindAuth) {
		t.Fatalf("GetCart() error = %v, want auth failure", err)
	}
	req, ok := backend.LastRequest(http.MethodGet, "/cart")
	if !ok {
		t.Fatalf("backend never saw GET /cart")
	}
	if req.Authorization != "" {
		t.Fatalf("Authorization = %q after logout, want none", req.Authorization)
	}
}

func TestCartLifecycle(t *testing.T) {
	t.Parallel()

	backend, srv := backendtest.Start(t)
	seller := backend.SeedUser("Sam", "Seller", "sam@resell.test", "pw", models.RoleUser)
	backend.SeedUser("Bea", "Buyer", "bea@resell.test", "pw", models.RoleUser)
	lamp := backend.SeedItem(seller.ID, "Lampe", "12.50")
	chair := backend.SeedItem(seller.ID, "Chaise", "30")

	store := session.NewMemory()
	client := api.New(srv.URL, store)
	loginAs(t, client, store, "bea@resell.test", "pw")
	ctx := context.Background()

	if _, err := client.AddToCart(ctx, lamp.ID); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	msg, err := client.AddToCart(ctx, chair.ID)
	if err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if msg != "Item added to cart" {
		t.Fatalf("AddToCart() message = %q", msg)
	}

	cart, err := client.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if !cart.Contains(lamp.ID) || !cart.Contains(chair.ID) {
		t.Fatalf("cart = %+v, want both items", cart.Items)
	}
	if !cart.Total().Equal(decimal.RequireFromString("42.5")) {
		t.Fatalf("Total() = %s", cart.Total())
	}

	var lampEntry int64
	for _, ci := range cart.Items {
		if ci.Item != nil && ci.Item.ID == lamp.ID {
			lampEntry = ci.ID
		}
	}
	if _, err := client.RemoveFromCart(ctx, lampEntry); err != nil {
		t.Fatalf("RemoveFromCart() error = %v", err)
	}
	cart, err = client.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	for _, ci := range cart.Items {
		if ci.ID == lampEntry {
			t.Fatalf("cart still holds removed entry %d", lampEntry)
		}
	}

	if _, err := client.Checkout(ctx); err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	cart, err = client.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if cart.Count() != 0 {
		t.Fatalf("cart after checkout has %d items", cart.Count())
	}

	_, err = client.Checkout(ctx)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.KindValidation || apiErr.Message != "Cart is empty" {
		t.Fatalf("Checkout() on empty cart error = %v", err)
	}
}

func TestAddSameItemTwiceFollowsServer(t *testing.T) {
	t.Parallel()

	backend, srv := backendtest.Start(t)
	seller := backend.SeedUser("Sam", "Seller", "sam@resell.test", "pw", models.RoleUser)
	item := backend.SeedItem(seller.ID, "Vélo", "99")

	store := session.NewMemory()
	client := api.New(srv.URL, store)
	loginAs(t, client, store, "sam@resell.test", "pw")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.AddToCart(ctx, item.ID); err != nil {
			t.Fatalf("AddToCart() #%d error = %v", i, err)
		}
	}
	cart, err := client.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if cart.Count() != 2 {
		t.Fatalf("cart count = %d, want 2 entries as the server appends", cart.Count())
	}
}

func TestUploadURLIsForwardedVerbatim(t *testing.T) {
	t.Parallel()

	backend, srv := backendtest.Start(t)
	backend.SeedUser("Sam", "Seller", "sam@resell.test", "pw", models.RoleUser)

	store := session.NewMemory()
	client := api.New(srv.URL, store)
	loginAs(t, client, store, "sam@resell.test", "pw")
	ctx := context.Background()

	url, err := client.UploadImage(ctx, "x.jpg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}
	if data, ok := backend.Upload(url); !ok || string(data) != "jpeg-bytes" {
		t.Fatalf("backend upload for %q = %q, %v", url, data, ok)
	}
	req, _ := backend.LastRequest(http.MethodPost, "/items/upload")
	if !strings.HasPrefix(req.ContentType, "multipart/form-data") {
		t.Fatalf("upload Content-Type = %q", req.ContentType)
	}

	created, err := client.CreateItem(ctx, models.ItemInput{
		Title:       "Lampe",
		Description: "Lampe de bureau",
		Price:       decimal.RequireFromString("15.00"),
		ImageURL:    url,
	})
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if created.ImageURL != url {
		t.Fatalf("created imageUrl = %q, want %q", created.ImageURL, url)
	}
	mine, err := client.MyItems(ctx)
	if err != nil || len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("MyItems() = %+v, %v", mine, err)
	}
}

func TestCreateItemSendsExactImageURL(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/items/upload":
			w.Write([]byte(`{"url":"https://cdn/x.jpg"}`))
		case "/items":
			data, _ := io.ReadAll(r.Body)
			mu.Lock()
			body = string(data)
			mu.Unlock()
			w.Write([]byte(`{"id":1,"title":"t","price":1,"imageUrl":"https://cdn/x.jpg"}`))
		}
	}))
	defer srv.Close()

	client := api.New(srv.URL, session.NewMemory())
	url, err := client.UploadImage(context.Background(), "x.jpg", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}
	if url != "https://cdn/x.jpg" {
		t.Fatalf("UploadImage() = %q", url)
	}
	if _, err := client.CreateItem(context.Background(), models.ItemInput{Title: "t", Price: decimal.NewFromInt(1), ImageURL: url}); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(body, `"imageUrl":"https://cdn/x.jpg"`) {
		t.Fatalf("create body = %s", body)
	}
	if !strings.Contains(body, `"price":1`) {
		t.Fatalf("price not sent as a JSON number: %s", body)
	}
}

func TestGetItemUnknownIsNotFound(t *testing.T) {
	t.Parallel()

	backend, srv := backendtest.Start(t)
	backend.SeedUser("Sam", "Seller", "sam@resell.test", "pw", models.RoleUser)
	store := session.NewMemory()
	client := api.New(srv.URL, store)
	loginAs(t, client, store, "sam@resell.test", "pw")

	_, err := client.GetItem(context.Background(), 999)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("GetItem() error = %v, want not found", err)
	}
}

func TestAdminOperations(t *testing.T) {
	t.Parallel()

	backend, srv := backendtest.Start(t)
	backend.SeedUser("Root", "Admin", "root@resell.test", "pw", models.RoleAdmin)
	bob := backend.SeedUser("Bob", "User", "bob@resell.test", "pw", models.RoleUser)
	item := backend.SeedItem(bob.ID, "Table", "40")

	store := session.NewMemory()
	client := api.New(srv.URL, store)
	loginAs(t, client, store, "root@resell.test", "pw")
	if store.Role() != models.RoleAdmin {
		t.Fatalf("admin login stored role %q", store.Role())
	}
	ctx := context.Background()

	users, err := client.AdminListUsers(ctx)
	if err != nil || len(users) != 2 {
		t.Fatalf("AdminListUsers() = %+v, %v", users, err)
	}
	role, err := client.AdminToggleRole(ctx, bob.ID)
	if err != nil || role != models.RoleAdmin {
		t.Fatalf("AdminToggleRole() = %q, %v", role, err)
	}
	role, err = client.AdminToggleRole(ctx, bob.ID)
	if err != nil || role != models.RoleUser {
		t.Fatalf("second AdminToggleRole() = %q, %v", role, err)
	}

	if err := client.AdminDeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("AdminDeleteItem() error = %v", err)
	}
	items, err := client.AdminListItems(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("AdminListItems() = %+v, %v", items, err)
	}
}

func TestAdminCallsRejectedForUsers(t *testing.T) {
	t.Parallel()

	backend, srv := backendtest.Start(t)
	backend.SeedUser("Bob", "User", "bob@resell.test", "pw", models.RoleUser)
	store := session.NewMemory()
	client := api.New(srv.URL, store)
	loginAs(t, client, store, "bob@resell.test", "pw")

	_, err := client.AdminListUsers(context.Background())
	if !api.IsKind(err, api.KindAuth) {
		t.Fatalf("AdminListUsers() as user error = %v, want auth", err)
	}
}

func TestRegisterMessages(t *testing.T) {
	t.Parallel()

	_, srv := backendtest.Start(t)
	client := api.New(srv.URL, session.NewMemory())
	in := models.RegisterInput{Firstname: "Ada", Lastname: "L", Email: "ada@resell.test", Password: "pw"}

	msg, err := client.Register(context.Background(), in)
	if err != nil || msg != "User registered successfully!" {
		t.Fatalf("Register() = %q, %v", msg, err)
	}
	_, err = client.Register(context.Background(), in)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.KindValidation {
		t.Fatalf("duplicate Register() error = %v", err)
	}
	if apiErr.UserMessage() != "Error: Email is already in use!" {
		t.Fatalf("UserMessage() = %q", apiErr.UserMessage())
	}
}

func TestLoginBadCredentials(t *testing.T) {
	t.Parallel()

	backend, srv := backendtest.Start(t)
	backend.SeedUser("Ada", "L", "ada@resell.test", "pw", models.RoleUser)
	client := api.New(srv.URL, session.NewMemory())

	_, err := client.Login(context.Background(), models.Credentials{Email: "ada@resell.test", Password: "nope"})
	if !api.IsKind(err, api.KindAuth) {
		t.Fatalf("Login() error = %v, want auth", err)
	}
	if got := api.UserMessage(err); got != "Error: Invalid email or password" {
		t.Fatalf("UserMessage() = %q", got)
	}
}
