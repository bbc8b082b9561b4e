package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"resell_front_end/internal/models"
)

func TestMemorySetGetClear(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	if _, ok := m.Get(FieldToken); ok {
		t.Fatalf("new memory session has a token")
	}
	if _, ok := m.Token(); ok {
		t.Fatalf("Token() ok = true on empty session")
	}

	m.Set("t1", "a", "ROLE_ADMIN")
	for field, want := range map[string]string{FieldToken: "t1", FieldUsername: "a", FieldRole: "ROLE_ADMIN"} {
		got, ok := m.Get(field)
		if !ok || got != want {
			t.Fatalf("Get(%q) = %q, %v; want %q", field, got, ok, want)
		}
	}
	if m.Role() != models.RoleAdmin {
		t.Fatalf("Role() = %q", m.Role())
	}

	m.Clear()
	for _, field := range fields {
		if _, ok := m.Get(field); ok {
			t.Fatalf("Get(%q) still present after Clear", field)
		}
	}
	if m.Role() != models.RoleUser {
		t.Fatalf("Role() after Clear = %q, want USER", m.Role())
	}
}

func TestMemoryUnknownField(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Set("t", "u", "ROLE_USER")
	if _, ok := m.Get("email"); ok {
		t.Fatalf("unknown field reported present")
	}
}

func TestContextRoundTripThroughCookie(t *testing.T) {
	t.Parallel()

	store := NewCookieStore([]byte("0123456789abcdef0123456789abcdef"), nil, CookieOptions{MaxAge: 3600})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rr := httptest.NewRecorder()
	sc := Load(store, rr, req)
	if sc.Authenticated() {
		t.Fatalf("fresh session is authenticated")
	}
	owner := sc.Owner()
	if owner == "" {
		t.Fatalf("Owner() is empty")
	}
	sc.Set("t1", "a", "ROLE_USER")
	if tok, ok := sc.Token(); !ok || tok != "t1" {
		t.Fatalf("Token() = %q, %v; want immediate visibility", tok, ok)
	}
	sc.AddFlash(FlashSuccess, "Bienvenue")
	if err := sc.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie")
	}

	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	rr2 := httptest.NewRecorder()
	loaded := Load(store, rr2, next)
	if tok, _ := loaded.Token(); tok != "t1" {
		t.Fatalf("reloaded token = %q", tok)
	}
	if loaded.Username() != "a" || loaded.Role() != models.RoleUser {
		t.Fatalf("reloaded username/role = %q/%q", loaded.Username(), loaded.Role())
	}
	if loaded.Owner() != owner {
		t.Fatalf("Owner() changed across requests: %q != %q", loaded.Owner(), owner)
	}
	flashes := loaded.Flashes()
	if len(flashes) != 1 || flashes[0].Message != "Bienvenue" {
		t.Fatalf("Flashes() = %+v", flashes)
	}

	loaded.Clear()
	if loaded.Authenticated() {
		t.Fatalf("authenticated after Clear")
	}
	for _, field := range fields {
		if _, ok := loaded.Get(field); ok {
			t.Fatalf("Get(%q) present after Clear", field)
		}
	}
	if loaded.Owner() != owner {
		t.Fatalf("Clear must keep the browser owner id")
	}
}

func TestLoadIgnoresUnreadableCookie(t *testing.T) {
	t.Parallel()

	store := NewCookieStore([]byte("0123456789abcdef0123456789abcdef"), nil, CookieOptions{MaxAge: 3600})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})

	sc := Load(store, httptest.NewRecorder(), req)
	if sc.Authenticated() {
		t.Fatalf("garbage cookie produced an authenticated session")
	}
	if sc.Owner() == "" {
		t.Fatalf("expected a fresh owner id")
	}
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Context)(nil)
)
