package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw   string
		want  Role
		label string
	}{
		{"ROLE_ADMIN", RoleAdmin, "ADMIN"},
		{"ADMIN", RoleAdmin, "ADMIN"},
		{"admin", RoleAdmin, "ADMIN"},
		{"ROLE_USER", RoleUser, "USER"},
		{"USER", RoleUser, "USER"},
		{"", RoleUser, "USER"},
		{"superuser", RoleUser, "USER"},
	}
	for _, tt := range tests {
		got := ParseRole(tt.raw)
		if got != tt.want || got.Label() != tt.label {
			t.Fatalf("ParseRole(%q) = %q/%s, want %q/%s", tt.raw, got, got.Label(), tt.want, tt.label)
		}
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		user User
		want string
	}{
		{User{Fullname: "Ann Bee", Firstname: "X"}, "Ann Bee"},
		{User{Firstname: "Ann", Lastname: "Bee"}, "Ann Bee"},
		{User{Lastname: "Bee"}, "Bee"},
		{User{Email: "a@b.com"}, "a@b.com"},
	}
	for _, tt := range tests {
		if got := tt.user.DisplayName(); got != tt.want {
			t.Fatalf("DisplayName(%+v) = %q, want %q", tt.user, got, tt.want)
		}
	}
}

func TestCartTotalSkipsMissingItems(t *testing.T) {
	t.Parallel()

	cart := &Cart{Items: []CartItem{
		{ID: 1, Item: &Item{ID: 10, Price: decimal.RequireFromString("12.50")}},
		{ID: 2},
		{ID: 3, Item: &Item{ID: 11, Price: decimal.RequireFromString("30")}},
	}}
	if got := cart.Total().StringFixed(2); got != "42.50" {
		t.Fatalf("Total() = %s", got)
	}
	if cart.Count() != 3 {
		t.Fatalf("Count() = %d", cart.Count())
	}
	if !cart.Contains(11) || cart.Contains(99) {
		t.Fatalf("Contains() mismatch")
	}

	var empty *Cart
	if empty.Count() != 0 || !empty.Total().IsZero() || empty.Contains(1) {
		t.Fatalf("nil cart helpers")
	}
}

func TestItemJSONUsesNumericPrice(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ItemInput{Title: "Vélo", Price: decimal.RequireFromString("120.5"), ImageURL: "https://cdn/x.jpg"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"price":120.5`) || !strings.Contains(body, `"imageUrl":"https://cdn/x.jpg"`) {
		t.Fatalf("body = %s", body)
	}

	var item Item
	if err := json.Unmarshal([]byte(`{"id":3,"title":"Lampe","price":35.5,"owner":{"id":1,"email":"s@x"}}`), &item); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if item.Price.StringFixed(2) != "35.50" || item.Owner == nil || item.Owner.ID != 1 {
		t.Fatalf("item = %+v", item)
	}
}
