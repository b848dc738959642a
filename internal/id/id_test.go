package id

import (
	"testing"
	"time"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"simple path", "/users", "users"},
		{"nested path", "/api/v1/users", "api-v1-users"},
		{"uppercase lowered", "/Users/Profile", "users-profile"},
		{"special chars stripped", "/users/@me!", "users-me"},
		{"repeated separators collapse", "//users///42", "users-42"},
		{"underscores kept", "/user_profiles", "user_profiles"},
		{"root path", "/", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.path); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestTransaction(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	t.Run("full URL uses path component", func(t *testing.T) {
		got := Transaction("get", "https://api.example.com/users/42?page=1", at)
		want := "1700000000000__GET_users-42"
		if got != want {
			t.Errorf("Transaction = %q, want %q", got, want)
		}
	})

	t.Run("bare path", func(t *testing.T) {
		got := Transaction("POST", "/orders", at)
		want := "1700000000000__POST_orders"
		if got != want {
			t.Errorf("Transaction = %q, want %q", got, want)
		}
	})

	t.Run("ids sort by capture time", func(t *testing.T) {
		earlier := Transaction("GET", "/a", at)
		later := Transaction("GET", "/a", at.Add(time.Millisecond))
		if earlier >= later {
			t.Errorf("expected %q < %q", earlier, later)
		}
	})
}
