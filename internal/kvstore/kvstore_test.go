package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/ziadkadry99/docreader/internal/db"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewSQLiteStore(database)
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": newSQLiteStore(t),
	}
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}
			if err := s.Set(ctx, "k", "one"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, "k", "two"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := s.Get(ctx, "k")
			if err != nil || got != "two" {
				t.Errorf("Get(k) = %q, %v; want two", got, err)
			}
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var m map[string]bool
	ok, err := GetJSON(ctx, s, KeyChecklist, &m, nil)
	if ok || err != nil {
		t.Errorf("GetJSON(absent) = %v, %v; want false, nil", ok, err)
	}

	if err := SetJSON(ctx, s, KeyChecklist, map[string]bool{"a": true}); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	ok, err = GetJSON(ctx, s, KeyChecklist, &m, nil)
	if !ok || err != nil || !m["a"] {
		t.Errorf("GetJSON = %v, %v, %v", ok, err, m)
	}

	s.Set(ctx, KeyChecklist, "{not json")
	var broken map[string]bool
	ok, err = GetJSON(ctx, s, KeyChecklist, &broken, nil)
	if ok || err != nil {
		t.Errorf("GetJSON(malformed) = %v, %v; want false, nil", ok, err)
	}
}

func TestTheme(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	got, err := LoadTheme(ctx, s, ThemeSystem, nil)
	if err != nil || got != ThemeSystem {
		t.Errorf("LoadTheme(empty) = %q, %v; want system", got, err)
	}
	if err := SaveTheme(ctx, s, ThemeDark); err != nil {
		t.Fatalf("SaveTheme: %v", err)
	}
	if got, _ := LoadTheme(ctx, s, ThemeLight, nil); got != ThemeDark {
		t.Errorf("LoadTheme = %q, want dark", got)
	}
	if err := SaveTheme(ctx, s, Theme("sepia")); err == nil {
		t.Error("SaveTheme(sepia) should fail")
	}

	s.Set(ctx, KeyTheme, `"sepia"`)
	if got, _ := LoadTheme(ctx, s, ThemeLight, nil); got != ThemeLight {
		t.Errorf("LoadTheme(unknown) = %q, want fallback light", got)
	}
	s.Set(ctx, KeyTheme, `dark`)
	if got, _ := LoadTheme(ctx, s, ThemeLight, nil); got != ThemeLight {
		t.Errorf("LoadTheme(malformed) = %q, want fallback light", got)
	}
}

func TestThemeToggle(t *testing.T) {
	tests := []struct{ in, want Theme }{
		{ThemeLight, ThemeDark},
		{ThemeDark, ThemeLight},
		{ThemeSystem, ThemeDark},
	}
	for _, tt := range tests {
		if got := tt.in.Toggle(); got != tt.want {
			t.Errorf("%q.Toggle() = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := ParseTheme("blue"); err == nil {
		t.Error("ParseTheme(blue) should fail")
	}
}
