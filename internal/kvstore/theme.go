package kvstore

import (
	"context"
	"fmt"
	"log/slog"
)

// Theme is the reader's color scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	}
	return "", fmt.Errorf("unknown theme %q (want light, dark or system)", s)
}

// Toggle flips between light and dark. System resolves to dark, since the
// toggle is only shown once a concrete theme is displayed.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// LoadTheme returns the stored theme, or fallback when none is stored or the
// stored value is malformed or not a known theme.
func LoadTheme(ctx context.Context, s Store, fallback Theme, logger *slog.Logger) (Theme, error) {
	var raw string
	ok, err := GetJSON(ctx, s, KeyTheme, &raw, logger)
	if err != nil || !ok {
		return fallback, err
	}
	t, err := ParseTheme(raw)
	if err != nil {
		return fallback, nil
	}
	return t, nil
}

// SaveTheme persists t.
func SaveTheme(ctx context.Context, s Store, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	return SetJSON(ctx, s, KeyTheme, string(t))
}
