package preferences

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/deadline-tracker/internal/storage"
)

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no preference has been stored.
const DefaultTheme = ThemeLight

// Storage defines the key/value persistence preferences need.
type Storage interface {
	Get(key string, v any) (bool, error)
	Set(key string, v any) error
}

// Preferences reads and writes user preferences. It is independent of the
// event collection: the theme lives under its own key.
type Preferences struct {
	store Storage
}

// New creates preferences backed by store.
func New(store Storage) *Preferences {
	return &Preferences{store: store}
}

// Theme returns the stored theme, or DefaultTheme if none is stored. An
// unrecognized stored value is treated as unset.
func (p *Preferences) Theme() (Theme, error) {
	var raw string
	found, err := p.store.Get(storage.KeyTheme, &raw)
	if err != nil {
		return DefaultTheme, fmt.Errorf("loading theme: %w", err)
	}
	if !found {
		return DefaultTheme, nil
	}

	theme, err := ParseTheme(raw)
	if err != nil {
		return DefaultTheme, nil
	}
	return theme, nil
}

// SetTheme stores the theme.
func (p *Preferences) SetTheme(theme Theme) error {
	if !IsValidTheme(string(theme)) {
		return fmt.Errorf("invalid theme: %q", theme)
	}
	if err := p.store.Set(storage.KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (p *Preferences) ToggleTheme() (Theme, error) {
	current, err := p.Theme()
	if err != nil {
		return current, err
	}

	next := ThemeDark
	if current == ThemeDark {
		next = ThemeLight
	}
	if err := p.SetTheme(next); err != nil {
		return current, err
	}
	return next, nil
}

// ParseTheme normalizes a theme name.
func ParseTheme(s string) (Theme, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !IsValidTheme(s) {
		return "", fmt.Errorf("invalid theme: %q (want light or dark)", s)
	}
	return Theme(s), nil
}

// IsValidTheme checks if a theme name is valid
func IsValidTheme(s string) bool {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return true
	}
	return false
}
