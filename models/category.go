package models

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Category is one of the tourism categories the system searches for.
type Category string

const (
	Vineyards   Category = "viñedos"
	Hotels      Category = "hoteles"
	Restaurants Category = "restaurantes"
	Museums     Category = "museos"
	Parks       Category = "parques"
)

var categoryLabels = map[Category]string{
	Vineyards:   "Viñedos",
	Hotels:      "Hoteles",
	Restaurants: "Restaurantes",
	Museums:     "Museos",
	Parks:       "Parques",
}

// Categories returns every supported category in display order.
func Categories() []Category {
	return []Category{Vineyards, Hotels, Restaurants, Museums, Parks}
}

// ParseCategory resolves s to a Category. Matching ignores case and
// surrounding whitespace, and accepts "vinedos" for "viñedos".
func ParseCategory(s string) (Category, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "vinedos" {
		v = string(Vineyards)
	}
	c := Category(v)
	if _, ok := categoryLabels[c]; !ok {
		return "", eris.Errorf("models: unknown category %q", s)
	}
	return c, nil
}

// Label is the capitalised name shown to users.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) String() string { return string(c) }
