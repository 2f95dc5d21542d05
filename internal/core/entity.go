package core

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnknownEntity is returned when a name is not part of the configured EntitySet.
var ErrUnknownEntity = errors.New("unknown entity")

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Entity is one named series with its display color.
type Entity struct {
	Name  string `json:"name"`
	Color string `json:"color"` // #rrggbb
}

// EntitySet is the ordered list of series. Order is stacking order:
// index 0 is drawn at the bottom and listed first in the legend.
type EntitySet []Entity

// DefaultEntitySet returns the stock five-model palette.
func DefaultEntitySet() EntitySet {
	return EntitySet{
		{Name: "LLaMA-3.1", Color: "#ff7f00"},
		{Name: "Claude", Color: "#984ea3"},
		{Name: "PaLM-2", Color: "#4daf4a"},
		{Name: "Gemini", Color: "#377eb8"},
		{Name: "GPT-4", Color: "#e41a1c"},
	}
}

// ParseEntitySet builds an EntitySet from "name=#rrggbb" specs, keeping order.
func ParseEntitySet(specs []string) (EntitySet, error) {
	if len(specs) == 0 {
		return nil, errors.New("entity set is empty")
	}

	set := make(EntitySet, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		name, color, ok := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		color = strings.TrimSpace(color)
		if !ok || name == "" {
			return nil, fmt.Errorf("entity %q: expected name=#rrggbb", spec)
		}
		if !hexColorRegex.MatchString(color) {
			return nil, fmt.Errorf("entity %q: invalid color %q", name, color)
		}
		if seen[name] {
			return nil, fmt.Errorf("entity %q listed twice", name)
		}
		seen[name] = true
		set = append(set, Entity{Name: name, Color: strings.ToLower(color)})
	}
	return set, nil
}

// Names returns entity names in stacking order.
func (s EntitySet) Names() []string {
	names := make([]string, len(s))
	for i, e := range s {
		names[i] = e.Name
	}
	return names
}

// Lookup finds an entity by exact (case-sensitive) name.
func (s EntitySet) Lookup(name string) (Entity, bool) {
	for _, e := range s {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// Color returns the configured color for name, or "" if unknown.
func (s EntitySet) Color(name string) string {
	e, _ := s.Lookup(name)
	return e.Color
}
