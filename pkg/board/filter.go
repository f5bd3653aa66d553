// Package board holds the pure filter/sort pipeline shared by the public
// board and the admin post manager. It performs no I/O and never mutates
// its input; callers re-run it on every data or filter change.
package board

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/zionren/corkboard/pkg/models"
)

// Apply returns the pins matching the spec, ordered per its sort key.
// A pin is included iff it passes both the text filter and the category
// filter; empty axes match everything.
func Apply(pins []models.Pin, spec models.FilterSpec) []models.Pin {
	out := make([]models.Pin, 0, len(pins))
	for _, p := range pins {
		if matches(p, spec) {
			out = append(out, p)
		}
	}
	sortPins(out, spec.Sort)
	return out
}

func matches(p models.Pin, spec models.FilterSpec) bool {
	if spec.Search != "" {
		needle := strings.ToLower(spec.Search)
		hit := strings.Contains(strings.ToLower(p.Nickname), needle) ||
			strings.Contains(strings.ToLower(p.Message), needle)
		if !hit && spec.SearchRPName {
			hit = strings.Contains(strings.ToLower(p.RPName), needle)
		}
		if !hit {
			return false
		}
	}
	if spec.Category != "" && p.Category != spec.Category {
		return false
	}
	return true
}

func sortPins(pins []models.Pin, order models.SortOrder) {
	switch models.ParseSortOrder(string(order)) {
	case models.SortOldest:
		sort.SliceStable(pins, func(i, j int) bool {
			return pins[i].CreatedAt.Before(pins[j].CreatedAt)
		})
	case models.SortAlphaAsc:
		cl := newCollator()
		sort.SliceStable(pins, func(i, j int) bool {
			return cl.CompareString(pins[i].Nickname, pins[j].Nickname) < 0
		})
	case models.SortAlphaDesc:
		cl := newCollator()
		sort.SliceStable(pins, func(i, j int) bool {
			return cl.CompareString(pins[i].Nickname, pins[j].Nickname) > 0
		})
	default:
		sort.SliceStable(pins, func(i, j int) bool {
			return pins[i].CreatedAt.After(pins[j].CreatedAt)
		})
	}
}

// newCollator builds the locale comparator used for alphabetical orders:
// case-insensitive primary strength, so "zoe" sorts after "Bob".
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.Loose)
}
