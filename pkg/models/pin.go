package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Category is the fixed topical tag attached to a pin.
type Category string

const (
	CategoryMain1   Category = "1"
	CategoryMain2   Category = "2"
	CategoryMain3   Category = "3"
	CategoryMain4   Category = "4"
	CategoryCouncil Category = "council"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryMain1, CategoryMain2, CategoryMain3, CategoryMain4, CategoryCouncil,
}

var categoryNames = map[Category]string{
	CategoryMain1:   "Main 1",
	CategoryMain2:   "Main 2",
	CategoryMain3:   "Main 3",
	CategoryMain4:   "Main 4",
	CategoryCouncil: "Council",
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// DisplayName returns the human-readable label; unknown codes pass through.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// SortOrder selects the board ordering.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortAlphaAsc  SortOrder = "a-z"
	SortAlphaDesc SortOrder = "z-a"
)

// ParseSortOrder maps a raw value to a sort order, defaulting to newest.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortOldest, SortAlphaAsc, SortAlphaDesc:
		return SortOrder(s)
	default:
		return SortNewest
	}
}

type Pin struct {
	ID        string    `json:"id"`
	RPName    string    `json:"rp_name,omitempty"`
	Nickname  string    `json:"nickname"`
	Category  Category  `json:"main"`
	Message   string    `json:"message"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FilterSpec describes the board view: free-text search, optional category,
// sort order. SearchRPName widens the text match to rp_name (admin view).
type FilterSpec struct {
	Search       string
	Category     Category
	Sort         SortOrder
	SearchRPName bool
}

type PinRequest struct {
	RPName   string   `json:"rp_name"`
	Nickname string   `json:"nickname"`
	Category Category `json:"main"`
	Message  string   `json:"message"`
	AuthorID string   `json:"author_id"`
}

const maxNameLen = 30

// Validate trims the request in place and checks the pin invariants.
func (r *PinRequest) Validate() error {
	r.RPName = strings.TrimSpace(r.RPName)
	r.Nickname = strings.TrimSpace(r.Nickname)
	r.Message = strings.TrimSpace(r.Message)

	if r.Nickname == "" {
		return &ValidationError{Field: "nickname", Reason: "is required"}
	}
	if utf8.RuneCountInString(r.Nickname) > maxNameLen {
		return &ValidationError{Field: "nickname", Reason: "must be 30 characters or less"}
	}
	if utf8.RuneCountInString(r.RPName) > maxNameLen {
		return &ValidationError{Field: "rp_name", Reason: "must be 30 characters or less"}
	}
	if !r.Category.Valid() {
		return &ValidationError{Field: "main", Reason: "must be one of 1, 2, 3, 4, council"}
	}
	if r.Message == "" {
		return &ValidationError{Field: "message", Reason: "is required"}
	}
	if r.AuthorID == "" {
		return &ValidationError{Field: "author_id", Reason: "is required"}
	}
	if _, err := uuid.Parse(r.AuthorID); err != nil {
		return &ValidationError{Field: "author_id", Reason: "must be a valid UUID"}
	}
	return nil
}
