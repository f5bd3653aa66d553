package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthorID = "11111111-1111-4111-8111-111111111111"

func validRequest() PinRequest {
	return PinRequest{
		RPName:   "Duchess",
		Nickname: "moonbeam",
		Category: CategoryMain1,
		Message:  "meet at the docks",
		AuthorID: testAuthorID,
	}
}

func TestCategoryDisplayNames(t *testing.T) {
	assert.Equal(t, "Main 1", CategoryMain1.DisplayName())
	assert.Equal(t, "Main 4", CategoryMain4.DisplayName())
	assert.Equal(t, "Council", CategoryCouncil.DisplayName())

	// Unknown codes pass through unchanged.
	assert.Equal(t, "volleyball", Category("volleyball").DisplayName())
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), "category %q", c)
	}
	assert.False(t, Category("").Valid())
	assert.False(t, Category("5").Valid())
}

func TestParseSortOrderDefaultsToNewest(t *testing.T) {
	assert.Equal(t, SortNewest, ParseSortOrder("newest"))
	assert.Equal(t, SortOldest, ParseSortOrder("oldest"))
	assert.Equal(t, SortAlphaAsc, ParseSortOrder("a-z"))
	assert.Equal(t, SortAlphaDesc, ParseSortOrder("z-a"))

	assert.Equal(t, SortNewest, ParseSortOrder(""))
	assert.Equal(t, SortNewest, ParseSortOrder("sideways"))
}

func TestValidateAcceptsAndTrims(t *testing.T) {
	req := validRequest()
	req.Nickname = "  moonbeam  "
	req.Message = " hello "

	require.NoError(t, req.Validate())
	assert.Equal(t, "moonbeam", req.Nickname)
	assert.Equal(t, "hello", req.Message)
}

// Name limits count characters, not bytes: thirty two-byte runes is
// sixty bytes and still a legal nickname.
func TestValidateCountsCharactersNotBytes(t *testing.T) {
	req := validRequest()
	req.Nickname = strings.Repeat("é", 30)
	req.RPName = strings.Repeat("ñ", 30)

	assert.NoError(t, req.Validate())
}

func TestValidateOptionalRPName(t *testing.T) {
	req := validRequest()
	req.RPName = ""
	assert.NoError(t, req.Validate())
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PinRequest)
		field  string
	}{
		{"missing nickname", func(r *PinRequest) { r.Nickname = "   " }, "nickname"},
		{"nickname too long", func(r *PinRequest) { r.Nickname = strings.Repeat("x", 31) }, "nickname"},
		{"nickname too long in runes", func(r *PinRequest) { r.Nickname = strings.Repeat("é", 31) }, "nickname"},
		{"rp name too long", func(r *PinRequest) { r.RPName = strings.Repeat("x", 31) }, "rp_name"},
		{"rp name too long in runes", func(r *PinRequest) { r.RPName = strings.Repeat("ñ", 31) }, "rp_name"},
		{"invalid category", func(r *PinRequest) { r.Category = "5" }, "main"},
		{"missing category", func(r *PinRequest) { r.Category = "" }, "main"},
		{"missing message", func(r *PinRequest) { r.Message = "" }, "message"},
		{"missing author", func(r *PinRequest) { r.AuthorID = "" }, "author_id"},
		{"malformed author", func(r *PinRequest) { r.AuthorID = "not-a-uuid" }, "author_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}
