package query

import "github.com/heriaond/healthy-lifestyle-tips/internal/model"

// SearchIn restricts which tip fields a free-text search matches against.
type SearchIn string

const (
	SearchBoth        SearchIn = "both"
	SearchTitle       SearchIn = "title"
	SearchDescription SearchIn = "description"
)

// ValidSearchIn reports whether s names a known search scope.
func ValidSearchIn(s string) bool {
	switch SearchIn(s) {
	case SearchBoth, SearchTitle, SearchDescription:
		return true
	}
	return false
}

// Params are the tip search inputs. Zero values mean "no restriction"
// except Page and Limit, which callers obtain from DefaultParams.
type Params struct {
	Search        string
	SearchIn      SearchIn
	Categories    []model.Category
	ShowFavorites bool
	ShowMyTips    bool
	Page          int
	Limit         int
}

// DefaultParams returns Params with the documented defaults applied.
func DefaultParams() Params {
	return Params{
		SearchIn: SearchBoth,
		Page:     1,
		Limit:    9,
	}
}
