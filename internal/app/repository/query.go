package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Query option errors, surfaced to handlers as 400s.
var (
	ErrInvalidOrderBy    = errors.New("orderby does not name a sortable column")
	ErrInvalidOrder      = errors.New("order must be asc or desc")
	ErrNegativeOffset    = errors.New("offset must not be negative")
	ErrMissingIdentifier = errors.New("either a name or an identifier is required")
)

const (
	// DefaultListLimit is applied when no limit is given.
	DefaultListLimit = 100
	// MaxListLimit caps the page size; larger requests are clamped.
	MaxListLimit = 100
)

// ListOptions carries untrusted filter, sort and pagination parameters.
// Name and Identifier are exact-match filters and are ANDed when both are
// present. OrderBy is validated against the target entity's sortable
// column allow-list before it reaches the query.
type ListOptions struct {
	Name       string
	Identifier *uuid.UUID
	Offset     int
	Limit      int
	OrderBy    string
	Order      string
}

// applyListOptions turns opts into query clauses. sortable maps exposed
// orderby names to column names; anything outside it is rejected rather
// than resolved dynamically.
func applyListOptions(query *gorm.DB, opts ListOptions, sortable map[string]string) (*gorm.DB, error) {
	if opts.Offset < 0 {
		return nil, ErrNegativeOffset
	}

	order := strings.ToLower(opts.Order)
	if order == "" {
		order = "asc"
	}
	if order != "asc" && order != "desc" {
		return nil, ErrInvalidOrder
	}

	if opts.OrderBy != "" {
		column, ok := sortable[opts.OrderBy]
		if !ok {
			return nil, ErrInvalidOrderBy
		}
		query = query.Order(column + " " + strings.ToUpper(order))
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	return query.Offset(opts.Offset).Limit(limit), nil
}

// Sortable column allow-lists, one per entity. Keys are the names
// accepted in the orderby query parameter.

var brewerySortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"date_created": "date_created",
	"last_updated": "last_updated",
}

var beerSortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"company":      "company",
	"company_id":   "company_id",
	"score":        "score",
	"date_created": "date_created",
	"last_updated": "last_updated",
}

var reviewSortColumns = map[string]string{
	"id":           "id",
	"username":     "username",
	"score":        "score",
	"beer_name":    "beer_name",
	"beer_id":      "beer_id",
	"date_created": "date_created",
	"last_updated": "last_updated",
}
