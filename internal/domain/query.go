package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnknownSortKey indicates a sort key outside the supported set.
	ErrUnknownSortKey = errors.New("unknown sort key")
	// ErrUnknownSortDirection indicates a direction other than asc or desc.
	ErrUnknownSortDirection = errors.New("unknown sort direction")
)

// SortKey selects the product field a query orders by.
type SortKey string

// Supported sort keys.
const (
	SortByName   SortKey = "name"
	SortByPrice  SortKey = "price"
	SortByStock  SortKey = "stock"
	SortByRating SortKey = "rating"
	SortBySales  SortKey = "sales"
)

// SortDirection selects ascending or descending order.
type SortDirection string

// Supported sort directions.
const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Query is a validated catalog filter and ordering. Construct it with
// NewQuery; the zero value filters nothing and leaves input order unchanged.
type Query struct {
	Search    string
	Category  string
	Material  string
	Sort      SortKey
	Direction SortDirection
}

// NewQuery validates the filter and ordering parameters. Unknown sort keys or
// directions are programming errors and are rejected here, before any product
// is evaluated. Empty search, category and material values match everything.
func NewQuery(search, category, material string, key SortKey, dir SortDirection) (Query, error) {
	switch key {
	case SortByName, SortByPrice, SortByStock, SortByRating, SortBySales:
	default:
		return Query{}, ErrUnknownSortKey
	}
	switch dir {
	case Ascending, Descending:
	default:
		return Query{}, ErrUnknownSortDirection
	}
	return Query{
		Search:    search,
		Category:  category,
		Material:  material,
		Sort:      key,
		Direction: dir,
	}, nil
}

// Match reports whether a single product passes the query's filters.
// Name matching is a case-insensitive substring test; category and material
// are trimmed, case-insensitive exact matches.
func (q Query) Match(p Product) bool {
	if q.Search != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) {
		return false
	}
	if !fieldMatch(p.Category, q.Category) {
		return false
	}
	return fieldMatch(p.Material, q.Material)
}

// Apply returns the filtered, ordered view of products. The input slice and
// its elements are never modified; the result is a fresh slice referencing
// the matching products. The sort is stable, so ties keep their original
// relative order under both directions.
func (q Query) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if q.Match(p) {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := q.compare(out[i], out[j])
		if q.Direction == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// compare orders two products by the query's sort key. String fields compare
// case-insensitively, numeric fields numerically. The zero Query compares
// everything equal, which leaves input order intact under a stable sort.
func (q Query) compare(a, b Product) int {
	switch q.Sort {
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByPrice:
		return compareFloat(a.Price, b.Price)
	case SortByStock:
		return a.Stock - b.Stock
	case SortByRating:
		return compareFloat(a.Rating, b.Rating)
	case SortBySales:
		return a.Sales - b.Sales
	}
	return 0
}

// fieldMatch implements the trimmed, case-insensitive exact match used for
// the category and material filters. An empty filter value matches all.
func fieldMatch(value, filter string) bool {
	if strings.TrimSpace(filter) == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(filter))
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
