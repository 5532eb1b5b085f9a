// Package pagination provides the offset-based page envelope shared by
// catalog and order listings.
package pagination

import "errors"

// ErrInvalidPage signals non-positive page parameters.
var ErrInvalidPage = errors.New("pageNumber and pageSize must be greater than zero")

// Defaults applied by the transport layer when parameters are omitted.
const (
	DefaultNumber = 1
	DefaultSize   = 10
)

// Page identifies one slice of a filtered result set.
type Page struct {
	Number int
	Size   int
}

// Validate rejects non-positive page parameters.
func (p Page) Validate() error {
	if p.Number <= 0 || p.Size <= 0 {
		return ErrInvalidPage
	}
	return nil
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Result carries one page of items plus the total count of the filtered set
// before pagination was applied.
type Result[T any] struct {
	PageNumber int
	PageSize   int
	TotalItems int64
	Items      []T
}

// NewResult assembles a page envelope.
func NewResult[T any](page Page, totalItems int64, items []T) *Result[T] {
	return &Result[T]{
		PageNumber: page.Number,
		PageSize:   page.Size,
		TotalItems: totalItems,
		Items:      items,
	}
}
