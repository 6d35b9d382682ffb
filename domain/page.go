package domain

// Page is one fetched slice of a paginated collection.
// Total counts the items of the whole collection, not only this slice.
type Page[T any] struct {
	Href  string
	Limit int
	Next  *string // URL of the following page, nil on the last one
	Total int
	Items []T
}

// HasNext reports whether the API advertised a following page
func (p *Page[T]) HasNext() bool {
	return p.Next != nil
}

// IsLast reports whether a page requested at offset is the final one
func (p *Page[T]) IsLast(offset int) bool {
	return offset+p.Limit >= p.Total
}

// NextOffset returns the offset of the page after the one requested at offset
func (p *Page[T]) NextOffset(offset int) int {
	return offset + p.Limit
}
