// Package list holds the pagination contract shared by every listing
// repository: the narrowing parameters that come in and the page that
// goes out.
package list

// Params narrows a listing. Busca is a case-insensitive substring matched
// against the entity's documented search columns; Filtro is an exact match
// against the entity's enumerated column (situação, perfil) and is ignored
// by entities without one. Page starts at 1; values below 1 are treated
// as 1.
type Params struct {
	Busca    string
	Filtro   string
	Page     int
	PageSize int
}

// Offset returns the SQL offset for the normalized page.
func (p Params) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.PageSize
}

// Page is one page of a listing plus the totals the views paginate with.
// A page past the end carries zero items and keeps Total intact.
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

// TotalPages derives the page count from Total and PageSize.
func (p *Page[T]) TotalPages() int {
	if p.PageSize <= 0 || p.Total == 0 {
		return 0
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}
