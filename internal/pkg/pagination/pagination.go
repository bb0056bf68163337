package pagination

// Query carries the common list-query parameters. Zero values are
// normalized to the defaults (page 1, limit 10).
type Query struct {
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
	Search  string `form:"search"`
	Sort    string `form:"sort"`     // asc | desc
	OrderBy string `form:"order_by"` // column, defaults to created_at
}

func (q *Query) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Sort != "asc" {
		q.Sort = "desc"
	}
	if q.OrderBy == "" {
		q.OrderBy = "created_at"
	}
}

// Skip returns the row offset for the current page.
func (q Query) Skip() int {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return (page - 1) * limit
}

// TotalPages returns ceil(total/limit), never less than 1.
func (q Query) TotalPages(total int64) int {
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}

// Meta is the standard paginated response envelope.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func (q Query) Meta(total int64) Meta {
	q.Normalize()
	return Meta{
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: q.TotalPages(total),
	}
}
