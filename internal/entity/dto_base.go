package entity

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Meta 包含分页元数据。
type Meta struct {
	Page     int64 `json:"page"`
	PageSize int64 `json:"page_size"`
	Total    int64 `json:"total"`
}

// BaseParams carries offset pagination. Field names follow the web client.
type BaseParams struct {
	PageSize int64 `json:"size" form:"size"`
	Page     int64 `json:"currentPage" form:"currentPage"`
}

// Normalize clamps page and size into their allowed ranges.
func (p *BaseParams) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset is the number of rows skipped before the requested page.
func (p BaseParams) Offset() int {
	page, size := p.Page, p.PageSize
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return int((page - 1) * size)
}

// Limit is the page size as an int.
func (p BaseParams) Limit() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	return int(p.PageSize)
}

// CountResponse carries a single counter.
type CountResponse struct {
	Count int64 `json:"count"`
}
