package models

// PaginationMetadata describes a windowed result set. It is emitted
// out-of-band in the X-Pagination response header, never persisted.
type PaginationMetadata struct {
	TotalCount  int64 `json:"totalCount"`
	PageSize    int   `json:"pageSize"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}

// NewPaginationMetadata computes the page window for a filtered total.
// pageSize must already be validated as positive by the caller.
func NewPaginationMetadata(totalCount int64, page, pageSize int) PaginationMetadata {
	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	return PaginationMetadata{
		TotalCount:  totalCount,
		PageSize:    pageSize,
		CurrentPage: page,
		TotalPages:  totalPages,
	}
}
