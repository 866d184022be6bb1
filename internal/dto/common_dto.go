package dto

// PageQuery is the shared offset/limit pagination input.
type PageQuery struct {
	Offset int `form:"offset" binding:"omitempty,min=0"`
	Limit  int `form:"limit" binding:"omitempty,min=1,max=10000"`
}

// PageMeta mirrors the legacy paging envelope: next is the offset of the
// following page, 0 when the listing is exhausted.
type PageMeta struct {
	Total int64 `json:"total"`
	Next  int   `json:"next"`
}

// NextOffset computes the offset of the following page.
func NextOffset(offset, limit int, total int64) int {
	if next := offset + limit; int64(next) < total {
		return next
	}
	return 0
}
