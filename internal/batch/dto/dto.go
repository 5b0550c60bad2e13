package dto

type BatchFilters struct {
	Page     int
	PageSize int // 0 returns every batch
}

// Offset converts the 1-based page into a row offset.
func (f *BatchFilters) Offset() int {
	if f.PageSize <= 0 || f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
