// Package paging slices result sets into pages.
package paging

import "errors"

// ErrInvalidParams reports a page number or page size below 1.
var ErrInvalidParams = errors.New("invalid pagination parameters")

// Paginate returns page pageNumber (1-based) of seq along with the total
// record and page counts. The slice is clamped to the sequence bounds; a
// page past the end is empty, not an error.
func Paginate[T any](seq []T, pageNumber, pageSize int) (page []T, totalRecords, totalPages int, err error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, 0, 0, ErrInvalidParams
	}
	totalRecords = len(seq)
	totalPages = (totalRecords + pageSize - 1) / pageSize

	start := (pageNumber - 1) * pageSize
	if start > totalRecords {
		start = totalRecords
	}
	end := start + pageSize
	if end > totalRecords {
		end = totalRecords
	}
	page = seq[start:end]
	if page == nil {
		page = []T{}
	}
	return page, totalRecords, totalPages, nil
}
