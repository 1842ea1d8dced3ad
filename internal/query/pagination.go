package query

// OrderNewestFirst is the result ordering contract: newest first, with
// id as a stable tie-breaker so pages stay deterministic.
const OrderNewestFirst = "created_at DESC, id DESC"

// TotalPages returns ceil(total/limit), 0 when total is 0.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// HasMore reports whether pages beyond page exist.
func HasMore(page, totalPages int) bool {
	return page < totalPages
}

// Offset returns the row offset of the window [(page-1)*limit, page*limit).
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
