package tableview

const (
	// DefaultPageSize is used when neither the request nor saved preferences set one.
	DefaultPageSize = 10
	// MaxPageSize bounds every page window, requested or saved.
	MaxPageSize = 500
)

// PageCount is ceil(total / size).
func PageCount(total, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	count := total / size
	if total%size != 0 {
		count++
	}
	return count
}

// ClampPage keeps page within [1, pageCount]. With no pages at all it is 1.
func ClampPage(page, pageCount int) int {
	if page > pageCount {
		page = pageCount
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns items[(page-1)*size : page*size], bounded by len(items).
func Paginate[T any](items []T, page, size int) []T {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 || page-1 > len(items)/size {
		return []T{}
	}

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}

	end := len(items)
	if size < end-start {
		end = start + size
	}

	return items[start:end]
}
