package filter

const (
	DefaultBreakpoint = 768
	WidePageSize      = 3
)

// PageSize is one item per page below the breakpoint, WidePageSize otherwise.
func PageSize(viewportWidth, breakpoint int) int {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	if viewportWidth < breakpoint {
		return 1
	}
	return WidePageSize
}

// Paginate splits items into pages of size in their original order. The last
// page may be shorter; no input means no pages.
func Paginate[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	pages := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}
