// Package pagination derives page controls from a server-reported total
// count. The count always comes from the API response, never from the
// length of the local page.
package pagination

// Ellipsis marks a gap in a page-number strip.
const Ellipsis = -1

func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

// Range is the "showing X to Y of Z" line under a table.
type Range struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Total int `json:"total"`
}

func Showing(page, pageSize, totalCount int) Range {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || totalCount <= 0 {
		return Range{Total: totalCount}
	}
	from := (page-1)*pageSize + 1
	if from > totalCount {
		return Range{Total: totalCount}
	}
	to := page * pageSize
	if to > totalCount {
		to = totalCount
	}
	return Range{From: from, To: to, Total: totalCount}
}

// PageNumbers builds the strip of page buttons: first page, a window of
// one page around the current one, the last page, with Ellipsis filling
// the gaps.
func PageNumbers(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	pages := []int{1}

	start := current - 1
	if start < 2 {
		start = 2
	}
	end := current + 1
	if end > totalPages-1 {
		end = totalPages - 1
	}

	if start > 2 {
		pages = append(pages, Ellipsis)
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < totalPages-1 {
		pages = append(pages, Ellipsis)
	}
	if totalPages > 1 {
		pages = append(pages, totalPages)
	}
	return pages
}
