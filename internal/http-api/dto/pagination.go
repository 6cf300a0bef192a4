package dto

import "strconv"

const (
	ShelfPageSize  = 10
	ReviewPageSize = 3
)

// Page describes one page of a paginated listing.
type Page struct {
	Number         int   `json:"page"`
	PageSize       int   `json:"page_size"`
	Total          int64 `json:"total"`
	TotalPages     int   `json:"total_pages"`
	HasPrevious    bool  `json:"has_previous"`
	HasNext        bool  `json:"has_next"`
	PreviousNumber int   `json:"previous_page_number,omitempty"`
	NextNumber     int   `json:"next_page_number,omitempty"`
}

// ParsePageNumber reads a raw page parameter. Anything that is not an
// integer means the first page.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// NewPage builds the page info. There is always at least one page, and a
// number outside 1..TotalPages resolves to the last page.
func NewPage(total int64, number, pageSize int) Page {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}
	if number < 1 || number > totalPages {
		number = totalPages
	}

	p := Page{
		Number:      number,
		PageSize:    pageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasPrevious: number > 1,
		HasNext:     number < totalPages,
	}
	if p.HasPrevious {
		p.PreviousNumber = number - 1
	}
	if p.HasNext {
		p.NextNumber = number + 1
	}
	return p
}

// Numbers lists every page number, for rendering page links.
func (p Page) Numbers() []int {
	numbers := make([]int, p.TotalPages)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}
