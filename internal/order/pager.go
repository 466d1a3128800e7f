package order

// DefaultPageSize is the carousel window used by the playlist screen.
const DefaultPageSize = 5

// Pager windows a resolved order into fixed-size pages. The page index is
// always clamped to the valid range; stepping past either boundary is a no-op
// so boundary controls can simply disable instead of erroring.
type Pager struct {
	total int
	size  int
	page  int
}

// NewPager creates a pager over total items with the given page size.
// A non-positive size falls back to [DefaultPageSize].
func NewPager(total, size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	return &Pager{total: total, size: size}
}

// Pages returns the number of pages (zero when there are no items).
func (p *Pager) Pages() int {
	if p.total == 0 {
		return 0
	}
	return (p.total + p.size - 1) / p.size
}

// Page returns the current page index.
func (p *Pager) Page() int { return p.page }

// HasPrev reports whether a previous page exists.
func (p *Pager) HasPrev() bool { return p.page > 0 }

// HasNext reports whether a next page exists.
func (p *Pager) HasNext() bool { return p.page < p.Pages()-1 }

// Prev steps back one page; a no-op on the first page.
func (p *Pager) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.page--
	return true
}

// Next steps forward one page; a no-op on the last page.
func (p *Pager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.page++
	return true
}

// SetTotal updates the item count, clamping the current page into range.
// Used when the resolved order changes length after an add-songs action.
func (p *Pager) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	if last := p.Pages() - 1; p.page > last {
		if last < 0 {
			p.page = 0
		} else {
			p.page = last
		}
	}
}

// Bounds returns the [start, end) item range of the current page.
func (p *Pager) Bounds() (int, int) {
	start := p.page * p.size
	if start > p.total {
		start = p.total
	}
	end := start + p.size
	if end > p.total {
		end = p.total
	}
	return start, end
}
