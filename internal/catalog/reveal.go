package catalog

const (
	// InitialVisibleCount is the page size shown after mount or a new search.
	InitialVisibleCount = 18
	// LoadMoreCount is added each time the reader nears the end of the page.
	LoadMoreCount = 9
	// LoadMoreThreshold is the distance in pixels from the bottom of the
	// document at which more results are revealed.
	LoadMoreThreshold = 300
)

// Reveal tracks how many filtered results are rendered.
type Reveal struct {
	count int
}

// NewReveal starts at the initial page size.
func NewReveal() Reveal {
	return Reveal{count: InitialVisibleCount}
}

// Count is the raw visible count, which may exceed the result length.
func (r Reveal) Count() int {
	return r.count
}

// HasMore reports whether results beyond the visible window exist.
func (r Reveal) HasMore(total int) bool {
	return r.count < total
}

// Visible returns the number of results to render out of total.
func (r Reveal) Visible(total int) int {
	return min(r.count, total)
}

// Grow reveals another page when more results exist. Once the window covers
// everything it is a no-op, so callers may fire it as often as they like.
func (r *Reveal) Grow(total int) bool {
	if !r.HasMore(total) {
		return false
	}
	r.count += LoadMoreCount
	return true
}

// Reset shrinks the window back to the initial page size.
func (r *Reveal) Reset() {
	r.count = InitialVisibleCount
}

// NearBottom reports whether the bottom of the viewport is within threshold
// of the end of the document. Units are whatever the caller measures in.
func NearBottom(viewportHeight, scrollOffset, documentHeight, threshold int) bool {
	return viewportHeight+scrollOffset >= documentHeight-threshold
}
