package filter

// Carousel tracks the visible page of a paginated collection. Manual
// navigation clamps at both ends; Advance wraps from the last page to the
// first.
type Carousel struct {
	pages   int
	current int
}

func NewCarousel(pages int) *Carousel {
	c := &Carousel{}
	c.Resize(pages)
	return c
}

func (c *Carousel) Pages() int   { return c.pages }
func (c *Carousel) Current() int { return c.current }

func (c *Carousel) HasPrev() bool { return c.current > 0 }
func (c *Carousel) HasNext() bool { return c.current < c.pages-1 }

func (c *Carousel) Prev() int {
	return c.Go(c.current - 1)
}

func (c *Carousel) Next() int {
	return c.Go(c.current + 1)
}

// Go moves to page i, clamped into range.
func (c *Carousel) Go(i int) int {
	if c.pages == 0 {
		c.current = 0
		return 0
	}
	c.current = max(0, min(i, c.pages-1))
	return c.current
}

// Advance is the auto-advance step.
func (c *Carousel) Advance() int {
	if c.pages == 0 {
		return 0
	}
	c.current = (c.current + 1) % c.pages
	return c.current
}

// Resize changes the page count (the viewport crossed the breakpoint) and
// returns to the first page.
func (c *Carousel) Resize(pages int) {
	c.pages = max(pages, 0)
	c.current = 0
}
