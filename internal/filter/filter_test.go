package filter

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/api"
)

var projects = []api.Project{
	{Slug: "shop", Title: "Shop", Category: "web", Technologies: []string{"Go", "React"}},
	{Slug: "app", Title: "App", Category: "mobile", Technologies: []string{"Swift"}},
	{Slug: "dash", Title: "Dashboard", Category: "web", Technologies: []string{"React", "D3"}, Summary: "Charts for ops"},
	{Slug: "cli", Title: "CLI", Category: "Web", Technologies: []string{"Go"}},
}

func slugs(ps []api.Project) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Slug)
	}
	return out
}

func TestByCategory(t *testing.T) {
	categoryOf := func(p api.Project) string { return p.Category }

	assert.Equal(t, projects, ByCategory(projects, All, categoryOf), "all is identity")
	assert.Equal(t, projects, ByCategory(projects, "", categoryOf))

	for _, label := range []string{"web", "mobile", "Web"} {
		got := ByCategory(projects, label, categoryOf)
		require.NotEmpty(t, got)
		for _, p := range got {
			assert.Equal(t, label, p.Category, "category match is exact")
		}
	}
	assert.Equal(t, []string{"shop", "dash"}, slugs(ByCategory(projects, "web", categoryOf)))
}

func TestByMembership(t *testing.T) {
	techs := func(p api.Project) []string { return p.Technologies }

	got := ByMembership(projects, "React", techs)
	assert.Equal(t, []string{"shop", "dash"}, slugs(got))
	for _, p := range got {
		assert.Contains(t, p.Technologies, "React")
	}
	assert.Empty(t, ByMembership(projects, "react", techs))
}

func TestProjects_Conjunction(t *testing.T) {
	for _, cat := range []string{All, "web", "mobile", "Web"} {
		for _, tech := range []string{All, "Go", "React", "Swift", "D3"} {
			both := Projects(projects, Selection{Category: cat, Technology: tech})
			byCat := Projects(projects, Selection{Category: cat})
			byTech := Projects(projects, Selection{Technology: tech})

			var want []string
			for _, s := range slugs(byCat) {
				if slices.Contains(slugs(byTech), s) {
					want = append(want, s)
				}
			}
			if want == nil {
				want = []string{}
			}
			assert.Equal(t, want, slugs(both), "category %q technology %q", cat, tech)
		}
	}
}

func TestProjects_Search(t *testing.T) {
	got := Projects(projects, Selection{Search: "  CHARTS "})
	assert.Equal(t, []string{"dash"}, slugs(got))

	sel := Selection{Category: "web", Search: "shop"}
	assert.True(t, sel.Active())
	assert.Equal(t, []string{"shop"}, slugs(Projects(projects, sel)))
	assert.False(t, Selection{Category: All}.Active())
}

func TestPosts(t *testing.T) {
	posts := []api.BlogPost{
		{Slug: "a", Title: "Go tips", Categories: []string{"Go"}, Tags: []string{"testing"}},
		{Slug: "b", Title: "CSS", Categories: []string{"Frontend"}, Tags: []string{"css"}},
		{Slug: "c", Title: "More Go", Categories: []string{"Go", "Backend"}, Tags: []string{"css"}},
	}
	got := Posts(posts, Selection{Category: "Go", Technology: "css"})
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Slug)
	assert.Len(t, Posts(posts, Selection{}), 3)
	assert.Empty(t, Posts(posts, Selection{Category: "Rust"}))
}

func TestLabels(t *testing.T) {
	got := Labels([]string{"web", "machine learning"})
	assert.Equal(t, []Label{
		{Value: "all", Display: "All"},
		{Value: "web", Display: "Web"},
		{Value: "machine learning", Display: "Machine learning"},
	}, got)
}

func TestCapitalize_OnlyFirstRune(t *testing.T) {
	assert.Equal(t, "IOS", Capitalize("iOS"))
	assert.Equal(t, "Web-app", Capitalize("web-app"))
	assert.Equal(t, "MacOS", Capitalize("macOS"))
	assert.Equal(t, "Élan", Capitalize("élan"))
	assert.Equal(t, "", Capitalize(""))
}

func TestLimit(t *testing.T) {
	assert.Equal(t, []int{1, 2}, Limit([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1}, Limit([]int{1}, 5))
}

func TestPaginate_RoundTrip(t *testing.T) {
	for n := 0; n <= 10; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		for size := 0; size <= 4; size++ {
			pages := Paginate(items, size)
			var joined []int
			for i, p := range pages {
				require.NotEmpty(t, p)
				if i < len(pages)-1 {
					assert.Len(t, p, max(size, 1))
				}
				joined = append(joined, p...)
			}
			if n == 0 {
				assert.Empty(t, pages)
				continue
			}
			assert.Equal(t, items, joined)
		}
	}
}

func TestTestimonialPages(t *testing.T) {
	testimonials := []string{"a", "b", "c", "d", "e"}

	narrow := Paginate(testimonials, PageSize(375, DefaultBreakpoint))
	require.Len(t, narrow, 5)
	for _, p := range narrow {
		assert.Len(t, p, 1)
	}

	wide := Paginate(testimonials, PageSize(1280, DefaultBreakpoint))
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d", "e"}}, wide)

	assert.Equal(t, WidePageSize, PageSize(768, 768))
	assert.Equal(t, 1, PageSize(767, 0))
}

func TestCarousel(t *testing.T) {
	c := NewCarousel(2)
	assert.Equal(t, 0, c.Prev(), "prev clamps at the first page")
	assert.False(t, c.HasPrev())
	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 1, c.Next(), "next clamps at the last page")
	assert.False(t, c.HasNext())
	assert.Equal(t, 0, c.Advance(), "auto-advance wraps")
	assert.Equal(t, 1, c.Go(9))
	assert.Equal(t, 0, c.Go(-3))

	c.Go(1)
	c.Resize(5)
	assert.Equal(t, 0, c.Current())
	assert.Equal(t, 5, c.Pages())

	empty := NewCarousel(0)
	assert.Equal(t, 0, empty.Next())
	assert.Equal(t, 0, empty.Advance())
}
