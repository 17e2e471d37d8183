// Package filter derives display subsets from in-memory collections: the
// category/technology/tag filters of the listing pages and the testimonial
// paginator.
package filter

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Zachkp/portfolio/internal/api"
)

// All selects the whole collection.
const All = "all"

func isAll(label string) bool {
	return label == "" || label == All
}

// ByCategory keeps items whose category equals label exactly. All returns
// items unchanged.
func ByCategory[T any](items []T, label string, categoryOf func(T) string) []T {
	if isAll(label) {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if categoryOf(it) == label {
			out = append(out, it)
		}
	}
	return out
}

// ByMembership keeps items whose label set contains label.
func ByMembership[T any](items []T, label string, labelsOf func(T) []string) []T {
	if isAll(label) {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if slices.Contains(labelsOf(it), label) {
			out = append(out, it)
		}
	}
	return out
}

// Selection is the transient filter state of one listing page.
type Selection struct {
	Category   string
	Technology string
	Search     string
}

// Active reports whether any filter narrows the collection.
func (s Selection) Active() bool {
	return !isAll(s.Category) || !isAll(s.Technology) || strings.TrimSpace(s.Search) != ""
}

// Projects applies every active filter of sel as a conjunction.
func Projects(items []api.Project, sel Selection) []api.Project {
	out := ByCategory(items, sel.Category, func(p api.Project) string { return p.Category })
	out = ByMembership(out, sel.Technology, func(p api.Project) []string { return p.Technologies })
	return bySearch(out, sel.Search, func(p api.Project) []string {
		return []string{p.Title, p.Summary, p.Description}
	})
}

// Posts filters blog posts by category and tag membership, plus search.
func Posts(items []api.BlogPost, sel Selection) []api.BlogPost {
	out := ByMembership(items, sel.Category, func(p api.BlogPost) []string { return p.Categories })
	out = ByMembership(out, sel.Technology, func(p api.BlogPost) []string { return p.Tags })
	return bySearch(out, sel.Search, func(p api.BlogPost) []string {
		return []string{p.Title, p.Excerpt}
	})
}

func bySearch[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Label is a filter button: the value sent back and its display text.
type Label struct {
	Value   string
	Display string
}

// Labels prefixes All and capitalizes each value for display.
func Labels(values []string) []Label {
	out := make([]Label, 0, len(values)+1)
	out = append(out, Label{Value: All, Display: Capitalize(All)})
	for _, v := range values {
		out = append(out, Label{Value: v, Display: Capitalize(v)})
	}
	return out
}

// Capitalize upper-cases the first rune of s and leaves the rest as written.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.English).String(string(r)) + s[size:]
}

// Limit returns at most n values.
func Limit[T any](values []T, n int) []T {
	if n < 0 || len(values) <= n {
		return values
	}
	return values[:n]
}
