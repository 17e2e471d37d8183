// Package devapi serves the content API contract from a directory of markdown
// files, so the site can run locally without the production API.
package devapi

import (
	"bytes"
	"cmp"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"unicode"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/markdown"
)

const (
	projectPattern = "projects/*.md"
	postPattern    = "blog/**/*.md"
	wordsPerMinute = 200
)

type projectMeta struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Slug         string   `yaml:"slug"`
	Description  string   `yaml:"description"`
	Summary      string   `yaml:"summary"`
	Thumbnail    string   `yaml:"thumbnail"`
	Images       []string `yaml:"images"`
	Technologies []string `yaml:"technologies"`
	Category     string   `yaml:"category"`
	Featured     bool     `yaml:"featured"`
	DemoURL      string   `yaml:"demoUrl"`
	RepoURL      string   `yaml:"repoUrl"`
	CompletedAt  string   `yaml:"completedAt"`
}

type postMeta struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	Excerpt     string   `yaml:"excerpt"`
	CoverImage  string   `yaml:"coverImage"`
	Author      string   `yaml:"author"`
	Avatar      string   `yaml:"avatar"`
	Categories  []string `yaml:"categories"`
	Tags        []string `yaml:"tags"`
	PublishedAt string   `yaml:"publishedAt"`
	UpdatedAt   string   `yaml:"updatedAt"`
	ReadTime    int      `yaml:"readTime"`
	Featured    bool     `yaml:"featured"`
	Draft       bool     `yaml:"draft"`
}

// Content is one loaded snapshot of the content directory.
type Content struct {
	Projects []api.Project
	Posts    []api.BlogPost
}

// Load reads projects/*.md and blog/**/*.md from fsys. Project bodies stay
// markdown; post bodies are rendered to HTML. Draft posts are skipped.
func Load(fsys fs.FS, md *markdown.Renderer) (*Content, error) {
	c := &Content{}

	projectFiles, err := doublestar.Glob(fsys, projectPattern)
	if err != nil {
		return nil, fmt.Errorf("glob projects: %w", err)
	}
	for _, name := range projectFiles {
		var meta projectMeta
		body, err := parseFile(fsys, name, &meta)
		if err != nil {
			return nil, err
		}
		slug := cmp.Or(meta.Slug, slugFromPath(name))
		c.Projects = append(c.Projects, api.Project{
			ID:           cmp.Or(meta.ID, slug),
			Title:        meta.Title,
			Slug:         slug,
			Description:  meta.Description,
			Summary:      meta.Summary,
			Thumbnail:    meta.Thumbnail,
			Images:       meta.Images,
			Technologies: meta.Technologies,
			Category:     meta.Category,
			Featured:     meta.Featured,
			DemoURL:      meta.DemoURL,
			RepoURL:      meta.RepoURL,
			CompletedAt:  meta.CompletedAt,
			Content:      strings.TrimSpace(string(body)),
		})
	}

	postFiles, err := doublestar.Glob(fsys, postPattern)
	if err != nil {
		return nil, fmt.Errorf("glob posts: %w", err)
	}
	for _, name := range postFiles {
		var meta postMeta
		body, err := parseFile(fsys, name, &meta)
		if err != nil {
			return nil, err
		}
		if meta.Draft {
			continue
		}
		html, err := md.Render(string(body))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		slug := cmp.Or(meta.Slug, slugFromPath(name))
		readTime := meta.ReadTime
		if readTime == 0 {
			readTime = estimateReadTime(string(body))
		}
		c.Posts = append(c.Posts, api.BlogPost{
			ID:          cmp.Or(meta.ID, slug),
			Title:       meta.Title,
			Slug:        slug,
			Excerpt:     meta.Excerpt,
			Content:     string(html),
			CoverImage:  meta.CoverImage,
			Author:      api.Author{Name: meta.Author, Avatar: meta.Avatar},
			Categories:  meta.Categories,
			Tags:        meta.Tags,
			PublishedAt: meta.PublishedAt,
			UpdatedAt:   meta.UpdatedAt,
			ReadTime:    readTime,
			Featured:    meta.Featured,
		})
	}

	// Newest first; ties keep a stable order by slug.
	slices.SortFunc(c.Projects, func(a, b api.Project) int {
		return cmp.Or(cmp.Compare(b.CompletedAt, a.CompletedAt), cmp.Compare(a.Slug, b.Slug))
	})
	slices.SortFunc(c.Posts, func(a, b api.BlogPost) int {
		return cmp.Or(cmp.Compare(b.PublishedAt, a.PublishedAt), cmp.Compare(a.Slug, b.Slug))
	})

	if err := checkUniqueSlugs(c); err != nil {
		return nil, err
	}
	return c, nil
}

func parseFile(fsys fs.FS, name string, meta any) ([]byte, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	body, err := frontmatter.Parse(bytes.NewReader(raw), meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter of %s: %w", name, err)
	}
	return body, nil
}

func checkUniqueSlugs(c *Content) error {
	seen := map[string]bool{}
	for _, p := range c.Projects {
		if seen[p.Slug] {
			return fmt.Errorf("duplicate project slug %q", p.Slug)
		}
		seen[p.Slug] = true
	}
	clear(seen)
	for _, p := range c.Posts {
		if seen[p.Slug] {
			return fmt.Errorf("duplicate post slug %q", p.Slug)
		}
		seen[p.Slug] = true
	}
	return nil
}

// slugFromPath turns "blog/2024/Hello World.md" into "hello-world".
func slugFromPath(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(base) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func estimateReadTime(body string) int {
	words := len(strings.Fields(body))
	return max(1, (words+wordsPerMinute-1)/wordsPerMinute)
}
