// Package site holds the fixed copy of the portfolio: profile, experience,
// skills and testimonials. It is compiled into the binary.
package site

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var siteYAML []byte

type Profile struct {
	Name     string   `yaml:"name"`
	Role     string   `yaml:"role"`
	Greeting string   `yaml:"greeting"`
	Tagline  string   `yaml:"tagline"`
	About    []string `yaml:"about"`
}

type Experience struct {
	Role         string   `yaml:"role"`
	Company      string   `yaml:"company"`
	StartDate    string   `yaml:"startDate"`
	EndDate      string   `yaml:"endDate"`
	Logo         string   `yaml:"logo"`
	Achievements []string `yaml:"achievements"`
}

type Education struct {
	Degree      string   `yaml:"degree"`
	Institution string   `yaml:"institution"`
	StartDate   string   `yaml:"startDate"`
	EndDate     string   `yaml:"endDate"`
	Logo        string   `yaml:"logo"`
	Highlights  []string `yaml:"highlights"`
}

type SocialLink struct {
	Platform string `yaml:"platform"`
	URL      string `yaml:"url"`
}

type Skill struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Level    string `yaml:"level"`
	Category string `yaml:"category"`
}

type Testimonial struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Role    string `yaml:"role"`
	Company string `yaml:"company"`
	Avatar  string `yaml:"avatar"`
	Content string `yaml:"content"`
}

// Initials is the avatar fallback.
func (t Testimonial) Initials() string {
	var out []rune
	start := true
	for _, r := range t.Name {
		if r == ' ' {
			start = true
			continue
		}
		if start {
			out = append(out, r)
			start = false
		}
	}
	return string(out)
}

// Site is the whole static copy.
type Site struct {
	Profile      Profile       `yaml:"profile"`
	Experience   []Experience  `yaml:"experience"`
	Education    []Education   `yaml:"education"`
	Socials      []SocialLink  `yaml:"socials"`
	Skills       []Skill       `yaml:"skills"`
	Testimonials []Testimonial `yaml:"testimonials"`
}

// SkillGroup is one category of skills in first-seen order.
type SkillGroup struct {
	Category string
	Skills   []Skill
}

func (s *Site) SkillGroups() []SkillGroup {
	var groups []SkillGroup
	index := map[string]int{}
	for _, sk := range s.Skills {
		i, ok := index[sk.Category]
		if !ok {
			i = len(groups)
			index[sk.Category] = i
			groups = append(groups, SkillGroup{Category: sk.Category})
		}
		groups[i].Skills = append(groups[i].Skills, sk)
	}
	return groups
}

// Load parses the embedded copy.
func Load() (*Site, error) {
	return Parse(siteYAML)
}

func Parse(b []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse site copy: %w", err)
	}
	if s.Profile.Name == "" {
		return nil, fmt.Errorf("parse site copy: profile name is required")
	}
	return &s, nil
}
