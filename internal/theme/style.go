package theme

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
)

// Palette is the set of colors for one mode.
type Palette struct {
	Primary       string
	PrimaryDark   string
	Background    string
	Text          string
	TextSecondary string
	Card          string
	Border        string
	Surface       string
	SurfaceHover  string
}

var palettes = map[Mode]Palette{
	Light: {
		Primary:       "#3498db",
		PrimaryDark:   "#2980b9",
		Background:    "#ffffff",
		Text:          "#222222",
		TextSecondary: "#666666",
		Card:          "#ffffff",
		Border:        "#dddddd",
		Surface:       "#f0f0f0",
		SurfaceHover:  "#e0e0e0",
	},
	Dark: {
		Primary:       "#3498db",
		PrimaryDark:   "#2980b9",
		Background:    "#121212",
		Text:          "#e0e0e0",
		TextSecondary: "#a0a0a0",
		Card:          "#1e1e1e",
		Border:        "#333333",
		Surface:       "#2a2a2a",
		SurfaceHover:  "#333333",
	},
}

// PaletteFor returns the palette of m (Light for unknown modes).
func PaletteFor(m Mode) Palette {
	if p, ok := palettes[m]; ok {
		return p
	}
	return palettes[Light]
}

// Variant names a styled element kind.
type Variant string

const (
	VariantPage         Variant = "page"
	VariantCard         Variant = "card"
	VariantText         Variant = "text"
	VariantMuted        Variant = "muted"
	VariantFilter       Variant = "filter"
	VariantFilterActive Variant = "filter-active"
	VariantError        Variant = "error"
	VariantSuccess      Variant = "success"
)

// Tokens are the resolved style values for one (mode, variant) pair.
type Tokens struct {
	Foreground string
	Background string
	Border     string
	Hover      string
}

const (
	errorColor   = "#e74c3c"
	successColor = "#2ecc71"
)

// Resolve maps (mode, variant) to style tokens. It is the only place that
// decides colors, so templates and the CLI stay free of mode conditionals.
func Resolve(m Mode, v Variant) Tokens {
	p := PaletteFor(m)
	switch v {
	case VariantCard:
		return Tokens{Foreground: p.Text, Background: p.Card, Border: p.Border, Hover: p.SurfaceHover}
	case VariantText:
		return Tokens{Foreground: p.Text, Background: "transparent", Border: "transparent", Hover: p.Primary}
	case VariantMuted:
		return Tokens{Foreground: p.TextSecondary, Background: "transparent", Border: "transparent", Hover: p.Text}
	case VariantFilter:
		fg := "#555555"
		if m == Dark {
			fg = p.Text
		}
		return Tokens{Foreground: fg, Background: p.Surface, Border: "transparent", Hover: p.SurfaceHover}
	case VariantFilterActive:
		return Tokens{Foreground: "#ffffff", Background: p.Primary, Border: "transparent", Hover: p.PrimaryDark}
	case VariantError:
		return Tokens{Foreground: errorColor, Background: "rgba(231, 76, 60, 0.1)", Border: errorColor, Hover: errorColor}
	case VariantSuccess:
		return Tokens{Foreground: successColor, Background: "rgba(46, 204, 113, 0.1)", Border: successColor, Hover: successColor}
	}
	return Tokens{Foreground: p.Text, Background: p.Background, Border: p.Border, Hover: p.Primary}
}

// Variants lists every variant Resolve knows.
func Variants() []Variant {
	return []Variant{
		VariantPage, VariantCard, VariantText, VariantMuted,
		VariantFilter, VariantFilterActive, VariantError, VariantSuccess,
	}
}

// CSSVariables renders the tokens of m as custom properties on :root, one
// --<variant>-<slot> per token.
func CSSVariables(m Mode) template.CSS {
	vars := map[string]string{}
	for _, v := range Variants() {
		t := Resolve(m, v)
		vars[fmt.Sprintf("--%s-fg", v)] = t.Foreground
		vars[fmt.Sprintf("--%s-bg", v)] = t.Background
		vars[fmt.Sprintf("--%s-border", v)] = t.Border
		vars[fmt.Sprintf("--%s-hover", v)] = t.Hover
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root{")
	for _, name := range names {
		fmt.Fprintf(&b, "%s:%s;", name, vars[name])
	}
	b.WriteString("}")
	return template.CSS(b.String())
}
