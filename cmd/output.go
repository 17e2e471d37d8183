package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/portfolio/internal/httpclient"
	"github.com/Zachkp/portfolio/internal/theme"
)

var asJSON bool

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ecc71"))
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes tab separated rows aligned in columns under a bold header.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = headingStyle.Render(h)
	}
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// swatch shows color as a filled block followed by its value. Values that are
// not hex colors are printed without the block.
func swatch(color string) string {
	if !strings.HasPrefix(color, "#") {
		return mutedStyle.Render(color)
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("   ") + " " + color
}

func renderTheme(w io.Writer, m theme.Mode) error {
	fmt.Fprintf(w, "%s %s\n\n", headingStyle.Render("Theme:"), m)

	rows := make([][]string, 0, len(theme.Variants()))
	for _, v := range theme.Variants() {
		t := theme.Resolve(m, v)
		rows = append(rows, []string{string(v), swatch(t.Foreground), swatch(t.Background), swatch(t.Border), swatch(t.Hover)})
	}
	return table(w, []string{"VARIANT", "FOREGROUND", "BACKGROUND", "BORDER", "HOVER"}, rows)
}

func orNone(s string) string {
	if s == "" {
		return mutedStyle.Render("-")
	}
	return s
}

// describe turns a not-found error into notFound and names unreachable APIs.
func describe(err error, notFound string) error {
	switch {
	case httpclient.IsNotFound(err) && notFound != "":
		return errors.New(notFound)
	case httpclient.IsNetwork(err):
		return fmt.Errorf("content API unreachable: %w", err)
	}
	return err
}
