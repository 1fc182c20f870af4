// Package renderer renders stockbook reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/stockbook"
)

//go:embed templates/*.md
var templatesFS embed.FS

// templates holds the template files, at the root.
var templates, _ = fs.Sub(templatesFS, "templates")

// SummaryMarkdown renders the portfolio figures, the item counts and the advice.
func SummaryMarkdown(in stockbook.Insights) string {
	partials := map[string]string{
		"summary_sales":  "summary_sales.md",
		"summary_status": "summary_status.md",
		"summary_advice": "summary_advice.md",
	}
	return renderTemplate("summary", "summary.md", partials, in)
}

// LotsMarkdown renders one table row per lot.
func LotsMarkdown(lines []stockbook.LotLine) string {
	return renderTemplate("lots", "lots.md", nil, lines)
}

// ItemsMarkdown renders one table row per item.
func ItemsMarkdown(lines []stockbook.ItemLine) string {
	return renderTemplate("items", "items.md", nil, lines)
}

// ConfigMarkdown renders the configuration.
func ConfigMarkdown(c stockbook.Config) string {
	return renderTemplate("config", "config.md", nil, c)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
