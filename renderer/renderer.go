// Package renderer renders reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/format"
)

//go:embed *.md
var templates embed.FS

// ReportOptions holds configuration for rendering a report.
type ReportOptions struct {
	SkipAdvisors bool // Do not render the per advisor section.
	SkipClients  bool // Do not render the client table.
}

// RenderReport renders r to a markdown string, with values formatted by f.
func RenderReport(r *clientbook.Report, f *format.Formatter, opts ReportOptions) string {
	partials := map[string]string{
		"report_title":    "report_title.md",
		"report_warnings": "report_warnings.md",
		"report_kpis":     "report_kpis.md",
		"report_advisors": "report_advisors.md",
		"report_clients":  "report_clients.md",
	}
	// An empty file name results in an empty template.
	if opts.SkipAdvisors {
		partials["report_advisors"] = ""
	}
	if opts.SkipClients {
		partials["report_clients"] = ""
	}
	return renderTemplate("report", "report.md", partials, NewReport(r, f))
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
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
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

// cell escapes s for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
