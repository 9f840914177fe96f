package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed report.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "report.tmpl"))

// WriteHTML renders the report as a single self-contained HTML document:
// inline styles, inline script, no external assets and no network calls from
// the browser.
func WriteHTML(w io.Writer, r *Report) error {
	if err := reportTemplate.Execute(w, r); err != nil {
		return fmt.Errorf("render HTML report: %w", err)
	}
	return nil
}
