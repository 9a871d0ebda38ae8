package ui

import (
	"fmt"
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"dfsummary/app"
)

const introText = `This dashboard shows **basic summary statistics** of a column when
you select it in the table. Click a column header to pick it.

You can show the summary in a ` + "`dialog`" + `, in the ` + "`main`" + ` area below the
table, or ` + "`side-by-side`" + ` with it. Try the datasets from the sidebar.`

// renderMarkdown converts trusted markdown to HTML
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML([]byte(md), p, r))
}

// usageSnippet is the code shown under the intro for the current settings
func usageSnippet(mode app.DisplayMode, height int) string {
	return fmt.Sprintf(`ctrl, err := app.NewController(app.ViewConfig{
	Mode:   %q,
	Height: %d,
}, summarizer.New(logger), chart.NewBuilder(nil), logger)

frame, err := ctrl.Redraw(ds, app.Selection{Columns: selected})`, mode, height)
}
