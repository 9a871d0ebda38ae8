package ui

import (
	"net/http"

	"dfsummary/app"
	"dfsummary/domain/core"
	"dfsummary/domain/dataset"
	"dfsummary/internal/errors"
)

var displayModes = []app.DisplayMode{app.ModeDialog, app.ModeMain, app.ModeSideBySide}

// viewRequest is what a page or fragment request asks for
type viewRequest struct {
	Dataset      string
	Column       string
	Mode         app.DisplayMode
	ActiveDialog core.DialogID
}

func (a *App) parseView(r *http.Request) (viewRequest, error) {
	q := r.URL.Query()
	v := viewRequest{
		Dataset: q.Get("dataset"),
		Column:  q.Get("column"),
		Mode:    a.config.DefaultMode,
	}
	if m := q.Get("mode"); m != "" {
		mode, err := app.ParseDisplayMode(m)
		if err != nil {
			return v, err
		}
		v.Mode = mode
	}
	if v.Mode == "" {
		v.Mode = app.ModeDialog
	}
	if d := q.Get("active_dialog"); d != "" {
		id, err := core.ParseDialogID(d)
		if err != nil {
			return v, errors.InvalidInput(err.Error())
		}
		v.ActiveDialog = id
	}
	if v.Dataset == "" {
		v.Dataset = a.defaultDataset()
	}
	return v, nil
}

func (a *App) defaultDataset() string {
	if a.config.DefaultDataset != "" {
		return a.config.DefaultDataset
	}
	if names := a.registry.Names(); len(names) > 0 {
		return names[0]
	}
	return ""
}

// redraw runs one redraw cycle for the request with a fresh controller
func (a *App) redraw(r *http.Request, v viewRequest) (*dataset.Dataset, *app.Frame, *summaryView, error) {
	ds, err := a.registry.Get(r.Context(), v.Dataset)
	if err != nil {
		return nil, nil, nil, err
	}
	ctrl, err := app.NewController(app.ViewConfig{
		Mode:         v.Mode,
		Height:       a.config.PanelHeight,
		TableOptions: a.config.TableOptions,
	}, a.summarizer, a.charts, a.logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if v.ActiveDialog != "" {
		ctrl.RestoreDialog(v.ActiveDialog)
	}

	sel := app.Selection{}
	if v.Column != "" {
		sel.Columns = []string{v.Column}
	}
	frame, err := ctrl.Redraw(ds, sel)
	if err != nil {
		return nil, nil, nil, err
	}
	view, err := newSummaryView(ds.Name, frame.Summary, a.charts)
	if err != nil {
		return nil, nil, nil, err
	}
	return ds, frame, view, nil
}

// handleIndex renders the dashboard: settings, intro, table and summary
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		Datasets: a.registry.Names(),
		Modes:    displayModes,
		Intro:    a.intro,
	}

	v, err := a.parseView(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	page.Dataset = v.Dataset
	page.Mode = v.Mode
	page.Selected = v.Column
	page.Snippet = usageSnippet(v.Mode, a.panelHeight())

	if v.Dataset == "" {
		page.Error = "No datasets are configured."
		a.renderTemplate(w, "index.html", page)
		return
	}

	ds, frame, view, err := a.redraw(r, v)
	if err != nil {
		a.writeError(w, err)
		return
	}

	schema := ds.Schema()
	page.Columns = newColumnViews(schema, v)
	page.TotalRows = schema.RowCount
	page.TableHeight = a.panelHeight()
	page.Rows = ds.Head(a.config.PreviewRows)
	page.Table = &frame.Table
	page.Summary = view

	a.renderTemplate(w, "index.html", page)
}

// handleSummaryFragment returns only the summary region, for HTMX swaps
// A plain browser request is sent to the full page with the same selection.
func (a *App) handleSummaryFragment(w http.ResponseWriter, r *http.Request) {
	if !isHTMX(r) {
		target := "/"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	v, err := a.parseView(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	_, _, view, err := a.redraw(r, v)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.renderTemplate(w, "summary", view)
}

func (a *App) panelHeight() int {
	if a.config.PanelHeight > 0 {
		return a.config.PanelHeight
	}
	return app.DefaultPanelHeight
}

// writeError maps an error to a status code and a plain message
func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.HasCode(err, errors.CodeSourceError):
		a.logger.Error("dataset source failed: %v", err)
	case errors.HasCode(err, errors.CodeConfigInvalid), errors.HasCode(err, errors.CodeInvalidInput):
		status = http.StatusBadRequest
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	default:
		a.logger.Error("request failed: %v", err)
	}
	http.Error(w, err.Error(), status)
}
