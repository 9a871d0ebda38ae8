package ui

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dfsummary/adapters/chart"
	"dfsummary/adapters/stats/summarizer"
	"dfsummary/app"
	"dfsummary/domain/dataset"
	"dfsummary/internal/errors"
	"dfsummary/internal/registry"
	"dfsummary/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	reg := registry.New(nil)
	reg.Register(testkit.Samples(testkit.DefaultSampleConfig())...)
	a, err := NewApp(cfg, reg, summarizer.New(nil), chart.NewBuilder(nil), nil)
	require.NoError(t, err)
	return a
}

func get(t *testing.T, a *App, target string, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewApp_RejectsReservedTableOptions(t *testing.T) {
	reg := registry.New(nil)
	_, err := NewApp(Config{TableOptions: map[string]any{"on_select": "ignore"}}, reg, summarizer.New(nil), chart.NewBuilder(nil), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestIndex_DefaultPage(t *testing.T) {
	a := newTestApp(t, Config{DefaultMode: app.ModeSideBySide, PreviewRows: 5})
	rec := get(t, a, "/", false)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Summary stats")
	assert.Contains(t, body, "<strong>basic summary statistics</strong>")
	assert.Contains(t, body, `value="penguins" selected`)
	assert.Contains(t, body, `value="side-by-side" checked`)
	assert.Contains(t, body, `data-selection-mode="single-column"`)
	assert.Contains(t, body, "layout-side-by-side")
	assert.Contains(t, body, "Select a column to see its summary.")
	assert.Contains(t, body, "showing 5")
}

func TestIndex_WithSelection(t *testing.T) {
	a := newTestApp(t, Config{DefaultMode: app.ModeMain, PanelHeight: 320})
	rec := get(t, a, "/?dataset=tips&column=day", false)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Categorical column summary")
	assert.Contains(t, body, `class="summary-panel bordered"`)
	assert.Contains(t, body, "height: 320px")
	assert.Contains(t, body, `class="echart"`)
	assert.Contains(t, body, `class="selected"`)
}

func TestIndex_Errors(t *testing.T) {
	a := newTestApp(t, Config{})

	assert.Equal(t, http.StatusNotFound, get(t, a, "/?dataset=iris", false).Code)
	assert.Equal(t, http.StatusNotFound, get(t, a, "/?dataset=tips&column=nope", false).Code)
	assert.Equal(t, http.StatusBadRequest, get(t, a, "/?mode=popup", false).Code)
}

func TestIndex_NoDatasets(t *testing.T) {
	a, err := NewApp(Config{}, registry.New(nil), summarizer.New(nil), chart.NewBuilder(nil), nil)
	require.NoError(t, err)
	rec := get(t, a, "/", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No datasets are configured.")
}

func TestSummaryFragment(t *testing.T) {
	a := newTestApp(t, Config{})

	t.Run("dialog", func(t *testing.T) {
		rec := get(t, a, "/fragments/summary?dataset=penguins&column=bill_length_mm&mode=dialog", true)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<dialog")
		assert.Contains(t, body, "Numerical column summary")
		assert.Contains(t, body, "Null values (%)")
		assert.NotContains(t, body, "<html")
	})

	t.Run("datetime has weekday table", func(t *testing.T) {
		rec := get(t, a, "/fragments/summary?dataset=time-series&column=date&mode=main", true)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "chart-table")
		assert.Contains(t, body, "Monday")
		assert.Contains(t, body, "Earliest date")
	})

	t.Run("dialog replaces the open one", func(t *testing.T) {
		open := "0190a4c2-6f1e-7c3a-9d2b-1a2b3c4d5e6f"
		rec := get(t, a, "/fragments/summary?dataset=tips&column=day&mode=dialog&active_dialog="+open, true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `data-replaces="`+open+`"`)

		rec = get(t, a, "/fragments/summary?dataset=tips&column=day&active_dialog=dialog-1", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unclassified column is empty", func(t *testing.T) {
		rec := get(t, a, "/fragments/summary?dataset=time-series&column=ingest_lag", true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Select a column")
	})
}

func TestSummaryFragment_PlainRequestRedirects(t *testing.T) {
	a := newTestApp(t, Config{})

	rec := get(t, a, "/fragments/summary?dataset=tips&column=day", false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?dataset=tips&column=day", rec.Header().Get("Location"))

	rec = get(t, a, "/fragments/summary", false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

type brokenSource struct{}

func (brokenSource) Name() string { return "broken" }

func (brokenSource) Load(context.Context) (*dataset.Dataset, error) {
	return nil, stderrors.New("disk unplugged")
}

func TestIndex_SourceFailure(t *testing.T) {
	reg := registry.New(nil)
	reg.Register(brokenSource{})
	a, err := NewApp(Config{}, reg, summarizer.New(nil), chart.NewBuilder(nil), nil)
	require.NoError(t, err)

	rec := get(t, a, "/?dataset=broken", false)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `load dataset "broken": disk unplugged`)

	rec = get(t, a, "/fragments/summary?dataset=broken&column=x", true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStaticAssets(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := get(t, a, "/static/summary.js", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "initCharts"))
}

func TestFormatMetric(t *testing.T) {
	assert.Equal(t, "-", formatMetric(nil))
	assert.Equal(t, "3", formatMetric(3.0))
	assert.Equal(t, "16.7", formatMetric(16.7))
	assert.Equal(t, "2.35", formatMetric(2.345678))
	assert.Equal(t, "5", formatMetric(5))
	assert.Equal(t, "2024-01-02", formatMetric(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-02 03:04:05", formatMetric(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
}
