package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"dfsummary/app"
	"dfsummary/domain/core"
	"dfsummary/internal/errors"
)

// RedrawRequest is the decoded body of a redraw call
type RedrawRequest struct {
	Selection app.Selection
	View      app.ViewConfig

	// ActiveDialog is the dialog the client still shows, if any
	ActiveDialog core.DialogID
}

// viewConfigFromQuery reads mode, height, label and options query
// parameters on top of the handler defaults
func (h *Handler) viewConfigFromQuery(c *gin.Context, column string) (app.ViewConfig, error) {
	cfg := h.defaults
	cfg.ColumnLabels = nil
	cfg.TableOptions = nil

	if m := c.Query("mode"); m != "" {
		mode, err := app.ParseDisplayMode(m)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	if raw := c.Query("height"); raw != "" {
		height, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, errors.InvalidInput("height must be an integer")
		}
		cfg.Height = height
	}
	if label := c.Query("label"); label != "" {
		cfg.ColumnLabels = map[string]string{column: label}
	}
	if raw := c.Query("options"); raw != "" {
		opts, err := parseObject(raw, "options")
		if err != nil {
			return cfg, err
		}
		cfg.TableOptions = opts
	}
	return cfg, nil
}

// parseRedrawRequest decodes a body such as
//
//	{"selection": {"columns": ["day"]}, "mode": "main", "height": 300,
//	 "labels": {"day": "Weekday"}, "table_options": {"hide_index": true},
//	 "active_dialog": "<dialog id>"}
func parseRedrawRequest(body []byte, defaults app.ViewConfig) (RedrawRequest, error) {
	req := RedrawRequest{View: defaults}
	req.View.ColumnLabels = nil
	req.View.TableOptions = nil

	if len(body) == 0 {
		return req, nil
	}
	if !gjson.ValidBytes(body) {
		return req, errors.InvalidInput("request body is not valid JSON")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return req, errors.InvalidInput("request body must be a JSON object")
	}

	for _, col := range doc.Get("selection.columns").Array() {
		if col.Type != gjson.String {
			return req, errors.InvalidInput("selection.columns must hold column names")
		}
		req.Selection.Columns = append(req.Selection.Columns, col.String())
	}
	if m := doc.Get("mode"); m.Exists() {
		mode, err := app.ParseDisplayMode(m.String())
		if err != nil {
			return req, err
		}
		req.View.Mode = mode
	}
	if hgt := doc.Get("height"); hgt.Exists() {
		if hgt.Type != gjson.Number || hgt.Float() != float64(hgt.Int()) {
			return req, errors.InvalidInput("height must be an integer")
		}
		req.View.Height = int(hgt.Int())
	}
	if labels := doc.Get("labels"); labels.Exists() {
		if !labels.IsObject() {
			return req, errors.InvalidInput("labels must be an object")
		}
		req.View.ColumnLabels = make(map[string]string)
		labels.ForEach(func(k, v gjson.Result) bool {
			req.View.ColumnLabels[k.String()] = v.String()
			return true
		})
	}
	if d := doc.Get("active_dialog"); d.Exists() && d.String() != "" {
		id, err := core.ParseDialogID(d.String())
		if err != nil {
			return req, errors.InvalidInput(err.Error())
		}
		req.ActiveDialog = id
	}
	if opts := doc.Get("table_options"); opts.Exists() {
		parsed, err := parseObject(opts.Raw, "table_options")
		if err != nil {
			return req, err
		}
		req.View.TableOptions = parsed
	}
	return req, nil
}

// parseObject decodes a JSON object into plain Go values
func parseObject(raw, field string) (map[string]any, error) {
	if !gjson.Valid(raw) {
		return nil, errors.InvalidInput(field + " is not valid JSON")
	}
	res := gjson.Parse(raw)
	if !res.IsObject() {
		return nil, errors.InvalidInput(field + " must be a JSON object")
	}
	out := make(map[string]any)
	res.ForEach(func(k, v gjson.Result) bool {
		out[k.String()] = v.Value()
		return true
	})
	return out, nil
}
