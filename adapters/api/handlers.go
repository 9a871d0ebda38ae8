package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dfsummary/app"
	"dfsummary/domain/core"
	"dfsummary/internal"
	"dfsummary/internal/errors"
	"dfsummary/ports"
)

// Handler serves datasets and column summaries as JSON
type Handler struct {
	registry   ports.DatasetRegistryPort
	summarizer ports.SummarizerPort
	charts     ports.ChartPort
	defaults   app.ViewConfig
	logger     *internal.Logger
}

// NewHandler creates the JSON API handler. defaults supplies the mode and
// height used when a request leaves them out.
func NewHandler(registry ports.DatasetRegistryPort, summarizer ports.SummarizerPort, charts ports.ChartPort, defaults app.ViewConfig, logger *internal.Logger) *Handler {
	return &Handler{
		registry:   registry,
		summarizer: summarizer,
		charts:     charts,
		defaults:   defaults,
		logger:     logger,
	}
}

// NewRouter builds a gin engine with the API routes mounted
func NewRouter(h *Handler, mode string) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	h.Register(router)
	return router
}

// Register mounts the API routes
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/api")
	g.GET("/datasets", h.HandleListDatasets())
	g.GET("/datasets/:name", h.HandleGetDataset())
	g.GET("/datasets/:name/summary", h.HandleSummary())
	g.POST("/datasets/:name/redraw", h.HandleRedraw())
}

func (h *Handler) HandleListDatasets() gin.HandlerFunc {
	return func(c *gin.Context) {
		names := h.registry.Names()
		c.JSON(http.StatusOK, gin.H{
			"datasets": names,
			"count":    len(names),
		})
	}
}

func (h *Handler) HandleGetDataset() gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := h.registry.Get(c.Request.Context(), c.Param("name"))
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, ds.Schema())
	}
}

// HandleSummary summarizes one column. An unclassified column yields a null
// instruction rather than an error.
func (h *Handler) HandleSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		column := c.Query("column")
		if column == "" {
			h.writeError(c, errors.InvalidInput("query parameter column is required"))
			return
		}
		cfg, err := h.viewConfigFromQuery(c, column)
		if err != nil {
			h.writeError(c, err)
			return
		}
		ds, err := h.registry.Get(c.Request.Context(), c.Param("name"))
		if err != nil {
			h.writeError(c, err)
			return
		}
		ctrl, err := app.NewController(cfg, h.summarizer, h.charts, h.logger)
		if err != nil {
			h.writeError(c, err)
			return
		}

		inst, err := ctrl.OnSelectionChanged(ds, column)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"dataset":     ds.Name,
			"column":      column,
			"instruction": inst,
		})
	}
}

// HandleRedraw runs a full redraw cycle from a JSON body
func (h *Handler) HandleRedraw() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			h.writeError(c, errors.InvalidInput("could not read request body"))
			return
		}
		req, err := parseRedrawRequest(body, h.defaults)
		if err != nil {
			h.writeError(c, err)
			return
		}
		ds, err := h.registry.Get(c.Request.Context(), c.Param("name"))
		if err != nil {
			h.writeError(c, err)
			return
		}
		ctrl, err := app.NewController(req.View, h.summarizer, h.charts, h.logger)
		if err != nil {
			h.writeError(c, err)
			return
		}
		if req.ActiveDialog != "" {
			ctrl.RestoreDialog(req.ActiveDialog)
		}

		frame, err := ctrl.Redraw(ds, req.Selection)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"state": frame.State.String(),
			"frame": frame,
		})
	}
}

// writeError maps an error to a status code and a JSON body
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case errors.HasCode(err, errors.CodeSourceError):
		h.logger.Error("[API] dataset source failed: %v", err)
	case errors.HasCode(err, errors.CodeConfigInvalid),
		errors.HasCode(err, errors.CodeInvalidInput),
		errors.HasCode(err, errors.CodeValidationError):
		status = http.StatusBadRequest
	case core.IsShapeError(err):
		status = http.StatusUnprocessableEntity
		code = errors.CodeValidationError
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
		code = errors.CodeNotFound
	default:
		h.logger.Error("[API] request failed: %v", err)
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  code,
	})
}
