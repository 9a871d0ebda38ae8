package app

import (
	"fmt"
	"sync"

	"dfsummary/domain/core"
	"dfsummary/domain/dataset"
	"dfsummary/domain/render"
	"dfsummary/domain/summary"
	"dfsummary/internal"
	"dfsummary/internal/errors"
	"dfsummary/ports"
)

// Region names the part of the page an instruction targets
type Region string

const (
	RegionOverlay Region = "overlay"
	RegionInline  Region = "inline"
	RegionSide    Region = "side"
	RegionLeft    Region = "left"
	RegionMain    Region = "main"
)

// SelectionState is what the controller knows about the table selection
type SelectionState int

const (
	NoSelection SelectionState = iota
	ColumnSelected
)

func (s SelectionState) String() string {
	if s == ColumnSelected {
		return "column_selected"
	}
	return "no_selection"
}

// Selection is the table selection read at the start of a redraw
type Selection struct {
	Columns []string `json:"columns"`
}

// Column returns the first selected column, or "" when nothing is selected
func (s Selection) Column() string {
	if len(s.Columns) == 0 {
		return ""
	}
	return s.Columns[0]
}

// RenderInstruction tells the presentation layer how to show one summary
type RenderInstruction struct {
	ID          core.RenderID    `json:"id"`
	Mode        DisplayMode      `json:"mode"`
	Region      Region           `json:"region"`
	Title       string           `json:"title"`
	Height      int              `json:"height,omitempty"`
	Bordered    bool             `json:"bordered"`
	DialogID    core.DialogID    `json:"dialog_id,omitempty"`
	Replaces    core.DialogID    `json:"replaces,omitempty"`
	TableStable bool             `json:"table_stable"`
	Summary     *summary.Summary `json:"summary"`
	Charts      []render.Spec    `json:"charts"`
}

// TableInstruction tells the presentation layer how to draw the data table
type TableInstruction struct {
	Dataset string         `json:"dataset"`
	Region  Region         `json:"region"`
	Columns []string       `json:"columns"`
	Options map[string]any `json:"options"`
}

// Frame is the output of one redraw cycle
type Frame struct {
	Table   TableInstruction   `json:"table"`
	State   SelectionState     `json:"-"`
	Summary *RenderInstruction `json:"summary,omitempty"`
}

// Controller routes column selections to summaries and render instructions
type Controller struct {
	cfg        ViewConfig
	summarizer ports.SummarizerPort
	charts     ports.ChartPort
	logger     *internal.Logger

	mu           sync.Mutex
	state        SelectionState
	activeDialog core.DialogID
}

// NewController validates cfg and returns a controller. A configuration
// error is returned before anything can be rendered.
func NewController(cfg ViewConfig, summarizer ports.SummarizerPort, charts ports.ChartPort, logger *internal.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if summarizer == nil || charts == nil {
		return nil, fmt.Errorf("controller needs a summarizer and a chart builder")
	}
	return &Controller{
		cfg:        cfg.withDefaults(),
		summarizer: summarizer,
		charts:     charts,
		logger:     logger,
	}, nil
}

// Config returns the validated view configuration with defaults applied
func (c *Controller) Config() ViewConfig {
	return c.cfg
}

// State returns the state left by the last selection event
func (c *Controller) State() SelectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnSelectionChanged summarizes the selected column and returns how to show
// it. It returns nil when nothing is selected or the column has no summary.
func (c *Controller) OnSelectionChanged(ds *dataset.Dataset, selected string) (*RenderInstruction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if selected == "" {
		c.state = NoSelection
		c.activeDialog = ""
		return nil, nil
	}
	if ds == nil {
		return nil, errors.InvalidInput("no dataset to summarize")
	}

	// a failed summary leaves the previous state in place
	s, err := c.summarizer.Summarize(ds, selected)
	if err != nil {
		return nil, err
	}
	c.state = ColumnSelected
	if !s.Renderable() {
		c.logger.Debug("column %q is %s, nothing to render", selected, s.Classification)
		return nil, nil
	}

	s.Label = c.cfg.Label(selected)
	inst := &RenderInstruction{
		ID:      core.NewRenderID(),
		Mode:    c.cfg.Mode,
		Title:   s.Label,
		Summary: s,
		Charts:  c.charts.Build(s),
	}

	switch c.cfg.Mode {
	case ModeDialog:
		inst.Region = RegionOverlay
		inst.DialogID = core.NewDialogID()
		inst.Replaces = c.activeDialog
		c.activeDialog = inst.DialogID
	case ModeMain:
		inst.Region = RegionInline
		inst.Height = c.cfg.Height
		inst.Bordered = true
	case ModeSideBySide:
		inst.Region = RegionSide
		inst.Height = c.cfg.Height
		inst.Bordered = true
		inst.TableStable = true
	}

	c.logger.Debug("render %s for %q in %s mode", inst.ID, selected, inst.Mode)
	return inst, nil
}

// Redraw runs one full redraw cycle for the given selection
func (c *Controller) Redraw(ds *dataset.Dataset, sel Selection) (*Frame, error) {
	frame := &Frame{Table: c.tableInstruction(ds)}
	inst, err := c.OnSelectionChanged(ds, sel.Column())
	if err != nil {
		return nil, err
	}
	frame.Summary = inst
	frame.State = c.State()
	return frame, nil
}

// DismissDialog forgets the active dialog, for when the user closes it
func (c *Controller) DismissDialog(id core.DialogID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeDialog == id {
		c.activeDialog = ""
	}
}

// RestoreDialog marks id as the dialog currently on screen, for callers that
// build a controller per request and keep the dialog on the client
func (c *Controller) RestoreDialog(id core.DialogID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeDialog = id
}

// ActiveDialog returns the dialog currently shown, if any
func (c *Controller) ActiveDialog() core.DialogID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeDialog
}

func (c *Controller) tableInstruction(ds *dataset.Dataset) TableInstruction {
	opts := make(map[string]any, len(c.cfg.TableOptions)+2)
	for k, v := range c.cfg.TableOptions {
		opts[k] = v
	}
	opts[OptionSelectionMode] = "single-column"
	opts[OptionOnSelect] = "rerun"

	region := RegionMain
	if c.cfg.Mode == ModeSideBySide {
		region = RegionLeft
	}
	t := TableInstruction{Region: region, Options: opts}
	if ds != nil {
		t.Dataset = ds.Name
		t.Columns = ds.ColumnNames()
	}
	return t
}
