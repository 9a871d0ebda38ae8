package app

import (
	"sort"

	"dfsummary/internal/errors"
)

// DisplayMode selects where a column summary is rendered
type DisplayMode string

const (
	ModeDialog     DisplayMode = "dialog"
	ModeMain       DisplayMode = "main"
	ModeSideBySide DisplayMode = "side-by-side"
)

// DefaultPanelHeight is used when a ViewConfig leaves Height at zero
const DefaultPanelHeight = 400

// Table options the controller sets itself. Callers may not pass them.
const (
	OptionSelectionMode = "selection_mode"
	OptionOnSelect      = "on_select"
)

var reservedOptions = []string{OptionSelectionMode, OptionOnSelect}

// ParseDisplayMode maps a mode name to a DisplayMode. An empty name is the
// default dialog mode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case "":
		return ModeDialog, nil
	case ModeDialog, ModeMain, ModeSideBySide:
		return DisplayMode(s), nil
	default:
		return "", errors.ConfigInvalidf("unknown display mode %q", s)
	}
}

// ViewConfig is everything a caller can set about how summaries are shown
type ViewConfig struct {
	Mode         DisplayMode       `json:"mode"`
	Height       int               `json:"height"`
	ColumnLabels map[string]string `json:"labels,omitempty"`
	TableOptions map[string]any    `json:"table_options,omitempty"`
}

// DefaultViewConfig returns dialog mode with the default panel height
func DefaultViewConfig() ViewConfig {
	return ViewConfig{Mode: ModeDialog, Height: DefaultPanelHeight}
}

// Validate reports configuration misuse. It must pass before anything is
// rendered.
func (c ViewConfig) Validate() error {
	if keys := c.reservedKeys(); len(keys) > 0 {
		return errors.ConfigInvalidf("table options %v are reserved for column selection", keys)
	}
	if _, err := ParseDisplayMode(string(c.Mode)); err != nil {
		return err
	}
	if c.Height < 0 {
		return errors.ConfigInvalidf("panel height must not be negative, got %d", c.Height)
	}
	return nil
}

func (c ViewConfig) reservedKeys() []string {
	var found []string
	for _, k := range reservedOptions {
		if _, ok := c.TableOptions[k]; ok {
			found = append(found, k)
		}
	}
	sort.Strings(found)
	return found
}

// withDefaults fills the zero mode and height
func (c ViewConfig) withDefaults() ViewConfig {
	if c.Mode == "" {
		c.Mode = ModeDialog
	}
	if c.Height == 0 {
		c.Height = DefaultPanelHeight
	}
	return c
}

// Label returns the display label for a column, falling back to its name
func (c ViewConfig) Label(column string) string {
	if l, ok := c.ColumnLabels[column]; ok && l != "" {
		return l
	}
	return column
}
