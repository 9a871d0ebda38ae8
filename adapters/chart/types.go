package chart

// BoxStats are the five numbers and outliers of a box plot
type BoxStats struct {
	LowerWhisker float64   `json:"lower_whisker"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers"`
}

// StyleConfig holds the visual settings shared by all specs
type StyleConfig struct {
	Palette        []string
	ColorPrimary   string
	ColorText      string
	FontFamily     string
	FontSizeLabel  int
	CategoryHeight int
	DetailHeight   int
}

// DefaultStyleConfig returns the default qualitative palette and sizes
func DefaultStyleConfig() *StyleConfig {
	return &StyleConfig{
		Palette: []string{
			"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
			"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
		},
		ColorPrimary:   "#636EFA",
		ColorText:      "#31333F",
		FontFamily:     "sans-serif",
		FontSizeLabel:  12,
		CategoryHeight: 300,
		DetailHeight:   200,
	}
}
