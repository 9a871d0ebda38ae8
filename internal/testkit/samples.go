package testkit

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"dfsummary/domain/dataset"
	"dfsummary/ports"
)

// Built-in sample names
const (
	SampleTips       = "tips"
	SamplePenguins   = "penguins"
	SampleTimeSeries = "time-series"
)

// SampleConfig configures the sample generators
type SampleConfig struct {
	Seed      int64     `json:"seed"`
	StartDate time.Time `json:"start_date"`
}

// DefaultSampleConfig returns a fixed seed so samples are identical across runs
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		Seed:      42,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

type generator func(cfg SampleConfig, rng *rand.Rand) (*dataset.Dataset, error)

var generators = map[string]generator{
	SampleTips:       generateTips,
	SamplePenguins:   generatePenguins,
	SampleTimeSeries: generateTimeSeries,
}

// SampleNames lists the built-in samples in display order
func SampleNames() []string {
	names := make([]string, 0, len(generators))
	for n := range generators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Sample is a ports.DatasetSource backed by a deterministic generator
type Sample struct {
	name   string
	config SampleConfig
	gen    generator
}

// NewSample returns the named sample
func NewSample(name string, config SampleConfig) (*Sample, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown sample dataset %q", name)
	}
	return &Sample{name: name, config: config, gen: gen}, nil
}

// Samples returns every built-in sample as a source
func Samples(config SampleConfig) []ports.DatasetSource {
	var out []ports.DatasetSource
	for _, name := range SampleNames() {
		s, _ := NewSample(name, config)
		out = append(out, s)
	}
	return out
}

func (s *Sample) Name() string { return s.name }

// Load generates the dataset. The same config always yields the same data.
func (s *Sample) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.gen(s.config, rand.New(rand.NewSource(s.config.Seed)))
}

func pick(rng *rand.Rand, options []string, weights []float64) string {
	return options[pickIndex(rng, weights)]
}

// pickIndex draws an index with the given probabilities
func pickIndex(rng *rand.Rand, weights []float64) int {
	r := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// generateTips mimics a restaurant tipping log
func generateTips(_ SampleConfig, rng *rand.Rand) (*dataset.Dataset, error) {
	const rows = 244
	bill := make([]dataset.Value, rows)
	tip := make([]dataset.Value, rows)
	size := make([]dataset.Value, rows)
	sex := make([]dataset.Value, rows)
	smoker := make([]dataset.Value, rows)
	day := make([]dataset.Value, rows)
	meal := make([]dataset.Value, rows)
	for i := 0; i < rows; i++ {
		party := 1 + rng.Intn(6)
		if party > 4 && rng.Float64() < 0.7 {
			party = 2
		}
		total := math.Max(3.07, 8+float64(party)*4.5+rng.NormFloat64()*6)
		bill[i] = dataset.NewNumericValue(round2(total))
		tip[i] = dataset.NewNumericValue(round2(math.Max(1, total*(0.15+rng.NormFloat64()*0.04))))
		size[i] = dataset.NewNumericValue(float64(party))
		sex[i] = dataset.NewStringValue(pick(rng, []string{"Male", "Female"}, []float64{0.64, 0.36}))
		smoker[i] = dataset.NewBooleanValue(rng.Float64() < 0.38)
		d := pick(rng, []string{"Thur", "Fri", "Sat", "Sun"}, []float64{0.25, 0.08, 0.36, 0.31})
		day[i] = dataset.NewStringValue(d)
		m := "Dinner"
		if d == "Thur" || (d == "Fri" && rng.Float64() < 0.4) {
			m = "Lunch"
		}
		meal[i] = dataset.NewStringValue(m)
	}
	return dataset.New(SampleTips,
		dataset.NewColumn("total_bill", dataset.TypeFloat, bill),
		dataset.NewColumn("tip", dataset.TypeFloat, tip),
		dataset.NewColumn("sex", dataset.TypeCategory, sex),
		dataset.NewColumn("smoker", dataset.TypeBool, smoker),
		dataset.NewColumn("day", dataset.TypeCategory, day),
		dataset.NewColumn("time", dataset.TypeCategory, meal),
		dataset.NewColumn("size", dataset.TypeInt, size),
	)
}

type species struct {
	name                  string
	islands               []string
	bill, depth, flip, kg float64
}

var penguinSpecies = []species{
	{"Adelie", []string{"Torgersen", "Biscoe", "Dream"}, 38.8, 18.3, 190, 3.7},
	{"Chinstrap", []string{"Dream"}, 48.8, 18.4, 196, 3.7},
	{"Gentoo", []string{"Biscoe"}, 47.5, 15.0, 217, 5.1},
}

// generatePenguins mimics morphology measurements with a few gaps
func generatePenguins(_ SampleConfig, rng *rand.Rand) (*dataset.Dataset, error) {
	const rows = 344
	cols := map[string][]dataset.Value{}
	names := []string{"species", "island", "bill_length_mm", "bill_depth_mm", "flipper_length_mm", "body_mass_g", "sex"}
	for _, n := range names {
		cols[n] = make([]dataset.Value, rows)
	}

	for i := 0; i < rows; i++ {
		sp := penguinSpecies[pickIndex(rng, []float64{0.44, 0.20, 0.36})]
		cols["species"][i] = dataset.NewStringValue(sp.name)
		cols["island"][i] = dataset.NewStringValue(sp.islands[rng.Intn(len(sp.islands))])

		// two birds were never measured
		if i == 3 || i == 339 {
			for _, n := range names[2:] {
				cols[n][i] = dataset.NewMissingValue()
			}
			continue
		}
		cols["bill_length_mm"][i] = dataset.NewNumericValue(math.Round((sp.bill+rng.NormFloat64()*2.8)*10) / 10)
		cols["bill_depth_mm"][i] = dataset.NewNumericValue(math.Round((sp.depth+rng.NormFloat64()*1.1)*10) / 10)
		cols["flipper_length_mm"][i] = dataset.NewNumericValue(math.Round(sp.flip + rng.NormFloat64()*6.5))
		cols["body_mass_g"][i] = dataset.NewNumericValue(math.Round((sp.kg+rng.NormFloat64()*0.45)*1000/25) * 25)
		switch {
		case rng.Float64() < 0.03:
			cols["sex"][i] = dataset.NewMissingValue()
		case rng.Float64() < 0.5:
			cols["sex"][i] = dataset.NewStringValue("Male")
		default:
			cols["sex"][i] = dataset.NewStringValue("Female")
		}
	}

	return dataset.New(SamplePenguins,
		dataset.NewColumn("species", dataset.TypeCategory, cols["species"]),
		dataset.NewColumn("island", dataset.TypeCategory, cols["island"]),
		dataset.NewColumn("bill_length_mm", dataset.TypeFloat, cols["bill_length_mm"]),
		dataset.NewColumn("bill_depth_mm", dataset.TypeFloat, cols["bill_depth_mm"]),
		dataset.NewColumn("flipper_length_mm", dataset.TypeFloat, cols["flipper_length_mm"]),
		dataset.NewColumn("body_mass_g", dataset.TypeFloat, cols["body_mass_g"]),
		dataset.NewColumn("sex", dataset.TypeCategory, cols["sex"]),
	)
}

// generateTimeSeries is a year of daily readings with a random walk value
func generateTimeSeries(cfg SampleConfig, rng *rand.Rand) (*dataset.Dataset, error) {
	const rows = 365
	var (
		dates   = make([]dataset.Value, rows)
		values  = make([]dataset.Value, rows)
		trend   = make([]dataset.Value, rows)
		weekend = make([]dataset.Value, rows)
		lag     = make([]dataset.Value, rows)
	)
	level := 100.0
	for i := 0; i < rows; i++ {
		ts := cfg.StartDate.AddDate(0, 0, i).Add(time.Duration(rng.Intn(24)) * time.Hour)
		step := rng.NormFloat64() * 2
		level += step

		if rng.Float64() < 0.02 {
			dates[i] = dataset.NewMissingValue()
		} else {
			dates[i] = dataset.NewTimestampValue(ts)
		}
		if rng.Float64() < 0.05 {
			values[i] = dataset.NewMissingValue()
		} else {
			values[i] = dataset.NewNumericValue(round2(level))
		}
		if step >= 0 {
			trend[i] = dataset.NewStringValue("up")
		} else {
			trend[i] = dataset.NewStringValue("down")
		}
		wd := ts.Weekday()
		weekend[i] = dataset.NewBooleanValue(wd == time.Saturday || wd == time.Sunday)
		lag[i] = dataset.NewDurationValue(time.Duration(rng.Intn(3600)) * time.Second)
	}
	return dataset.New(SampleTimeSeries,
		dataset.NewColumn("date", dataset.TypeDatetime, dates),
		dataset.NewColumn("value", dataset.TypeFloat, values),
		dataset.NewColumn("trend", dataset.TypeCategory, trend),
		dataset.NewColumn("weekend", dataset.TypeBool, weekend),
		dataset.NewColumn("ingest_lag", dataset.TypeDuration, lag),
	)
}
