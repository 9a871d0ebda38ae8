package container

import (
	"context"
	"fmt"

	"dfsummary/adapters/chart"
	"dfsummary/adapters/datareadiness/coercer"
	"dfsummary/adapters/excel"
	"dfsummary/adapters/sqlsource"
	"dfsummary/adapters/stats/summarizer"
	"dfsummary/app"
	"dfsummary/internal"
	"dfsummary/internal/config"
	"dfsummary/internal/registry"
	"dfsummary/internal/testkit"

	"github.com/jmoiron/sqlx"
)

// preloadParallelism bounds concurrent dataset loads at startup
const preloadParallelism = 4

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	Registry   *registry.Registry
	Summarizer *summarizer.Summarizer
	Charts     *chart.Builder
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))
	}

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Registry:   registry.New(logger),
		Summarizer: summarizer.New(logger),
		Charts:     chart.NewBuilder(nil),
	}, nil
}

// Init registers every configured dataset source: the built-in samples,
// files under DATA_DIR and tables behind DATABASE_URL
func (c *Container) Init(ctx context.Context) error {
	c.Registry.Register(testkit.Samples(testkit.DefaultSampleConfig())...)

	coerce := coercer.DefaultCoercionConfig().WithThreshold(c.Config.Data.TypeThreshold)

	if c.Config.Data.Dir != "" {
		files, err := excel.DirectorySources(c.Config.Data.Dir, excel.ReaderConfig{
			SheetName: c.Config.Data.SheetName,
			Coercion:  coerce,
		}, c.Logger)
		if err != nil {
			return fmt.Errorf("failed to scan data directory: %w", err)
		}
		c.Registry.Register(files...)
		c.Logger.Info("registered %d file datasets from %s", len(files), c.Config.Data.Dir)
	}

	if c.Config.Data.DatabaseURL != "" {
		db, err := sqlsource.Open(ctx, c.Config.Data.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		c.DB = db
		c.Registry.Register(sqlsource.Sources(db, c.Config.Data.DatabaseTables, coerce, c.Logger)...)
		c.Logger.Info("registered %d database tables", len(c.Config.Data.DatabaseTables))
	}

	return nil
}

// Preload loads every registered dataset so the first request does not pay
// for it
func (c *Container) Preload(ctx context.Context) error {
	return c.Registry.Preload(ctx, preloadParallelism)
}

// ViewConfig returns the configured summary view defaults
func (c *Container) ViewConfig() (app.ViewConfig, error) {
	mode, err := app.ParseDisplayMode(c.Config.View.DisplayMode)
	if err != nil {
		return app.ViewConfig{}, err
	}
	return app.ViewConfig{Mode: mode, Height: c.Config.View.PanelHeight}, nil
}

// Shutdown releases the database connection, if any
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
