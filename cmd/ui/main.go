package main

import (
	"context"
	"log"

	"dfsummary/internal/config"
	"dfsummary/internal/container"
	"dfsummary/ui"
)

func main() {
	appConfig, err := config.LoadWithEnvFile(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	c, err := container.New(appConfig, nil)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}
	ctx := context.Background()
	if err := c.Init(ctx); err != nil {
		log.Fatalf("Failed to register datasets: %v", err)
	}
	defer c.Shutdown(ctx)

	if err := c.Preload(ctx); err != nil {
		c.Logger.Warn("some datasets failed to preload: %v", err)
	}

	view, err := c.ViewConfig()
	if err != nil {
		log.Fatalf("Invalid view configuration: %v", err)
	}

	app, err := ui.NewApp(ui.Config{
		Port:        appConfig.Server.Port,
		DefaultMode: view.Mode,
		PanelHeight: view.Height,
	}, c.Registry, c.Summarizer, c.Charts, c.Logger)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
