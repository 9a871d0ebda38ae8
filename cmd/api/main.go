package main

import (
	"context"
	"log"

	"dfsummary/adapters/api"
	"dfsummary/internal/config"
	"dfsummary/internal/container"
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

	view, err := c.ViewConfig()
	if err != nil {
		log.Fatalf("Invalid view configuration: %v", err)
	}

	handler := api.NewHandler(c.Registry, c.Summarizer, c.Charts, view, c.Logger)
	router := api.NewRouter(handler, appConfig.Server.GinMode)

	c.Logger.Info("Starting API server on :%s", appConfig.Server.APIPort)
	if err := router.Run(":" + appConfig.Server.APIPort); err != nil {
		log.Fatal("Server failed:", err)
	}
}
