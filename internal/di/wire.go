// Package di provides dependency injection wiring and initialization.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/diversifier/internal/config"
	"github.com/aristath/diversifier/internal/metrics"
)

// Wire initializes all dependencies and returns a fully configured container
// Order of operations:
// 1. Load reference data
// 2. Initialize engines and services
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{
		Metrics: metrics.NewRegistry(),
	}

	// Step 1: Load reference data
	if err := InitializeReferenceData(container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	// Step 2: Initialize services
	if err := InitializeServices(container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, nil
}
