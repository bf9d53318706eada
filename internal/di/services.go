package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/diversifier/internal/config"
	"github.com/aristath/diversifier/internal/modules/classification"
	"github.com/aristath/diversifier/internal/modules/composition"
	"github.com/aristath/diversifier/internal/modules/diversification"
	"github.com/aristath/diversifier/internal/modules/scoring"
)

// InitializeReferenceData loads the composition registry and the classification
// dictionary, from the configured files or the embedded defaults
func InitializeReferenceData(container *Container, cfg *config.Config, log zerolog.Logger) error {
	registry, err := composition.Load(cfg.CompositionsFile, cfg.ExchangeSuffixes)
	if err != nil {
		return fmt.Errorf("failed to load composition registry: %w", err)
	}
	container.Registry = registry

	dict, err := classification.LoadDictionary(cfg.ClassificationsFile)
	if err != nil {
		return fmt.Errorf("failed to load classification dictionary: %w", err)
	}
	container.Dictionary = dict

	log.Info().
		Int("compositions", registry.Len()).
		Int("aliases", registry.AliasCount()).
		Int("composites", len(dict.Composites)).
		Int("securities", len(dict.Securities)).
		Str("compositions_file", sourceName(cfg.CompositionsFile)).
		Str("classifications_file", sourceName(cfg.ClassificationsFile)).
		Msg("Reference data loaded")

	return nil
}

// InitializeServices builds the resolver, the scoring engine and the diversification service
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	container.Resolver = classification.NewResolver(container.Dictionary, cfg.ExchangeSuffixes)

	engine, err := scoring.NewEngine(scoring.Points{
		AssetClass:    cfg.Scoring.AssetClassPoints,
		Region:        cfg.Scoring.RegionPoints,
		Sector:        cfg.Scoring.SectorPoints,
		Concentration: cfg.Scoring.ConcentrationPoints,
	})
	if err != nil {
		return fmt.Errorf("failed to create scoring engine: %w", err)
	}
	container.ScoringEngine = engine

	if total := engine.Points().Total(); total != 100 {
		log.Warn().Float64("total_points", total).Msg("Sub-score budgets do not sum to 100; totals will be clamped")
	}

	container.DiversificationService = diversification.NewService(
		container.Resolver,
		container.Registry,
		container.ScoringEngine,
		container.Metrics,
		log,
	)

	return nil
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
