// Package diversification is the entry point of the engine: it enriches positions,
// optionally decomposes composite instruments, and scores the result.
package diversification

import (
	"github.com/rs/zerolog"

	"github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/metrics"
	"github.com/aristath/diversifier/internal/modules/classification"
	"github.com/aristath/diversifier/internal/modules/composition"
	"github.com/aristath/diversifier/internal/modules/lookthrough"
	"github.com/aristath/diversifier/internal/modules/scoring"
	scoringdomain "github.com/aristath/diversifier/internal/modules/scoring/domain"
	"github.com/aristath/diversifier/internal/utils"
)

// Classifier resolves identifiers and explains how
type Classifier interface {
	domain.ClassificationResolver
	Explain(identifier, displayName string) classification.Resolution
}

// Options controls a score computation
type Options struct {
	MaxPositionPercent float64
	UseLookThrough     bool
}

// Service wires the resolver, the composition registry, the decomposition engine and
// the scoring engine together. All collaborators are read-only; the service is safe
// for concurrent use.
type Service struct {
	classifier   Classifier
	compositions lookthrough.CompositionSource
	decomposer   *lookthrough.Engine
	scorer       *scoring.Engine
	metrics      *metrics.Registry
	log          zerolog.Logger
}

// NewService creates a diversification service. m may be nil.
func NewService(
	classifier Classifier,
	compositions lookthrough.CompositionSource,
	scorer *scoring.Engine,
	m *metrics.Registry,
	log zerolog.Logger,
) *Service {
	return &Service{
		classifier:   classifier,
		compositions: compositions,
		decomposer:   lookthrough.NewEngine(compositions),
		scorer:       scorer,
		metrics:      m,
		log:          log.With().Str("service", "diversification").Logger(),
	}
}

// ResolveClassification returns the classification triple for identifier
func (s *Service) ResolveClassification(identifier, displayName string) domain.Classification {
	return s.classifier.Resolve(identifier, displayName)
}

// ExplainClassification returns the triple with the strategy that produced it
func (s *Service) ExplainClassification(identifier, displayName string) classification.Resolution {
	return s.classifier.Explain(identifier, displayName)
}

// Composition returns the registry breakdown of a composite instrument
func (s *Service) Composition(identifier string) (*composition.Entry, bool) {
	entry := s.compositions.Lookup(identifier)
	return entry, entry != nil
}

// Enrich returns copies of positions with missing dimensions resolved.
// Known labels are kept as supplied.
func (s *Service) Enrich(positions []domain.Position) []domain.Position {
	out := make([]domain.Position, len(positions))
	for i, p := range positions {
		if !p.NeedsClassification() {
			out[i] = p
			continue
		}
		out[i] = p.WithClassification(s.classifier.Resolve(p.Identifier, p.DisplayName))
	}
	return out
}

// DecomposeLookThrough enriches positions and splits composite instruments by
// their registry breakdown. totalPortfolioValue is the denominator of the coverage percent.
func (s *Service) DecomposeLookThrough(positions []domain.Position, totalPortfolioValue float64) (*lookthrough.Result, error) {
	stop := utils.OperationTimer("decompose_look_through", s.log)
	defer stop()

	if err := domain.ValidatePositions(positions); err != nil {
		return nil, err
	}

	result, err := s.decomposer.Decompose(s.Enrich(positions), totalPortfolioValue)
	if err != nil {
		return nil, err
	}
	s.reportNonDecomposed(result.NonDecomposedIdentifiers)
	return result, nil
}

// ComputeScore enriches positions and scores them.
//
// With UseLookThrough the region and sector dimensions are scored from the
// decomposed exposure; asset class, concentration and coverage always come from
// the positions as held.
func (s *Service) ComputeScore(positions []domain.Position, opts Options) (*scoringdomain.ScoreResult, error) {
	stop := utils.OperationTimer("compute_score", s.log)
	defer stop()

	if err := domain.ValidateMaxPositionPercent(opts.MaxPositionPercent); err != nil {
		return nil, err
	}
	if err := domain.ValidatePositions(positions); err != nil {
		return nil, err
	}

	enriched := s.Enrich(positions)

	view := metrics.ViewNominal
	var (
		result *scoringdomain.ScoreResult
		err    error
	)
	if opts.UseLookThrough {
		view = metrics.ViewLookThrough
		result, err = s.scoreLookThrough(enriched, opts.MaxPositionPercent)
	} else {
		result, err = s.scorer.Score(enriched, opts.MaxPositionPercent)
	}
	if err != nil {
		return nil, err
	}

	if len(result.Coverage.UnclassifiedIdentifiers) > 0 {
		s.log.Debug().
			Strs("identifiers", result.Coverage.UnclassifiedIdentifiers).
			Msg("Positions without region or sector")
	}
	if s.metrics != nil {
		s.metrics.RecordScore(view, result.TotalScore, len(result.Coverage.UnclassifiedIdentifiers))
	}

	s.log.Debug().
		Str("view", view).
		Float64("total_score", result.TotalScore).
		Str("label", result.Label).
		Int("positions", len(positions)).
		Msg("Diversification score computed")

	return result, nil
}

func (s *Service) scoreLookThrough(positions []domain.Position, maxPositionPercent float64) (*scoringdomain.ScoreResult, error) {
	lt, err := s.decomposer.Decompose(positions, domain.TotalMarketValue(positions))
	if err != nil {
		return nil, err
	}
	s.reportNonDecomposed(lt.NonDecomposedIdentifiers)

	views := scoring.NominalViews(positions)
	views.Region = lt.RealGeographic
	views.Sector = lt.RealSectoral

	result, err := s.scorer.ScoreViews(positions, views, maxPositionPercent)
	if err != nil {
		return nil, err
	}
	result.LookThrough = true
	result.LookThroughCoveragePercent = lt.CoveragePercent
	return result, nil
}

func (s *Service) reportNonDecomposed(identifiers []string) {
	if len(identifiers) == 0 {
		return
	}
	s.log.Warn().
		Strs("identifiers", identifiers).
		Msg("Composite instruments without registry data were not decomposed")
	if s.metrics != nil {
		s.metrics.RecordNonDecomposed(len(identifiers))
	}
}
