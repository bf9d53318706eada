/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is built by Wire() and shared by the HTTP server and the CLI.
 */
package di

import (
	"github.com/aristath/diversifier/internal/metrics"
	"github.com/aristath/diversifier/internal/modules/classification"
	"github.com/aristath/diversifier/internal/modules/composition"
	"github.com/aristath/diversifier/internal/modules/diversification"
	"github.com/aristath/diversifier/internal/modules/scoring"
)

/**
 * Container holds all dependencies for the application.
 *
 * Architecture:
 * - Reference data: composition registry and classification dictionary (read-only after load)
 * - Engines: classification resolver and scoring engine
 * - Services: the diversification facade used by handlers and the CLI
 * - Metrics: Prometheus collectors exposed on /metrics
 */
type Container struct {
	// Reference data
	Registry   *composition.Registry
	Dictionary *classification.Dictionary

	// Engines
	Resolver      *classification.Resolver
	ScoringEngine *scoring.Engine

	// Services
	DiversificationService *diversification.Service

	// Metrics
	Metrics *metrics.Registry
}
