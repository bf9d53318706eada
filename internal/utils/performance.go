package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// SlowOperationThreshold is the duration above which an engine call is logged at warn level.
// A scoring pass over a realistic portfolio finishes in well under a millisecond.
const SlowOperationThreshold = 50 * time.Millisecond

// OperationTimer provides a defer-friendly way to measure operation duration.
// The returned func logs the elapsed time and hands it back for metrics.
//
// Usage:
//
//	stop := utils.OperationTimer("compute_score", log)
//	defer stop()
func OperationTimer(operation string, log zerolog.Logger) func() time.Duration {
	start := time.Now()

	return func() time.Duration {
		duration := time.Since(start)

		log.Debug().
			Str("operation", operation).
			Dur("duration_ms", duration).
			Msg("Operation completed")

		if duration > SlowOperationThreshold {
			log.Warn().
				Str("operation", operation).
				Dur("duration", duration).
				Msg("Slow operation detected")
		}

		return duration
	}
}
