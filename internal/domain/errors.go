package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every InvalidInputError via errors.Is
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError describes a value that breaks an engine invariant.
// Data gaps (unknown tickers, missing registry data) are never reported this way.
type InvalidInputError struct {
	Field      string
	Identifier string
	Reason     string
}

func (e *InvalidInputError) Error() string {
	if e.Identifier != "" {
		return fmt.Sprintf("invalid input: %s of %q %s", e.Field, e.Identifier, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) true for any InvalidInputError
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IsFinite reports whether v is neither NaN nor infinite
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidatePosition checks the numeric invariants of a single position
func ValidatePosition(p Position) error {
	if !IsFinite(p.MarketValue) {
		return &InvalidInputError{Field: "market_value", Identifier: p.Identifier, Reason: "must be a finite number"}
	}
	if p.MarketValue < 0 {
		return &InvalidInputError{Field: "market_value", Identifier: p.Identifier, Reason: fmt.Sprintf("must not be negative (got %g)", p.MarketValue)}
	}
	if !IsFinite(p.Quantity) {
		return &InvalidInputError{Field: "quantity", Identifier: p.Identifier, Reason: "must be a finite number"}
	}
	if p.Quantity < 0 {
		return &InvalidInputError{Field: "quantity", Identifier: p.Identifier, Reason: fmt.Sprintf("must not be negative (got %g)", p.Quantity)}
	}
	return nil
}

// ValidatePositions fails on the first position that breaks an invariant,
// then checks that the portfolio total is representable.
func ValidatePositions(positions []Position) error {
	for i := range positions {
		if err := ValidatePosition(positions[i]); err != nil {
			return err
		}
	}
	if !IsFinite(TotalMarketValue(positions)) {
		return &InvalidInputError{Field: "market_value", Reason: "portfolio total overflows"}
	}
	return nil
}

// ValidateMaxPositionPercent checks the concentration threshold lies in (0, 100]
func ValidateMaxPositionPercent(pct float64) error {
	if !IsFinite(pct) || pct <= 0 || pct > 100 {
		return &InvalidInputError{Field: "max_position_percent", Reason: fmt.Sprintf("must be in (0, 100] (got %g)", pct)}
	}
	return nil
}

// ValidateTotalValue checks a caller-supplied portfolio total
func ValidateTotalValue(total float64) error {
	if !IsFinite(total) || total < 0 {
		return &InvalidInputError{Field: "total_value", Reason: fmt.Sprintf("must be a finite non-negative number (got %g)", total)}
	}
	return nil
}
