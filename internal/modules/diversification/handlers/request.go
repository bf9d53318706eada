package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/aristath/diversifier/internal/domain"
)

// PositionRequest is one holding in a request body.
// The amount may be sent as market_value or as the legacy value / value_eur, exactly one of them.
type PositionRequest struct {
	Identifier  string           `json:"identifier" validate:"required,max=64"`
	DisplayName string           `json:"display_name" validate:"max=256"`
	MarketValue *decimal.Decimal `json:"market_value"`
	Value       *decimal.Decimal `json:"value"`
	ValueEUR    *decimal.Decimal `json:"value_eur"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Region      string           `json:"region" validate:"max=64"`
	Sector      string           `json:"sector" validate:"max=64"`
	AssetClass  string           `json:"asset_class" validate:"max=64"`
}

// ScoreRequest represents a request to score a portfolio
type ScoreRequest struct {
	Positions          []PositionRequest `json:"positions" validate:"dive"`
	MaxPositionPercent *float64          `json:"max_position_percent" validate:"omitempty,gt=0,lte=100"`
	UseLookThrough     bool              `json:"use_look_through"`
}

// LookThroughRequest represents a request to decompose a portfolio
type LookThroughRequest struct {
	Positions  []PositionRequest `json:"positions" validate:"dive"`
	TotalValue *decimal.Decimal  `json:"total_value"`
}

// ErrInvalidBody marks a request body that is not valid JSON for the target type
var ErrInvalidBody = errors.New("invalid request body")

// DecodeRequest decodes a JSON body into dst and runs its validate tags
func DecodeRequest(r *http.Request, validate *validator.Validate, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return validate.Struct(dst)
}

// ToPosition converts the request into a domain position
func (p PositionRequest) ToPosition() (domain.Position, error) {
	amount, err := p.amount()
	if err != nil {
		return domain.Position{}, err
	}

	pos := domain.Position{
		Identifier:  p.Identifier,
		DisplayName: p.DisplayName,
		MarketValue: amount.InexactFloat64(),
		Region:      p.Region,
		Sector:      p.Sector,
		AssetClass:  p.AssetClass,
	}
	if p.Quantity != nil {
		pos.Quantity = p.Quantity.InexactFloat64()
	}
	return pos, nil
}

func (p PositionRequest) amount() (decimal.Decimal, error) {
	var (
		amount decimal.Decimal
		found  int
	)
	for _, candidate := range []*decimal.Decimal{p.MarketValue, p.Value, p.ValueEUR} {
		if candidate != nil {
			amount = *candidate
			found++
		}
	}

	switch found {
	case 0:
		return decimal.Zero, &domain.InvalidInputError{Field: "market_value", Identifier: p.Identifier, Reason: "is required"}
	case 1:
		return amount, nil
	default:
		return decimal.Zero, &domain.InvalidInputError{
			Field:      "market_value",
			Identifier: p.Identifier,
			Reason:     fmt.Sprintf("given %d times; send one of market_value, value, value_eur", found),
		}
	}
}

// ToPositions converts all request positions, failing on the first bad one
func ToPositions(in []PositionRequest) ([]domain.Position, error) {
	out := make([]domain.Position, 0, len(in))
	for _, p := range in {
		pos, err := p.ToPosition()
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}
