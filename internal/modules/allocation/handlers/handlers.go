// Package handlers provides HTTP handlers for portfolio allocation views.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/modules/allocation"
	diversificationhandlers "github.com/aristath/diversifier/internal/modules/diversification/handlers"
	"github.com/aristath/diversifier/internal/modules/scoring/scorers"
)

// Enricher fills missing classification on positions
type Enricher interface {
	Enrich(positions []domain.Position) []domain.Position
}

// Handler handles allocation HTTP requests
type Handler struct {
	enricher Enricher
	validate *validator.Validate
	log      zerolog.Logger
}

// NewHandler creates a new allocation handler
func NewHandler(enricher Enricher, log zerolog.Logger) *Handler {
	return &Handler{
		enricher: enricher,
		validate: validator.New(),
		log:      log.With().Str("handler", "allocation").Logger(),
	}
}

// CurrentRequest carries the positions to group
type CurrentRequest struct {
	Positions []diversificationhandlers.PositionRequest `json:"positions" validate:"dive"`
}

// View is one grouped dimension with its concentration index
type View struct {
	Buckets          []allocation.Bucket `json:"buckets"`
	HHI              float64             `json:"hhi"`
	ClassifiedGroups int                 `json:"classified_groups"`
}

// CurrentResponse is the current allocation across all dimensions
type CurrentResponse struct {
	TotalValue float64 `json:"total_value"`
	AssetClass View    `json:"asset_class"`
	Region     View    `json:"region"`
	Sector     View    `json:"sector"`
}

// RegisterRoutes registers allocation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/allocation", func(r chi.Router) {
		r.Post("/current", h.HandleGetCurrentAllocation)
	})
}

// HandleGetCurrentAllocation handles POST /api/allocation/current.
// Positions are enriched before grouping, so unknown tickers land in Unclassified.
func (h *Handler) HandleGetCurrentAllocation(w http.ResponseWriter, r *http.Request) {
	var req CurrentRequest
	if err := diversificationhandlers.DecodeRequest(r, h.validate, &req); err != nil {
		if errors.Is(err, diversificationhandlers.ErrInvalidBody) {
			h.writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	positions, err := diversificationhandlers.ToPositions(req.Positions)
	if err == nil {
		err = domain.ValidatePositions(positions)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("Failed to read positions")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	enriched := h.enricher.Enrich(positions)

	h.writeJSON(w, http.StatusOK, CurrentResponse{
		TotalValue: domain.TotalMarketValue(enriched),
		AssetClass: buildView(enriched, allocation.ByAssetClass),
		Region:     buildView(enriched, allocation.ByRegion),
		Sector:     buildView(enriched, allocation.BySector),
	})
}

func buildView(positions []domain.Position, keyFn allocation.KeyFunc) View {
	buckets := allocation.Aggregate(positions, keyFn)
	hhi, groups := scorers.HHI(buckets)
	return View{Buckets: buckets, HHI: hhi, ClassifiedGroups: groups}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
