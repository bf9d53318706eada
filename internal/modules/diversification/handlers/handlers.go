// Package handlers provides HTTP handlers for diversification scoring.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/modules/classification"
	"github.com/aristath/diversifier/internal/modules/composition"
	"github.com/aristath/diversifier/internal/modules/diversification"
	"github.com/aristath/diversifier/internal/modules/lookthrough"
	scoringdomain "github.com/aristath/diversifier/internal/modules/scoring/domain"
)

const contentTypeMsgpack = "application/msgpack"

// Engine is the part of the diversification service the handlers use
type Engine interface {
	ComputeScore(positions []domain.Position, opts diversification.Options) (*scoringdomain.ScoreResult, error)
	DecomposeLookThrough(positions []domain.Position, totalPortfolioValue float64) (*lookthrough.Result, error)
	ExplainClassification(identifier, displayName string) classification.Resolution
	Composition(identifier string) (*composition.Entry, bool)
}

// Handler handles diversification HTTP requests
type Handler struct {
	engine                    Engine
	validate                  *validator.Validate
	defaultMaxPositionPercent float64
	log                       zerolog.Logger
}

// NewHandler creates a new diversification handler
func NewHandler(engine Engine, defaultMaxPositionPercent float64, log zerolog.Logger) *Handler {
	return &Handler{
		engine:                    engine,
		validate:                  validator.New(),
		defaultMaxPositionPercent: defaultMaxPositionPercent,
		log:                       log.With().Str("handler", "diversification").Logger(),
	}
}

// Envelope wraps every successful response
type Envelope struct {
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata describes one evaluation
type Metadata struct {
	Timestamp    string `json:"timestamp"`
	EvaluationID string `json:"evaluation_id"`
}

// HandleScore handles POST /api/diversification/score
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !h.decode(w, r, &req) {
		return
	}

	positions, err := ToPositions(req.Positions)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	opts := diversification.Options{
		MaxPositionPercent: h.defaultMaxPositionPercent,
		UseLookThrough:     req.UseLookThrough,
	}
	if req.MaxPositionPercent != nil {
		opts.MaxPositionPercent = *req.MaxPositionPercent
	}

	result, err := h.engine.ComputeScore(positions, opts)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.writeData(w, r, http.StatusOK, result)
}

// HandleLookThrough handles POST /api/diversification/look-through
func (h *Handler) HandleLookThrough(w http.ResponseWriter, r *http.Request) {
	var req LookThroughRequest
	if !h.decode(w, r, &req) {
		return
	}

	positions, err := ToPositions(req.Positions)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	total := domain.TotalMarketValue(positions)
	if req.TotalValue != nil {
		total = req.TotalValue.InexactFloat64()
	}

	result, err := h.engine.DecomposeLookThrough(positions, total)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.writeData(w, r, http.StatusOK, result)
}

// HandleClassify handles GET /api/diversification/classify/{identifier}
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	identifier := strings.TrimSpace(chi.URLParam(r, "identifier"))
	if identifier == "" {
		h.writeError(w, http.StatusBadRequest, "identifier is required")
		return
	}

	resolution := h.engine.ExplainClassification(identifier, r.URL.Query().Get("name"))
	h.writeData(w, r, http.StatusOK, resolution)
}

// HandleGetComposition handles GET /api/diversification/compositions/{identifier}
func (h *Handler) HandleGetComposition(w http.ResponseWriter, r *http.Request) {
	identifier := strings.TrimSpace(chi.URLParam(r, "identifier"))

	entry, ok := h.engine.Composition(identifier)
	if !ok {
		h.writeError(w, http.StatusNotFound, "no composition data for "+identifier)
		return
	}

	h.writeData(w, r, http.StatusOK, entry)
}

// decode reads and validates a JSON body, writing the error response itself on failure
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := DecodeRequest(r, h.validate, dst)
	if err == nil {
		return true
	}
	if errors.Is(err, ErrInvalidBody) {
		h.log.Debug().Err(err).Msg("Failed to decode request body")
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	h.writeError(w, http.StatusBadRequest, err.Error())
	return false
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.log.Error().Err(err).Msg("Diversification request failed")
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

func (h *Handler) writeData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	envelope := Envelope{
		Data: data,
		Metadata: Metadata{
			Timestamp:    time.Now().Format(time.RFC3339),
			EvaluationID: uuid.NewString(),
		},
	}

	if wantsMsgpack(r) {
		h.writeMsgpack(w, status, envelope)
		return
	}
	h.writeJSON(w, status, envelope)
}

func wantsMsgpack(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), contentTypeMsgpack)
}

func (h *Handler) writeMsgpack(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", contentTypeMsgpack)
	w.WriteHeader(status)
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode msgpack response")
	}
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
