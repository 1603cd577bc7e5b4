package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarchal/game-price-comparator/internal/database"
	"github.com/dmarchal/game-price-comparator/internal/models"
)

const defaultRunLimit = 20

type Handlers struct {
	runs   *database.RunRepository
	logger *slog.Logger
}

func NewHandlers(runs *database.RunRepository, logger *slog.Logger) *Handlers {
	return &Handlers{
		runs:   runs,
		logger: logger,
	}
}

// RunResponse summarizes one persisted comparison run.
type RunResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	GameCount int       `json:"game_count"`
}

// RowResponse is one compared game within a run. Absent amounts are
// emitted as null, never as zero.
type RowResponse struct {
	AppID          int       `json:"app_id"`
	Title          string    `json:"title"`
	ReferencePrice *float64  `json:"reference_price"`
	QuotePrice     *float64  `json:"quote_price"`
	Currency       string    `json:"currency"`
	Merchant       string    `json:"merchant"`
	SourceURL      string    `json:"source_url,omitempty"`
	SavingAbsolute *float64  `json:"saving_absolute"`
	SavingPercent  *float64  `json:"saving_percent"`
	CheckedAt      time.Time `json:"checked_at"`
}

// ListRuns returns the most recent runs, newest first.
func (h *Handlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.respondError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = parsed
	}

	runs, err := h.runs.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list runs", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	resp := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, RunResponse{
			ID:        run.ID.String(),
			CreatedAt: run.CreatedAt,
			GameCount: run.GameCount,
		})
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GetRunRows returns the rows of one run, best saving first.
func (h *Handlers) GetRunRows(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(chi.URLParam(r, "runID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid run ID")
		return
	}

	run, err := h.runs.GetRun(r.Context(), runID)
	if err != nil {
		h.logger.Error("failed to get run", "error", err, "run_id", runID)
		h.respondError(w, http.StatusInternalServerError, "failed to get run")
		return
	}
	if run == nil {
		h.respondError(w, http.StatusNotFound, "run not found")
		return
	}

	rows, err := h.runs.GetRunRows(r.Context(), runID)
	if err != nil {
		h.logger.Error("failed to get run rows", "error", err, "run_id", runID)
		h.respondError(w, http.StatusInternalServerError, "failed to get rows")
		return
	}

	h.respondJSON(w, http.StatusOK, toRowResponses(rows))
}

func toRowResponses(rows []models.ComparisonRow) []RowResponse {
	resp := make([]RowResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, RowResponse{
			AppID:          row.Game.AppID,
			Title:          row.Game.Title,
			ReferencePrice: row.Reference.Amount,
			QuotePrice:     row.Quote.Amount,
			Currency:       row.Quote.Currency,
			Merchant:       row.Quote.Merchant,
			SourceURL:      row.Quote.SourceURL,
			SavingAbsolute: row.Savings.Absolute,
			SavingPercent:  row.Savings.Percent,
			CheckedAt:      row.CheckedAt,
		})
	}
	return resp
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
