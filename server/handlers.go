package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"tourism-reviews/models"
	"tourism-reviews/scraper/maps"
	"tourism-reviews/services"
	"tourism-reviews/utils"
)

const (
	categoryPathVar  = "category"
	locationQueryArg = "location"
	urlQueryArg      = "url"
)

// Runner produces reports. *services.Pipeline satisfies it.
type Runner interface {
	RunCategory(ctx context.Context, category models.Category, location string) (*services.CategoryReport, error)
	RunURL(ctx context.Context, rawURL string) (*services.BusinessReport, error)
}

type categoryView struct {
	Name  models.Category `json:"name"`
	Label string          `json:"label"`
}

type errorBody struct {
	Error string `json:"error"`
}

// ReportHandler serves reports over HTTP.
type ReportHandler struct {
	runner Runner
	logger *utils.Logger
}

func NewReportHandler(runner Runner, logger *utils.Logger) *ReportHandler {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &ReportHandler{runner: runner, logger: logger}
}

func (h *ReportHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

func (h *ReportHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats := models.Categories()
	out := make([]categoryView, len(cats))
	for i, c := range cats {
		out[i] = categoryView{Name: c, Label: c.Label()}
	}
	h.writeJSON(w, http.StatusOK, out)
}

// GetCategoryAnalysis expects /v1/categories/{category}/analysis?location={location}
func (h *ReportHandler) GetCategoryAnalysis(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(mux.Vars(r)[categoryPathVar])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.runner.RunCategory(r.Context(), category, r.URL.Query().Get(locationQueryArg))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// GetBusiness expects /v1/business?url={listing url}
func (h *ReportHandler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	rawURL := strings.TrimSpace(r.URL.Query().Get(urlQueryArg))
	if rawURL == "" {
		h.writeError(w, http.StatusBadRequest, "missing argument "+urlQueryArg)
		return
	}

	report, err := h.runner.RunURL(r.Context(), rawURL)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	h.logger.Error("[server] %s %s: %d %v", r.Method, r.URL.Path, status, err)
	h.writeError(w, status, err.Error())
}

// statusFor maps scrape failures onto gateway semantics. A listing without
// a place id is the caller's input, not an upstream failure.
func statusFor(err error) int {
	var timeout *maps.ExtractionTimeoutError
	switch {
	case errors.Is(err, maps.ErrNotInitialized):
		return http.StatusServiceUnavailable
	case errors.Is(err, maps.ErrMissingPlaceID):
		return http.StatusUnprocessableEntity
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (h *ReportHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorBody{Error: msg})
}

func (h *ReportHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("[server] encode response: %v", err)
	}
}
