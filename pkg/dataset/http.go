package dataset

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/synthetica-health/platform/pkg/common/logger"
	"github.com/synthetica-health/platform/pkg/common/models"
	"github.com/synthetica-health/platform/pkg/synth"
)

type HTTPHandler struct {
	service *Service
	maxBody int64
}

func NewHTTPHandler(service *Service, maxBody int64) *HTTPHandler {
	return &HTTPHandler{service: service, maxBody: maxBody}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/datasets", h.handleGenerate).Methods(http.MethodPost)
	router.HandleFunc("/datasets", h.handleList).Methods(http.MethodGet)
	router.HandleFunc("/datasets/{id}", h.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/datasets/{id}/export", h.handleExport).Methods(http.MethodGet)
	router.HandleFunc("/datasets/{id}/stats", h.handleStats).Methods(http.MethodGet)
}

func (h *HTTPHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.WithError(err).Warn("invalid generation payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Generate(r.Context(), req)
	if err != nil {
		if synth.IsInvalidParameter(err) || synth.IsConfigurationConflict(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Log.WithError(err).Error("failed to generate dataset")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *HTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.service.List(r.Context(), 0)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list datasets")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recs)
}

func (h *HTTPHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rec, err := h.service.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "dataset not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to fetch dataset")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

func (h *HTTPHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	w.Header().Set("Content-Type", "text/csv")

	if err := h.service.Export(r.Context(), vars["id"], w); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "dataset not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to export dataset")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *HTTPHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query().Get("q")

	stats, err := h.service.Stats(r.Context(), vars["id"], query)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "dataset not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidQuery) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Log.WithError(err).Error("failed to compute dataset stats")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
