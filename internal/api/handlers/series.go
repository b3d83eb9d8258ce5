package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/api/middleware"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/service"
	"github.com/google/uuid"
)

type SeriesHandler struct {
	seriesService *service.SeriesService
}

func NewSeriesHandler(seriesService *service.SeriesService) *SeriesHandler {
	return &SeriesHandler{seriesService: seriesService}
}

type CreateSeriesRequest struct {
	Name                string   `json:"name" validate:"required"`
	Description         string   `json:"description"`
	TherapyTypeID       string   `json:"therapyTypeId" validate:"required,uuid"`
	PostureIDs          []string `json:"postureIds" validate:"required,min=6,dive,uuid"`
	PostureDurations    []int    `json:"postureDurations"`
	RecommendedSessions int      `json:"recommendedSessions" validate:"required,min=1"`
}

func (h *SeriesHandler) List(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	seriesList, err := h.seriesService.ListByInstructor(r.Context(), instructorID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(seriesList)
}

func (h *SeriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateSeriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	therapyTypeID, err := uuid.Parse(req.TherapyTypeID)
	if err != nil {
		http.Error(w, "Invalid therapy type ID", http.StatusBadRequest)
		return
	}
	postureIDs := make([]uuid.UUID, 0, len(req.PostureIDs))
	for _, raw := range req.PostureIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Invalid posture ID", http.StatusBadRequest)
			return
		}
		postureIDs = append(postureIDs, id)
	}

	series, err := h.seriesService.Create(r.Context(), instructorID, service.CreateSeriesInput{
		Name:                req.Name,
		Description:         req.Description,
		TherapyTypeID:       therapyTypeID,
		PostureIDs:          postureIDs,
		PostureDurations:    req.PostureDurations,
		RecommendedSessions: req.RecommendedSessions,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooFewPostures),
			errors.Is(err, domain.ErrDurationMismatch),
			errors.Is(err, service.ErrUnknownPosture):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrTherapyTypeNotFound):
			http.Error(w, "Therapy type not found", http.StatusNotFound)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(series)
}
