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

type SessionHandler struct {
	sessionService    *service.SessionService
	patientService    *service.PatientService
	assignmentService *service.AssignmentService
}

func NewSessionHandler(sessionService *service.SessionService, patientService *service.PatientService, assignmentService *service.AssignmentService) *SessionHandler {
	return &SessionHandler{
		sessionService:    sessionService,
		patientService:    patientService,
		assignmentService: assignmentService,
	}
}

type CreateSessionRequest struct {
	SeriesID      string `json:"seriesId" validate:"required,uuid"`
	PreIntensity  string `json:"preIntensity" validate:"required,oneof=none moderate intense"`
	PostIntensity string `json:"postIntensity" validate:"required,oneof=none moderate intense"`
	Comments      string `json:"comments" validate:"required"`
	Duration      int    `json:"duration"`
}

// MySeries returns the calling patient's active assignment with its series,
// 204 when nothing is assigned, 404 when the user has no patient profile.
func (h *SessionHandler) MySeries(w http.ResponseWriter, r *http.Request) {
	patient, ok := h.currentPatient(w, r)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.ActiveForPatient(r.Context(), patient.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveAssignment) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assignment)
}

// MySessions lists the calling patient's session history, optionally
// filtered to one series via ?seriesId=.
func (h *SessionHandler) MySessions(w http.ResponseWriter, r *http.Request) {
	patient, ok := h.currentPatient(w, r)
	if !ok {
		return
	}

	var sessions []*domain.Session
	var err error
	if raw := r.URL.Query().Get("seriesId"); raw != "" {
		seriesID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			http.Error(w, "Invalid series ID", http.StatusBadRequest)
			return
		}
		sessions, err = h.sessionService.ListBySeriesAndPatient(r.Context(), seriesID, patient.ID)
	} else {
		sessions, err = h.sessionService.ListByPatient(r.Context(), patient.ID)
	}
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	patient, ok := h.currentPatient(w, r)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	seriesID, err := uuid.Parse(req.SeriesID)
	if err != nil {
		http.Error(w, "Invalid series ID", http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.Record(r.Context(), patient.ID, service.RecordSessionInput{
		SeriesID:        seriesID,
		PreIntensity:    domain.Intensity(req.PreIntensity),
		PostIntensity:   domain.Intensity(req.PostIntensity),
		Comments:        req.Comments,
		DurationMinutes: req.Duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidIntensity), errors.Is(err, domain.ErrCommentsRequired):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrSeriesNotFound):
			http.Error(w, "Series not found", http.StatusNotFound)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(session)
}

func (h *SessionHandler) currentPatient(w http.ResponseWriter, r *http.Request) (*domain.Patient, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	patient, err := h.patientService.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrPatientNotFound) {
			http.Error(w, "Patient profile not found", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return patient, true
}
