package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/api/middleware"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PatientHandler struct {
	patientService    *service.PatientService
	assignmentService *service.AssignmentService
}

func NewPatientHandler(patientService *service.PatientService, assignmentService *service.AssignmentService) *PatientHandler {
	return &PatientHandler{
		patientService:    patientService,
		assignmentService: assignmentService,
	}
}

type CreatePatientRequest struct {
	UserID            string `json:"userId" validate:"required,uuid"`
	MedicalConditions string `json:"medicalConditions"`
	Notes             string `json:"notes"`
}

type AssignSeriesRequest struct {
	SeriesID string `json:"seriesId" validate:"required,uuid"`
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	patients, err := h.patientService.ListByInstructor(r.Context(), instructorID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(patients)
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	patient, err := h.patientService.Create(r.Context(), instructorID, service.CreatePatientInput{
		UserID:            userID,
		MedicalConditions: req.MedicalConditions,
		Notes:             req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrInvalidRole):
			http.Error(w, "User does not have the patient role", http.StatusBadRequest)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(patient)
}

func (h *PatientHandler) AssignSeries(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	var req AssignSeriesRequest
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

	assignment, err := h.assignmentService.AssignSeries(r.Context(), patientID, seriesID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPatientNotFound):
			http.Error(w, "Patient not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrSeriesNotFound):
			http.Error(w, "Series not found", http.StatusNotFound)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(assignment)
}
