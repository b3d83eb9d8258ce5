package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/service"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListTherapyTypes(w http.ResponseWriter, r *http.Request) {
	therapyTypes, err := h.catalogService.ListTherapyTypes(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(therapyTypes)
}

// ListPostures serves the posture catalog. The list can be narrowed with
// ?therapyTypeId= or to an explicit ?ids= comma-separated set.
func (h *CatalogHandler) ListPostures(w http.ResponseWriter, r *http.Request) {
	var postures []*domain.Posture
	var err error

	switch {
	case r.URL.Query().Get("therapyTypeId") != "":
		therapyTypeID, parseErr := uuid.Parse(r.URL.Query().Get("therapyTypeId"))
		if parseErr != nil {
			http.Error(w, "Invalid therapy type ID", http.StatusBadRequest)
			return
		}
		postures, err = h.catalogService.ListPosturesByTherapyType(r.Context(), therapyTypeID)
	case r.URL.Query().Get("ids") != "":
		var ids []uuid.UUID
		for _, raw := range strings.Split(r.URL.Query().Get("ids"), ",") {
			id, parseErr := uuid.Parse(strings.TrimSpace(raw))
			if parseErr != nil {
				http.Error(w, "Invalid posture ID", http.StatusBadRequest)
				return
			}
			ids = append(ids, id)
		}
		postures, err = h.catalogService.ListPosturesByIDs(r.Context(), ids)
	default:
		postures, err = h.catalogService.ListPostures(r.Context())
	}
	if err != nil {
		if errors.Is(err, domain.ErrTherapyTypeNotFound) {
			http.Error(w, "Therapy type not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(postures)
}
