package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// RescueFilterResolver traduce un rescue type de query param al Filter grueso
// correspondiente. Se inyecta como interface para no importar el módulo rescue
// desde acá (rescue ya importa animals).
type RescueFilterResolver interface {
	// FilterFor devuelve el filtro para el rescue type dado.
	// ok=false si el tipo no existe. Un tipo vacío o "All" es filtro vacío.
	FilterFor(rescueType string) (Filter, bool)
}

func RegisterRoutes(r chi.Router, svc *Service, rescues RescueFilterResolver) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", registerAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc, rescues))
		ar.Get("/breeds", breedDistributionHandler(svc, rescues))

		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Get("/{animalID}/location", animalLocationHandler(svc))
	})
}

type registerAnimalRequest struct {
	ID string `json:"id"`

	Name       string `json:"name"`
	AnimalType string `json:"animal_type"`
	Breed      string `json:"breed"`
	Color      string `json:"color"`

	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD opcional
	OutcomeAt   string `json:"outcome_at"`    // RFC3339 opcional

	OutcomeType    string `json:"outcome_type"`
	OutcomeSubtype string `json:"outcome_subtype"`

	SexUponOutcome        string  `json:"sex_upon_outcome"`
	AgeUponOutcomeInWeeks float64 `json:"age_upon_outcome_in_weeks"`

	MedicalHistory []string `json:"medical_history"`

	LocationLat  *float64 `json:"location_lat"`
	LocationLong *float64 `json:"location_long"`
}

type animalResponse struct {
	ID string `json:"id"`

	Name       string `json:"name"`
	AnimalType string `json:"animal_type"`
	Breed      string `json:"breed"`
	Color      string `json:"color,omitempty"`

	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	OutcomeAt   *time.Time `json:"outcome_at,omitempty"`

	OutcomeType    string `json:"outcome_type,omitempty"`
	OutcomeSubtype string `json:"outcome_subtype,omitempty"`

	SexUponOutcome        string  `json:"sex_upon_outcome"`
	AgeUponOutcomeInWeeks float64 `json:"age_upon_outcome_in_weeks"`

	MedicalHistory []string `json:"medical_history,omitempty"`

	LocationLat  *float64 `json:"location_lat,omitempty"`
	LocationLong *float64 `json:"location_long,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type locationResponse struct {
	AnimalID string  `json:"animal_id"`
	Name     string  `json:"name,omitempty"`
	Breed    string  `json:"breed"`
	Lat      float64 `json:"lat"`
	Long     float64 `json:"long"`
}

type breedCountResponse struct {
	Breed string `json:"breed"`
	Count int    `json:"count"`
}

// registerAnimalHandler godoc
// @Summary Registrar un shelter outcome record
// @Tags animals
// @Accept json
// @Produce json
// @Success 201 {object} animalResponse
// @Router /animals [post]
func registerAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var dob *time.Time
		if strings.TrimSpace(req.DateOfBirth) != "" {
			t, err := time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			dob = &t
		}

		var outcomeAt *time.Time
		if strings.TrimSpace(req.OutcomeAt) != "" {
			t, err := time.Parse(time.RFC3339, req.OutcomeAt)
			if err != nil {
				http.Error(w, "outcome_at must be RFC3339", http.StatusBadRequest)
				return
			}
			outcomeAt = &t
		}

		a, err := svc.Register(r.Context(), RegisterInput{
			ID:                    req.ID,
			Name:                  req.Name,
			AnimalType:            req.AnimalType,
			Breed:                 req.Breed,
			Color:                 req.Color,
			DateOfBirth:           dob,
			OutcomeType:           req.OutcomeType,
			OutcomeSubtype:        req.OutcomeSubtype,
			OutcomeAt:             outcomeAt,
			SexUponOutcome:        req.SexUponOutcome,
			AgeUponOutcomeInWeeks: req.AgeUponOutcomeInWeeks,
			MedicalHistory:        req.MedicalHistory,
			LocationLat:           req.LocationLat,
			LocationLong:          req.LocationLong,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Listar records con filtro grueso por rescue type
// @Tags animals
// @Produce json
// @Param rescue_type query string false "All|Water|Mountain|Disaster"
// @Param limit query int false "máximo de registros (default 100, tope 10000)"
// @Success 200 {array} animalResponse
// @Router /animals [get]
func listAnimalsHandler(svc *Service, rescues RescueFilterResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := filterFromQuery(r, rescues)
		if !ok {
			http.Error(w, "unknown rescue_type", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// breedDistributionHandler alimenta el pie chart del dashboard.
func breedDistributionHandler(svc *Service, rescues RescueFilterResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := filterFromQuery(r, rescues)
		if !ok {
			http.Error(w, "unknown rescue_type", http.StatusBadRequest)
			return
		}

		counts, err := svc.BreedDistribution(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]breedCountResponse, 0, len(counts))
		for _, c := range counts {
			out = append(out, breedCountResponse{Breed: c.Breed, Count: c.Count})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// animalLocationHandler devuelve el marker para el mapa.
// 404 si el record no tiene coordenadas (el mapa cae al centro por defecto).
func animalLocationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}
		if a.LocationLat == nil || a.LocationLong == nil {
			http.Error(w, "animal has no location", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, locationResponse{
			AnimalID: a.ID,
			Name:     a.Name,
			Breed:    a.Breed,
			Lat:      *a.LocationLat,
			Long:     *a.LocationLong,
		})
	}
}

func filterFromQuery(r *http.Request, rescues RescueFilterResolver) (Filter, bool) {
	f, ok := rescues.FilterFor(r.URL.Query().Get("rescue_type"))
	if !ok {
		return Filter{}, false
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n // el service acota
		}
	}
	return f, true
}

func toAnimalResponse(a AnimalRecord) animalResponse {
	history := make([]string, 0, len(a.MedicalHistory))
	for _, c := range a.MedicalHistory {
		history = append(history, string(c))
	}

	return animalResponse{
		ID:                    a.ID,
		Name:                  a.Name,
		AnimalType:            string(a.AnimalType),
		Breed:                 a.Breed,
		Color:                 a.Color,
		DateOfBirth:           a.DateOfBirth,
		OutcomeAt:             a.OutcomeAt,
		OutcomeType:           a.OutcomeType,
		OutcomeSubtype:        a.OutcomeSubtype,
		SexUponOutcome:        string(a.SexUponOutcome),
		AgeUponOutcomeInWeeks: a.AgeUponOutcomeInWeeks,
		MedicalHistory:        history,
		LocationLat:           a.LocationLat,
		LocationLong:          a.LocationLong,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (animals/rescue) para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
