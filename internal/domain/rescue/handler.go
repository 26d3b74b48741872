package rescue

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"shelter-outcomes/internal/domain/animals"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, animalsSvc *animals.Service) {
	r.Route("/rescue", func(rr chi.Router) {
		rr.Get("/categories", listCategoriesHandler())
		rr.Get("/{category}/candidates", candidatesHandler(svc, animalsSvc))
	})
}

type profileResponse struct {
	Category      string   `json:"category"`
	BreedPatterns []string `json:"breed_patterns"`
	RequiredSex   string   `json:"required_sex"`
	MinAgeWeeks   float64  `json:"min_age_weeks"`
	MaxAgeWeeks   float64  `json:"max_age_weeks"`
}

type scoreResponse struct {
	Breed      float64   `json:"breed"`
	Age        float64   `json:"age"`
	Sex        float64   `json:"sex"`
	Health     float64   `json:"health"`
	Total      float64   `json:"total"`
	ComputedAt time.Time `json:"computed_at"`
}

type candidateResponse struct {
	AnimalID              string   `json:"animal_id"`
	Name                  string   `json:"name,omitempty"`
	Breed                 string   `json:"breed"`
	SexUponOutcome        string   `json:"sex_upon_outcome"`
	AgeUponOutcomeInWeeks float64  `json:"age_upon_outcome_in_weeks"`
	MedicalHistory        []string `json:"medical_history,omitempty"`

	Score scoreResponse `json:"score"`
}

// listCategoriesHandler godoc
// @Summary Listar los profiles de rescate disponibles
// @Tags rescue
// @Produce json
// @Success 200 {array} profileResponse
// @Router /rescue/categories [get]
func listCategoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]profileResponse, 0)
		for _, p := range Profiles() {
			patterns := make([]string, 0, len(p.BreedPatterns))
			for _, bp := range p.BreedPatterns {
				patterns = append(patterns, bp.Literal)
			}
			out = append(out, profileResponse{
				Category:      string(p.Category),
				BreedPatterns: patterns,
				RequiredSex:   string(p.RequiredSex),
				MinAgeWeeks:   p.AgeRange.MinWeeks,
				MaxAgeWeeks:   p.AgeRange.MaxWeeks,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// candidatesHandler godoc
// @Summary Candidatos aptos para una categoría de rescate, con scores
// @Tags rescue
// @Produce json
// @Param category path string true "Water|Mountain|Disaster"
// @Param limit query int false "máximo de registros a evaluar"
// @Success 200 {array} candidateResponse
// @Failure 400 {string} string "unknown rescue category"
// @Router /rescue/{category}/candidates [get]
func candidatesHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "category")

		// Resolver el profile primero: categoría desconocida no computa nada
		// ni toca el storage.
		profile, err := ProfileFor(category)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter := profile.AnimalFilter()
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.Limit = n
			}
		}

		records, err := animalsSvc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		scored, err := svc.Candidates(r.Context(), category, records)
		if err != nil {
			if errors.Is(err, ErrUnknownCategory) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]candidateResponse, 0, len(scored))
		for _, sa := range scored {
			out = append(out, toCandidateResponse(sa))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toCandidateResponse(sa ScoredAnimal) candidateResponse {
	history := make([]string, 0, len(sa.Animal.MedicalHistory))
	for _, c := range sa.Animal.MedicalHistory {
		history = append(history, string(c))
	}

	return candidateResponse{
		AnimalID:              sa.Animal.ID,
		Name:                  sa.Animal.Name,
		Breed:                 sa.Animal.Breed,
		SexUponOutcome:        string(sa.Animal.SexUponOutcome),
		AgeUponOutcomeInWeeks: sa.Animal.AgeUponOutcomeInWeeks,
		MedicalHistory:        history,
		Score: scoreResponse{
			Breed:      sa.Score.BreedScore,
			Age:        sa.Score.AgeScore,
			Sex:        sa.Score.SexScore,
			Health:     sa.Score.HealthScore,
			Total:      sa.Score.TotalScore,
			ComputedAt: sa.Score.ComputedAt,
		},
	}
}

// writeJSON duplicado a propósito (ver nota en animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
