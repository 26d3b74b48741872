package rescue

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"shelter-outcomes/internal/domain/animals"
)

// minAcceptableScore es el umbral de aptitud, inclusivo.
const minAcceptableScore = 0.6

// ScoredAnimal es un record anotado con su ScoreResult.
type ScoredAnimal struct {
	Animal animals.AnimalRecord
	Score  ScoreResult
}

// Service es el scoring engine: sub-scores, compuesto ponderado, cache TTL
// y la lista de candidatos filtrada y ordenada.
type Service struct {
	cache *ScoreCache
	log   *slog.Logger
	now   func() time.Time
}

func NewService(cache *ScoreCache, log *slog.Logger) *Service {
	if cache == nil {
		cache = NewScoreCache(DefaultCacheTTL)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// Candidates computa (o reusa del cache) el score de cada animal contra el
// profile de la categoría, descarta los que no llegan al umbral y devuelve
// la lista ordenada por score descendente (orden estable en empates).
//
// Categoría desconocida falla sin computar nada. Un record malformado
// (sin raza) se saltea: nunca aborta el batch. Lista vacía es resultado
// válido, no excepcional.
func (s *Service) Candidates(ctx context.Context, category string, records []animals.AnimalRecord) ([]ScoredAnimal, error) {
	profile, err := ProfileFor(category)
	if err != nil {
		return nil, err
	}

	out := make([]ScoredAnimal, 0, len(records))
	for _, a := range records {
		if strings.TrimSpace(a.Breed) == "" {
			// record malformado: score imposible, se excluye sin cachear
			s.log.Warn("skipping record without breed", "animal_id", a.ID, "category", profile.Category)
			continue
		}

		res, ok := s.lookup(a.ID, profile.Category)
		if !ok {
			res = scoreAnimal(a, profile, s.now())
			s.store(a.ID, profile.Category, res)
		}

		if !passesThreshold(res) {
			continue
		}
		out = append(out, ScoredAnimal{Animal: a, Score: res})
	}

	// Estable: empates conservan el orden relativo de entrada (determinismo).
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score.TotalScore > out[j].Score.TotalScore
	})

	return out, nil
}

func passesThreshold(res ScoreResult) bool {
	return res.TotalScore >= minAcceptableScore
}

// lookup/store: un ID vacío aliasaría todos esos records a una sola entrada,
// así que esos se computan siempre fresh.
func (s *Service) lookup(animalID string, category Category) (ScoreResult, bool) {
	if strings.TrimSpace(animalID) == "" {
		return ScoreResult{}, false
	}
	return s.cache.Get(animalID, category)
}

func (s *Service) store(animalID string, category Category, res ScoreResult) {
	if strings.TrimSpace(animalID) == "" {
		return
	}
	s.cache.Put(animalID, category, res)
}
