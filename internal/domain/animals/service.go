package animals

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
)

const (
	// DefaultListLimit replica el sample inicial del dashboard.
	DefaultListLimit = 100

	// MaxListLimit es el tope duro de registros por consulta.
	MaxListLimit = 10000
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	ID string // opcional: animal_id del export; si falta se asigna uuid

	Name       string
	AnimalType string
	Breed      string
	Color      string

	DateOfBirth *time.Time

	OutcomeType    string
	OutcomeSubtype string
	OutcomeAt      *time.Time

	SexUponOutcome        string
	AgeUponOutcomeInWeeks float64

	MedicalHistory []string

	LocationLat  *float64
	LocationLong *float64
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (AnimalRecord, error) {
	if strings.TrimSpace(in.Breed) == "" {
		return AnimalRecord{}, ErrInvalidInput
	}
	if in.AgeUponOutcomeInWeeks < 0 {
		return AnimalRecord{}, ErrInvalidInput
	}

	sex := Sex(strings.TrimSpace(in.SexUponOutcome))
	if sex == "" {
		sex = SexUnknown
	}
	if !ValidSex(sex) {
		return AnimalRecord{}, ErrInvalidInput
	}

	// Historial médico: tags estrictos, el scorer depende de ellos.
	var history []Condition
	for _, raw := range in.MedicalHistory {
		c := Condition(strings.ToLower(strings.TrimSpace(raw)))
		if c == "" {
			continue
		}
		if !ValidCondition(c) {
			return AnimalRecord{}, ErrInvalidInput
		}
		history = append(history, c)
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	animalType := AnimalType(strings.TrimSpace(in.AnimalType))
	if animalType == "" {
		animalType = TypeDog
	}

	now := s.now()
	a := AnimalRecord{
		ID:                    id,
		Name:                  strings.TrimSpace(in.Name),
		AnimalType:            animalType,
		Breed:                 strings.TrimSpace(in.Breed),
		Color:                 strings.TrimSpace(in.Color),
		DateOfBirth:           in.DateOfBirth,
		OutcomeType:           strings.TrimSpace(in.OutcomeType),
		OutcomeSubtype:        strings.TrimSpace(in.OutcomeSubtype),
		OutcomeAt:             in.OutcomeAt,
		SexUponOutcome:        sex,
		AgeUponOutcomeInWeeks: in.AgeUponOutcomeInWeeks,
		MedicalHistory:        history,
		LocationLat:           in.LocationLat,
		LocationLong:          in.LocationLong,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return AnimalRecord{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (AnimalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return AnimalRecord{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// List aplica el filtro grueso acotando siempre el limit.
func (s *Service) List(ctx context.Context, f Filter) ([]AnimalRecord, error) {
	f.Limit = clampLimit(f.Limit)
	return s.repo.List(ctx, f)
}

// BreedCount alimenta el pie chart de razas del dashboard.
type BreedCount struct {
	Breed string
	Count int
}

// BreedDistribution agrega por raza sobre el mismo filtro grueso de List.
// Orden: count desc, empate por nombre asc (salida estable para la UI).
func (s *Service) BreedDistribution(ctx context.Context, f Filter) ([]BreedCount, error) {
	items, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, a := range items {
		counts[a.Breed]++
	}

	out := make([]BreedCount, 0, len(counts))
	for breed, n := range counts {
		out = append(out, BreedCount{Breed: breed, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Breed < out[j].Breed
	})

	return out, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
