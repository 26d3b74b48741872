package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"shelter-outcomes/internal/domain/animals"
)

var (
	ErrNotFound = errors.New("not found")
)

type animalsRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.AnimalRecord
}

func NewAnimalsRepo() animals.Repository {
	return &animalsRepo{
		byID: make(map[string]animals.AnimalRecord),
	}
}

func (r *animalsRepo) Create(ctx context.Context, a animals.AnimalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalsRepo) GetByID(ctx context.Context, id string) (animals.AnimalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.AnimalRecord{}, ErrNotFound
	}
	return a, nil
}

func (r *animalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.AnimalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.AnimalRecord, 0)
	for _, a := range r.byID {
		if matches(a, f) {
			out = append(out, a)
		}
	}

	// Orden estable por created_at asc (mismo criterio que el repo de Postgres)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}

	return out, nil
}

func matches(a animals.AnimalRecord, f animals.Filter) bool {
	if len(f.BreedPatterns) > 0 {
		breed := strings.ToLower(a.Breed)
		found := false
		for _, pat := range f.BreedPatterns {
			if strings.Contains(breed, strings.ToLower(pat)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Sex != "" && a.SexUponOutcome != f.Sex {
		return false
	}

	if f.MinAgeWeeks != nil && a.AgeUponOutcomeInWeeks < *f.MinAgeWeeks {
		return false
	}
	if f.MaxAgeWeeks != nil && a.AgeUponOutcomeInWeeks > *f.MaxAgeWeeks {
		return false
	}

	return true
}
