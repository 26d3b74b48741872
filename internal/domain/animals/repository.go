package animals

import "context"

// Filter es el primer filtro grueso a nivel de consulta (equivalente a las
// queries por rescue type que antes vivían en la capa de datos).
// Campos en cero = sin restricción.
type Filter struct {
	// BreedPatterns: substrings case-insensitive, combinados con OR.
	BreedPatterns []string

	// Sex: igualdad exacta contra sex_upon_outcome.
	Sex Sex

	// Ventana de edad en semanas, inclusiva en ambos extremos.
	MinAgeWeeks *float64
	MaxAgeWeeks *float64

	// Limit máximo de registros a devolver (el service lo acota).
	Limit int
}

type Repository interface {
	Create(ctx context.Context, a AnimalRecord) error
	GetByID(ctx context.Context, id string) (AnimalRecord, error)
	List(ctx context.Context, f Filter) ([]AnimalRecord, error)
}
