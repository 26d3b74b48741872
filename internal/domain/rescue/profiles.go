package rescue

import (
	"errors"
	"regexp"
	"strings"

	"shelter-outcomes/internal/domain/animals"
)

var ErrUnknownCategory = errors.New("unknown rescue category")

// Category identifica un tipo de entrenamiento de rescate.
// @Enum Water, Mountain, Disaster
type Category string

const (
	CategoryWater    Category = "Water"
	CategoryMountain Category = "Mountain"
	CategoryDisaster Category = "Disaster"
)

// BreedPattern lleva el término literal junto al regex compilado.
// El literal se usa para el match exacto (1.0 vs 0.7) sin re-parsear
// el source del regex, que es frágil.
type BreedPattern struct {
	Literal string
	re      *regexp.Regexp
}

// MatchesExact: igualdad carácter a carácter contra la raza ya normalizada.
func (p BreedPattern) MatchesExact(normalizedBreed string) bool {
	return normalizedBreed == p.Literal
}

// Matches: test de substring/regex contra la raza ya normalizada.
func (p BreedPattern) Matches(normalizedBreed string) bool {
	return p.re.MatchString(normalizedBreed)
}

func mustPattern(literal string) BreedPattern {
	return BreedPattern{
		Literal: literal,
		re:      regexp.MustCompile("(?i)" + regexp.QuoteMeta(literal)),
	}
}

// AgeRange es la ventana de edad aceptable en semanas, inclusiva.
type AgeRange struct {
	MinWeeks float64
	MaxWeeks float64
}

// Profile son los criterios de matching de una categoría de rescate.
// Constante de proceso: no existe mutación.
type Profile struct {
	Category      Category
	BreedPatterns []BreedPattern
	RequiredSex   animals.Sex
	AgeRange      AgeRange
}

// Criterios tomados del programa de entrenamiento Grazioso Salvare:
// los mismos patrones de raza, sexo y ventana de edad que usa el filtro
// grueso del dashboard.
var profiles = map[Category]Profile{
	CategoryWater: {
		Category: CategoryWater,
		BreedPatterns: []BreedPattern{
			mustPattern("lab"),
			mustPattern("chesa"),
			mustPattern("newf"),
		},
		RequiredSex: animals.SexIntactFemale,
		AgeRange:    AgeRange{MinWeeks: 26, MaxWeeks: 156},
	},
	CategoryMountain: {
		Category: CategoryMountain,
		BreedPatterns: []BreedPattern{
			mustPattern("german"),
			mustPattern("mala"),
			mustPattern("old english"),
			mustPattern("husk"),
			mustPattern("rott"),
		},
		RequiredSex: animals.SexIntactMale,
		AgeRange:    AgeRange{MinWeeks: 26, MaxWeeks: 156},
	},
	CategoryDisaster: {
		Category: CategoryDisaster,
		BreedPatterns: []BreedPattern{
			mustPattern("german"),
			mustPattern("golden"),
			mustPattern("blood"),
			mustPattern("dober"),
			mustPattern("rott"),
		},
		RequiredSex: animals.SexIntactMale,
		AgeRange:    AgeRange{MinWeeks: 20, MaxWeeks: 300},
	},
}

// Orden estable para listados (la UI muestra las opciones en este orden).
var categoryOrder = []Category{CategoryWater, CategoryMountain, CategoryDisaster}

// ProfileFor resuelve el profile de una categoría.
// Tolerante a mayúsculas/minúsculas; categoría desconocida es error del caller.
func ProfileFor(category string) (Profile, error) {
	name := strings.TrimSpace(category)
	for _, c := range categoryOrder {
		if strings.EqualFold(name, string(c)) {
			return profiles[c], nil
		}
	}
	return Profile{}, ErrUnknownCategory
}

// Profiles devuelve los tres profiles en orden estable.
func Profiles() []Profile {
	out := make([]Profile, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		out = append(out, profiles[c])
	}
	return out
}

// AnimalFilter traduce los criterios del profile al filtro grueso de consulta.
func (p Profile) AnimalFilter() animals.Filter {
	patterns := make([]string, 0, len(p.BreedPatterns))
	for _, bp := range p.BreedPatterns {
		patterns = append(patterns, bp.Literal)
	}

	minAge := p.AgeRange.MinWeeks
	maxAge := p.AgeRange.MaxWeeks
	return animals.Filter{
		BreedPatterns: patterns,
		Sex:           p.RequiredSex,
		MinAgeWeeks:   &minAge,
		MaxAgeWeeks:   &maxAge,
	}
}

// FilterResolver implementa animals.RescueFilterResolver para el query param
// rescue_type del listado de animales.
type FilterResolver struct{}

func (FilterResolver) FilterFor(rescueType string) (animals.Filter, bool) {
	name := strings.TrimSpace(rescueType)
	if name == "" || strings.EqualFold(name, "All") {
		return animals.Filter{}, true
	}

	p, err := ProfileFor(name)
	if err != nil {
		return animals.Filter{}, false
	}
	return p.AnimalFilter(), true
}
