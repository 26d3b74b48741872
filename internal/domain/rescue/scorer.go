package rescue

import (
	"strings"
	"time"

	"shelter-outcomes/internal/domain/animals"
)

// Pesos del score compuesto. Deben sumar 1.0.
const (
	weightBreed  = 0.35
	weightAge    = 0.25
	weightSex    = 0.20
	weightHealth = 0.20
)

// Sub-score de raza: exacto vs parcial. Los nombres de raza del dataset suelen
// traer calificadores ("Labrador Mix"); el match parcial no descarta candidatos
// plausibles, pero distingue al purebred.
const (
	breedScoreExact   = 1.0
	breedScorePartial = 0.7
)

// Deducciones de salud, independientes y acumulativas.
const (
	deductionSurgery = 0.20
	deductionChronic = 0.30
	deductionInjury  = 0.15
)

// ScoreResult son los cuatro sub-scores [0,1] y el compuesto ponderado.
type ScoreResult struct {
	BreedScore  float64
	AgeScore    float64
	SexScore    float64
	HealthScore float64
	TotalScore  float64

	// ComputedAt se usa para la comparación de expiración del cache.
	ComputedAt time.Time
}

func scoreAnimal(a animals.AnimalRecord, p Profile, now time.Time) ScoreResult {
	breed := breedScore(a.Breed, p.BreedPatterns)
	age := ageScore(a.AgeUponOutcomeInWeeks, p.AgeRange)
	sex := sexScore(a.SexUponOutcome, p.RequiredSex)
	health := healthScore(a.MedicalHistory)

	return ScoreResult{
		BreedScore:  breed,
		AgeScore:    age,
		SexScore:    sex,
		HealthScore: health,
		TotalScore:  weightBreed*breed + weightAge*age + weightSex*sex + weightHealth*health,
		ComputedAt:  now,
	}
}

func normalizeBreed(breed string) string {
	return strings.ToLower(strings.TrimSpace(breed))
}

// breedScore: 1.0 si la raza normalizada es igual al literal de algún patrón,
// 0.7 si algún patrón matchea como substring/regex, 0 si nada matchea.
// El pase exacto se evalúa contra todos los patrones antes del parcial.
func breedScore(breed string, patterns []BreedPattern) float64 {
	norm := normalizeBreed(breed)
	if norm == "" {
		return 0
	}

	for _, p := range patterns {
		if p.MatchesExact(norm) {
			return breedScoreExact
		}
	}
	for _, p := range patterns {
		if p.Matches(norm) {
			return breedScorePartial
		}
	}
	return 0
}

// ageScore: 1.0 dentro de la ventana; afuera degrada linealmente con
// denominador MinWeeks (no el ancho del rango). Ojo: rangos con min chico
// degradan más rápido. Fórmula preservada tal cual del producto.
func ageScore(ageWeeks float64, r AgeRange) float64 {
	if ageWeeks >= r.MinWeeks && ageWeeks <= r.MaxWeeks {
		return 1.0
	}
	if r.MinWeeks <= 0 {
		return 0
	}

	var distance float64
	if ageWeeks < r.MinWeeks {
		distance = r.MinWeeks - ageWeeks
	} else {
		distance = ageWeeks - r.MaxWeeks
	}

	score := 1 - distance/r.MinWeeks
	if score < 0 {
		return 0
	}
	return score
}

// sexScore es binario: sin crédito parcial.
func sexScore(sex, required animals.Sex) float64 {
	if sex == required {
		return 1.0
	}
	return 0
}

// healthScore: arranca en 1.0 y descuenta por tag presente.
// nil/vacío = sin condiciones = 1.0. Tags desconocidos se ignoran.
func healthScore(conditions []animals.Condition) float64 {
	score := 1.0

	seen := map[animals.Condition]bool{}
	for _, c := range conditions {
		if seen[c] {
			continue
		}
		seen[c] = true

		switch c {
		case animals.ConditionSurgery:
			score -= deductionSurgery
		case animals.ConditionChronic:
			score -= deductionChronic
		case animals.ConditionInjury:
			score -= deductionInjury
		}
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
