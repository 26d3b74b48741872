package rescue

import (
	"math"
	"testing"
	"time"

	"shelter-outcomes/internal/domain/animals"
)

const scoreTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < scoreTolerance
}

func waterProfile(t *testing.T) Profile {
	t.Helper()
	p, err := ProfileFor("Water")
	if err != nil {
		t.Fatalf("ProfileFor(Water) error: %v", err)
	}
	return p
}

func TestBreedScore_ExactLiteralMatch(t *testing.T) {
	p := waterProfile(t)

	if got := breedScore("lab", p.BreedPatterns); got != 1.0 {
		t.Fatalf("expected 1.0 for exact literal, got %v", got)
	}
	// normalización: case y whitespace no rompen el match exacto
	if got := breedScore("  Lab ", p.BreedPatterns); got != 1.0 {
		t.Fatalf("expected 1.0 for normalized exact literal, got %v", got)
	}
}

func TestBreedScore_PartialMatch(t *testing.T) {
	p := waterProfile(t)

	if got := breedScore("Labrador Retriever", p.BreedPatterns); got != 0.7 {
		t.Fatalf("expected 0.7 for partial match, got %v", got)
	}
	if got := breedScore("Chesapeake Bay Retriever", p.BreedPatterns); got != 0.7 {
		t.Fatalf("expected 0.7 for partial match, got %v", got)
	}
}

func TestBreedScore_NoMatch(t *testing.T) {
	p := waterProfile(t)

	if got := breedScore("Poodle", p.BreedPatterns); got != 0 {
		t.Fatalf("expected 0 for no match, got %v", got)
	}
	if got := breedScore("", p.BreedPatterns); got != 0 {
		t.Fatalf("expected 0 for empty breed, got %v", got)
	}
}

func TestBreedScore_ExactWinsOverPartial(t *testing.T) {
	// el pase exacto se evalúa contra todos los patrones antes del parcial,
	// aunque un patrón anterior ya matchee como substring.
	patterns := []BreedPattern{mustPattern("rot"), mustPattern("rott")}
	if got := breedScore("rott", patterns); got != 1.0 {
		t.Fatalf("expected exact match to win, got %v", got)
	}
}

func TestAgeScore_InsideRangeInclusive(t *testing.T) {
	r := AgeRange{MinWeeks: 26, MaxWeeks: 156}

	for _, age := range []float64{26, 156, 52, 100} {
		if got := ageScore(age, r); got != 1.0 {
			t.Fatalf("age %v: expected 1.0, got %v", age, got)
		}
	}
}

func TestAgeScore_BelowRangeDegrades(t *testing.T) {
	r := AgeRange{MinWeeks: 26, MaxWeeks: 156}

	// distance 16, denominador min: 1 - 16/26
	want := 1 - 16.0/26.0
	if got := ageScore(10, r); !almostEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAgeScore_AboveRangeClampsAtZero(t *testing.T) {
	r := AgeRange{MinWeeks: 26, MaxWeeks: 156}

	// distance 44: 1 - 44/26 < 0 => clamp a 0
	if got := ageScore(200, r); got != 0 {
		t.Fatalf("expected 0 (clamped), got %v", got)
	}
}

func TestAgeScore_DenominatorIsMinNotWidth(t *testing.T) {
	// mismo distance, rangos con distinto min: el de min chico degrada más.
	narrow := AgeRange{MinWeeks: 10, MaxWeeks: 300}
	wide := AgeRange{MinWeeks: 50, MaxWeeks: 300}

	gotNarrow := ageScore(305, narrow) // 1 - 5/10 = 0.5
	gotWide := ageScore(305, wide)     // 1 - 5/50 = 0.9
	if !almostEqual(gotNarrow, 0.5) || !almostEqual(gotWide, 0.9) {
		t.Fatalf("expected 0.5 / 0.9, got %v / %v", gotNarrow, gotWide)
	}
}

func TestSexScore_Binary(t *testing.T) {
	if got := sexScore(animals.SexIntactFemale, animals.SexIntactFemale); got != 1.0 {
		t.Fatalf("expected 1.0, got %v", got)
	}
	if got := sexScore(animals.SexSpayedFemale, animals.SexIntactFemale); got != 0 {
		t.Fatalf("expected 0 (sin crédito parcial), got %v", got)
	}
}

func TestHealthScore_Deductions(t *testing.T) {
	cases := []struct {
		name       string
		conditions []animals.Condition
		want       float64
	}{
		{"none", nil, 1.0},
		{"empty", []animals.Condition{}, 1.0},
		{"surgery", []animals.Condition{animals.ConditionSurgery}, 0.8},
		{"surgery+chronic", []animals.Condition{animals.ConditionSurgery, animals.ConditionChronic}, 0.5},
		{"all", []animals.Condition{animals.ConditionSurgery, animals.ConditionChronic, animals.ConditionInjury}, 0.35},
		{"all reordered", []animals.Condition{animals.ConditionChronic, animals.ConditionInjury, animals.ConditionSurgery}, 0.35},
		{"duplicated tag counts once", []animals.Condition{animals.ConditionSurgery, animals.ConditionSurgery}, 0.8},
		{"unknown tag ignored", []animals.Condition{animals.Condition("limp")}, 1.0},
	}

	for _, tc := range cases {
		if got := healthScore(tc.conditions); !almostEqual(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestScoreAnimal_PerfectMatchIsOne(t *testing.T) {
	p := waterProfile(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	a := animals.AnimalRecord{
		ID:                    "A1",
		Breed:                 "lab",
		SexUponOutcome:        animals.SexIntactFemale,
		AgeUponOutcomeInWeeks: 52,
	}

	res := scoreAnimal(a, p, now)
	if !almostEqual(res.TotalScore, 1.0) {
		t.Fatalf("expected total 1.0, got %v", res.TotalScore)
	}
	if res.BreedScore != 1.0 || res.AgeScore != 1.0 || res.SexScore != 1.0 || res.HealthScore != 1.0 {
		t.Fatalf("expected all sub-scores 1.0, got %+v", res)
	}
	if res.ComputedAt != now {
		t.Fatalf("expected ComputedAt = now")
	}
}

func TestScoreAnimal_WeightedComposite(t *testing.T) {
	p := waterProfile(t)
	now := time.Now()

	// breed parcial (0.7), edad en rango (1.0), sexo mismatch (0), surgery (0.8)
	a := animals.AnimalRecord{
		ID:                    "A2",
		Breed:                 "Labrador Retriever Mix",
		SexUponOutcome:        animals.SexIntactMale,
		AgeUponOutcomeInWeeks: 52,
		MedicalHistory:        []animals.Condition{animals.ConditionSurgery},
	}

	res := scoreAnimal(a, p, now)
	want := 0.35*0.7 + 0.25*1.0 + 0.20*0 + 0.20*0.8
	if !almostEqual(res.TotalScore, want) {
		t.Fatalf("expected %v, got %v", want, res.TotalScore)
	}
}

func TestPassesThreshold_Inclusive(t *testing.T) {
	if passesThreshold(ScoreResult{TotalScore: 0.59}) {
		t.Fatalf("0.59 must be excluded")
	}
	if !passesThreshold(ScoreResult{TotalScore: 0.6}) {
		t.Fatalf("0.6 must be included (umbral inclusivo)")
	}
}
