package animals

import "time"

// AnimalType define los tipos de animal presentes en el export AAC.
// @Enum Dog, Cat, Bird, Other
type AnimalType string

const (
	TypeDog   AnimalType = "Dog"
	TypeCat   AnimalType = "Cat"
	TypeBird  AnimalType = "Bird"
	TypeOther AnimalType = "Other"
)

// Sex define el sexo al momento del outcome (valores tal cual vienen del dataset).
// @Enum Intact Male, Intact Female, Neutered Male, Spayed Female, Unknown
type Sex string

const (
	SexIntactMale   Sex = "Intact Male"
	SexIntactFemale Sex = "Intact Female"
	SexNeuteredMale Sex = "Neutered Male"
	SexSpayedFemale Sex = "Spayed Female"
	SexUnknown      Sex = "Unknown"
)

// Condition son los tags de historial médico que consume el scorer de rescate.
type Condition string

const (
	ConditionSurgery Condition = "surgery"
	ConditionChronic Condition = "chronic"
	ConditionInjury  Condition = "injury"
)

// AnimalRecord representa una fila de shelter outcomes (dataset AAC)
// más el historial médico que alimenta el scoring de rescate.
type AnimalRecord struct {
	ID string // animal_id del export, o uuid si no viene

	Name       string
	AnimalType AnimalType
	Breed      string
	Color      string

	DateOfBirth *time.Time

	OutcomeType    string
	OutcomeSubtype string
	OutcomeAt      *time.Time

	SexUponOutcome        Sex
	AgeUponOutcomeInWeeks float64

	MedicalHistory []Condition // puede ser nil (= sin condiciones)

	LocationLat  *float64
	LocationLong *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCondition indica si el historial contiene el tag dado.
func (a AnimalRecord) HasCondition(c Condition) bool {
	for _, mc := range a.MedicalHistory {
		if mc == c {
			return true
		}
	}
	return false
}

// KnownSexes enumera los valores válidos de sex_upon_outcome.
var KnownSexes = []Sex{SexIntactMale, SexIntactFemale, SexNeuteredMale, SexSpayedFemale, SexUnknown}

// ValidSex valida contra la enumeración fija del dataset.
func ValidSex(s Sex) bool {
	for _, k := range KnownSexes {
		if s == k {
			return true
		}
	}
	return false
}

// KnownConditions enumera los tags de historial médico soportados.
var KnownConditions = []Condition{ConditionSurgery, ConditionChronic, ConditionInjury}

// ValidCondition valida un tag de historial médico.
func ValidCondition(c Condition) bool {
	for _, k := range KnownConditions {
		if c == k {
			return true
		}
	}
	return false
}
