package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"shelter-outcomes/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, name, animal_type, breed, color,
	date_of_birth, outcome_type, outcome_subtype, outcome_at,
	sex_upon_outcome, age_upon_outcome_in_weeks,
	medical_history, location_lat, location_long,
	created_at, updated_at
`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.AnimalRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, name, animal_type, breed, color,
			date_of_birth, outcome_type, outcome_subtype, outcome_at,
			sex_upon_outcome, age_upon_outcome_in_weeks,
			medical_history, location_lat, location_long,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		a.ID,
		a.Name,
		string(a.AnimalType),
		a.Breed,
		a.Color,
		toNullTime(a.DateOfBirth),
		a.OutcomeType,
		a.OutcomeSubtype,
		toNullTime(a.OutcomeAt),
		string(a.SexUponOutcome),
		a.AgeUponOutcomeInWeeks,
		joinConditions(a.MedicalHistory),
		toNullFloat(a.LocationLat),
		toNullFloat(a.LocationLong),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.AnimalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.AnimalRecord{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return animals.AnimalRecord{}, ErrNotFound
		}
		return animals.AnimalRecord{}, err
	}
	return a, nil
}

// List compila el Filter a SQL: los breed patterns van como ILIKE con OR
// (el mismo primer filtro grueso que antes corría en la capa de datos).
func (r *AnimalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.AnimalRecord, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 8)

	if len(f.BreedPatterns) > 0 {
		ors := make([]string, 0, len(f.BreedPatterns))
		for _, pat := range f.BreedPatterns {
			args = append(args, "%"+pat+"%")
			ors = append(ors, fmt.Sprintf("breed ILIKE $%d", len(args)))
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	if f.Sex != "" {
		args = append(args, string(f.Sex))
		where = append(where, fmt.Sprintf("sex_upon_outcome = $%d", len(args)))
	}

	if f.MinAgeWeeks != nil {
		args = append(args, *f.MinAgeWeeks)
		where = append(where, fmt.Sprintf("age_upon_outcome_in_weeks >= $%d", len(args)))
	}
	if f.MaxAgeWeeks != nil {
		args = append(args, *f.MaxAgeWeeks)
		where = append(where, fmt.Sprintf("age_upon_outcome_in_weeks <= $%d", len(args)))
	}

	q := `SELECT ` + animalColumns + ` FROM animals`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at ASC"

	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.AnimalRecord, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.AnimalRecord, error) {
	var a animals.AnimalRecord
	var (
		animalType string
		sex        string
		dob        sql.NullTime
		outcomeAt  sql.NullTime
		history    string
		lat        sql.NullFloat64
		long       sql.NullFloat64
	)

	if err := row.Scan(
		&a.ID,
		&a.Name,
		&animalType,
		&a.Breed,
		&a.Color,
		&dob,
		&a.OutcomeType,
		&a.OutcomeSubtype,
		&outcomeAt,
		&sex,
		&a.AgeUponOutcomeInWeeks,
		&history,
		&lat,
		&long,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.AnimalRecord{}, err
	}

	a.AnimalType = animals.AnimalType(animalType)
	a.SexUponOutcome = animals.Sex(sex)
	a.MedicalHistory = splitConditions(history)

	if dob.Valid {
		t := dob.Time
		a.DateOfBirth = &t
	}
	if outcomeAt.Valid {
		t := outcomeAt.Time
		a.OutcomeAt = &t
	}
	if lat.Valid {
		v := lat.Float64
		a.LocationLat = &v
	}
	if long.Valid {
		v := long.Float64
		a.LocationLong = &v
	}

	return a, nil
}

// medical_history se persiste como texto separado por comas: los tags son un
// set cerrado sin comas, no justifica jsonb para esto.
func joinConditions(cs []animals.Condition) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ",")
}

func splitConditions(s string) []animals.Condition {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]animals.Condition, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, animals.Condition(p))
		}
	}
	return out
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
