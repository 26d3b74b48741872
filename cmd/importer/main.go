package main

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	pg "shelter-outcomes/internal/adapters/storage/postgres"
	"shelter-outcomes/internal/config"
	"shelter-outcomes/internal/domain/animals"
)

// Importer del export AAC de shelter outcomes: deja la tabla como el CSV
// (borra lo existente, inserta todo, reporta conteos).
//
// Env: DB_DSN (requerido), CSV_PATH (default data/aac_shelter_outcomes.csv).

const defaultCSVPath = "data/aac_shelter_outcomes.csv"

const schema = `
CREATE TABLE IF NOT EXISTS animals (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	animal_type TEXT NOT NULL DEFAULT '',
	breed TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	date_of_birth DATE,
	outcome_type TEXT NOT NULL DEFAULT '',
	outcome_subtype TEXT NOT NULL DEFAULT '',
	outcome_at TIMESTAMPTZ,
	sex_upon_outcome TEXT NOT NULL,
	age_upon_outcome_in_weeks DOUBLE PRECISION NOT NULL,
	medical_history TEXT NOT NULL DEFAULT '',
	location_lat DOUBLE PRECISION,
	location_long DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, cleanup := config.SetupLogger(cfg)
	defer func() { _ = cleanup() }()

	if cfg.DBDSN == "" {
		log.Error("DB_DSN is required")
		os.Exit(1)
	}

	csvPath := os.Getenv("CSV_PATH")
	if csvPath == "" {
		csvPath = defaultCSVPath
	}

	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		log.Error("postgres open failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Error("create table failed", "error", err)
		os.Exit(1)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM animals`); err != nil {
		log.Error("clear table failed", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		log.Error("open csv failed", "error", err, "path", csvPath)
		os.Exit(1)
	}
	defer f.Close()

	log.Info("loading csv", "path", csvPath)

	repo := pg.NewAnimalsRepo(db)
	inserted, skipped, err := load(ctx, f, repo)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	log.Info("import done", "inserted", inserted, "skipped", skipped)
}

func load(ctx context.Context, r io.Reader, repo animals.Repository) (inserted, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // el export trae filas desparejas

	header, err := cr.Read()
	if err != nil {
		return 0, 0, err
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	now := time.Now()
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return inserted, skipped, err
		}

		rec, ok := toRecord(row, col, now)
		if !ok {
			skipped++
			continue
		}

		if err := repo.Create(ctx, rec); err != nil {
			// ids duplicados en el export: se saltean, no abortan la carga
			skipped++
			continue
		}
		inserted++
	}

	return inserted, skipped, nil
}

func toRecord(row []string, col map[string]int, now time.Time) (animals.AnimalRecord, bool) {
	get := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	breed := get("breed")
	if breed == "" {
		return animals.AnimalRecord{}, false
	}

	id := get("animal_id")
	if id == "" {
		id = uuid.NewString()
	}

	age, _ := strconv.ParseFloat(get("age_upon_outcome_in_weeks"), 64)
	if age < 0 {
		age = 0
	}

	sex := animals.Sex(get("sex_upon_outcome"))
	if !animals.ValidSex(sex) {
		sex = animals.SexUnknown
	}

	animalType := animals.AnimalType(get("animal_type"))
	if animalType == "" {
		animalType = animals.TypeOther
	}

	return animals.AnimalRecord{
		ID:                    id,
		Name:                  get("name"),
		AnimalType:            animalType,
		Breed:                 breed,
		Color:                 get("color"),
		DateOfBirth:           parseTime(get("date_of_birth")),
		OutcomeType:           get("outcome_type"),
		OutcomeSubtype:        get("outcome_subtype"),
		OutcomeAt:             parseTime(get("datetime")),
		SexUponOutcome:        sex,
		AgeUponOutcomeInWeeks: age,
		LocationLat:           parseFloat(get("location_lat")),
		LocationLong:          parseFloat(get("location_long")),
		CreatedAt:             now,
		UpdatedAt:             now,
	}, true
}

// El export mezcla formatos de fecha según la columna.
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
