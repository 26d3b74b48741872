package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shelter-outcomes/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler, stop := router.NewRouter(router.Options{})
	t.Cleanup(stop)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_RescueCandidates(t *testing.T) {
	ts := newTestServer(t)

	// 1) Seed: candidatos water de distinta calidad + ruido mountain
	registerAnimal(t, ts.URL, map[string]any{
		"id":                        "W-PARTIAL",
		"name":                      "Nala",
		"breed":                     "Labrador Retriever Mix",
		"sex_upon_outcome":          "Intact Female",
		"age_upon_outcome_in_weeks": 52,
	})
	registerAnimal(t, ts.URL, map[string]any{
		"id":                        "W-PERFECT",
		"name":                      "Ola",
		"breed":                     "lab",
		"sex_upon_outcome":          "Intact Female",
		"age_upon_outcome_in_weeks": 60,
	})
	registerAnimal(t, ts.URL, map[string]any{
		"id":                        "W-SICK",
		"name":                      "Luna",
		"breed":                     "Newfoundland",
		"sex_upon_outcome":          "Intact Female",
		"age_upon_outcome_in_weeks": 52,
		"medical_history":           []string{"surgery", "chronic", "injury"},
	})
	registerAnimal(t, ts.URL, map[string]any{
		"id":                        "M-1",
		"name":                      "Rocky",
		"breed":                     "German Shepherd",
		"sex_upon_outcome":          "Intact Male",
		"age_upon_outcome_in_weeks": 52,
	})

	// 2) Listado con filtro grueso: solo los water
	{
		st, body := doReq(t, ts.URL, "GET", "/animals?rescue_type=Water", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list water, got %d body=%s", st, string(body))
		}
		var items []struct {
			ID string `json:"id"`
		}
		mustDecode(t, body, &items)
		if len(items) != 3 {
			t.Fatalf("expected 3 water records, got %d body=%s", len(items), string(body))
		}
	}

	// 3) Candidatos: los tres water pasan el umbral, ordenados desc
	//    (W-PERFECT 1.0, W-PARTIAL 0.895, W-SICK 0.765)
	{
		st, body := doReq(t, ts.URL, "GET", "/rescue/Water/candidates", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 candidates, got %d body=%s", st, string(body))
		}
		var items []struct {
			AnimalID string `json:"animal_id"`
			Score    struct {
				Total float64 `json:"total"`
			} `json:"score"`
		}
		mustDecode(t, body, &items)

		if len(items) != 3 {
			t.Fatalf("expected 3 candidates, got %d body=%s", len(items), string(body))
		}
		if items[0].AnimalID != "W-PERFECT" {
			t.Fatalf("expected W-PERFECT first, got %s", items[0].AnimalID)
		}
		for i := 1; i < len(items); i++ {
			if items[i].Score.Total > items[i-1].Score.Total {
				t.Fatalf("candidates not sorted descending: %s", string(body))
			}
		}
		for _, it := range items {
			if it.Score.Total < 0.6 {
				t.Fatalf("candidate %s below threshold: %v", it.AnimalID, it.Score.Total)
			}
		}
	}

	// 4) Mountain ve al pastor alemán, no a los labs
	{
		st, body := doReq(t, ts.URL, "GET", "/rescue/Mountain/candidates", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 mountain candidates, got %d body=%s", st, string(body))
		}
		var items []struct {
			AnimalID string `json:"animal_id"`
		}
		mustDecode(t, body, &items)
		if len(items) != 1 || items[0].AnimalID != "M-1" {
			t.Fatalf("expected only M-1, got %s", string(body))
		}
	}

	// 5) Categoría desconocida => 400, no computa nada
	{
		st, _ := doReq(t, ts.URL, "GET", "/rescue/Space/candidates", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unknown category, got %d", st)
		}
	}
}

func TestHTTP_AnimalsListAndLocation(t *testing.T) {
	ts := newTestServer(t)

	registerAnimal(t, ts.URL, map[string]any{
		"id":                        "A-LOC",
		"name":                      "Max",
		"breed":                     "Beagle",
		"sex_upon_outcome":          "Neutered Male",
		"age_upon_outcome_in_weeks": 80,
		"location_lat":              30.75,
		"location_long":             -97.48,
	})
	registerAnimal(t, ts.URL, map[string]any{
		"id":    "A-NOLOC",
		"breed": "Beagle",
	})

	// marker del mapa
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/A-LOC/location", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 location, got %d body=%s", st, string(body))
		}
		var loc struct {
			Lat  float64 `json:"lat"`
			Long float64 `json:"long"`
		}
		mustDecode(t, body, &loc)
		if loc.Lat != 30.75 || loc.Long != -97.48 {
			t.Fatalf("unexpected coordinates: %+v", loc)
		}
	}

	// sin coordenadas => 404
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/A-NOLOC/location", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 without location, got %d", st)
		}
	}

	// record inexistente => 404
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/nope", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 missing animal, got %d", st)
		}
	}

	// rescue_type inválido en el listado => 400
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals?rescue_type=Space", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unknown rescue_type, got %d", st)
		}
	}
}

func TestHTTP_BreedDistribution(t *testing.T) {
	ts := newTestServer(t)

	for i, breed := range []string{"Beagle", "Beagle", "Chihuahua"} {
		registerAnimal(t, ts.URL, map[string]any{
			"id":    fmt.Sprintf("B-%d", i),
			"breed": breed,
		})
	}

	st, body := doReq(t, ts.URL, "GET", "/animals/breeds", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 breeds, got %d body=%s", st, string(body))
	}

	var counts []struct {
		Breed string `json:"breed"`
		Count int    `json:"count"`
	}
	mustDecode(t, body, &counts)
	if len(counts) != 2 || counts[0].Breed != "Beagle" || counts[0].Count != 2 {
		t.Fatalf("unexpected distribution: %s", string(body))
	}
}

func TestHTTP_RescueCategories(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/rescue/categories", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 categories, got %d body=%s", st, string(body))
	}

	var items []struct {
		Category    string  `json:"category"`
		RequiredSex string  `json:"required_sex"`
		MinAgeWeeks float64 `json:"min_age_weeks"`
		MaxAgeWeeks float64 `json:"max_age_weeks"`
	}
	mustDecode(t, body, &items)

	if len(items) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(items))
	}
	if items[0].Category != "Water" || items[1].Category != "Mountain" || items[2].Category != "Disaster" {
		t.Fatalf("unexpected category order: %s", string(body))
	}
	if items[2].MinAgeWeeks != 20 || items[2].MaxAgeWeeks != 300 {
		t.Fatalf("unexpected disaster age range: %s", string(body))
	}
}

func TestHTTP_RegisterAnimal_Validation(t *testing.T) {
	ts := newTestServer(t)

	// sin breed => 400
	st, _ := doReq(t, ts.URL, "POST", "/animals", map[string]any{
		"name": "SinRaza",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 without breed, got %d", st)
	}

	// tag de historial desconocido => 400
	st, _ = doReq(t, ts.URL, "POST", "/animals", map[string]any{
		"breed":           "Beagle",
		"medical_history": []string{"teleport"},
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown condition tag, got %d", st)
	}
}

func registerAnimal(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("register animal: missing id body=%s", string(body))
	}
	return resp.ID
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
