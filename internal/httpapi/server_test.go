package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joelkehle/persona-engine/internal/econ"
	"github.com/joelkehle/persona-engine/internal/lexicon"
	"github.com/joelkehle/persona-engine/internal/personagen"
	"github.com/joelkehle/persona-engine/internal/refdata"
	"github.com/joelkehle/persona-engine/internal/sociology"
	"github.com/joelkehle/persona-engine/internal/timepattern"
)

func testDatasets(t *testing.T) *refdata.Datasets {
	t.Helper()
	ds, err := refdata.Load()
	if err != nil {
		t.Fatalf("load refdata: %v", err)
	}
	return ds
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthReportsPipelineState(t *testing.T) {
	h := NewServer(testDatasets(t), nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("health status: %d", rr.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["pipeline_enabled"] != false {
		t.Fatalf("pipeline_enabled: %v", out["pipeline_enabled"])
	}
}

func TestLexiconAnalyzeEndpoint(t *testing.T) {
	h := NewServer(testDatasets(t), nil)
	rr := postJSON(t, h, "/v1/lexicon/analyze", `{"input": "軟體工程師"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	var out lexicon.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.MatchFound || out.Strategy != lexicon.StrategyEnforce {
		t.Fatalf("expected enforced match: %+v", out)
	}
	if out.Coordinates.Sector != refdata.SectorTech {
		t.Fatalf("sector: %s", out.Coordinates.Sector)
	}
}

func TestTimePredictEndpointHandlesBadVector(t *testing.T) {
	h := NewServer(testDatasets(t), nil)
	rr := postJSON(t, h, "/v1/timepattern/predict", `{"hourly_activity": [1, 2, 3]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var out struct {
		Matches []timepattern.Match `json:"matches"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Matches) != 0 {
		t.Fatalf("short vector must produce no matches, got %d", len(out.Matches))
	}
}

func TestResistanceEndpoint(t *testing.T) {
	h := NewServer(testDatasets(t), nil)
	rr := postJSON(t, h, "/v1/econ/resistance", `{"price": 36000, "disposable_income": 20000, "amort_class": "durable"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var out struct {
		Resistance    int     `json:"resistance"`
		MonthlyBurden float64 `json:"monthly_burden"`
		Amortized     int     `json:"amortized"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.MonthlyBurden != 500 {
		t.Fatalf("durable burden for 36000: %v", out.MonthlyBurden)
	}
	if out.Amortized >= out.Resistance {
		t.Fatalf("amortized resistance %d should sit below sticker resistance %d", out.Amortized, out.Resistance)
	}
}

func TestSociologyContextEndpoint(t *testing.T) {
	h := NewServer(testDatasets(t), nil)
	rr := postJSON(t, h, "/v1/sociology/context", `{"age_range": "36-45", "role_text": "老闆", "income_label": "Tight"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var out sociology.Context
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.RealityCheck.SocialTension == nil || out.RealityCheck.SocialTension.CopingStrategy != sociology.CopingInstallmentKing {
		t.Fatalf("tension: %+v", out.RealityCheck.SocialTension)
	}
}

func TestNormalizeEndpointRepairsGarbage(t *testing.T) {
	h := NewServer(testDatasets(t), nil)
	rr := postJSON(t, h, "/v1/persona/normalize", `{"draft": {"personality": {"risk_tolerance": 0.7}}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	pers := out["personality"].(map[string]any)
	risk := pers["risk_tolerance"].(map[string]any)
	if risk["base_score"] != float64(70) {
		t.Fatalf("ratio score not scaled: %v", risk["base_score"])
	}
}

func TestBuildEndpointUnavailableWithoutPipeline(t *testing.T) {
	h := NewServer(testDatasets(t), nil)
	rr := postJSON(t, h, "/v1/persona/build", `{"source": "synthetic", "age_range": "26-35", "role_text": "學生"}`)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: %d", rr.Code)
	}
}

type stubRunner struct{}

func (stubRunner) RunDraft(_ context.Context, _ personagen.RequestEnvelope, _ sociology.Context) (map[string]any, personagen.StageAttemptMetrics, error) {
	draft := map[string]any{
		"personality":        map[string]any{"risk_tolerance": map[string]any{"base_score": 40, "evidence": "steady habits"}},
		"behavioral_pattern": map[string]any{"visit_frequency_per_week": 2},
		"interaction_style":  map[string]any{"tone": "neutral"},
	}
	return draft, personagen.StageAttemptMetrics{Attempts: 1}, nil
}

func TestBuildEndpointEndToEnd(t *testing.T) {
	ds := testDatasets(t)
	soc := sociology.NewEngine(ds, lexicon.New(ds), econ.New(ds))
	pipeline := personagen.NewPipeline(soc, timepattern.New(ds), stubRunner{})
	h := NewServer(ds, pipeline)

	rr := postJSON(t, h, "/v1/persona/build", `{"source": "synthetic", "age_range": "18-25", "role_text": "學生", "income_label": "Survival"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	var out personagen.ResponseEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.PersonaID == "" {
		t.Fatal("persona id missing")
	}
	if out.Persona.ContextProfile.MonetaryClass != "Survival" {
		t.Fatalf("monetary class: %q", out.Persona.ContextProfile.MonetaryClass)
	}
	if !strings.Contains(out.ReportMarkdown, "# Persona Dossier") {
		t.Fatal("report markdown missing")
	}
}

func TestMethodGuards(t *testing.T) {
	h := NewServer(testDatasets(t), nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/lexicon/analyze", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET on analyze: %d", rr.Code)
	}
}
