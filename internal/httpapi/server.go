// Package httpapi exposes the persona engine over HTTP: lexicon analysis,
// time-pattern prediction, sociology contexts, resistance scoring, draft
// normalization, and the full build pipeline.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/joelkehle/persona-engine/internal/econ"
	"github.com/joelkehle/persona-engine/internal/lexicon"
	"github.com/joelkehle/persona-engine/internal/persona"
	"github.com/joelkehle/persona-engine/internal/personagen"
	"github.com/joelkehle/persona-engine/internal/refdata"
	"github.com/joelkehle/persona-engine/internal/sociology"
	"github.com/joelkehle/persona-engine/internal/timepattern"
)

const buildTimeout = 120 * time.Second

type Server struct {
	lex      *lexicon.Matcher
	tm       *timepattern.Matcher
	phys     *econ.Physics
	soc      *sociology.Engine
	pipeline *personagen.Pipeline
}

// NewServer wires the engine surfaces into a handler. pipeline may be nil
// when no LLM credentials are configured; the build endpoint then reports
// 503 while every deterministic endpoint keeps working.
func NewServer(ds *refdata.Datasets, pipeline *personagen.Pipeline) http.Handler {
	lex := lexicon.New(ds)
	phys := econ.New(ds)
	s := &Server{
		lex:      lex,
		tm:       timepattern.New(ds),
		phys:     phys,
		soc:      sociology.NewEngine(ds, lex, phys),
		pipeline: pipeline,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/health", s.handleHealth)
	mux.HandleFunc("/v1/lexicon/analyze", s.handleLexiconAnalyze)
	mux.HandleFunc("/v1/timepattern/predict", s.handleTimePredict)
	mux.HandleFunc("/v1/econ/resistance", s.handleResistance)
	mux.HandleFunc("/v1/sociology/context", s.handleSociologyContext)
	mux.HandleFunc("/v1/persona/normalize", s.handleNormalize)
	mux.HandleFunc("/v1/persona/build", s.handleBuild)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"ok":    false,
		"error": map[string]any{"message": message},
	})
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return []byte("{}"), nil
	}
	blob, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		blob = []byte("{}")
	}
	return blob, nil
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":               true,
		"pipeline_enabled": s.pipeline != nil,
	})
}

func (s *Server) handleLexiconAnalyze(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Input string `json:"input"`
	}
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	writeJSON(w, http.StatusOK, s.lex.AnalyzeInput(req.Input))
}

func (s *Server) handleTimePredict(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		HourlyActivity []float64 `json:"hourly_activity"`
	}
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	matches := s.tm.PredictProfessionFromTime(req.HourlyActivity)
	if matches == nil {
		matches = []timepattern.Match{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (s *Server) handleResistance(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Price      float64 `json:"price"`
		Disposable float64 `json:"disposable_income"`
		AmortClass string  `json:"amort_class,omitempty"`
	}
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	burden := s.phys.MonthlyBurden(req.Price, req.AmortClass)
	writeJSON(w, http.StatusOK, map[string]any{
		"resistance":     econ.PurchaseResistance(req.Price, req.Disposable),
		"monthly_burden": burden,
		"amortized":      econ.PurchaseResistance(burden, req.Disposable),
	})
}

type contextRequest struct {
	AgeRange    string                      `json:"age_range"`
	RoleText    string                      `json:"role_text"`
	IncomeLabel string                      `json:"income_label,omitempty"`
	Evidence    *sociology.ObservedEvidence `json:"evidence,omitempty"`
	Overrides   *refdata.SociologyOverrides `json:"overrides,omitempty"`
}

func (s *Server) handleSociologyContext(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req contextRequest
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ctx := s.soc.Context(req.AgeRange, req.RoleText, req.IncomeLabel, req.Evidence, req.Overrides)
	writeJSON(w, http.StatusOK, ctx)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Draft   json.RawMessage `json:"draft"`
		Context *contextRequest `json:"context,omitempty"`
	}
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	var soc *sociology.Context
	if req.Context != nil {
		ctx := s.soc.Context(req.Context.AgeRange, req.Context.RoleText, req.Context.IncomeLabel, req.Context.Evidence, req.Context.Overrides)
		soc = &ctx
	}
	// The normalizer never fails; malformed drafts come back as a repaired
	// empty record.
	rec := persona.SanitizeAndNormalizeJSON(req.Draft, soc)
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	if s.pipeline == nil {
		writeError(w, http.StatusServiceUnavailable, "persona build pipeline is not configured")
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req personagen.RequestEnvelope
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), buildTimeout)
	defer cancel()
	result, err := s.pipeline.Run(ctx, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, personagen.BuildResponse(result))
}
