package personagen

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type scriptedCaller struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (s *scriptedCaller) GenerateJSON(_ context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, prompt)
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	resp := ""
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	return resp, err
}

func TestExecutorStripsCodeFences(t *testing.T) {
	caller := &scriptedCaller{responses: []string{"```json\n{\"ok\": true}\n```"}}
	exec := NewStageExecutor(caller)
	out := map[string]any{}
	m, err := exec.Run(context.Background(), "draft", "p", &out, func() error { return nil })
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if m.Attempts != 1 || out["ok"] != true {
		t.Fatalf("fenced JSON not accepted: %+v %v", m, out)
	}
}

func TestExecutorRetriesInvalidJSONWithFeedback(t *testing.T) {
	caller := &scriptedCaller{responses: []string{"not json", "{\"ok\": 1}"}}
	exec := NewStageExecutor(caller)
	out := map[string]any{}
	m, err := exec.Run(context.Background(), "draft", "p", &out, func() error { return nil })
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if m.Attempts != 2 || m.ContentRetries != 1 {
		t.Fatalf("metrics: %+v", m)
	}
	if !strings.Contains(caller.prompts[1], "was not valid JSON") {
		t.Fatalf("second prompt missing feedback: %q", caller.prompts[1])
	}
}

func TestExecutorRetriesValidationFailure(t *testing.T) {
	caller := &scriptedCaller{responses: []string{"{}", "{}", "{}"}}
	exec := NewStageExecutor(caller)
	out := map[string]any{}
	_, err := exec.Run(context.Background(), "draft", "p", &out, func() error { return errors.New("personality object missing") })
	if err == nil || !strings.Contains(err.Error(), "failed validation") {
		t.Fatalf("expected validation failure after retries, got %v", err)
	}
	if caller.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", caller.calls)
	}
}

func TestExecutorDoesNotRetryClientErrors(t *testing.T) {
	caller := &scriptedCaller{errs: []error{errors.New("status code: 401 unauthorized")}}
	exec := NewStageExecutor(caller)
	out := map[string]any{}
	_, err := exec.Run(context.Background(), "draft", "p", &out, func() error { return nil })
	if err == nil {
		t.Fatal("expected transport failure")
	}
	if caller.calls != 1 {
		t.Fatalf("client errors must not retry, got %d calls", caller.calls)
	}
}

func TestRetryableTransportClassification(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{errors.New("status code: 429 too many requests"), true},
		{errors.New("status code: 500 internal"), true},
		{errors.New("status code: 404 not found"), false},
		{context.DeadlineExceeded, true},
		{errors.New("connection reset by peer"), true},
	}
	for _, c := range cases {
		if got := isRetryableTransport(c.err); got != c.want {
			t.Fatalf("isRetryableTransport(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestValidateDraftRequiresSkeleton(t *testing.T) {
	good := map[string]any{
		"personality":        map[string]any{"risk_tolerance": map[string]any{"base_score": 50}},
		"behavioral_pattern": map[string]any{},
		"interaction_style":  map[string]any{"tone": "cynical"},
	}
	if err := validateDraft(good); err != nil {
		t.Fatalf("good draft rejected: %v", err)
	}
	if err := validateDraft(map[string]any{}); err == nil {
		t.Fatal("empty draft accepted")
	}
	noTone := map[string]any{
		"personality":        map[string]any{"x": map[string]any{}},
		"behavioral_pattern": map[string]any{},
		"interaction_style":  map[string]any{},
	}
	if err := validateDraft(noTone); err == nil {
		t.Fatal("toneless draft accepted")
	}
}
