// Package personagen drives the end-to-end persona build: sociology grounding,
// LLM draft generation, time-pattern cross-checking, and normalization into a
// schema-valid persona record.
package personagen

import (
	"time"

	"github.com/joelkehle/persona-engine/internal/persona"
	"github.com/joelkehle/persona-engine/internal/refdata"
	"github.com/joelkehle/persona-engine/internal/sociology"
	"github.com/joelkehle/persona-engine/internal/timepattern"
)

const (
	CapabilityPersonaBuild = "persona-build"
	MaxRoleTextChars       = 2000
)

type RequestEnvelope struct {
	PersonaID      string                       `json:"persona_id,omitempty"`
	Source         string                       `json:"source"`
	Shadow         string                       `json:"shadow,omitempty"`
	AgeRange       string                       `json:"age_range"`
	RoleText       string                       `json:"role_text"`
	IncomeLabel    string                       `json:"income_label,omitempty"`
	HourlyActivity []float64                    `json:"hourly_activity,omitempty"`
	Evidence       *sociology.ObservedEvidence  `json:"evidence,omitempty"`
	Overrides      *refdata.SociologyOverrides  `json:"overrides,omitempty"`
}

type StageAttemptMetrics struct {
	Attempts       int
	ContentRetries int
}

type PipelineMetadata struct {
	StagesExecuted       []string       `json:"stages_executed"`
	TotalLLMCalls        int            `json:"total_llm_calls"`
	TotalRetries         int            `json:"total_retries"`
	StageAttempts        map[string]int `json:"stage_attempts,omitempty"`
	StageContentRetries  map[string]int `json:"stage_content_retries,omitempty"`
	Degraded             bool           `json:"degraded"`
	DegradedReason       string         `json:"degraded_reason,omitempty"`
	TimeProfileID        string         `json:"time_profile_id,omitempty"`
	TimeProfileAgreement *bool          `json:"time_profile_agreement,omitempty"`
	InputTruncated       bool           `json:"input_truncated"`
	StartedAt            time.Time      `json:"started_at"`
	CompletedAt          time.Time      `json:"completed_at"`
}

type PipelineResult struct {
	Request     RequestEnvelope
	Sociology   sociology.Context
	TimeMatches []timepattern.Match
	Persona     persona.Record
	Attempts    map[string]StageAttemptMetrics
	Metadata    PipelineMetadata
}

type ResponseEnvelope struct {
	PersonaID        string           `json:"persona_id"`
	Persona          persona.Record   `json:"persona"`
	Narrative        string           `json:"narrative"`
	ReportMarkdown   string           `json:"report_markdown"`
	PipelineMetadata PipelineMetadata `json:"pipeline_metadata"`
}
