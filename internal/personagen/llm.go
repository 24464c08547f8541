package personagen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const systemPrompt = "You are a consumer-behavior researcher drafting simulation personas for the Taiwan retail market. Ground every figure in the socio-economic context you are given. Respond with strict JSON only."

const maxStageAttempts = 3

type LLMCaller interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type AnthropicCaller struct {
	messages AnthropicMessager
	model    anthropic.Model
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

func NewAnthropicCallerFromEnv() (*AnthropicCaller, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	model := anthropic.ModelClaudeSonnet4_20250514
	if m := strings.TrimSpace(os.Getenv("PERSONA_LLM_MODEL")); m != "" {
		model = anthropic.Model(m)
	}
	return &AnthropicCaller{messages: newAnthropicClient(apiKey), model: model}, nil
}

func (a *AnthropicCaller) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	// Persona drafting wants texture, not determinism.
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       a.model,
		MaxTokens:   4096,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0.7),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

// StageExecutor wraps an LLM caller with the retry discipline every stage
// shares: transport failures back off and retry when transient, content
// failures (empty, unparseable, schema-invalid) re-prompt with feedback.
type StageExecutor struct {
	caller LLMCaller
}

func NewStageExecutor(caller LLMCaller) *StageExecutor {
	return &StageExecutor{caller: caller}
}

func (e *StageExecutor) Run(ctx context.Context, stageName, prompt string, out any, validate func() error) (StageAttemptMetrics, error) {
	metrics := StageAttemptMetrics{}
	feedback := ""
	for attempt := 1; attempt <= maxStageAttempts; attempt++ {
		metrics.Attempts = attempt
		fullPrompt := prompt + "\n\nRespond with only valid JSON matching the schema."
		if feedback != "" {
			fullPrompt += "\n\n" + feedback
		}

		raw, err := e.caller.GenerateJSON(ctx, fullPrompt)
		if err != nil {
			if isRetryableTransport(err) && attempt < maxStageAttempts {
				time.Sleep(backoffDelay(attempt))
				continue
			}
			return metrics, fmt.Errorf("%s transport failure: %w", stageName, err)
		}

		contentErr := func(msg string) bool {
			if attempt < maxStageAttempts {
				metrics.ContentRetries++
				feedback = msg
				return true
			}
			return false
		}

		raw = strings.TrimSpace(raw)
		if raw == "" {
			if contentErr("Your previous response was empty. Respond with valid JSON.") {
				continue
			}
			return metrics, fmt.Errorf("%s failed: empty response", stageName)
		}
		if err := json.Unmarshal([]byte(stripCodeFences(raw)), out); err != nil {
			if contentErr("Your previous response was not valid JSON. Respond with only valid JSON.") {
				continue
			}
			return metrics, fmt.Errorf("%s failed json parse: %w", stageName, err)
		}
		if err := validate(); err != nil {
			if contentErr(fmt.Sprintf("Your response failed validation: %s. Fix these issues.", err)) {
				continue
			}
			return metrics, fmt.Errorf("%s failed validation: %w", stageName, err)
		}
		return metrics, nil
	}
	return metrics, fmt.Errorf("%s failed after retries", stageName)
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// isRetryableTransport reports whether a caller error is worth another
// attempt: timeouts, rate limits, and server-side failures are; 4xx client
// errors are not.
func isRetryableTransport(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"):
		return true
	case strings.Contains(msg, "status code: 5") || strings.Contains(msg, "server error") || strings.Contains(msg, " 5"):
		return true
	case strings.Contains(msg, "status code: 4") || strings.Contains(msg, " 4"):
		return false
	default:
		return true
	}
}

func backoffDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 1 * time.Second
	}
	return 2 * time.Second
}
