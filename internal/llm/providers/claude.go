package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/logging"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// ClaudeProvider implements the structured parser using Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// ParseJobFields sends posting text to Claude and decodes the response into
// the closed ParsedJobFields schema.
func (cp *ClaudeProvider) ParseJobFields(ctx context.Context, text string, hints models.ParseHints) (*models.ParsedJobFields, error) {
	startTime := time.Now()

	cp.logger.Info("Starting structured parse", map[string]interface{}{
		"url":         hints.URL,
		"text_length": len(text),
		"provider":    "claude",
	})

	// Truncate to fit token limits. Rough estimation: 3 chars per token.
	maxContentLength := cp.config.LLM.MaxTokens * 3
	if len(text) > maxContentLength {
		text = text[:maxContentLength] + "..."
		cp.logger.Debug("Posting text truncated to fit token limits", map[string]interface{}{
			"url": hints.URL,
		})
	}

	prompt := buildParsePrompt(text, hints)

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cp.config.LLM.Model),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: systemInstruction},
		},
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}

	fields, err := decodeParsedFields(response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Claude response: %w", err)
	}

	cp.logger.Info("Structured parse completed", map[string]interface{}{
		"url":             hints.URL,
		"processing_time": time.Since(startTime).String(),
		"provider":        "claude",
	})

	return fields, nil
}

const systemInstruction = "You extract structured job posting fields from messy text. " +
	"Be conservative: if a field is unknown, set it to null. Return ONLY valid JSON, no additional text."

// buildParsePrompt creates the prompt describing the closed schema
func buildParsePrompt(text string, hints models.ParseHints) string {
	var b strings.Builder

	b.WriteString(`Extract job fields from the posting text below and return a single JSON object with exactly these keys (no others):

{
  "company": "string or null - the hiring company",
  "title": "string or null - the job title",
  "location": "string or null - city/state/country or 'Remote'",
  "jobType": "string or null - Full-time/Part-time/Contract/Intern",
  "workMode": "string or null - On-site/Hybrid/Remote",
  "salaryMin": "number or null",
  "salaryMax": "number or null",
  "salaryCurrency": "string or null - e.g. USD, EUR",
  "salaryPeriod": "string or null - hour/month/year",
  "seniority": "string or null - entry/mid/senior",
  "descriptionSummary": "string or null - 3-6 line summary",
  "keyRequirements": ["array of strings, [] if none found"],
  "keyResponsibilities": ["array of strings, [] if none found"],
  "confidence": {
    "company": "number 0-1",
    "title": "number 0-1",
    "location": "number 0-1",
    "salary": "number 0-1"
  }
}

Every key must be present. Unknown values are null, never guessed. The confidence object must contain all four numeric fields.
`)

	if hints.URL != "" {
		fmt.Fprintf(&b, "\nURL: %s", hints.URL)
	}
	if hints.PageTitle != "" {
		fmt.Fprintf(&b, "\nPage Title: %s", hints.PageTitle)
	}

	b.WriteString("\n\nPOSTING TEXT:\n")
	b.WriteString(text)

	return b.String()
}

// decodeParsedFields decodes and defensively validates the model output.
// The schema is closed: unknown keys are rejected and a missing confidence
// object fails the parse, so downstream code never sees a partial shape.
func decodeParsedFields(response *anthropic.Message) (*models.ParsedJobFields, error) {
	if len(response.Content) == 0 {
		return nil, fmt.Errorf("empty response from Claude")
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		responseText = textContent.Text
		break
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in Claude response")
	}

	return decodeFieldsJSON(responseText)
}

// decodeFieldsJSON strips markdown fences and decodes the closed schema.
func decodeFieldsJSON(responseText string) (*models.ParsedJobFields, error) {
	// Remove markdown code fences if present
	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	}

	var fields models.ParsedJobFields
	dec := json.NewDecoder(bytes.NewReader([]byte(responseText)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("schema violation in model output: %w", err)
	}

	if err := fields.Normalize(); err != nil {
		return nil, err
	}

	return &fields, nil
}

// IsHealthy checks if the Claude provider is healthy and available
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cp.config.LLM.Model),
		MaxTokens: 16,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}

	return nil
}

// GetProviderName returns the name of the LLM provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
