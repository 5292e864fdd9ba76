package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samuel-girma/site-diary/internal/llm"
)

// ExtractRecord implements llm.RecordExtractor against the Gemini
// generateContent endpoint. One prompt, one request, no streaming and no
// retries; any model or parse failure yields a nil record and a logged
// diagnostic — the caller checks for absence rather than catching errors.
func (c *Client) ExtractRecord(ctx context.Context, rawText string) (llm.RawRecord, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(rawText),
	)

	prompt := llm.BuildExtractionPrompt(rawText)
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature": c.cfg.Temperature,
		},
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("gemini request: %w", err)
	}

	var gc struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &gc); err != nil {
		c.logger.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("decode gemini response: %w", err)
	}
	if len(gc.Candidates) == 0 || len(gc.Candidates[0].Content.Parts) == 0 {
		c.logger.Error("llm.extract.no_candidates",
			"req_id", rid, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("no candidates in gemini response")
	}

	var content strings.Builder
	for _, part := range gc.Candidates[0].Content.Parts {
		content.WriteString(part.Text)
	}
	responseText := strings.TrimSpace(content.String())

	rec, err := llm.DecodeResponse(responseText)
	if err != nil {
		c.logger.Error("llm.extract.parse_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, []byte(responseText), fmt.Errorf("parse gemini response: %w", err)
	}

	// Advisory shape check; a mismatch is a diagnostic, never a discard.
	if doc, err := json.Marshal(rec); err == nil {
		if vErr := llm.ValidateJSONAgainstSchema(llm.BuildDiaryJSONSchema(), doc); vErr != nil {
			c.logger.Warn("llm.extract.schema_mismatch", "req_id", rid, "error", vErr)
		}
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"fields", len(rec),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, []byte(responseText), nil
}
