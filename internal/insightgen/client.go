package insightgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/meltforce/liftsight/internal/analytics"
)

// Client rewrites rule-generated insight text through an
// OpenAI-compatible chat completion endpoint. Callers construct one
// explicitly and pass it where needed; a nil or unconfigured client
// means rule text is served verbatim.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	log        *slog.Logger
}

// New creates a Client. httpClient may be nil, in which case a default
// with a 15-second timeout is used.
func New(httpClient *http.Client, baseURL, apiKey, model string, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		log:        log,
	}
}

// Enabled reports whether the client points at a real endpoint.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You rewrite short training observations into one friendly, " +
	"encouraging sentence for a workout app. Keep every number and muscle group " +
	"name from the input. Reply with the sentence only."

// Rephrase rewrites a single insight's text. The category steers tone.
func (c *Client) Rephrase(ctx context.Context, insight analytics.Insight) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Category: %s. Observation: %s", insight.Category, insight.Text)},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling completion endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion endpoint returned %d: %s", resp.StatusCode, respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("completion response is empty")
	}
	return text, nil
}

// RephraseAll rewrites each insight concurrently. Any failure keeps
// that insight's original rule text, so a slow or broken endpoint can
// degrade wording but never the response itself.
func (c *Client) RephraseAll(ctx context.Context, insights []analytics.Insight) []analytics.Insight {
	if !c.Enabled() || len(insights) == 0 {
		return insights
	}

	out := make([]analytics.Insight, len(insights))
	copy(out, insights)

	var wg sync.WaitGroup
	for i := range out {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text, err := c.Rephrase(ctx, out[i])
			if err != nil {
				if c.log != nil {
					c.log.Warn("insight rephrase failed, using rule text",
						"id", out[i].ID, "error", err)
				}
				return
			}
			out[i].Text = text
		}(i)
	}
	wg.Wait()
	return out
}
