// Package openai implements llm.Completer for OpenAI-compatible chat
// completion APIs. Groq speaks the same protocol under a different base URL,
// so it is served by this package as well.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/papercomputeco/researchpilot/pkg/llm"
)

const (
	// DefaultBaseURL is the OpenAI API root.
	DefaultBaseURL = "https://api.openai.com"

	// DefaultModel is used against DefaultBaseURL when no model is configured.
	DefaultModel = "gpt-4o-mini"

	// GroqBaseURL is Groq's OpenAI-compatible API root.
	GroqBaseURL = "https://api.groq.com/openai"

	// GroqModel is the default Groq model.
	GroqModel = "llama-3.3-70b-versatile"
)

// Config holds configuration for the OpenAI-compatible client.
type Config struct {
	// Name identifies the provider in errors (e.g. "openai", "groq").
	// Defaults to "openai".
	Name string

	// APIKey is sent as a bearer token. Required.
	APIKey string

	// Model to request. Defaults to DefaultModel.
	Model string

	// BaseURL is the API root without the /v1 path. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Client calls the /v1/chat/completions endpoint.
type Client struct {
	name       string
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// New creates a client. It fails with llm.ErrMissingCredential when no API
// key is configured.
func New(c Config) (*Client, error) {
	name := c.Name
	if name == "" {
		name = "openai"
	}

	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("%w: %s requires an API key", llm.ErrMissingCredential, name)
	}

	model := c.Model
	if model == "" {
		model = DefaultModel
	}

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		// Long generations on large models can take minutes.
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}

	return &Client{
		name:       name,
		apiKey:     c.APIKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// NewGroq creates a client pointed at Groq.
func NewGroq(apiKey, model, baseURL string) (*Client, error) {
	if model == "" {
		model = GroqModel
	}
	if baseURL == "" {
		baseURL = GroqBaseURL
	}
	return New(Config{
		Name:    "groq",
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
	})
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the system and user messages and returns the first choice.
func (c *Client) Complete(ctx context.Context, prompt, systemMessage string) (string, error) {
	if systemMessage == "" {
		systemMessage = llm.DefaultSystemMessage
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: prompt},
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", c.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &llm.ServiceError{Provider: c.name, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("%s error: %s", c.name, result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: %s returned no choices", llm.ErrEmptyCompletion, c.name)
	}

	return result.Choices[0].Message.Content, nil
}

var _ llm.Completer = (*Client)(nil)
