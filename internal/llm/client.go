package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 10 * 1024 * 1024

// LLMProvider defines the interface for talking to an OpenAI-compatible endpoint.
type LLMProvider interface {
	// Complete performs one chat completion and returns the reply text.
	// An empty string with a nil error means the response carried no content.
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
	ListModels(ctx context.Context, creds Credentials) (*ListModelsResponse, error)
}

// Credentials locate and authorize the remote endpoint.
type Credentials struct {
	BaseURL string
	APIKey  string
}

// Missing reports whether either credential is blank.
func (c Credentials) Missing() bool {
	return strings.TrimSpace(c.BaseURL) == "" || strings.TrimSpace(c.APIKey) == ""
}

// Message is one entry of the chat-completion messages array.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is everything needed for a single completion call.
type CompletionRequest struct {
	Credentials
	Model       string
	Messages    []Message
	Temperature float64
}

type chatCompletionBody struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Model describes one entry of the models listing.
type Model struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by,omitempty"`
}

// ListModelsResponse mirrors the OpenAI models listing.
type ListModelsResponse struct {
	Data []Model `json:"data"`
}

type openAIProvider struct {
	client *http.Client
}

// NewOpenAIProvider returns a provider backed by client. A nil client uses a
// plain http.Client without a timeout; a hung request stalls only its caller.
func NewOpenAIProvider(client *http.Client) LLMProvider {
	if client == nil {
		client = &http.Client{}
	}
	return &openAIProvider{client: client}
}

// Complete issues exactly one POST {baseUrl}/chat/completions. It never retries.
func (p *openAIProvider) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	if req.Missing() {
		return "", &Fault{Kind: FaultConfigurationMissing, Err: ErrMissingCredentials}
	}

	body, err := json.Marshal(chatCompletionBody{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", &Fault{Kind: FaultDecode, Err: fmt.Errorf("could not marshal request: %w", err)}
	}

	respBody, err := p.do(ctx, http.MethodPost, endpoint(req.BaseURL, "/chat/completions"), req.APIKey, body)
	if err != nil {
		return "", err
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", &Fault{Kind: FaultDecode, Err: fmt.Errorf("could not decode response: %w", err)}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil {
		return "", nil
	}
	return *resp.Choices[0].Message.Content, nil
}

// ListModels fetches GET {baseUrl}/models.
func (p *openAIProvider) ListModels(ctx context.Context, creds Credentials) (*ListModelsResponse, error) {
	if creds.Missing() {
		return nil, &Fault{Kind: FaultConfigurationMissing, Err: ErrMissingCredentials}
	}
	respBody, err := p.do(ctx, http.MethodGet, endpoint(creds.BaseURL, "/models"), creds.APIKey, nil)
	if err != nil {
		return nil, err
	}
	var models ListModelsResponse
	if err := json.Unmarshal(respBody, &models); err != nil {
		return nil, &Fault{Kind: FaultDecode, Err: fmt.Errorf("could not decode models: %w", err)}
	}
	return &models, nil
}

func (p *openAIProvider) do(ctx context.Context, method, url, apiKey string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &Fault{Kind: FaultNetwork, Err: fmt.Errorf("could not create http request: %w", err)}
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &Fault{Kind: FaultNetwork, Err: fmt.Errorf("http request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &Fault{Kind: FaultNetwork, Err: fmt.Errorf("could not read response body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Fault{
			Kind:       FaultStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("api returned non-2xx status: %s", truncate(string(respBody), 200)),
		}
	}
	return respBody, nil
}

func endpoint(baseURL, path string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + path
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
