package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Babyaovo/Yaouo-sub000/internal/model"
)

// TestOpenAIProvider_Complete verifies request construction and response
// parsing against an httptest server standing in for the completion endpoint.
func TestOpenAIProvider_Complete(t *testing.T) {
	var (
		capturedMethod, capturedPath, capturedAuth string
		capturedBody                               chatCompletionBody
		calls                                      int
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		capturedMethod = r.Method
		capturedPath = r.URL.Path
		capturedAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&capturedBody))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi[SPLIT]there"}}]}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(server.Client())

	text, err := provider.Complete(context.Background(), &CompletionRequest{
		Credentials: Credentials{BaseURL: server.URL + "/v1/", APIKey: "sk-test"},
		Model:       "gpt-test",
		Messages:    []Message{{Role: "system", Content: "sys"}, {Role: "user", Content: "hello"}},
		Temperature: 0.7,
	})

	require.NoError(t, err)
	assert.Equal(t, "Hi[SPLIT]there", text)
	assert.Equal(t, 1, calls)
	assert.Equal(t, http.MethodPost, capturedMethod)
	assert.Equal(t, "/v1/chat/completions", capturedPath)
	assert.Equal(t, "Bearer sk-test", capturedAuth)
	assert.Equal(t, "gpt-test", capturedBody.Model)
	assert.Equal(t, 0.7, capturedBody.Temperature)
	assert.Len(t, capturedBody.Messages, 2)
}

func TestOpenAIProvider_CompleteFaults(t *testing.T) {
	ctx := context.Background()

	t.Run("missing credentials never reach the network", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		provider := NewOpenAIProvider(server.Client())
		_, err := provider.Complete(ctx, &CompletionRequest{Credentials: Credentials{BaseURL: server.URL}})

		require.Error(t, err)
		assert.True(t, IsConfigurationMissing(err))
		assert.False(t, called)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limited"}`))
		}))
		defer server.Close()

		provider := NewOpenAIProvider(server.Client())
		_, err := provider.Complete(ctx, &CompletionRequest{Credentials: Credentials{BaseURL: server.URL, APIKey: "k"}})

		var fault *Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, FaultStatus, fault.Kind)
		assert.Equal(t, http.StatusTooManyRequests, fault.StatusCode)
		assert.Equal(t, 1, calls, "no retry is performed")
	})

	t.Run("network error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		provider := NewOpenAIProvider(nil)
		_, err := provider.Complete(ctx, &CompletionRequest{Credentials: Credentials{BaseURL: url, APIKey: "k"}})

		var fault *Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, FaultNetwork, fault.Kind)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		provider := NewOpenAIProvider(server.Client())
		_, err := provider.Complete(ctx, &CompletionRequest{Credentials: Credentials{BaseURL: server.URL, APIKey: "k"}})

		var fault *Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, FaultDecode, fault.Kind)
	})
}

func TestOpenAIProvider_CompleteEmpty(t *testing.T) {
	bodies := []string{
		`{"choices":[]}`,
		`{"choices":[{"message":{}}]}`,
		`{}`,
	}
	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		provider := NewOpenAIProvider(server.Client())
		text, err := provider.Complete(context.Background(), &CompletionRequest{Credentials: Credentials{BaseURL: server.URL, APIKey: "k"}})

		assert.NoError(t, err, body)
		assert.Empty(t, text, body)
		server.Close()
	}
}

func TestOpenAIProvider_ListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"id":"gpt-a","owned_by":"me"},{"id":"gpt-b"}]}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider(server.Client())
	models, err := provider.ListModels(context.Background(), Credentials{BaseURL: server.URL, APIKey: "k"})

	require.NoError(t, err)
	require.Len(t, models.Data, 2)
	assert.Equal(t, "gpt-a", models.Data[0].ID)
	assert.Equal(t, "me", models.Data[0].OwnedBy)
}

func TestBuildMessages(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: "u1"},
		{Role: model.RoleAssistant, Content: "a1"},
		{Role: model.RoleUser, Content: "u2", Quote: &model.Quote{Role: model.RoleAssistant, Content: "a1"}},
		{Role: model.RoleAssistant, Content: "a2"},
		{Role: model.RoleUser, Content: "u3"},
	}

	t.Run("trims to the most recent rounds", func(t *testing.T) {
		msgs := BuildMessages("sys", history, 1)
		require.Len(t, msgs, 3)
		assert.Equal(t, Message{Role: "system", Content: "sys"}, msgs[0])
		assert.Equal(t, "a2", msgs[1].Content)
		assert.Equal(t, Message{Role: "user", Content: "u3"}, msgs[2])
	})

	t.Run("zero rounds sends everything", func(t *testing.T) {
		msgs := BuildMessages("sys", history, 0)
		assert.Len(t, msgs, 6)
	})

	t.Run("quotes are inlined", func(t *testing.T) {
		msgs := BuildMessages("sys", history, 10)
		assert.Equal(t, "[Quoting assistant: a1]\nu2", msgs[3].Content)
	})
}
