package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-123",
			"object": "chat.completion",
			"model": "gpt-4.1-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"ok\": true}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 100, "completion_tokens": 50, "total_tokens": 150}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "gpt-4.1-mini",
		Messages: []Message{{Role: "user", Content: "hello"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", resp.Model)
	assert.Equal(t, `{"ok": true}`, resp.Content())
	assert.Equal(t, 150, resp.Usage.TotalTokens)
}

func TestCreateChatCompletionNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "chatcmpl-123", "choices": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	_, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "gpt-4.1-mini"})

	require.Error(t, err)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Contains(t, provErr.Error(), "no choices")
}

func TestCreateChatCompletionEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [{"index": 0, "message": {"role": "assistant", "content": ""}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	_, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "gpt-4.1-mini"})

	require.Error(t, err)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Contains(t, provErr.Error(), "empty")
}

func TestCreateChatCompletionHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	_, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "gpt-4.1-mini"})

	require.Error(t, err)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Contains(t, err.Error(), "OpenAI API call failed")
	assert.Contains(t, provErr.Unwrap().Error(), "status 429")
}

func TestCreateChatCompletionContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CreateChatCompletion(ctx, ChatCompletionRequest{Model: "gpt-4.1-mini"})

	require.Error(t, err)
	var provErr *ProviderError
	assert.ErrorAs(t, err, &provErr)
}
