package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("  ")
	require.Error(t, err)
}

func TestCompleteSendsPromptAndReturnsReply(t *testing.T) {
	var captured completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":" We install 320W panels. "}}]}`))
	}))
	defer server.Close()

	client, err := NewClient("sk-test", WithBaseURL(server.URL), WithModel("gpt-4o-mini"))
	require.NoError(t, err)

	reply, err := client.Complete(context.Background(), "You are a helpful assistant.", "Do you install panels?")
	require.NoError(t, err)
	assert.Equal(t, "We install 320W panels.", reply)

	assert.Equal(t, "gpt-4o-mini", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, defaultMaxTokens, captured.MaxTokens)
}

func TestCompleteUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient("sk-test", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "system", "hello")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client, err := NewClient("sk-test", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "system", "hello")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}
