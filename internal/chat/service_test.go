package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
)

func TestScriptedReplyQuotesMessage(t *testing.T) {
	svc := NewScriptedService()

	reply, err := svc.Reply(context.Background(), "Do you install solar panels?")
	require.NoError(t, err)
	assert.Equal(t, `Thanks for your message: "Do you install solar panels?". A JNG specialist will reply shortly.`, reply)
}

func TestScriptedReplyEmptyMessage(t *testing.T) {
	svc := NewScriptedService()

	for _, message := range []string{"", "   ", "\n\t"} {
		reply, err := svc.Reply(context.Background(), message)
		require.NoError(t, err)
		assert.Equal(t, "Please share how we can help.", reply)
	}
}

type stubCompleter struct {
	reply  string
	err    error
	called bool
	prompt string
	input  string
}

func (s *stubCompleter) Complete(_ context.Context, systemPrompt, userMessage string) (string, error) {
	s.called = true
	s.prompt = systemPrompt
	s.input = userMessage
	return s.reply, s.err
}

func TestAssistantReplyProxiesToCompleter(t *testing.T) {
	stub := &stubCompleter{reply: "We install 320W panels across Maputo."}
	svc, err := NewAssistantService(stub, "You are a helpful assistant.")
	require.NoError(t, err)

	reply, err := svc.Reply(context.Background(), "  Do you install panels?  ")
	require.NoError(t, err)
	assert.Equal(t, "We install 320W panels across Maputo.", reply)
	assert.Equal(t, "You are a helpful assistant.", stub.prompt)
	assert.Equal(t, "Do you install panels?", stub.input)
}

func TestAssistantReplyEmptyMessageSkipsUpstream(t *testing.T) {
	stub := &stubCompleter{}
	svc, err := NewAssistantService(stub, "You are a helpful assistant.")
	require.NoError(t, err)

	reply, err := svc.Reply(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Please share how we can help.", reply)
	assert.False(t, stub.called)
}

func TestAssistantReplyUpstreamFailure(t *testing.T) {
	stub := &stubCompleter{err: pkgerrors.New(pkgerrors.CodeDependency, "completion request failed")}
	svc, err := NewAssistantService(stub, "You are a helpful assistant.")
	require.NoError(t, err)

	_, err = svc.Reply(context.Background(), "hello")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}

func TestAssistantServiceRequiresDeps(t *testing.T) {
	if _, err := NewAssistantService(nil, "prompt"); err == nil {
		t.Fatal("expected error for nil completer")
	}
	if _, err := NewAssistantService(&stubCompleter{}, "  "); err == nil {
		t.Fatal("expected error for empty system prompt")
	}
}
