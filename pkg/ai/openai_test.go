package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// chatCompletionServer answers the chat completion endpoint with a single
// choice carrying the supplied content.
func chatCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func newServerCompleter(t *testing.T, baseURL string) *OpenAICompleter {
	t.Helper()
	completer, err := NewOpenAICompleter(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: baseURL + "/v1",
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	return completer
}

func TestCompleteReturnsRawJSON(t *testing.T) {
	server := chatCompletionServer(t, `{"answer":"B"}`)
	defer server.Close()

	raw, err := newServerCompleter(t, server.URL).Complete(context.Background(), Prompt{System: "sys", User: "user"}, Options{})
	require.NoError(t, err)
	require.JSONEq(t, `{"answer":"B"}`, string(raw))
}

func TestCompleteNonJSONReplyIsMalformed(t *testing.T) {
	server := chatCompletionServer(t, "sorry, here is prose not JSON")
	defer server.Close()

	_, err := newServerCompleter(t, server.URL).Complete(context.Background(), Prompt{User: "user"}, Options{})

	var malformed *MalformedCompletionError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "sorry, here is prose not JSON", malformed.RawPrefix)
}

func TestCompleteMalformedPrefixTruncated(t *testing.T) {
	long := strings.Repeat("囉", 350)
	server := chatCompletionServer(t, long)
	defer server.Close()

	_, err := newServerCompleter(t, server.URL).Complete(context.Background(), Prompt{User: "user"}, Options{})

	var malformed *MalformedCompletionError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 200, len([]rune(malformed.RawPrefix)))
	require.Equal(t, strings.Repeat("囉", 200), malformed.RawPrefix)
}

func TestCompleteEmptyChoicesUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	_, err := newServerCompleter(t, server.URL).Complete(context.Background(), Prompt{User: "user"}, Options{})
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestCompleteBackendErrorUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newServerCompleter(t, server.URL).Complete(context.Background(), Prompt{User: "user"}, Options{})
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}
