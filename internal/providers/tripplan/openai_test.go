package tripplan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	err := json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	require.NoError(t, err)
}

func TestOpenAIPlannerParsesPlan(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		chatReply(t, w, `{
			"destination": "Lisbon, Portugal",
			"duration": "4 days",
			"itinerary": [{"day": 1, "title": "Alfama walk", "activities": ["tram 28"]}]
		}`)
	})

	planner, err := NewOpenAIPlanner(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	plan, err := planner.Plan(context.Background(), Request{Destination: "lisbon"})
	require.NoError(t, err)
	require.Equal(t, "Lisbon, Portugal", plan.Destination)
	require.Len(t, plan.Itinerary, 1)
}

func TestOpenAIPlannerFallsBackOnServerError(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	var reason string
	planner, err := NewOpenAIPlanner(OpenAIOptions{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		OnFallback: func(r string, _ error) { reason = r },
	})
	require.NoError(t, err)

	plan, err := planner.Plan(context.Background(), Request{Destination: "lisbon"})
	require.NoError(t, err)
	require.Equal(t, "http_502", reason)
	require.Equal(t, "Lisbon", plan.Destination)
}

func TestOpenAIPlannerFallsBackOnGarbagePayload(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, "certainly! here is your trip plan:")
	})

	var reason string
	planner, err := NewOpenAIPlanner(OpenAIOptions{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		OnFallback: func(r string, _ error) { reason = r },
	})
	require.NoError(t, err)

	plan, err := planner.Plan(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, "parse_payload", reason)
	require.Equal(t, "Tokyo, Japan", plan.Destination)
}

func TestOpenAIPlannerFallsBackOnIncompletePlan(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, `{"destination": "Lisbon"}`)
	})

	var reason string
	planner, err := NewOpenAIPlanner(OpenAIOptions{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		OnFallback: func(r string, _ error) { reason = r },
	})
	require.NoError(t, err)

	_, err = planner.Plan(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, "incomplete_payload", reason)
}

func TestOpenAIPlannerRequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIPlanner(OpenAIOptions{})
	require.Error(t, err)
}
