package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"travelmate/internal/adapter/repo"
	"travelmate/internal/http/handlers"
	"travelmate/internal/http/httpapi"
	"travelmate/internal/ledger"
	"travelmate/internal/providers/tripplan"
)

type testEnv struct {
	router    http.Handler
	store     *repo.MemoryStore
	scheduler *ledger.ManualScheduler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repo.NewMemoryStore()
	scheduler := &ledger.ManualScheduler{}
	svc := ledger.NewService(store, store, store, ledger.Config{
		Scheduler:    scheduler,
		BlockNumbers: func() int64 { return 15_234_567 },
	})
	t.Cleanup(svc.Close)

	logger := zerolog.Nop()
	app := handlers.NewApp(svc, tripplan.StaticPlanner{}, logger)
	router := httpapi.NewRouter(app, httpapi.Options{Logger: logger})
	return &testEnv{router: router, store: store, scheduler: scheduler}
}

func (e *testEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) postWithHeaders(t *testing.T, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}
