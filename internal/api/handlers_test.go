package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasalt-intel/webintel/internal/api"
	"github.com/seasalt-intel/webintel/internal/database"
	"github.com/seasalt-intel/webintel/internal/domain"
	"github.com/seasalt-intel/webintel/internal/logger"
)

type fakeRunner struct {
	lastFast bool
}

func (f *fakeRunner) Run(_ context.Context, fast bool) (*domain.SyncSummary, error) {
	f.lastFast = fast
	return &domain.SyncSummary{Status: "complete", RunID: "run-1", TotalSites: 2}, nil
}

func (f *fakeRunner) ScanOne(_ context.Context, code string, fast bool) (*domain.SiteReport, error) {
	f.lastFast = fast
	if code != "SS" {
		return nil, database.ErrNotFound
	}
	return &domain.SiteReport{Code: code, SiteScore: 55, Saved: true}, nil
}

func (f *fakeRunner) Inspect(_ context.Context, host string) *domain.InspectReport {
	return &domain.InspectReport{Site: host, Reachable: true}
}

func (f *fakeRunner) Sites() []domain.SiteTarget {
	return []domain.SiteTarget{{Name: "Our Store", Code: "SS"}}
}

type fakeReader struct{}

func (fakeReader) GetByCode(_ context.Context, code string) (*domain.IntelRecord, error) {
	if code != "SS" {
		return nil, database.ErrNotFound
	}
	return &domain.IntelRecord{Code: code, SiteScore: 55}, nil
}

func (fakeReader) ListResults(context.Context) ([]domain.IntelRecord, error) {
	return []domain.IntelRecord{{Code: "SS"}, {Code: "RV"}}, nil
}

func newTestRouter() (*fakeRunner, http.Handler) {
	runner := &fakeRunner{}
	handler := api.NewHandler(runner, fakeReader{}, logger.NewNoop())
	return runner, api.SetupRouter(handler, logger.NewNoop())
}

func do(router http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()

	_, router := newTestRouter()
	rec := do(router, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSync(t *testing.T) {
	t.Parallel()

	runner, router := newTestRouter()
	rec := do(router, http.MethodPost, "/api/v1/sync?fast=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, runner.lastFast)

	var summary domain.SyncSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "complete", summary.Status)
	assert.Equal(t, 2, summary.TotalSites)
}

func TestScan(t *testing.T) {
	t.Parallel()

	_, router := newTestRouter()

	rec := do(router, http.MethodPost, "/api/v1/scan/SS")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodPost, "/api/v1/scan/NOPE")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInspect(t *testing.T) {
	t.Parallel()

	_, router := newTestRouter()

	rec := do(router, http.MethodGet, "/api/v1/inspect?site=somewhere.example")
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.InspectReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "somewhere.example", report.Site)

	rec = do(router, http.MethodGet, "/api/v1/inspect")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSites(t *testing.T) {
	t.Parallel()

	_, router := newTestRouter()
	rec := do(router, http.MethodGet, "/api/v1/sites")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"SS"`)
}

func TestGetResult(t *testing.T) {
	t.Parallel()

	_, router := newTestRouter()

	rec := do(router, http.MethodGet, "/api/v1/results/SS")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/api/v1/results/NOPE")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListResults(t *testing.T) {
	t.Parallel()

	_, router := newTestRouter()
	rec := do(router, http.MethodGet, "/api/v1/results")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	_, router := newTestRouter()
	rec := do(router, http.MethodOptions, "/api/v1/sync")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}