package handlers

import (
	"compress/gzip"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func writeLogs(t *testing.T, dir, now string) {
	t.Helper()
	today := `{"level":"INFO","time":"` + now + `T10:00:00.000Z","message":"HTTP request"}
not json
{"level":"ERROR","time":"` + now + `T11:00:00.000Z","message":"Lead notification failed"}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.log"), []byte(today), 0o644))

	f, err := os.Create(filepath.Join(dir, "app-2026-03-09T23-59-59.000.log.gz"))
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(`{"level":"WARN","time":"2026-03-09T12:00:00.000Z","message":"Login failed"}` + "\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func newLogsHandler(t *testing.T) *AdminLogsHandler {
	t.Helper()
	dir := t.TempDir()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	writeLogs(t, dir, now.Format("2006-01-02"))
	h := NewAdminLogsHandler(dir)
	h.now = func() time.Time { return now }
	return h
}

func TestAdminLogs_ListDays(t *testing.T) {
	h := newLogsHandler(t)
	rec := httptest.NewRecorder()
	h.ListDays(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logs/days", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"2026-03-09", "2026-03-10"}, decodeBody(t, rec)["days"])
}

func TestAdminLogs_GetLogs(t *testing.T) {
	h := newLogsHandler(t)

	rec := httptest.NewRecorder()
	h.GetLogs(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logs?day=2026-03-10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["items"], 2)

	rec = httptest.NewRecorder()
	h.GetLogs(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logs?day=2026-03-10&level=error", nil))
	items := decodeBody(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Lead notification failed", items[0].(map[string]any)["message"])

	rec = httptest.NewRecorder()
	h.GetLogs(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logs?day=2026-03-09&q=login", nil))
	assert.Len(t, decodeBody(t, rec)["items"], 1)
}

func TestAdminLogs_BadOrMissingDay(t *testing.T) {
	h := newLogsHandler(t)

	rec := httptest.NewRecorder()
	h.GetLogs(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logs?day=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.GetLogs(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logs?day=2020-01-01", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@b.com", maskEmail("asha@b.com"))
	assert.Equal(t, "***@b.com", maskEmail("a@b.com"))
	assert.Equal(t, "***nobody", maskEmail("nobody"))
}

func TestClampAtoi(t *testing.T) {
	assert.Equal(t, 200, clampAtoi("", 200, 1, 1000))
	assert.Equal(t, 1000, clampAtoi("5000", 200, 1, 1000))
	assert.Equal(t, 1, clampAtoi("-2", 200, 1, 1000))
}
