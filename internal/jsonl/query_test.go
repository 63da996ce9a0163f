package jsonl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialstack/internal/model"
)

const smmFile = `{"id":"1001","name":"Instagram Followers","group":"Social","category":"Instagram","type":"Real Followers","price":"2.90","per":1000,"min":100,"max":500000,"cost":"1.20"}

{"id":"otp-x","name":"Any OTP","group":"Services","category":"Other","price":0.5,"countries":["USA"],"cost":"0.2"}
not json
{"id":"px-1","name":"Proxy","group":"ISP","category":"Static","region":"USA","price":"4.00","cost":"2.10"}
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoader_LoadAllInfersKinds(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "smm.jsonl", smmFile)
	writeFile(t, dir, "notes.txt", "ignored")

	got, err := NewLoader(dir).LoadAll(context.Background())
	require.NoError(t, err)

	require.Contains(t, got, "smm")
	require.Len(t, got, 1)
	items := got["smm"]
	require.Len(t, items, 3)

	assert.Equal(t, model.PricingRate, items[0].Kind)
	assert.Equal(t, "2.9", items[0].Price.String())
	assert.Equal(t, model.PricingRegional, items[1].Kind)
	assert.Equal(t, int64(1), items[1].Per)
	assert.Equal(t, model.PricingFlat, items[2].Kind)
}

func TestLoader_MissingDirIsEmpty(t *testing.T) {
	got, err := NewLoader(filepath.Join(t.TempDir(), "absent")).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = NewLoader("").LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetStatsHandler(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "smm.jsonl", smmFile)

	r := mux.NewRouter()
	RegisterRoutes(r, NewLoader(dir))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool        `json:"success"`
		Data    []FileStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []FileStats{{Catalog: "smm", File: "smm.jsonl", Items: 3, Skipped: 1}}, body.Data)
}
