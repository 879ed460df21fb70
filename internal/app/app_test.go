package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenantchat/backend/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppName:           "Tenant Chat",
		AppPort:           8000,
		BaseURL:           "http://localhost:8000",
		DatabasePath:      filepath.Join(t.TempDir(), "test.db"),
		LogLevel:          "DEBUG",
		RetrievalMode:     "remote",
		RetrievalURL:      "http://localhost:9999",
		GenerationTimeout: 30 * time.Second,
	}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, app)

	defer func() { require.NoError(t, app.DB.Close()) }()

	assert.NotNil(t, app.DB)
	assert.NotNil(t, app.Server)
	assert.Equal(t, ":8000", app.Server.Addr)
}

func TestNewApp_UnknownRetrievalMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.RetrievalMode = "carrier-pigeon"

	_, err := NewApp(cfg)
	require.Error(t, err)
}

func TestApp_Healthz(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)
	defer func() { require.NoError(t, app.DB.Close()) }()

	server := httptest.NewServer(app.Server.Handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestApp_DocumentIngestRejectedInRemoteMode(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)
	defer func() { require.NoError(t, app.DB.Close()) }()

	server := httptest.NewServer(app.Server.Handler)
	defer server.Close()

	body := strings.NewReader(`{"documentName": "faq.md", "content": "Open 9-5"}`)
	resp, err := http.Post(server.URL+"/api/v1/tenants/t1/documents", "application/json", body)
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestApp_ListModels(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)
	defer func() { require.NoError(t, app.DB.Close()) }()

	server := httptest.NewServer(app.Server.Handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/models")
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Providers []struct {
			Name string `json:"name"`
		} `json:"providers"`
		Defaults struct {
			Model string `json:"model"`
		} `json:"defaults"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Len(t, payload.Providers, 3)
	assert.Equal(t, "claude-3-7-sonnet-latest", payload.Defaults.Model)
}
