package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemPing(t *testing.T) {
	engine := newTestRouter(t, NewSystemHandler(nil, "shipkaro-backend", "test"))

	w := doJSON(t, engine, http.MethodGet, "/api/v1/system/ping", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decodeResponse(t, w))
	assert.Equal(t, "pong", data["message"])
}

func TestSystemInfo(t *testing.T) {
	engine := newTestRouter(t, NewSystemHandler(nil, "shipkaro-backend", "test"))

	w := doJSON(t, engine, http.MethodGet, "/api/v1/system/info", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decodeResponse(t, w))
	assert.Equal(t, "shipkaro-backend", data["name"])
	assert.Equal(t, "test", data["environment"])
}

func TestSystemHealth_NoDatabaseConfigured(t *testing.T) {
	engine := newTestRouter(t, NewSystemHandler(nil, "shipkaro-backend", "test"))

	w := doJSON(t, engine, http.MethodGet, "/api/v1/system/health", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decodeResponse(t, w))
	assert.Equal(t, "healthy", data["status"])
}
