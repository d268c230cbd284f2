package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

func serveSystem(t *testing.T, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	NewSystemHandler("wms-billing", "1.2.3").RegisterRoutes(engine.Group("/api/v1"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	return w, data
}

func TestSystemHandler_GetInfo(t *testing.T) {
	w, data := serveSystem(t, "/api/v1/system/info")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "wms-billing", data["name"])
	assert.Equal(t, "1.2.3", data["version"])
	assert.NotEmpty(t, data["go_version"])
	assert.NotEmpty(t, data["uptime"])

	startedAt, err := time.Parse(time.RFC3339, data["started_at"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), startedAt, time.Minute)
}

func TestSystemHandler_Ping(t *testing.T) {
	w, data := serveSystem(t, "/api/v1/system/ping")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", data["message"])

	_, err := time.Parse(time.RFC3339, data["timestamp"].(string))
	assert.NoError(t, err)
}
