package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diva3322/SSBuy-web/internal/requestctx"
)

func TestWriteErrorEnvelope(t *testing.T) {
	ctx := requestctx.WithTrace(context.Background(), requestctx.TraceInfo{TraceID: "trace-1"})
	rec := httptest.NewRecorder()

	WriteError(ctx, rec, NewError("catalog_unavailable", "載入遊戲列表失敗，請稍後再試。\n", http.StatusServiceUnavailable).
		WithDetails(map[string]any{"fallback": true}))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "catalog_unavailable", body["error"])
	assert.Equal(t, "載入遊戲列表失敗，請稍後再試。", body["message"])
	assert.Equal(t, float64(http.StatusServiceUnavailable), body["status"])
	assert.Equal(t, "trace-1", body["trace_id"])
	assert.Equal(t, true, body["fallback"])
}

func TestNewErrorDefaultsStatus(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, NewError("x", "y", 0).Status)
}

func TestWriteJSONKeepsHTML(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, 0, map[string]string{"html": "<p>a & b</p>"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p>a & b</p>")
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var v struct {
		Direction int `json:"direction"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"direction":1,"speed":2}`))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"direction":-1}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, -1, v.Direction)
}
