package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoyao-code/ir-remote/internal/api/middleware"
)

func (e *testEnv) do(method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestV1_GetState(t *testing.T) {
	env := newTestEnv(t, middleware.AuthConfig{}, nil)

	w := env.do(http.MethodGet, "/api/v1/state", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	desired := body["desired"].(map[string]any)
	assert.Equal(t, float64(16), desired["temperature"])
	assert.Equal(t, "AUTO", desired["fan_mode"])
	assert.Equal(t, "16.0", body["desired_temperature"])

	frame := body["frame"].(map[string]any)
	assert.Equal(t, float64(0xE6), frame["checksum"])
}

func TestV1_PutStateAndSend(t *testing.T) {
	env := newTestEnv(t, middleware.AuthConfig{}, nil)

	w := env.do(http.MethodPut, "/api/v1/state", `{"power":true,"temperature":24.5,"fan_mode":"POWERFULL"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, env.recorder.Transmissions())

	desired := env.ctrl.Desired()
	assert.True(t, desired.Power)
	assert.Equal(t, 24, desired.Temperature)
	assert.True(t, desired.Half)

	w = env.do(http.MethodPost, "/api/v1/send", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tx := decodeJSON(t, w)["transmission"].(map[string]any)
	assert.NotEmpty(t, tx["id"])
	assert.Equal(t, float64(440), tx["pulses"])
	assert.Len(t, env.recorder.Transmissions(), 1)

	w = env.do(http.MethodGet, "/api/v1/frame", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	frame := decodeJSON(t, w)
	assert.Equal(t, "0xE7", frame["checksum"])
	assert.Equal(t, true, frame["valid"])
	assert.Equal(t, "0220e00400000006", frame["header"])
}

func TestV1_PutStateWithSend(t *testing.T) {
	env := newTestEnv(t, middleware.AuthConfig{}, nil)

	w := env.do(http.MethodPut, "/api/v1/state", `{"power":false,"fan_mode":"QUIET","send":true}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.recorder.Transmissions(), 1)

	tx := decodeJSON(t, w)["transmission"].(map[string]any)
	state := tx["state"].(map[string]any)
	assert.Equal(t, "AUTO", state["fan_mode"])
}

func TestV1_PutStateRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "温度过高", body: `{"temperature":31}`},
		{name: "30.5", body: `{"temperature":30.5}`},
		{name: "温度过低", body: `{"temperature":10}`},
		{name: "未知模式", body: `{"fan_mode":"TURBO"}`},
		{name: "非法 JSON", body: `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, middleware.AuthConfig{}, nil)
			before := env.ctrl.Desired()
			w := env.do(http.MethodPut, "/api/v1/state", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, before, env.ctrl.Desired())
		})
	}
}

func TestV1_Transmissions(t *testing.T) {
	env := newTestEnv(t, middleware.AuthConfig{}, nil)
	for n := 0; n < 3; n++ {
		require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/v1/send", "", nil).Code)
	}

	w := env.do(http.MethodGet, "/api/v1/transmissions?limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeJSON(t, w)["transmissions"].([]any)
	assert.Len(t, list, 2)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/v1/transmissions?limit=x", "", nil).Code)
}

func TestV1_Auth(t *testing.T) {
	env := newTestEnv(t, middleware.AuthConfig{Enabled: true, APIKeys: []string{"sk_test_abcdefgh"}}, nil)

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/v1/state", "", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/v1/state", "", map[string]string{"X-API-Key": "sk_test_abcdefgh"}).Code)
	// 文本接口保持无需认证
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/temperature", "", nil).Code)
}
