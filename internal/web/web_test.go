package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgallie/sdes/internal/metrics"
	"github.com/bgallie/sdes/internal/web"
)

func prepareTestServer(t *testing.T) (*httptest.Server, *metrics.Metrics) {
	t.Helper()
	gin.SetMode(gin.ReleaseMode)
	logger := zerolog.Nop()
	m := metrics.New()
	router, err := web.NewRouter(web.New(&logger, m))
	require.NoError(t, err)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, m
}

func postJSON(t *testing.T, ts *httptest.Server, path string, payload any) (int, map[string]string) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(body)) // nolint: noctx
	require.NoError(t, err)
	defer resp.Body.Close()
	var decoded map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestAPI_EncryptDecrypt(t *testing.T) {
	ts, m := prepareTestServer(t)

	status, resp := postJSON(t, ts, "/api/encrypt", map[string]string{"key": "1010000010", "block": "10111101"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "01110101", resp["result"])

	status, resp = postJSON(t, ts, "/api/decrypt", map[string]string{"key": "1010000010", "block": "01110101"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "10111101", resp["result"])

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CipherOperations.WithLabelValues("encrypt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CipherOperations.WithLabelValues("decrypt")))
}

func TestAPI_Keys(t *testing.T) {
	ts, _ := prepareTestServer(t)

	status, resp := postJSON(t, ts, "/api/keys", map[string]string{"key": "1010000010"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "10100100", resp["k1"])
	assert.Equal(t, "01000011", resp["k2"])

	status, resp = postJSON(t, ts, "/api/keys", map[string]string{"key": "101"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "invalid_length", resp["kind"])
}

func TestAPI_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		payload    map[string]string
		wantStatus int
		wantKind   string
	}{
		{
			"short plaintext",
			"/api/encrypt",
			map[string]string{"key": "1010000010", "block": "1011110"},
			http.StatusUnprocessableEntity,
			"invalid_length",
		},
		{
			"short key",
			"/api/encrypt",
			map[string]string{"key": "101000001", "block": "10111101"},
			http.StatusUnprocessableEntity,
			"invalid_length",
		},
		{
			"non-binary plaintext",
			"/api/encrypt",
			map[string]string{"key": "1010000010", "block": "1011110X"},
			http.StatusBadRequest,
			"invalid_request",
		},
		{
			"missing key",
			"/api/decrypt",
			map[string]string{"block": "10111101"},
			http.StatusBadRequest,
			"invalid_request",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := prepareTestServer(t)
			status, resp := postJSON(t, ts, tt.path, tt.payload)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantKind, resp["kind"])
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestForm_Show(t *testing.T) {
	ts, _ := prepareTestServer(t)

	resp, err := http.Get(ts.URL + "/") // nolint: noctx
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `name="original_key"`)
	assert.Contains(t, string(body), `name="plaintext"`)
	assert.NotContains(t, string(body), "Results:")
}

func TestForm_Submit(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		plaintext  string
		wantStatus int
		wantBody   []string
	}{
		{
			"valid input",
			"1010000010",
			"10111101",
			http.StatusOK,
			[]string{`<span id="ciphertext">01110101</span>`, `<span id="decrypted">10111101</span>`},
		},
		{
			"short plaintext",
			"1010000010",
			"1011110",
			http.StatusBadRequest,
			[]string{"plaintext: invalid length: must be exactly 8 bits, got 7"},
		},
		{
			"non-binary plaintext",
			"1010000010",
			"1011110X",
			http.StatusBadRequest,
			[]string{"plaintext: invalid character"},
		},
		{
			"short key",
			"101000001",
			"10111101",
			http.StatusBadRequest,
			[]string{"key: invalid length: must be exactly 10 bits, got 9"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := prepareTestServer(t)
			form := url.Values{"original_key": {tt.key}, "plaintext": {tt.plaintext}}
			resp, err := http.Post( // nolint: noctx
				ts.URL+"/", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()),
			)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			for _, want := range tt.wantBody {
				assert.Contains(t, string(body), want)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	ts, _ := prepareTestServer(t)
	resp, err := http.Get(ts.URL + "/status") // nolint: noctx
	require.NoError(t, err)
	defer resp.Body.Close()
	var status map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dev", status["BuildVersion"])
}

func TestMetrics(t *testing.T) {
	ts, _ := prepareTestServer(t)
	postJSON(t, ts, "/api/encrypt", map[string]string{"key": "1010000010", "block": "10111101"})

	resp, err := http.Get(ts.URL + "/metrics") // nolint: noctx
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `sdes_cipher_operations_total{operation="encrypt"} 1`)
	assert.Contains(t, string(body), `sdes_http_requests_total{method="POST",path="/api/encrypt",status="200"} 1`)
}
