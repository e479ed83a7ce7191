package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/luhnify/internal/config"
	luhnHTTP "github.com/allisson/luhnify/internal/luhn/http"
	"github.com/allisson/luhnify/internal/luhn/service"
	"github.com/allisson/luhnify/internal/luhn/usecase"
	"github.com/allisson/luhnify/internal/metrics"
)

// TestMain sets Gin to test mode and checks for leaked goroutines.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestServer() *Server {
	return NewServer("localhost", 0, discardLogger())
}

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:                "error",
		RateLimitEnabled:        false,
		RateLimitRequestsPerSec: 10,
		RateLimitBurst:          20,
		MetricsNamespace:        "luhnify_test",
	}
}

// setupTestServer wires a server around a seeded generator.
func setupTestServer(t *testing.T, cfg *config.Config, provider *metrics.Provider) *Server {
	t.Helper()

	logger := discardLogger()
	generator := service.NewPatternGenerator(service.NewSeededSource(42))
	handler := luhnHTTP.NewGeneratorHandler(usecase.NewGeneratorUseCase(generator, logger), logger)

	server := NewServer("localhost", 0, logger)
	server.SetupRouter(cfg, handler, provider)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})

	return server
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler_NotReadyBeforeSetup(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

	server.readinessHandler(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "not_ready", response["status"])

	components, ok := response["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "error", components["generator"])
}

func TestReadinessHandler_ReadyAfterSetupUntilShutdown(t *testing.T) {
	server := setupTestServer(t, testConfig(), nil)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, server.Shutdown(context.Background()))

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test?x=1", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "/test", entry["path"])
	assert.Equal(t, "x=1", entry["query"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, w.Header().Get("X-Request-Id"), entry["request_id"])
}

func TestCustomLoggerMiddleware_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_GenerateEndpoint(t *testing.T) {
	server := setupTestServer(t, testConfig(), nil)

	w := postJSON(t, server.GetHandler(), "/v1/luhn/generate", map[string]any{
		"template":    "4532xxxxxxxxxxxx",
		"batch_count": 5,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Numbers   []string `json:"numbers"`
		Count     int      `json:"count"`
		Requested int      `json:"requested"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 5, response.Count)
	assert.Equal(t, 5, response.Requested)
	for _, number := range response.Numbers {
		assert.True(t, service.IsValid(number), number)
		assert.Equal(t, "4532", number[:4])
	}
}

func TestRouter_GenerateEndpoint_InvalidTemplate(t *testing.T) {
	server := setupTestServer(t, testConfig(), nil)

	w := postJSON(t, server.GetHandler(), "/v1/luhn/generate", map[string]any{"template": "45ab"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_input")
}

func TestRouter_DownloadEndpoint(t *testing.T) {
	server := setupTestServer(t, testConfig(), nil)

	w := postJSON(t, server.GetHandler(), "/v1/luhn/generate/download", map[string]any{
		"template":    "7992739871x",
		"batch_count": 3,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="generated-numbers.txt"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "79927398713", w.Body.String())
}

func TestRouter_ValidateEndpoint(t *testing.T) {
	server := setupTestServer(t, testConfig(), nil)

	w := postJSON(t, server.GetHandler(), "/v1/luhn/validate", map[string]any{"number": "79927398710"})

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["valid"])
	assert.Equal(t, "3", response["check_digit"])
}

func TestRouter_RateLimitAppliesToGeneratorRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequestsPerSec = 0.001
	cfg.RateLimitBurst = 1

	server := setupTestServer(t, cfg, nil)

	w := postJSON(t, server.GetHandler(), "/v1/luhn/validate", map[string]any{"number": "0"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, server.GetHandler(), "/v1/luhn/validate", map[string]any{"number": "0"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Health checks are never limited
	for i := 0; i < 3; i++ {
		w = httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRouter_RecordsHTTPMetrics(t *testing.T) {
	provider, err := metrics.NewProvider("luhnify_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	server := setupTestServer(t, testConfig(), provider)

	w := postJSON(t, server.GetHandler(), "/v1/luhn/validate", map[string]any{"number": "79927398713"})
	require.Equal(t, http.StatusOK, w.Code)

	scrape := httptest.NewRecorder()
	provider.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), "luhnify_test_http_requests_total")
	assert.Contains(t, scrape.Body.String(), `path="/v1/luhn/validate"`)
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	server := setupTestServer(t, testConfig(), nil)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["error"])
	assert.Equal(t, "The requested resource was not found", body["message"])
}

func TestServer_NoMetricsEndpoint(t *testing.T) {
	server := setupTestServer(t, testConfig(), nil)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := createTestServer()

	err := server.Start(context.Background())

	assert.Error(t, err)
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := setupTestServer(t, testConfig(), nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	assert.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

func TestRequestIDMiddleware_HeaderPresent(t *testing.T) {
	server := setupTestServer(t, testConfig(), nil)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	requestID := w.Header().Get("X-Request-Id")
	require.NotEmpty(t, requestID)

	parsedUUID, err := uuid.Parse(requestID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsedUUID.Version())
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 0, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
