package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/luhnify/internal/httputil"
	"github.com/allisson/luhnify/internal/luhn/domain"
	"github.com/allisson/luhnify/internal/luhn/http/dto"
	"github.com/allisson/luhnify/internal/luhn/usecase/mocks"
)

func setupTestGeneratorHandler(t *testing.T) (*GeneratorHandler, *mocks.MockGeneratorUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := mocks.NewMockGeneratorUseCase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewGeneratorHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func createRawTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()

	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestGeneratorHandler_GenerateHandler(t *testing.T) {
	t.Run("Success_FullBatch", func(t *testing.T) {
		handler, mockUseCase := setupTestGeneratorHandler(t)

		batch := &domain.Batch{
			Template:  "45xx",
			Numbers:   []string{"4505", "4513", "4521"},
			Requested: 3,
		}
		mockUseCase.On("Generate", mock.Anything, "45xx", 3).Return(batch, nil).Once()

		count := 3
		c, w := createTestContext(http.MethodPost, "/v1/luhn/generate",
			dto.GenerateRequest{Template: "45xx", BatchCount: &count})

		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.GenerateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, []string{"4505", "4513", "4521"}, response.Numbers)
		assert.Equal(t, 3, response.Count)
		assert.Equal(t, 3, response.Requested)
	})

	t.Run("Success_DefaultBatchCount", func(t *testing.T) {
		handler, mockUseCase := setupTestGeneratorHandler(t)

		batch := &domain.Batch{Template: "7992739871x", Numbers: []string{"79927398713"}, Requested: 1}
		mockUseCase.On("Generate", mock.Anything, "7992739871x", 1).Return(batch, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/luhn/generate",
			dto.GenerateRequest{Template: "7992739871x"})

		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Success_PartialBatchIsOK", func(t *testing.T) {
		handler, mockUseCase := setupTestGeneratorHandler(t)

		batch := &domain.Batch{Template: "x", Numbers: []string{"0"}, Requested: 20}
		mockUseCase.On("Generate", mock.Anything, "x", 20).Return(batch, nil).Once()

		count := 20
		c, w := createTestContext(http.MethodPost, "/v1/luhn/generate",
			dto.GenerateRequest{Template: "x", BatchCount: &count})

		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.GenerateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.Count)
		assert.Equal(t, 20, response.Requested)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestGeneratorHandler(t)

		c, w := createRawTestContext(http.MethodPost, "/v1/luhn/generate", "{not json")

		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeError(t, w).Error)
	})

	t.Run("Error_BlankTemplate", func(t *testing.T) {
		handler, _ := setupTestGeneratorHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/luhn/generate", dto.GenerateRequest{Template: "  "})

		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "validation_error", decodeError(t, w).Error)
	})

	t.Run("Error_InvalidTemplate", func(t *testing.T) {
		handler, mockUseCase := setupTestGeneratorHandler(t)

		mockUseCase.On("Generate", mock.Anything, "45ab", 1).Return(nil, domain.ErrInvalidTemplate).Once()

		c, w := createTestContext(http.MethodPost, "/v1/luhn/generate", dto.GenerateRequest{Template: "45ab"})

		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, "invalid_input", response.Error)
		assert.Equal(t, "template must contain only digits and placeholders (x or ?)", response.Message)
	})

	t.Run("Error_GenerationExhausted", func(t *testing.T) {
		handler, mockUseCase := setupTestGeneratorHandler(t)

		mockUseCase.On("Generate", mock.Anything, "1234", 1).Return(nil, domain.ErrGenerationExhausted).Once()

		c, w := createTestContext(http.MethodPost, "/v1/luhn/generate", dto.GenerateRequest{Template: "1234"})

		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, "unprocessable", response.Error)
		assert.Equal(t, "could not generate a valid number, please try again", response.Message)
	})

	t.Run("Error_Internal", func(t *testing.T) {
		handler, mockUseCase := setupTestGeneratorHandler(t)

		mockUseCase.On("Generate", mock.Anything, "45xx", 1).Return(nil, errors.New("boom")).Once()

		c, w := createTestContext(http.MethodPost, "/v1/luhn/generate", dto.GenerateRequest{Template: "45xx"})

		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_error", decodeError(t, w).Error)
	})
}

func TestGeneratorHandler_DownloadHandler(t *testing.T) {
	t.Run("Success_TextAttachment", func(t *testing.T) {
		handler, mockUseCase := setupTestGeneratorHandler(t)

		batch := &domain.Batch{Template: "45xx", Numbers: []string{"4505", "4513"}, Requested: 2}
		mockUseCase.On("Generate", mock.Anything, "45xx", 2).Return(batch, nil).Once()

		count := 2
		c, w := createTestContext(http.MethodPost, "/v1/luhn/generate/download",
			dto.GenerateRequest{Template: "45xx", BatchCount: &count})

		handler.DownloadHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="generated-numbers.txt"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "4505\n4513", w.Body.String())
	})

	t.Run("Error_GenerationExhausted", func(t *testing.T) {
		handler, mockUseCase := setupTestGeneratorHandler(t)

		mockUseCase.On("Generate", mock.Anything, "1234", 1).Return(nil, domain.ErrGenerationExhausted).Once()

		c, w := createTestContext(http.MethodPost, "/v1/luhn/generate/download", dto.GenerateRequest{Template: "1234"})

		handler.DownloadHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Empty(t, w.Header().Get("Content-Disposition"))
	})
}

func TestGeneratorHandler_ValidateHandler(t *testing.T) {
	t.Run("Success_Valid", func(t *testing.T) {
		handler, mockUseCase := setupTestGeneratorHandler(t)

		result := &domain.Validation{Number: "79927398713", Valid: true, CheckDigit: "3"}
		mockUseCase.On("Validate", mock.Anything, "79927398713").Return(result, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/luhn/validate",
			dto.ValidateNumberRequest{Number: "79927398713"})

		handler.ValidateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ValidateNumberResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Valid)
		assert.Equal(t, "3", response.CheckDigit)
	})

	t.Run("Success_Invalid", func(t *testing.T) {
		handler, mockUseCase := setupTestGeneratorHandler(t)

		result := &domain.Validation{Number: "79927398710", Valid: false, CheckDigit: "3"}
		mockUseCase.On("Validate", mock.Anything, "79927398710").Return(result, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/luhn/validate",
			dto.ValidateNumberRequest{Number: "79927398710"})

		handler.ValidateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ValidateNumberResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Valid)
	})

	t.Run("Error_NonDigits", func(t *testing.T) {
		handler, _ := setupTestGeneratorHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/luhn/validate", dto.ValidateNumberRequest{Number: "12ab"})

		handler.ValidateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "validation_error", decodeError(t, w).Error)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestGeneratorHandler(t)

		c, w := createRawTestContext(http.MethodPost, "/v1/luhn/validate", "[]")

		handler.ValidateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
