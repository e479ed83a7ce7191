// Package http provides HTTP handlers for Luhn number generation and validation.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/luhnify/internal/httputil"
	"github.com/allisson/luhnify/internal/luhn/domain"
	"github.com/allisson/luhnify/internal/luhn/http/dto"
	"github.com/allisson/luhnify/internal/luhn/usecase"
	customValidation "github.com/allisson/luhnify/internal/validation"
)

// GeneratorHandler handles HTTP requests for pattern generation and checksum validation.
type GeneratorHandler struct {
	generatorUseCase usecase.GeneratorUseCase
	logger           *slog.Logger
}

// NewGeneratorHandler creates a new generator handler with required dependencies.
func NewGeneratorHandler(generatorUseCase usecase.GeneratorUseCase, logger *slog.Logger) *GeneratorHandler {
	return &GeneratorHandler{
		generatorUseCase: generatorUseCase,
		logger:           logger,
	}
}

// GenerateHandler produces a batch of numbers matching a template.
// POST /v1/luhn/generate
// A batch shorter than requested is still a 200; count and requested tell them apart.
func (h *GeneratorHandler) GenerateHandler(c *gin.Context) {
	batch, ok := h.generate(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.MapBatchToResponse(batch))
}

// DownloadHandler produces a batch and returns it as a text file, one number per line.
// POST /v1/luhn/generate/download
func (h *GeneratorHandler) DownloadHandler(c *gin.Context) {
	batch, ok := h.generate(c)
	if !ok {
		return
	}

	httputil.TextAttachmentGin(c, domain.DownloadFilename, batch.Text())
}

// ValidateHandler checks a number against the Luhn checksum.
// POST /v1/luhn/validate
func (h *GeneratorHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidateNumberRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.generatorUseCase.Validate(c.Request.Context(), req.Number)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapValidationToResponse(result))
}

func (h *GeneratorHandler) generate(c *gin.Context) (*domain.Batch, bool) {
	var req dto.GenerateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}

	batch, err := h.generatorUseCase.Generate(c.Request.Context(), req.Template, req.Count())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return nil, false
	}

	return batch, true
}
