// Package apiserver exposes the engine over HTTP with Fiber: upload a PDF,
// get back parsed transactions and a CSV rendering, backed by the full
// statement engine instead of a single hardcoded bank parser.
package apiserver

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ledgerscan/statement-engine/internal/engine"
	"github.com/ledgerscan/statement-engine/internal/model"
	"github.com/ledgerscan/statement-engine/internal/pdfsource"
	"github.com/ledgerscan/statement-engine/internal/writer"
)

// Version is reported by the health endpoint and the convert response.
const Version = "1.0.0"

// Handler holds the engine configuration shared across requests. Config is
// validated once at construction (engine.NewConfig), not per request.
type Handler struct {
	Config model.Config
}

// NewHandler validates cfg and returns a Handler ready to register routes.
func NewHandler(cfg model.Config) (*Handler, error) {
	validated, err := engine.NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Handler{Config: validated}, nil
}

// RegisterRoutes wires the handler's endpoints onto app's /api group.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api")
	group.Get("/health", h.handleHealth)
	group.Post("/convert", h.handleConvert)
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": Version})
}

// ConvertResponse is the JSON body returned by POST /api/convert.
type ConvertResponse struct {
	Success      bool                   `json:"success"`
	Error        string                 `json:"error,omitempty"`
	DetectedLocale string               `json:"detectedLocale,omitempty"`
	Transactions []model.Transaction    `json:"transactions"`
	CSV          string                 `json:"csv,omitempty"`
	TotalCount   int                    `json:"totalCount"`
	ValidCount   int                    `json:"validCount"`
	WarningCount int                    `json:"warningCount"`
	ErrorCount   int                    `json:"errorCount"`
	Version      string                 `json:"version"`
}

func (h *Handler) handleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded; use form field \"file\"")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "only PDF files are supported")
	}

	tmp, err := os.CreateTemp("", "statement-upload-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := c.SaveFile(fileHeader, tmp.Name()); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to save uploaded file")
	}

	fragments, err := pdfsource.Extract(tmp.Name())
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
	}

	result := engine.ProcessDocument(c.Context(), fileHeader.Filename, fragments, h.Config, engine.NopObserver{})
	if !result.Success || result.Document == nil {
		detail := "processing failed"
		if len(result.Errors) > 0 {
			v := result.Errors[0]
			detail = fmt.Sprintf("%s: %s (row %d)", v.Rule, v.Detail, v.RowIndex)
		}
		return writeError(c, fiber.StatusUnprocessableEntity, detail)
	}
	doc := *result.Document

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{IncludeHeader: true}
	if err := csvWriter.Write(&csvBuf, doc); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	resp := ConvertResponse{
		Success:        true,
		DetectedLocale: doc.DetectedLocale,
		Transactions:   doc.RawTransactions,
		CSV:            csvBuf.String(),
		TotalCount:     doc.Totals.Total,
		ValidCount:     doc.Totals.Valid,
		WarningCount:   doc.Totals.Warning,
		ErrorCount:     doc.Totals.Error,
		Version:        Version,
	}
	return c.JSON(resp)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{Success: false, Error: msg, Version: Version})
}
