// Package api exposes the statement parsing pipeline over HTTP.
package api

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/card-statement-parser/internal/config"
	"github.com/insightdelivered/card-statement-parser/internal/extractor"
	"github.com/insightdelivered/card-statement-parser/internal/models"
	"github.com/insightdelivered/card-statement-parser/internal/parser"
	"github.com/insightdelivered/card-statement-parser/internal/store"
)

const serviceVersion = "1.0.0"

var log = logrus.WithField("component", "api")

// ParseResponse is returned from POST /upload.
type ParseResponse struct {
	ID              string                  `json:"id"`
	Filename        string                  `json:"filename"`
	Issuer          string                  `json:"issuer"`
	ExtractedFields models.ExtractionResult `json:"extracted_fields"`
	ConfidenceScore float64                 `json:"confidence_score"`
	Status          string                  `json:"status"`
}

// HistoryItem is the summary shape returned from GET /history.
type HistoryItem struct {
	ID              string  `json:"id"`
	Filename        string  `json:"filename"`
	Issuer          string  `json:"issuer"`
	ConfidenceScore float64 `json:"confidence_score"`
	CreatedAt       string  `json:"created_at"`
}

// Handler wires the parsing pipeline to HTTP routes.
type Handler struct {
	Store *store.Store
	Cfg   *config.Config
}

// RegisterRoutes sets up the API routes on the fiber app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Health)
	app.Post("/upload", h.Upload)
	app.Get("/results/:id", h.Results)
	app.Get("/history", h.History)
}

// Health reports service liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "Credit Card Statement Parser",
		"version": serviceVersion,
	})
}

// Upload accepts a statement PDF, runs extraction and persists the result.
func (h *Handler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	filename := sanitizeFilename(fileHeader.Filename)
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return detail(c, fiber.StatusBadRequest, "Only PDF files are supported")
	}
	if fileHeader.Size > h.Cfg.MaxFileSizeBytes() {
		return detail(c, fiber.StatusRequestEntityTooLarge, "File exceeds the upload size limit")
	}

	id := uuid.NewString()

	tmpPath := filepath.Join(os.TempDir(), id+"_"+filename)
	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		log.WithError(err).Error("failed to save uploaded file")
		return detail(c, fiber.StatusInternalServerError, "Failed to save uploaded file")
	}
	defer os.Remove(tmpPath)

	log.WithField("filename", filename).WithField("id", id).Info("processing upload")

	// Primary text extraction, with OCR fallback for scanned documents.
	text := extractor.Extract(tmpPath)
	if len(strings.TrimSpace(text)) < extractor.MinTextLength && h.Cfg.OCREnabled {
		log.WithField("id", id).Warn("text extraction insufficient, trying OCR")
		text = extractor.ExtractOCR(tmpPath, extractor.OCROptions{
			DPI:      h.Cfg.OCRDPI,
			MaxPages: h.Cfg.OCRMaxPages,
		})
	}
	if strings.TrimSpace(text) == "" {
		return detail(c, fiber.StatusUnprocessableEntity,
			"Could not extract text from PDF. File may be corrupted.")
	}

	issuer := parser.DetectIssuer(text)
	fields := parser.ExtractFields(text, issuer)
	confidence := fields.OverallConfidence()

	record := &models.ParsedStatement{
		ID:              id,
		Filename:        filename,
		Issuer:          issuer,
		CardLastFour:    fields.StringValue(models.FieldCardLastFour),
		BillingCycle:    fields.StringValue(models.FieldBillingCycle),
		DueDate:         fields.StringValue(models.FieldDueDate),
		TotalAmountDue:  fields.StringValue(models.FieldTotalAmountDue),
		ConfidenceScore: confidence,
		RawText:         truncate(text, 1000),
		CreatedAt:       time.Now().UTC(),
	}
	if err := h.Store.Save(record); err != nil {
		log.WithError(err).Error("failed to persist parse record")
		return detail(c, fiber.StatusInternalServerError, "Failed to save parse result")
	}

	log.WithField("id", id).
		WithField("issuer", issuer).
		WithField("confidence", confidence).
		Info("statement parsed")

	return c.JSON(ParseResponse{
		ID:              id,
		Filename:        filename,
		Issuer:          issuer,
		ExtractedFields: fields,
		ConfidenceScore: confidence,
		Status:          "success",
	})
}

// Results returns the full persisted record for one parse.
func (h *Handler) Results(c *fiber.Ctx) error {
	record, err := h.Store.GetByID(c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return detail(c, fiber.StatusNotFound, "Result not found")
	}
	if err != nil {
		log.WithError(err).Error("failed to load parse record")
		return detail(c, fiber.StatusInternalServerError, "Failed to load result")
	}
	return c.JSON(record)
}

// History returns the most recent parse records, newest first.
func (h *Handler) History(c *fiber.Ctx) error {
	records, err := h.Store.Recent(store.HistoryLimit)
	if err != nil {
		log.WithError(err).Error("failed to load history")
		return detail(c, fiber.StatusInternalServerError, "Failed to load history")
	}

	items := make([]HistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, HistoryItem{
			ID:              r.ID,
			Filename:        r.Filename,
			Issuer:          r.Issuer,
			ConfidenceScore: r.ConfidenceScore,
			CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(items)
}

func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// sanitizeFilename strips path components and characters that could be
// abused for traversal.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	for _, ch := range []string{"..", "/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		name = strings.ReplaceAll(name, ch, "_")
	}
	return name
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
