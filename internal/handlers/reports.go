package handlers

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/ledgerview/ledgerview-api/internal/models"
	"github.com/ledgerview/ledgerview-api/internal/services"
	"github.com/ledgerview/ledgerview-api/internal/utils"
)

// ReportService assembles report envelopes from the transaction source
type ReportService interface {
	Dashboard(ctx context.Context, referenceTimestamp string) models.Report
	CategoryReport(category, startDate string) models.Report
	CardsReport(referenceTimestamp string) models.Report
	MonthlyReport(yearMonth string, threshold float64) models.Report
	TopReport(referenceTimestamp string, n int) models.Report
	SearchReport(query string) models.Report
	Persist(report models.Report, dir, kind string) (string, error)
}

// Archiver stores and retrieves rendered reports in object storage
type Archiver interface {
	GenerateReportKey(reportType string) (string, error)
	UploadReport(ctx context.Context, key string, body []byte) error
	DownloadReport(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteReport(ctx context.Context, key string) error
}

// ReportsHandler exposes the reporting endpoints
type ReportsHandler struct {
	reporter   ReportService
	archive    Archiver // nil when archiving is disabled
	reportsDir string
	log        zerolog.Logger
}

// NewReportsHandler creates a reports handler without archiving
func NewReportsHandler(reporter ReportService, reportsDir string, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{reporter: reporter, reportsDir: reportsDir, log: log}
}

// NewReportsHandlerWithArchive creates a reports handler that also
// uploads saved reports to object storage
func NewReportsHandlerWithArchive(reporter ReportService, archive Archiver, reportsDir string, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{reporter: reporter, archive: archive, reportsDir: reportsDir, log: log}
}

// respond writes the report envelope with a status code derived from
// the report outcome. The envelope shape is identical either way;
// clients branch on its status field.
func (h *ReportsHandler) respond(c fiber.Ctx, report models.Report) error {
	if report.Status == models.StatusError {
		return c.Status(utils.StatusForErrorCode(report.ErrorCode)).JSON(report)
	}
	return c.JSON(report)
}

// save persists a generated report and, when configured, archives it.
// Persistence is an explicit follow-up to generation, composed here.
func (h *ReportsHandler) save(ctx context.Context, report models.Report, kind string) {
	path, err := h.reporter.Persist(report, h.reportsDir, kind)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to persist report")
		return
	}
	h.log.Info().Str("path", path).Msg("report saved")

	if h.archive == nil {
		return
	}

	key, err := h.archive.GenerateReportKey(kind)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build archive key")
		return
	}
	body, err := json.Marshal(report)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to render report for archive")
		return
	}
	if err := h.archive.UploadReport(ctx, key, body); err != nil {
		h.log.Error().Err(err).Msg("failed to archive report")
		return
	}
	h.log.Info().Str("key", key).Msg("report archived")
}

// referenceTimestamp reads the timestamp query param, defaulting to now
func referenceTimestamp(c fiber.Ctx) string {
	if ts := c.Query("timestamp"); ts != "" {
		return ts
	}
	return time.Now().Format(services.ReferenceLayout)
}

// GetDashboard handles GET /v1/report/dashboard
// Query params: timestamp (2006-01-02 15:04:05, default now), save (bool)
func (h *ReportsHandler) GetDashboard(c fiber.Ctx) error {
	report := h.reporter.Dashboard(c.Context(), referenceTimestamp(c))

	if save, _ := strconv.ParseBool(c.Query("save")); save {
		h.save(c.Context(), report, "dashboard")
	}

	return h.respond(c, report)
}

// GetCategoryReport handles GET /v1/report/category
// Query params: category (empty for a weekday breakdown), start (2006-01-02), save
func (h *ReportsHandler) GetCategoryReport(c fiber.Ctx) error {
	report := h.reporter.CategoryReport(c.Query("category"), c.Query("start"))

	if save, _ := strconv.ParseBool(c.Query("save")); save {
		h.save(c.Context(), report, "category")
	}

	return h.respond(c, report)
}

// GetCardsReport handles GET /v1/report/cards
// Query params: timestamp
func (h *ReportsHandler) GetCardsReport(c fiber.Ctx) error {
	return h.respond(c, h.reporter.CardsReport(referenceTimestamp(c)))
}

// GetMonthlyReport handles GET /v1/report/monthly
// Query params: month (2006-01, required), threshold (float, default 0)
func (h *ReportsHandler) GetMonthlyReport(c fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "month is required")
	}

	threshold := 0.0
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid threshold")
		}
		threshold = parsed
	}

	return h.respond(c, h.reporter.MonthlyReport(month, threshold))
}

// GetTopReport handles GET /v1/report/top
// Query params: timestamp, n (default 5)
func (h *ReportsHandler) GetTopReport(c fiber.Ctx) error {
	n := services.DefaultTopCount
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid n")
		}
		n = parsed
	}

	return h.respond(c, h.reporter.TopReport(referenceTimestamp(c), n))
}

// GetArchivedReport handles GET /v1/report/archive/*
// The wildcard carries the full archive key, e.g.
// reports/dashboard/1738071000-1a2b3c4d.json
func (h *ReportsHandler) GetArchivedReport(c fiber.Ctx) error {
	if h.archive == nil {
		return utils.NewNotFoundError("report archive")
	}

	key := c.Params("*")
	if key == "" {
		return utils.NewBadRequestError("archive key is required", nil)
	}

	body, err := h.archive.DownloadReport(c.Context(), key)
	if err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("archived report not found")
		return utils.NewNotFoundError("archived report")
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return utils.NewInternalError(err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// DeleteArchivedReport handles DELETE /v1/report/archive/*
func (h *ReportsHandler) DeleteArchivedReport(c fiber.Ctx) error {
	if h.archive == nil {
		return utils.NewNotFoundError("report archive")
	}

	key := c.Params("*")
	if key == "" {
		return utils.NewBadRequestError("archive key is required", nil)
	}

	if err := h.archive.DeleteReport(c.Context(), key); err != nil {
		return utils.NewInternalError(err)
	}

	h.log.Info().Str("key", key).Msg("archived report deleted")
	return utils.SuccessResponse(c, fiber.Map{"deleted": key})
}

// Search handles GET /v1/search
// Query params: q (required)
func (h *ReportsHandler) Search(c fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "q is required")
	}

	return h.respond(c, h.reporter.SearchReport(query))
}
