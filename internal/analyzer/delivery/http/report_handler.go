package http

import (
	"errors"
	"net/http"
	"strconv"

	"news-risk-analyzer/internal/analyzer/dto"
	"news-risk-analyzer/internal/analyzer/service"
	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/pkg/logger"
	"news-risk-analyzer/pkg/ratelimit"

	"github.com/labstack/echo/v4"
)

// ReportHandler handles HTTP requests for the risk analysis report.
type ReportHandler struct {
	reportService service.ReportService
	runQueue      service.RunQueue
	limiter       *ratelimit.RequestLimiter
	logger        *logger.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, runQueue service.RunQueue, limiter *ratelimit.RequestLimiter, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		runQueue:      runQueue,
		limiter:       limiter,
		logger:        log,
	}
}

// RegisterRoutes registers the report routes to the Echo group.
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/report", h.GetReport)
	g.GET("/report/summary", h.GetReportSummary)
	g.GET("/alerts", h.GetHighRiskAlerts)
	g.POST("/analysis", h.TriggerAnalysis)
}

// GetReport godoc
// @Summary Get the latest risk report
// @Description Get the full risk assessment report of the latest analysis run
// @Tags report
// @Produce  json
// @Success 200 {object} entity.BatchReport
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /report [get]
func (h *ReportHandler) GetReport(c echo.Context) error {
	report, err := h.reportService.GetReport(c.Request().Context())
	if err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GetReportSummary godoc
// @Summary Get the report summary
// @Description Get the aggregated summary block of the latest analysis run
// @Tags report
// @Produce  json
// @Success 200 {object} dto.ReportSummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /report/summary [get]
func (h *ReportHandler) GetReportSummary(c echo.Context) error {
	summary, err := h.reportService.GetSummary(c.Request().Context())
	if err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetHighRiskAlerts godoc
// @Summary Get high-risk alerts
// @Description Get the articles scoring at or above the risk threshold
// @Tags report
// @Produce  json
// @Param   threshold  query   number  false   "Risk score threshold, defaults to the configured one"
// @Success 200 {object} dto.HighRiskAlertsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts [get]
func (h *ReportHandler) GetHighRiskAlerts(c echo.Context) error {
	threshold := 0.0
	if raw := c.QueryParam("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "threshold must be a number between 0 and 1"})
		}
		threshold = parsed
	}

	alerts, err := h.reportService.GetHighRiskAlerts(c.Request().Context(), threshold)
	if err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(http.StatusOK, alerts)
}

// TriggerAnalysis godoc
// @Summary Request a fresh analysis run
// @Description Queue a new batch analysis run; the stream consumer executes it
// @Tags report
// @Produce  json
// @Success 202 {object} dto.TriggerAnalysisResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analysis [post]
func (h *ReportHandler) TriggerAnalysis(c echo.Context) error {
	if !h.limiter.Allow() {
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many analysis requests, try again later"})
	}

	req, err := h.runQueue.Publish(c.Request().Context(), entity.RunTriggerAPI)
	if err != nil {
		h.logger.Error("Failed to queue analysis run", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to queue analysis run"})
	}

	return c.JSON(http.StatusAccepted, dto.TriggerAnalysisResponse{
		RunID:   req.RunID,
		Status:  entity.RunStatusQueued,
		Message: "analysis run queued",
	})
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *ReportHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *ReportHandler) reportError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrNoReport) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no report available yet, trigger an analysis run first"})
	}
	h.logger.Error("Failed to read report", logger.ErrorField(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read report"})
}
