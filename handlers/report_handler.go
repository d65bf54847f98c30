package handlers

import (
	"github.com/gofiber/fiber/v2"

	"marketplace_backend/internal/store"
)

type ReportHandler struct {
	Reports store.ReportStore
}

func NewReportHandler(reports store.ReportStore) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// CreateReportRequest identifies the reporting user
type CreateReportRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// GetPendingReports - GET /api/reports
func (h *ReportHandler) GetPendingReports(c *fiber.Ctx) error {
	reports, err := h.Reports.ListPendingReports()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Pending reports fetched", reports)
}

// CreateReport - POST /api/reports/:productID
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	productID, err := paramUint(c, "productID")
	if err != nil {
		return respondError(c, err)
	}
	var req CreateReportRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	report, err := h.Reports.CreateReport(productID, req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "Report filed", report)
}

// ResolveDelete - POST /api/reports/:reportID/delete
// Takes the reported product off the marketplace and closes the report.
func (h *ReportHandler) ResolveDelete(c *fiber.Ctx) error {
	reportID, err := paramUint(c, "reportID")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Reports.ResolveDelete(reportID); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Product removed and report closed", nil)
}

// ResolveKeep - POST /api/reports/:reportID/keep
func (h *ReportHandler) ResolveKeep(c *fiber.Ctx) error {
	reportID, err := paramUint(c, "reportID")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Reports.ResolveKeep(reportID); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Product kept and report closed", nil)
}
