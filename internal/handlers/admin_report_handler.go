package handlers

import (
	"bytes"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shieldify/takedown-portal/internal/dto"
	"github.com/shieldify/takedown-portal/internal/export"
	"github.com/shieldify/takedown-portal/internal/identity"
	"github.com/shieldify/takedown-portal/internal/models"
	"github.com/shieldify/takedown-portal/internal/services"
)

// AdminReportHandler serves the admin review surface: filtered search,
// detail with audit trail, the four lifecycle transitions, and CSV export.
type AdminReportHandler struct {
	reportService *services.ReportService
}

func NewAdminReportHandler(reportService *services.ReportService) *AdminReportHandler {
	return &AdminReportHandler{reportService: reportService}
}

// filterFromQuery reads the shared filter parameters used by both the list
// view and the export endpoint.
func filterFromQuery(c *fiber.Ctx) services.ReportFilter {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	return services.ReportFilter{
		Q:           c.Query("q"),
		Email:       c.Query("email"),
		Status:      c.Query("status"),
		Platform:    c.Query("platform"),
		ReportType:  c.Query("report_type"),
		CreatedFrom: parseDate(c.Query("created_from")),
		CreatedTo:   parseDate(c.Query("created_to")),
		Sort:        c.Query("sort"),
		Page:        page,
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func (h *AdminReportHandler) List(c *fiber.Ctx) error {
	reports, total, err := h.reportService.List(filterFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	return c.JSON(dto.ReportListResponse{
		Reports:  toRows(reports),
		Total:    total,
		Page:     page,
		PageSize: services.AdminPageSize,
	})
}

func (h *AdminReportHandler) Get(c *fiber.Ctx) error {
	actor, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Report not found",
		})
	}

	report, err := h.reportService.Get(actor, reportID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	logs, err := h.reportService.AuditTrail(reportID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"report":    toRow(report),
		"audit_log": toAuditEntries(logs),
	})
}

func (h *AdminReportHandler) AssignNumber(c *fiber.Ctx) error {
	actor, reportID, fail := h.actorAndReportID(c)
	if fail != nil {
		return fail(c)
	}

	var req dto.AssignNumberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	return h.respond(c, h.reportService.AssignNumber(actor, reportID, req.ReportNumber))
}

func (h *AdminReportHandler) Approve(c *fiber.Ctx) error {
	actor, reportID, fail := h.actorAndReportID(c)
	if fail != nil {
		return fail(c)
	}

	var req dto.ApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	return h.respond(c, h.reportService.Approve(actor, reportID, req.ReportNumber))
}

func (h *AdminReportHandler) Reject(c *fiber.Ctx) error {
	actor, reportID, fail := h.actorAndReportID(c)
	if fail != nil {
		return fail(c)
	}

	var req dto.RejectRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid request body",
			})
		}
	}

	return h.respond(c, h.reportService.Reject(actor, reportID, req.Note))
}

func (h *AdminReportHandler) ResetToPending(c *fiber.Ctx) error {
	actor, reportID, fail := h.actorAndReportID(c)
	if fail != nil {
		return fail(c)
	}

	var req dto.ResetToPendingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid request body",
			})
		}
	}

	return h.respond(c, h.reportService.ResetToPending(actor, reportID, req.Note))
}

func (h *AdminReportHandler) actorAndReportID(c *fiber.Ctx) (identity.Actor, uuid.UUID, func(*fiber.Ctx) error) {
	actor, err := identity.FromContext(c)
	if err != nil {
		return identity.Actor{}, uuid.Nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return identity.Actor{}, uuid.Nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
	}

	return actor, reportID, nil
}

// respond maps lifecycle errors to HTTP codes. Persistence failures carry the
// store's message so the admin UI can surface it.
func (h *AdminReportHandler) respond(c *fiber.Ctx, err error) error {
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "Report updated successfully"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrReportNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrReportNumberRequired),
		errors.Is(err, services.ErrNoteTooLong):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
}

func (h *AdminReportHandler) Export(c *fiber.Ctx) error {
	reports, err := h.reportService.Export(filterFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	var buf bytes.Buffer
	if err := export.WriteReports(&buf, reports); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build export",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
	return c.Send(buf.Bytes())
}

func toRow(r *models.Report) dto.ReportRow {
	return dto.ReportRow{
		Report:        *r,
		CustomerEmail: r.Customer.Email,
		CustomerName:  r.Customer.FullName,
	}
}

func toRows(reports []models.Report) []dto.ReportRow {
	rows := make([]dto.ReportRow, len(reports))
	for i := range reports {
		rows[i] = toRow(&reports[i])
	}
	return rows
}

func toAuditEntries(logs []models.ReportAuditLog) []dto.AuditLogEntry {
	entries := make([]dto.AuditLogEntry, len(logs))
	for i, log := range logs {
		entries[i] = dto.AuditLogEntry{
			ID:         log.ID.String(),
			Action:     log.Action,
			Note:       log.Note,
			ActorEmail: log.Actor.Email,
			CreatedAt:  log.CreatedAt,
		}
	}
	return entries
}
