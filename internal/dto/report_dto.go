package dto

import (
	"time"

	"github.com/shieldify/takedown-portal/internal/models"
	"github.com/shieldify/takedown-portal/internal/validation"
)

// CreateReportRequest mirrors validation.Submission on the wire: one flat
// field map whose type-specific portion is selected by report_type.
type CreateReportRequest = validation.Submission

type ValidationErrorResponse struct {
	Error   bool                   `json:"error"`
	Message string                 `json:"message"`
	Fields  validation.FieldErrors `json:"fields"`
}

type AssignNumberRequest struct {
	ReportNumber string `json:"report_number"`
}

type ApproveRequest struct {
	ReportNumber string `json:"report_number"`
}

type RejectRequest struct {
	Note string `json:"note"`
}

type ResetToPendingRequest struct {
	Note string `json:"note"`
}

// ReportRow is the admin list/detail shape: the report joined with its owning
// customer's display fields.
type ReportRow struct {
	models.Report
	CustomerEmail string  `json:"customer_email"`
	CustomerName  *string `json:"customer_name"`
}

type AuditLogEntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Note       *string   `json:"note"`
	ActorEmail string    `json:"actor_email"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReportListResponse struct {
	Reports  []ReportRow `json:"reports"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
