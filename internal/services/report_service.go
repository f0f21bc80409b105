package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/shieldify/takedown-portal/internal/identity"
	"github.com/shieldify/takedown-portal/internal/models"
	"github.com/shieldify/takedown-portal/internal/validation"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrForbidden            = errors.New("admin access required")
	ErrReportNumberRequired = errors.New("report number is required")
	ErrNoteTooLong          = errors.New("note must be 1000 characters or fewer")
)

// MaxNoteLen bounds the note attached to a transition. Checked before the
// status update so an oversized note never leaves a transition without its
// audit entry.
const MaxNoteLen = 1000

// ReportService owns the report lifecycle: validated submission, the four
// admin transitions, and the audit trail that accompanies every transition.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Create validates a submission and persists it with status pending. Field
// errors are returned without touching the store.
func (s *ReportService) Create(customer identity.Actor, sub validation.Submission) (*models.Report, validation.FieldErrors, error) {
	normalized, fieldErrs := validation.Validate(sub)
	if fieldErrs != nil {
		return nil, fieldErrs, nil
	}

	payload, err := json.Marshal(normalized.Payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode form payload: %w", err)
	}

	report := models.Report{
		ID:              uuid.New(),
		CustomerID:      customer.ID,
		Platform:        normalized.Platform,
		ReportType:      normalized.ReportType,
		Status:          models.StatusPending,
		AccountPageName: normalized.AccountPageName,
		InfringingURLs:  datatypes.NewJSONSlice(normalized.InfringingURLs),
		Description:     normalized.Description,
		FormPayload:     datatypes.JSON(payload),
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.appendAudit(report.ID, customer.ID, models.ActionCreated, nil)
	return &report, nil, nil
}

// AssignNumber sets report_number without changing status.
func (s *ReportService) AssignNumber(actor identity.Actor, reportID uuid.UUID, number string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	number = strings.TrimSpace(number)
	if len(number) < 2 {
		return ErrReportNumberRequired
	}

	if err := s.updateReport(reportID, map[string]interface{}{
		"report_number": number,
	}); err != nil {
		return err
	}

	note := "Assigned report number: " + number
	s.appendAudit(reportID, actor.ID, models.ActionUpdated, &note)
	return nil
}

// Approve sets status=approved and the report number together. A report is
// not really approved until it carries a number.
func (s *ReportService) Approve(actor identity.Actor, reportID uuid.UUID, number string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	number = strings.TrimSpace(number)
	if len(number) < 2 {
		return ErrReportNumberRequired
	}

	if err := s.updateReport(reportID, map[string]interface{}{
		"status":        models.StatusApproved,
		"report_number": number,
	}); err != nil {
		return err
	}

	note := "Report number: " + number
	s.appendAudit(reportID, actor.ID, models.ActionApproved, &note)
	return nil
}

// Reject sets status=rejected. The report number, if any, is left untouched.
func (s *ReportService) Reject(actor identity.Actor, reportID uuid.UUID, note string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	trimmed := strings.TrimSpace(note)
	if len(trimmed) > MaxNoteLen {
		return ErrNoteTooLong
	}

	if err := s.updateReport(reportID, map[string]interface{}{
		"status": models.StatusRejected,
	}); err != nil {
		return err
	}

	var auditNote *string
	if trimmed != "" {
		auditNote = &trimmed
	}
	s.appendAudit(reportID, actor.ID, models.ActionRejected, auditNote)
	return nil
}

// ResetToPending reverts status to pending. A previously assigned report
// number survives the revert.
func (s *ReportService) ResetToPending(actor identity.Actor, reportID uuid.UUID, note string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	auditNote := strings.TrimSpace(note)
	if len(auditNote) > MaxNoteLen {
		return ErrNoteTooLong
	}

	if err := s.updateReport(reportID, map[string]interface{}{
		"status": models.StatusPending,
	}); err != nil {
		return err
	}

	if auditNote == "" {
		auditNote = "Status set to pending"
	}
	s.appendAudit(reportID, actor.ID, models.ActionUpdated, &auditNote)
	return nil
}

// Get loads one report within the actor's visibility: admins see any row,
// customers only their own. Out-of-scope rows read as not found.
func (s *ReportService) Get(actor identity.Actor, reportID uuid.UUID) (*models.Report, error) {
	query := s.db.Preload("Customer")
	if !actor.IsAdmin() {
		query = query.Scopes(identity.OwnedBy(actor.ID))
	}

	var report models.Report
	if err := query.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return &report, nil
}

// AuditTrail returns a report's audit entries, newest first.
func (s *ReportService) AuditTrail(reportID uuid.UUID) ([]models.ReportAuditLog, error) {
	var logs []models.ReportAuditLog
	err := s.db.Preload("Actor").
		Where("report_id = ?", reportID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}
	return logs, nil
}

func (s *ReportService) updateReport(reportID uuid.UUID, fields map[string]interface{}) error {
	result := s.db.Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

// appendAudit inserts one audit entry. The report update is authoritative by
// the time this runs: an audit insert failure is logged and swallowed rather
// than rolling the status change back.
func (s *ReportService) appendAudit(reportID, actorID uuid.UUID, action string, note *string) {
	entry := models.ReportAuditLog{
		ID:       uuid.New(),
		ReportID: reportID,
		ActorID:  actorID,
		Action:   action,
		Note:     note,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Error("audit log insert failed",
			"report_id", reportID.String(),
			"action", action,
			"error", err.Error())
	}
}
