package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreated  = "created"
	ActionApproved = "approved"
	ActionRejected = "rejected"
	ActionUpdated  = "updated"
)

// ReportAuditLog is an append-only record of one state-changing action on a
// report. Entries are never updated or deleted and are displayed newest first.
type ReportAuditLog struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"report_id"`
	ActorID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"actor_id"`
	Action    string      `gorm:"size:20;not null" json:"action"`
	Note      *string     `gorm:"size:1000" json:"note"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
	Actor     UserProfile `gorm:"foreignKey:ActorID" json:"-"`
}

func (ReportAuditLog) TableName() string {
	return "report_audit_logs"
}
