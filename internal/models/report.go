package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformYouTube   = "youtube"
	PlatformThreads   = "threads"
	PlatformWebsite   = "website"
)

const (
	ReportTypeCopyright    = "copyright"
	ReportTypeTrademark    = "trademark"
	ReportTypeCounterfeit  = "counterfeit"
	ReportTypeImpersonator = "impersonator"
	ReportTypeOther        = "other"
)

// Report is a customer-submitted takedown request. CustomerID and ReportType
// are immutable after creation; ReportNumber is assigned by admins only.
// FormPayload holds the type-specific fields and its shape always matches
// ReportType.
type Report struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID      uuid.UUID                   `gorm:"type:uuid;not null;index" json:"customer_id"`
	Platform        string                      `gorm:"size:20;not null;index" json:"platform"`
	ReportType      string                      `gorm:"size:20;not null;index" json:"report_type"`
	Status          string                      `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReportNumber    *string                     `gorm:"size:100" json:"report_number"`
	AccountPageName string                      `gorm:"size:255;not null" json:"account_page_name"`
	InfringingURLs  datatypes.JSONSlice[string] `gorm:"not null" json:"infringing_urls"`
	Description     *string                     `gorm:"size:2000" json:"description"`
	FormPayload     datatypes.JSON              `gorm:"type:jsonb;not null" json:"form_payload"`
	CreatedAt       time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
	Customer        UserProfile                 `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Report) TableName() string {
	return "reports"
}
