package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shieldify/takedown-portal/internal/database"
	"github.com/shieldify/takedown-portal/internal/identity"
	"github.com/shieldify/takedown-portal/internal/models"
	"github.com/shieldify/takedown-portal/internal/validation"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, role, email string) identity.Actor {
	t.Helper()
	name := strings.Split(email, "@")[0]
	profile := models.UserProfile{
		ID:           uuid.New(),
		Role:         role,
		Email:        email,
		FullName:     &name,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&profile).Error)
	return identity.Actor{ID: profile.ID, Email: profile.Email, Role: profile.Role}
}

func trademarkSubmission(account string) validation.Submission {
	return validation.Submission{
		Platform:        models.PlatformTikTok,
		ReportType:      models.ReportTypeTrademark,
		AccountPageName: account,
		InfringingURLs:  []string{"https://tiktok.com/@" + account},
		TrademarkName:   "Acme",
	}
}

func seedReport(t *testing.T, db *gorm.DB, customerID uuid.UUID, status, platform, reportType, account string, createdAt time.Time) models.Report {
	t.Helper()
	report := models.Report{
		ID:              uuid.New(),
		CustomerID:      customerID,
		Platform:        platform,
		ReportType:      reportType,
		Status:          status,
		AccountPageName: account,
		InfringingURLs:  datatypes.NewJSONSlice([]string{"https://example.com/x"}),
		FormPayload:     datatypes.JSON([]byte(`{"other_details":"seeded"}`)),
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	require.NoError(t, db.Create(&report).Error)
	return report
}

func auditCount(t *testing.T, db *gorm.DB, reportID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.ReportAuditLog{}).Where("report_id = ?", reportID).Count(&count).Error)
	return count
}
