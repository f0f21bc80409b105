package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shieldify/takedown-portal/internal/database"
	"github.com/shieldify/takedown-portal/internal/identity"
	"github.com/shieldify/takedown-portal/internal/models"
	"github.com/shieldify/takedown-portal/internal/services"
	"github.com/shieldify/takedown-portal/internal/validation"
)

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedActor(t *testing.T, db *gorm.DB, role, email string) identity.Actor {
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

// asActor stores the actor's claims in locals the way the JWT middleware does.
func asActor(actor identity.Actor) fiber.Handler {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   actor.ID.String(),
		"email": actor.Email,
		"role":  actor.Role,
	})
	return func(c *fiber.Ctx) error {
		c.Locals("user", token)
		return c.Next()
	}
}

func TestCustomerReportDetailIncludesAuditTrail(t *testing.T) {
	db := newHandlerDB(t)
	svc := services.NewReportService(db)
	handler := NewReportHandler(svc)

	customer := seedActor(t, db, models.RoleCustomer, "alice@brands.test")
	admin := seedActor(t, db, models.RoleAdmin, "reviewer@portal.test")

	report, fieldErrs, err := svc.Create(customer, validation.Submission{
		Platform:        models.PlatformTikTok,
		ReportType:      models.ReportTypeOther,
		AccountPageName: "fakeshop",
		InfringingURLs:  []string{"https://tiktok.com/@fakeshop"},
		OtherDetails:    "stolen product photos",
	})
	require.NoError(t, err)
	require.Nil(t, fieldErrs)
	require.NoError(t, svc.Approve(admin, report.ID, "TK-2024-0001"))

	app := fiber.New()
	app.Get("/api/reports/:id", asActor(customer), handler.Get)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/reports/"+report.ID.String(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var detail struct {
		Report struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"report"`
		AuditLog []struct {
			Action     string `json:"action"`
			ActorEmail string `json:"actor_email"`
		} `json:"audit_log"`
	}
	require.NoError(t, json.Unmarshal(body, &detail))

	require.Equal(t, report.ID.String(), detail.Report.ID)
	require.Equal(t, models.StatusApproved, detail.Report.Status)

	require.Len(t, detail.AuditLog, 2)
	actions := []string{detail.AuditLog[0].Action, detail.AuditLog[1].Action}
	require.ElementsMatch(t, []string{models.ActionCreated, models.ActionApproved}, actions)
}

func TestCustomerReportDetailHidesOthersReports(t *testing.T) {
	db := newHandlerDB(t)
	svc := services.NewReportService(db)
	handler := NewReportHandler(svc)

	owner := seedActor(t, db, models.RoleCustomer, "owner@test.dev")
	other := seedActor(t, db, models.RoleCustomer, "other@test.dev")

	report, fieldErrs, err := svc.Create(owner, validation.Submission{
		Platform:        models.PlatformWebsite,
		ReportType:      models.ReportTypeOther,
		AccountPageName: "fakeshop",
		InfringingURLs:  []string{"https://example.com/fake"},
		OtherDetails:    "cloned storefront",
	})
	require.NoError(t, err)
	require.Nil(t, fieldErrs)

	app := fiber.New()
	app.Get("/api/reports/:id", asActor(other), handler.Get)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/reports/"+report.ID.String(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
