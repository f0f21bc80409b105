package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shieldify/takedown-portal/internal/models"
)

func TestListForCustomerIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	alice := seedProfile(t, db, models.RoleCustomer, "alice@test.dev")
	bob := seedProfile(t, db, models.RoleCustomer, "bob@test.dev")

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedReport(t, db, alice.ID, models.StatusPending, models.PlatformWebsite, models.ReportTypeOther, fmt.Sprintf("alice-%d", i), base.Add(time.Duration(i)*time.Hour))
	}
	seedReport(t, db, bob.ID, models.StatusPending, models.PlatformWebsite, models.ReportTypeOther, "bob-0", base)

	reports, total, err := svc.ListForCustomer(alice.ID, 1)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	for _, r := range reports {
		require.Equal(t, alice.ID, r.CustomerID)
	}
}

func TestListFilterCombination(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	alice := seedProfile(t, db, models.RoleCustomer, "alice@brands.test")
	bob := seedProfile(t, db, models.RoleCustomer, "bob@other.test")

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seedReport(t, db, alice.ID, models.StatusPending, models.PlatformTikTok, models.ReportTypeTrademark, "shop-a", base)
	seedReport(t, db, alice.ID, models.StatusApproved, models.PlatformTikTok, models.ReportTypeTrademark, "shop-b", base.AddDate(0, 0, 2))
	seedReport(t, db, bob.ID, models.StatusApproved, models.PlatformYouTube, models.ReportTypeCopyright, "channel-c", base.AddDate(0, 0, 4))

	// status + platform
	rows, total, err := svc.List(ReportFilter{Status: models.StatusApproved, Platform: models.PlatformTikTok})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "shop-b", rows[0].AccountPageName)

	// email substring, case-insensitive
	_, total, err = svc.List(ReportFilter{Email: "BRANDS"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	// report type
	_, total, err = svc.List(ReportFilter{ReportType: models.ReportTypeCopyright})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	// date range
	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 3)
	rows, total, err = svc.List(ReportFilter{CreatedFrom: &from, CreatedTo: &to})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "shop-b", rows[0].AccountPageName)
}

func TestListFreeTextSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	alice := seedProfile(t, db, models.RoleCustomer, "alice@brands.test")
	bob := seedProfile(t, db, models.RoleCustomer, "bob@other.test")

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	withNumber := seedReport(t, db, alice.ID, models.StatusApproved, models.PlatformTikTok, models.ReportTypeTrademark, "shop-a", base)
	number := "TK-2024-0099"
	require.NoError(t, db.Model(&withNumber).Update("report_number", number).Error)
	seedReport(t, db, bob.ID, models.StatusPending, models.PlatformYouTube, models.ReportTypeCopyright, "channel-c", base)

	// matches report number
	rows, total, err := svc.List(ReportFilter{Q: "0099"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "shop-a", rows[0].AccountPageName)

	// matches account/page name
	_, total, err = svc.List(ReportFilter{Q: "CHANNEL"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	// matches customer email
	_, total, err = svc.List(ReportFilter{Q: "bob@other"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	// matches customer full name (seeded from the email local part)
	_, total, err = svc.List(ReportFilter{Q: "alice"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}

func TestListSortAndFallback(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	customer := seedProfile(t, db, models.RoleCustomer, "c@test.dev")

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seedReport(t, db, customer.ID, models.StatusPending, models.PlatformWebsite, models.ReportTypeOther, "oldest", base)
	seedReport(t, db, customer.ID, models.StatusApproved, models.PlatformWebsite, models.ReportTypeOther, "newest", base.AddDate(0, 0, 1))

	// default: newest first
	rows, _, err := svc.List(ReportFilter{})
	require.NoError(t, err)
	require.Equal(t, "newest", rows[0].AccountPageName)

	rows, _, err = svc.List(ReportFilter{Sort: "created_at:asc"})
	require.NoError(t, err)
	require.Equal(t, "oldest", rows[0].AccountPageName)

	rows, _, err = svc.List(ReportFilter{Sort: "status:asc"})
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, rows[0].Status)

	// malformed sort key falls back to the default ordering
	rows, _, err = svc.List(ReportFilter{Sort: "report_number:asc"})
	require.NoError(t, err)
	require.Equal(t, "newest", rows[0].AccountPageName)
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	customer := seedProfile(t, db, models.RoleCustomer, "c@test.dev")

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < AdminPageSize+5; i++ {
		seedReport(t, db, customer.ID, models.StatusPending, models.PlatformWebsite, models.ReportTypeOther, fmt.Sprintf("acct-%02d", i), base.Add(time.Duration(i)*time.Minute))
	}

	page1, total, err := svc.List(ReportFilter{Page: 1})
	require.NoError(t, err)
	require.EqualValues(t, AdminPageSize+5, total)
	require.Len(t, page1, AdminPageSize)

	page2, _, err := svc.List(ReportFilter{Page: 2})
	require.NoError(t, err)
	require.Len(t, page2, 5)

	seen := map[string]bool{}
	for _, r := range append(page1, page2...) {
		require.False(t, seen[r.AccountPageName], "duplicate row across pages: %s", r.AccountPageName)
		seen[r.AccountPageName] = true
	}
}

func TestExportJoinsCustomerAndCaps(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	customer := seedProfile(t, db, models.RoleCustomer, "alice@brands.test")

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seedReport(t, db, customer.ID, models.StatusPending, models.PlatformWebsite, models.ReportTypeOther, "acct", base)

	rows, err := svc.Export(ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "alice@brands.test", rows[0].Customer.Email)
}
