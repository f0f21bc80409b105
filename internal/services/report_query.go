package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shieldify/takedown-portal/internal/identity"
	"github.com/shieldify/takedown-portal/internal/models"
)

const (
	AdminPageSize    = 20
	CustomerPageSize = 10
	ExportRowLimit   = 2000
)

// ReportFilter is the admin search criteria. All fields are optional and
// combine freely.
type ReportFilter struct {
	Q           string
	Email       string
	Status      string
	Platform    string
	ReportType  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Sort        string
	Page        int
}

// apply adds the filter predicates to a query that has the customer profile
// joined under the "Customer" alias.
func (f ReportFilter) apply(query *gorm.DB) *gorm.DB {
	if f.Status != "" {
		query = query.Where("reports.status = ?", f.Status)
	}
	if f.Platform != "" {
		query = query.Where("reports.platform = ?", f.Platform)
	}
	if f.ReportType != "" {
		query = query.Where("reports.report_type = ?", f.ReportType)
	}
	if f.Email != "" {
		query = query.Where(`LOWER("Customer".email) LIKE ?`, contains(f.Email))
	}
	if f.CreatedFrom != nil {
		query = query.Where("reports.created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		query = query.Where("reports.created_at <= ?", *f.CreatedTo)
	}
	if f.Q != "" {
		term := contains(f.Q)
		query = query.Where(
			`LOWER(reports.report_number) LIKE ? OR LOWER(reports.account_page_name) LIKE ? OR LOWER("Customer".email) LIKE ? OR LOWER("Customer".full_name) LIKE ?`,
			term, term, term, term,
		)
	}
	return query
}

// orderExpr resolves the sort key. Unknown keys fall back to the default
// ordering instead of erroring; id is always the tie-break so pagination
// stays stable across requests.
func (f ReportFilter) orderExpr() string {
	field, dir := "created_at", "DESC"
	if f.Sort != "" {
		parts := strings.SplitN(f.Sort, ":", 2)
		if parts[0] == "created_at" || parts[0] == "status" {
			field = parts[0]
			dir = "ASC"
			if len(parts) == 2 && parts[1] == "desc" {
				dir = "DESC"
			}
		}
	}
	return fmt.Sprintf("reports.%s %s, reports.id ASC", field, dir)
}

func contains(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

// List runs an admin search and returns one page of at most AdminPageSize
// rows with the owning customer joined, plus the total match count. Query
// failures are returned as errors so callers can tell "no matches" from
// "query failed".
func (s *ReportService) List(filter ReportFilter) ([]models.Report, int64, error) {
	query := filter.apply(s.db.Model(&models.Report{}).Joins("Customer"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	var reports []models.Report
	err := query.Order(filter.orderExpr()).
		Limit(AdminPageSize).
		Offset((page - 1) * AdminPageSize).
		Find(&reports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

// ListForCustomer returns one page of the customer's own reports, newest
// first. Whatever filters a caller might smuggle in, only rows owned by the
// customer are ever returned.
func (s *ReportService) ListForCustomer(customerID uuid.UUID, page int) ([]models.Report, int64, error) {
	base := s.db.Model(&models.Report{}).Scopes(identity.OwnedBy(customerID))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	if page < 1 {
		page = 1
	}

	var reports []models.Report
	err := base.Order("created_at DESC, id ASC").
		Limit(CustomerPageSize).
		Offset((page - 1) * CustomerPageSize).
		Find(&reports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

// Export runs the same search as List without pagination, capped at
// ExportRowLimit rows as a safety ceiling.
func (s *ReportService) Export(filter ReportFilter) ([]models.Report, error) {
	query := filter.apply(s.db.Model(&models.Report{}).Joins("Customer"))

	var reports []models.Report
	err := query.Order(filter.orderExpr()).
		Limit(ExportRowLimit).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to export reports: %w", err)
	}
	return reports, nil
}
