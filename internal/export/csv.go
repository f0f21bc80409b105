// Package export serializes admin report searches to CSV.
package export

import (
	"io"
	"strings"
	"time"

	"github.com/shieldify/takedown-portal/internal/models"
)

const Filename = "reports_export.csv"

// Header is the fixed column order of an export.
var Header = []string{
	"report_id",
	"report_number",
	"status",
	"platform",
	"report_type",
	"account_page_name",
	"customer_email",
	"customer_name",
	"created_at",
	"updated_at",
}

// WriteReports writes the header row plus one row per report. Reports must
// have their Customer association loaded.
func WriteReports(w io.Writer, reports []models.Report) error {
	if err := writeRow(w, Header); err != nil {
		return err
	}
	for i := range reports {
		if err := writeRow(w, reportRow(&reports[i])); err != nil {
			return err
		}
	}
	return nil
}

func reportRow(r *models.Report) []string {
	reportNumber := ""
	if r.ReportNumber != nil {
		reportNumber = *r.ReportNumber
	}
	customerName := ""
	if r.Customer.FullName != nil {
		customerName = *r.Customer.FullName
	}
	return []string{
		r.ID.String(),
		reportNumber,
		r.Status,
		r.Platform,
		r.ReportType,
		r.AccountPageName,
		r.Customer.Email,
		customerName,
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func writeRow(w io.Writer, cells []string) error {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = escape(cell)
	}
	_, err := io.WriteString(w, strings.Join(escaped, ",")+"\n")
	return err
}

// escape quote-wraps a value containing a comma, double quote, or newline,
// doubling internal double quotes.
func escape(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
