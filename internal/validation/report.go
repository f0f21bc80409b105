package validation

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shieldify/takedown-portal/internal/models"
)

const (
	MinInfringingURLs = 1
	MaxInfringingURLs = 50
	MaxDescriptionLen = 2000
)

var validPlatforms = map[string]bool{
	models.PlatformFacebook:  true,
	models.PlatformInstagram: true,
	models.PlatformTikTok:    true,
	models.PlatformYouTube:   true,
	models.PlatformThreads:   true,
	models.PlatformWebsite:   true,
}

var validReportTypes = map[string]bool{
	models.ReportTypeCopyright:    true,
	models.ReportTypeTrademark:    true,
	models.ReportTypeCounterfeit:  true,
	models.ReportTypeImpersonator: true,
	models.ReportTypeOther:        true,
}

// FieldErrors maps an offending field name to its message so callers can
// render per-field errors instead of one opaque failure.
type FieldErrors map[string]string

func (e FieldErrors) add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Submission is the flat field map a customer submits. Which of the
// type-specific fields apply is decided by ReportType; the rest are ignored.
type Submission struct {
	Platform        string   `json:"platform"`
	ReportType      string   `json:"report_type"`
	AccountPageName string   `json:"account_page_name"`
	InfringingURLs  []string `json:"infringing_urls"`
	Description     string   `json:"description"`

	WorkDescription    string   `json:"work_description"`
	ProofLinks         []string `json:"proof_links"`
	TrademarkName      string   `json:"trademark_name"`
	RegistrationNumber string   `json:"registration_number"`
	Jurisdiction       string   `json:"jurisdiction"`
	Brand              string   `json:"brand"`
	ProductType        string   `json:"product_type"`
	ImpersonatedEntity string   `json:"impersonated_entity"`
	EvidenceLinks      []string `json:"evidence_links"`
	OtherDetails       string   `json:"other_details"`
}

// Normalized is a validated submission ready for persistence.
type Normalized struct {
	Platform        string
	ReportType      string
	AccountPageName string
	InfringingURLs  []string
	Description     *string
	Payload         Payload
}

// Validate checks a submission against the schema for its report type and
// normalizes it. On failure the returned FieldErrors is non-empty and the
// Normalized result is nil; nothing reaches the persistence layer.
func Validate(sub Submission) (*Normalized, FieldErrors) {
	errs := FieldErrors{}

	if !validPlatforms[sub.Platform] {
		errs.add("platform", "Select a platform")
	}
	if !validReportTypes[sub.ReportType] {
		errs.add("report_type", "Select a report type")
	}

	accountPageName := strings.TrimSpace(sub.AccountPageName)
	if len(accountPageName) < 2 {
		errs.add("account_page_name", "Account/Page name is required")
	}

	urls := validateInfringingURLs(sub.InfringingURLs, errs)

	description := strings.TrimSpace(sub.Description)
	if len(description) > MaxDescriptionLen {
		errs.add("description", "Description must be 2000 characters or fewer")
	}

	var payload Payload
	switch sub.ReportType {
	case models.ReportTypeCopyright:
		payload = validateCopyright(sub, errs)
	case models.ReportTypeTrademark:
		payload = validateTrademark(sub, errs)
	case models.ReportTypeCounterfeit:
		payload = validateCounterfeit(sub, errs)
	case models.ReportTypeImpersonator:
		payload = validateImpersonator(sub, errs)
	case models.ReportTypeOther:
		payload = validateOther(sub, errs)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Normalized{
		Platform:        sub.Platform,
		ReportType:      sub.ReportType,
		AccountPageName: accountPageName,
		InfringingURLs:  urls,
		Description:     optional(description),
		Payload:         payload,
	}, nil
}

func validateInfringingURLs(raw []string, errs FieldErrors) []string {
	urls := make([]string, 0, len(raw))
	for i, u := range raw {
		trimmed := strings.TrimSpace(u)
		if trimmed == "" {
			continue
		}
		if !isAbsoluteURL(trimmed) {
			errs.add("infringing_urls."+strconv.Itoa(i), "Enter a valid URL")
			continue
		}
		urls = append(urls, trimmed)
	}
	if len(urls) < MinInfringingURLs {
		errs.add("infringing_urls", "Add at least one URL")
	}
	if len(urls) > MaxInfringingURLs {
		errs.add("infringing_urls", "Limit 50 URLs")
	}
	return urls
}

func validateCopyright(sub Submission, errs FieldErrors) Payload {
	if len(strings.TrimSpace(sub.WorkDescription)) < 2 {
		errs.add("work_description", "Describe the work")
	}
	return CopyrightPayload{
		WorkDescription: strings.TrimSpace(sub.WorkDescription),
		ProofLinks:      validateLinkList(sub.ProofLinks, "proof_links", errs),
	}
}

func validateTrademark(sub Submission, errs FieldErrors) Payload {
	if len(strings.TrimSpace(sub.TrademarkName)) < 2 {
		errs.add("trademark_name", "Trademark name required")
	}
	return TrademarkPayload{
		TrademarkName:      strings.TrimSpace(sub.TrademarkName),
		RegistrationNumber: optional(strings.TrimSpace(sub.RegistrationNumber)),
		Jurisdiction:       optional(strings.TrimSpace(sub.Jurisdiction)),
	}
}

func validateCounterfeit(sub Submission, errs FieldErrors) Payload {
	if len(strings.TrimSpace(sub.Brand)) < 2 {
		errs.add("brand", "Brand required")
	}
	return CounterfeitPayload{
		Brand:       strings.TrimSpace(sub.Brand),
		ProductType: optional(strings.TrimSpace(sub.ProductType)),
	}
}

func validateImpersonator(sub Submission, errs FieldErrors) Payload {
	if len(strings.TrimSpace(sub.ImpersonatedEntity)) < 2 {
		errs.add("impersonated_entity", "Entity required")
	}
	return ImpersonatorPayload{
		ImpersonatedEntity: strings.TrimSpace(sub.ImpersonatedEntity),
		EvidenceLinks:      validateLinkList(sub.EvidenceLinks, "evidence_links", errs),
	}
}

func validateOther(sub Submission, errs FieldErrors) Payload {
	if len(strings.TrimSpace(sub.OtherDetails)) < 2 {
		errs.add("other_details", "Please describe the issue")
	}
	return OtherPayload{OtherDetails: strings.TrimSpace(sub.OtherDetails)}
}

// validateLinkList strips blank entries and requires the rest to be absolute
// URLs. The result is never nil so empty lists serialize as [].
func validateLinkList(raw []string, field string, errs FieldErrors) []string {
	links := make([]string, 0, len(raw))
	for i, link := range raw {
		trimmed := strings.TrimSpace(link)
		if trimmed == "" {
			continue
		}
		if !isAbsoluteURL(trimmed) {
			errs.add(field+"."+strconv.Itoa(i), "Enter a valid URL")
			continue
		}
		links = append(links, trimmed)
	}
	return links
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
