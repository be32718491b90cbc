//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Platform identifies the source site a listing was scraped from.
type Platform string

const (
	PlatformLinkedIn Platform = "linkedin"
	PlatformSeek     Platform = "seek"
	PlatformIndeed   Platform = "indeed"
)

// platformDomains maps each platform to the root domain its listing URLs must live under.
var platformDomains = map[Platform]string{
	PlatformLinkedIn: "linkedin.com",
	PlatformSeek:     "seek.com.au",
	PlatformIndeed:   "indeed.com",
}

// Valid reports whether the platform is one of the supported sources.
func (p Platform) Valid() bool {
	_, ok := platformDomains[p]
	return ok
}

// Domain returns the root domain for the platform, or empty when unsupported.
func (p Platform) Domain() string {
	return platformDomains[p]
}

// ParsePlatform normalizes a platform string and reports whether it is supported.
func ParsePlatform(value string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(value)))
	if p.Valid() {
		return p, true
	}
	return "", false
}

// AllowedPlatforms returns the supported platform names in stable order for error messages.
func AllowedPlatforms() string {
	return strings.Join([]string{
		string(PlatformIndeed),
		string(PlatformLinkedIn),
		string(PlatformSeek),
	}, ", ")
}

// SalaryRange describes the advertised salary bounds for a listing.
// Min, Max, and Currency are all required when the object is present.
type SalaryRange struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Currency string   `json:"currency"`
}

// Validate checks structural requirements on a salary range.
func (s *SalaryRange) Validate() error {
	if s.Min == nil {
		return errors.New("invalid salary_range payload: 'min' must be numeric")
	}
	if s.Max == nil {
		return errors.New("invalid salary_range payload: 'max' must be numeric")
	}
	if *s.Min > *s.Max {
		return errors.New("invalid salary_range payload: 'min' cannot exceed 'max'")
	}
	if strings.TrimSpace(s.Currency) == "" {
		return errors.New("invalid salary_range payload: 'currency' must be a non-empty string")
	}
	return nil
}

// validateSkills checks that every provided skill is a non-empty string.
func validateSkills(skills []string) error {
	for _, skill := range skills {
		if strings.TrimSpace(skill) == "" {
			return errors.New("invalid skills payload: each skill must be a non-empty string")
		}
	}
	return nil
}

// Job represents one scraped job listing.
type Job struct {
	ID               int64        `json:"id"                          db:"id"`
	ExternalID       string       `json:"external_id"                 db:"external_id"`
	Platform         Platform     `json:"platform"                    db:"platform"`
	URL              string       `json:"url"                         db:"url"`
	Title            string       `json:"title"                       db:"title"`
	Company          string       `json:"company"                     db:"company"`
	Location         string       `json:"location"                    db:"location"`
	JobType          *string      `json:"job_type"                    db:"job_type"`
	DescriptionShort *string      `json:"description_short"           db:"description_short"`
	DescriptionFull  *string      `json:"description_full"            db:"description_full"`
	PostedDate       *Date        `json:"posted_date"                 db:"posted_date"`
	ScrapedAt        time.Time    `json:"scraped_at"                  db:"scraped_at"`
	IsActive         bool         `json:"is_active"                   db:"is_active"`
	Skills           []string     `json:"skills"                      db:"skills"`
	SalaryRange      *SalaryRange `json:"salary_range"                db:"salary_range"`
	CreatedAt        time.Time    `json:"created_at"                  db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"                  db:"updated_at"`
}

// validate is shared across request validation; the instance is concurrency safe.
var validate = newValidator()

// newValidator builds the validator with json tag names so messages reference
// wire field names rather than Go identifiers.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateJobRequest represents parameters to create a Job.
type CreateJobRequest struct {
	ExternalID       string       `json:"external_id"                 validate:"required,max=255"`
	Platform         Platform     `json:"platform"                    validate:"required,max=20"`
	URL              string       `json:"url"                         validate:"required,url"`
	Title            string       `json:"title"                       validate:"required,max=500"`
	Company          string       `json:"company"                     validate:"required,max=255"`
	Location         string       `json:"location"                    validate:"required,max=255"`
	JobType          *string      `json:"job_type,omitempty"          validate:"omitempty,max=50"`
	DescriptionShort *string      `json:"description_short,omitempty"`
	DescriptionFull  *string      `json:"description_full,omitempty"`
	PostedDate       *Date        `json:"posted_date,omitempty"`
	ScrapedAt        *time.Time   `json:"scraped_at,omitempty"`
	IsActive         *bool        `json:"is_active,omitempty"`
	Skills           []string     `json:"skills,omitempty"`
	SalaryRange      *SalaryRange `json:"salary_range,omitempty"`
}

// Validate validates CreateJobRequest field constraints. Business rules
// (platform/URL pairing, posted_date bounds) live in the service layer.
func (r *CreateJobRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return normalizeValidatorError(err)
	}
	if !r.Platform.Valid() {
		return fmt.Errorf("invalid platform '%s': allowed values: %s", r.Platform, AllowedPlatforms())
	}
	if r.Skills != nil {
		if err := validateSkills(r.Skills); err != nil {
			return err
		}
	}
	if r.SalaryRange != nil {
		if err := r.SalaryRange.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UpdateJobRequest represents a partial update to a Job. Only non-nil fields
// are applied.
type UpdateJobRequest struct {
	ExternalID       *string      `json:"external_id,omitempty"       validate:"omitempty,min=1,max=255"`
	Platform         *Platform    `json:"platform,omitempty"          validate:"omitempty,max=20"`
	URL              *string      `json:"url,omitempty"               validate:"omitempty,url"`
	Title            *string      `json:"title,omitempty"             validate:"omitempty,min=1,max=500"`
	Company          *string      `json:"company,omitempty"           validate:"omitempty,min=1,max=255"`
	Location         *string      `json:"location,omitempty"          validate:"omitempty,min=1,max=255"`
	JobType          *string      `json:"job_type,omitempty"          validate:"omitempty,max=50"`
	DescriptionShort *string      `json:"description_short,omitempty"`
	DescriptionFull  *string      `json:"description_full,omitempty"`
	PostedDate       *Date        `json:"posted_date,omitempty"`
	ScrapedAt        *time.Time   `json:"scraped_at,omitempty"`
	IsActive         *bool        `json:"is_active,omitempty"`
	Skills           []string     `json:"skills,omitempty"`
	SalaryRange      *SalaryRange `json:"salary_range,omitempty"`
}

// Validate validates UpdateJobRequest field constraints.
func (r *UpdateJobRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return normalizeValidatorError(err)
	}
	if r.Platform != nil && !r.Platform.Valid() {
		return fmt.Errorf("invalid platform '%s': allowed values: %s", *r.Platform, AllowedPlatforms())
	}
	if r.Skills != nil {
		if err := validateSkills(r.Skills); err != nil {
			return err
		}
	}
	if r.SalaryRange != nil {
		if err := r.SalaryRange.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateJobRequest.
func (r *UpdateJobRequest) HasUpdates() bool {
	return r.ExternalID != nil || r.Platform != nil || r.URL != nil || r.Title != nil ||
		r.Company != nil || r.Location != nil || r.JobType != nil ||
		r.DescriptionShort != nil || r.DescriptionFull != nil || r.PostedDate != nil ||
		r.ScrapedAt != nil || r.IsActive != nil || r.Skills != nil || r.SalaryRange != nil
}

// normalizeValidatorError turns go-playground field errors into a single
// readable message naming the first offending field.
func normalizeValidatorError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required and cannot be empty", field)
	case "url":
		return fmt.Errorf("%s must be a valid URL", field)
	case "max":
		return fmt.Errorf("%s cannot exceed %s characters", field, fe.Param())
	case "min":
		return fmt.Errorf("%s cannot be empty", field)
	default:
		return fmt.Errorf("%s is invalid", field)
	}
}

// JobsListOptions controls paging and filtering for listing jobs.
// Results are always ordered by descending id (newest first).
type JobsListOptions struct {
	Skip     int
	Limit    int
	Platform *Platform // exact match when set
	IsActive bool      // always applied
}
