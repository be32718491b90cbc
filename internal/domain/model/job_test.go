package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() *CreateJobRequest {
	return &CreateJobRequest{
		ExternalID: "j1",
		Platform:   PlatformLinkedIn,
		URL:        "https://linkedin.com/jobs/j1",
		Title:      "Engineer",
		Company:    "Acme",
		Location:   "Remote",
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in     string
		want   Platform
		wantOK bool
	}{
		{"linkedin", PlatformLinkedIn, true},
		{"  SEEK ", PlatformSeek, true},
		{"Indeed", PlatformIndeed, true},
		{"gumtree", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePlatform(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlatform_Domain(t *testing.T) {
	assert.Equal(t, "linkedin.com", PlatformLinkedIn.Domain())
	assert.Equal(t, "seek.com.au", PlatformSeek.Domain())
	assert.Equal(t, "indeed.com", PlatformIndeed.Domain())
	assert.Empty(t, Platform("gumtree").Domain())
}

func TestCreateJobRequest_Validate(t *testing.T) {
	t.Run("valid minimal request", func(t *testing.T) {
		require.NoError(t, validCreateRequest().Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		req := validCreateRequest()
		req.Title = ""
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
	})

	t.Run("malformed url", func(t *testing.T) {
		req := validCreateRequest()
		req.URL = "not-a-url"
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "url")
	})

	t.Run("unsupported platform", func(t *testing.T) {
		req := validCreateRequest()
		req.Platform = "gumtree"
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid platform 'gumtree'")
	})

	t.Run("blank skill rejected", func(t *testing.T) {
		req := validCreateRequest()
		req.Skills = []string{"go", "  "}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "skill")
	})

	t.Run("empty skills list accepted", func(t *testing.T) {
		req := validCreateRequest()
		req.Skills = []string{}
		require.NoError(t, req.Validate())
	})
}

func TestSalaryRange_Validate(t *testing.T) {
	min, max := 100000.0, 150000.0

	tests := []struct {
		name    string
		in      SalaryRange
		wantErr string
	}{
		{"valid", SalaryRange{Min: &min, Max: &max, Currency: "AUD"}, ""},
		{"equal bounds", SalaryRange{Min: &max, Max: &max, Currency: "AUD"}, ""},
		{"missing min", SalaryRange{Max: &max, Currency: "AUD"}, "'min' must be numeric"},
		{"missing max", SalaryRange{Min: &min, Currency: "AUD"}, "'max' must be numeric"},
		{"min above max", SalaryRange{Min: &max, Max: &min, Currency: "AUD"}, "'min' cannot exceed 'max'"},
		{"blank currency", SalaryRange{Min: &min, Max: &max, Currency: " "}, "'currency' must be a non-empty string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUpdateJobRequest_HasUpdates(t *testing.T) {
	var req UpdateJobRequest
	assert.False(t, req.HasUpdates())

	title := "Senior Engineer"
	req.Title = &title
	assert.True(t, req.HasUpdates())

	req = UpdateJobRequest{Skills: []string{}}
	assert.True(t, req.HasUpdates())
}

func TestUpdateJobRequest_Validate(t *testing.T) {
	t.Run("empty update is valid at the schema level", func(t *testing.T) {
		var req UpdateJobRequest
		require.NoError(t, req.Validate())
	})

	t.Run("empty title rejected", func(t *testing.T) {
		title := ""
		req := UpdateJobRequest{Title: &title}
		require.Error(t, req.Validate())
	})

	t.Run("invalid platform rejected", func(t *testing.T) {
		p := Platform("gumtree")
		req := UpdateJobRequest{Platform: &p}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid platform")
	})
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 9)

	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-09"`, string(b))

	var parsed Date
	require.NoError(t, parsed.UnmarshalJSON(b))
	assert.True(t, parsed.Equal(d.Time))
}

func TestDate_After(t *testing.T) {
	yesterday := NewDate(2026, time.March, 8)
	today := NewDate(2026, time.March, 9)

	assert.True(t, today.After(yesterday))
	assert.False(t, yesterday.After(today))
	assert.False(t, today.After(today))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, time.March, 9, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2026-03-09", d.String())

	var fromStr Date
	require.NoError(t, fromStr.Scan("2026-03-09"))
	assert.Equal(t, "2026-03-09", fromStr.String())

	assert.Error(t, d.Scan(42))
}
