package handlers

import (
	"testing"
	"time"

	"saarthi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvColumns(header ...string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	return columns
}

func TestLeadFromCSVRow(t *testing.T) {
	columns := csvColumns("full_name", "email", "phone_number", "date_of_birth", "lead_status", "coverage_amount")

	lead, err := leadFromCSVRow(7, columns, []string{"Asha Patel", "asha@example.com", "+91 98765 43210", "13/04/1990", "Hot Lead", "500000"})
	require.NoError(t, err)

	assert.Equal(t, uint(7), lead.AdvisorID)
	assert.Equal(t, "Asha Patel", lead.FullName)
	assert.Equal(t, "asha@example.com", lead.Email)
	assert.Equal(t, models.HotLead, lead.LeadStatus)
	assert.Equal(t, float64(500000), lead.CoverageAmount)
	require.NotNil(t, lead.DateOfBirth)
	assert.Equal(t, time.April, lead.DateOfBirth.Month())
	assert.Equal(t, 13, lead.DateOfBirth.Day())
	assert.Equal(t, 1990, lead.DateOfBirth.Year())
}

func TestLeadFromCSVRowShortRow(t *testing.T) {
	// Missing trailing cells read as empty, not as an index panic
	columns := csvColumns("full_name", "email", "phone_number")

	lead, err := leadFromCSVRow(1, columns, []string{"Ravi Kumar"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", lead.FullName)
	assert.Empty(t, lead.Email)
}

func TestLeadFromCSVRowRejectsBadRows(t *testing.T) {
	columns := csvColumns("full_name", "lead_status", "date_of_birth", "coverage_amount")

	_, err := leadFromCSVRow(1, columns, []string{"", "", "", ""})
	assert.Error(t, err, "missing name")

	_, err = leadFromCSVRow(1, columns, []string{"Asha Patel", "Very Hot", "", ""})
	assert.Error(t, err, "unknown status")

	_, err = leadFromCSVRow(1, columns, []string{"Asha Patel", "", "not-a-date", ""})
	assert.Error(t, err, "bad date")

	_, err = leadFromCSVRow(1, columns, []string{"Asha Patel", "", "", "-10"})
	assert.Error(t, err, "negative coverage")
}
