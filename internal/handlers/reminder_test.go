package handlers

import (
	"testing"

	"saarthi/internal/models"
	"saarthi/internal/reminders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsappURL(t *testing.T) {
	url := whatsappURL("+91 98765-43210", "Hi Asha, your policy renews soon")
	assert.Equal(t, "https://wa.me/919876543210?text=Hi+Asha%2C+your+policy+renews+soon", url)

	// No digits means no link
	assert.Empty(t, whatsappURL("", "Hello"))
	assert.Empty(t, whatsappURL("n/a", "Hello"))
}

func TestWorklistSourceDefaults(t *testing.T) {
	source, err := worklistSource("", reminders.CategoryRenewal)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderSourceCustomer, source)

	source, err = worklistSource("", reminders.CategoryNurturing)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderSourceLead, source)

	source, err = worklistSource("", reminders.CategoryBirthday)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderSourceLead, source)
}

func TestWorklistSourceRejectsMismatches(t *testing.T) {
	_, err := worklistSource("lead", reminders.CategoryRenewal)
	assert.Error(t, err)

	_, err = worklistSource("customer", reminders.CategoryNurturing)
	assert.Error(t, err)

	_, err = worklistSource("advisor", reminders.CategoryBirthday)
	assert.Error(t, err)
}

func TestWorklistSourceExplicit(t *testing.T) {
	source, err := worklistSource("customer", reminders.CategoryAnniversary)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderSourceCustomer, source)

	source, err = worklistSource("lead", reminders.CategoryBirthday)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderSourceLead, source)
}

func TestDefaultTemplatesCoverEveryCategory(t *testing.T) {
	for _, category := range reminders.Categories {
		assert.NotEmpty(t, defaultTemplates[category], string(category))
	}
}
