package reminders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	renewal := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	subject := Subject{
		FullName:     "Asha",
		PolicyNumber: "POL123",
		RenewalDate:  &renewal,
	}

	t.Run("all fields present", func(t *testing.T) {
		got := RenderTemplate(
			"Hi {name}, your policy {policy_number} renews on {renewal_date}",
			subject, time.UTC,
		)
		assert.Equal(t, "Hi Asha, your policy POL123 renews on June 1, 2025", got)
	})

	t.Run("missing field leaves the literal token", func(t *testing.T) {
		noPolicy := subject
		noPolicy.PolicyNumber = ""
		got := RenderTemplate(
			"Hi {name}, your policy {policy_number} renews on {renewal_date}",
			noPolicy, time.UTC,
		)
		assert.Equal(t, "Hi Asha, your policy {policy_number} renews on June 1, 2025", got)
	})

	t.Run("repeated token is replaced once", func(t *testing.T) {
		got := RenderTemplate("{name} and {name}", subject, time.UTC)
		assert.Equal(t, "Asha and {name}", got)
	})

	t.Run("appointment date carries time of day", func(t *testing.T) {
		appt := time.Date(2025, time.April, 3, 14, 30, 0, 0, time.UTC)
		s := Subject{FullName: "Asha", AppointmentDate: &appt}
		got := RenderTemplate("See you on {appointment_date}", s, time.UTC)
		assert.Equal(t, "See you on April 3, 2025 2:30 PM", got)
	})

	t.Run("dates render in the viewer's timezone", func(t *testing.T) {
		ist := time.FixedZone("IST", 5*3600+1800)
		// 2025-06-01T20:00Z is already June 2 in IST.
		late := time.Date(2025, time.June, 1, 20, 0, 0, 0, time.UTC)
		s := Subject{Anniversary: &late}
		got := RenderTemplate("{anniversary}", s, ist)
		assert.Equal(t, "June 2, 2025", got)
	})
}
