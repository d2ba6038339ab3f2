// utils/ics.go
package utils

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"soulpatterns-backend/models"
)

// AppointmentICS renders one appointment as an iCalendar file the artist
// can import into a phone calendar. Sessions are blocked out for two hours.
func AppointmentICS(app models.Appointment) (string, error) {
	start, err := time.ParseInLocation(
		models.DateLayout+" "+models.TimeLayout,
		app.Date+" "+app.Time,
		time.Local,
	)
	if err != nil {
		return "", fmt.Errorf("appointment %s has an invalid slot: %w", app.ID, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	event := cal.AddEvent("appointment-" + app.ID + "@soulpatterns")
	event.SetCreatedTime(time.Now())
	event.SetStartAt(start)
	event.SetEndAt(start.Add(2 * time.Hour))
	event.SetSummary(fmt.Sprintf("Tattoo: %s", app.ClientName))
	event.SetDescription(app.Description)
	if app.Phone != "" {
		event.SetLocation("Client phone: " + app.Phone)
	}

	return cal.Serialize(), nil
}
