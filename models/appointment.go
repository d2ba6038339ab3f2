package models

import (
	"strconv"
	"time"
)

// Layouts for the calendar fields. Dates and times are stored as plain
// strings so that lexicographic order matches chronological order.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Appointment struct {
	ID          string `gorm:"primaryKey" json:"id"`
	ClientName  string `gorm:"not null" json:"clientName"`
	Phone       string `gorm:"not null;index" json:"phone"`
	Description string `json:"description"`
	Date        string `gorm:"not null;index" json:"date"` // YYYY-MM-DD
	Time        string `gorm:"not null" json:"time"`       // HH:MM
}

// NewAppointmentID returns a time-based id for a freshly created
// appointment, matching the ids the client app generates itself.
func NewAppointmentID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
