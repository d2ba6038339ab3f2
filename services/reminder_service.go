// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"soulpatterns-backend/config"
	"soulpatterns-backend/models"
	"soulpatterns-backend/repositories"
	"soulpatterns-backend/store"
)

// ReminderService sends each client a WhatsApp or SMS reminder the day
// before their appointment and logs every attempt.
type ReminderService struct {
	storage      *store.StorageContext
	appointments *repositories.AppointmentRepository
	client       *twilio.RestClient
	cfg          config.Config
	cron         *cron.Cron
}

func NewReminderService(storage *store.StorageContext, cfg config.Config) *ReminderService {
	return &ReminderService{
		storage:      storage,
		appointments: repositories.NewAppointmentRepository(storage),
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		cfg: cfg,
	}
}

// StartScheduler runs the daily reminder pass every morning at 9 AM.
func (s *ReminderService) StartScheduler() {
	s.cron = cron.New()
	s.cron.AddFunc("0 9 * * *", func() {
		s.SendDailyReminders(context.Background())
	})
	s.cron.Start()
	log.Println("Reminder scheduler started")
}

// Stop halts the scheduler. Running jobs finish on their own.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SendDailyReminders reminds every client with an appointment tomorrow,
// skipping appointments that already have a sent log entry.
func (s *ReminderService) SendDailyReminders(ctx context.Context) {
	log.Println("Starting daily reminder processing...")

	tomorrow := time.Now().AddDate(0, 0, 1).Format(models.DateLayout)
	apps, err := s.appointments.ListByDate(ctx, tomorrow)
	if err != nil {
		log.Printf("Failed to fetch tomorrow's appointments: %v", err)
		return
	}

	for _, app := range apps {
		if s.alreadySent(app.ID) {
			continue
		}
		s.sendReminder(app)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) alreadySent(appointmentID string) bool {
	var count int64
	err := s.storage.DB.Model(&models.ReminderLog{}).
		Where("appointment_id = ? AND status = ?", appointmentID, "sent").
		Count(&count).Error
	if err != nil {
		log.Printf("Failed to check reminder log for %s: %v", appointmentID, err)
		return false
	}
	return count > 0
}

func (s *ReminderService) sendReminder(app models.Appointment) {
	message := fmt.Sprintf("Hi %s! A reminder of your tattoo appointment tomorrow (%s) at %s. See you at the studio!",
		app.ClientName, app.Date, app.Time)

	// WhatsApp when the phone is in international format, plain SMS otherwise.
	channel := "sms"
	to := app.Phone
	from := s.cfg.TwilioPhoneNumber
	if strings.HasPrefix(app.Phone, "+") && s.cfg.TwilioWhatsAppNumber != "" {
		channel = "whatsapp"
		to = "whatsapp:" + app.Phone
		from = "whatsapp:" + s.cfg.TwilioWhatsAppNumber
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	status := "sent"
	errorMsg := ""
	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", app.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", app.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", app.Phone)
	}

	entry := models.ReminderLog{
		AppointmentID: app.ID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}
	if err := s.storage.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to log reminder for appointment %s: %v", app.ID, err)
	}
}
