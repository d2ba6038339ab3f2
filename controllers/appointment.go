package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"soulpatterns-backend/cache"
	"soulpatterns-backend/models"
	"soulpatterns-backend/repositories"
	"soulpatterns-backend/store"
	"soulpatterns-backend/utils"
)

// AppointmentInput defines the expected JSON structure for creating or
// editing an appointment
type AppointmentInput struct {
	ID          string `json:"id"`
	ClientName  string `json:"clientName" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
}

// AppointmentController serves the agenda view.
type AppointmentController struct {
	repo   *repositories.AppointmentRepository
	mirror *cache.Mirror[models.Appointment]
}

func NewAppointmentController(storage *store.StorageContext) (*AppointmentController, error) {
	repo := repositories.NewAppointmentRepository(storage)
	mirror, err := cache.NewMirror(context.Background(), repo.List, storage.Bus)
	if err != nil {
		return nil, err
	}
	return &AppointmentController{repo: repo, mirror: mirror}, nil
}

// GetAppointments returns the agenda. With ?date=YYYY-MM-DD it returns only
// that day, sorted by time; duplicate slots are allowed and kept.
func (ac *AppointmentController) GetAppointments(c *gin.Context) {
	apps := ac.mirror.Items()

	if date := c.Query("date"); date != "" {
		day := apps[:0:0]
		for _, app := range apps {
			if app.Date == date {
				day = append(day, app)
			}
		}
		sort.Slice(day, func(i, j int) bool { return day[i].Time < day[j].Time })
		c.JSON(http.StatusOK, day)
		return
	}

	c.JSON(http.StatusOK, apps)
}

// SaveAppointment creates a new appointment, generating a time-based id
// when the client did not supply one.
func (ac *AppointmentController) SaveAppointment(c *gin.Context) {
	var input AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.ID == "" {
		input.ID = models.NewAppointmentID()
	}
	ac.upsert(c, input)
}

// UpdateAppointment replaces the appointment at the path id. Saving an id
// that does not exist creates it: create and edit are one put operation.
func (ac *AppointmentController) UpdateAppointment(c *gin.Context) {
	var input AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	input.ID = c.Param("id")
	ac.upsert(c, input)
}

func (ac *AppointmentController) upsert(c *gin.Context, input AppointmentInput) {
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if _, err := time.Parse(models.DateLayout, input.Date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse(models.TimeLayout, input.Time); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time, expected HH:MM")
		return
	}

	app := models.Appointment{
		ID:          input.ID,
		ClientName:  input.ClientName,
		Phone:       input.Phone,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
	}

	if err := ac.repo.Save(c.Request.Context(), app); err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	ac.mirror.Upsert(app, func(existing models.Appointment) bool { return existing.ID == app.ID })
	c.JSON(http.StatusOK, app)
}

// DeleteAppointment removes by id; a missing id still succeeds.
func (ac *AppointmentController) DeleteAppointment(c *gin.Context) {
	id := c.Param("id")
	if err := ac.repo.Remove(c.Request.Context(), id); err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	ac.mirror.Drop(func(app models.Appointment) bool { return app.ID == id })
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

// DownloadICS exports one appointment as a calendar file.
func (ac *AppointmentController) DownloadICS(c *gin.Context) {
	app, err := ac.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithStoreError(c, err)
		}
		return
	}

	ical, err := utils.AppointmentICS(app)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=appointment-%s.ics", app.ID))
	c.Data(http.StatusOK, "text/calendar", []byte(ical))
}

// Close releases the view's mirror.
func (ac *AppointmentController) Close() {
	ac.mirror.Close()
}
