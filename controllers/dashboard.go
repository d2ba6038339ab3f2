package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"soulpatterns-backend/models"
	"soulpatterns-backend/repositories"
	"soulpatterns-backend/services"
	"soulpatterns-backend/store"
	"soulpatterns-backend/utils"
)

// DashboardController composes the home view: today's agenda, the next few
// days, the revenue snapshot and quick counts. It reads the store fresh on
// every call instead of keeping mirrors, the dashboard is a read-only
// roll-up of the other views' collections.
type DashboardController struct {
	appointments *repositories.AppointmentRepository
	sales        *repositories.SaleRepository
	gallery      *repositories.GalleryRepository
}

func NewDashboardController(storage *store.StorageContext) *DashboardController {
	return &DashboardController{
		appointments: repositories.NewAppointmentRepository(storage),
		sales:        repositories.NewSaleRepository(storage),
		gallery:      repositories.NewGalleryRepository(storage),
	}
}

// GetDashboardOverview returns the combined studio overview.
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()
	today := now.Format(models.DateLayout)
	weekAhead := now.AddDate(0, 0, 7).Format(models.DateLayout)

	apps, err := dc.appointments.List(ctx)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	todayApps := make([]models.Appointment, 0)
	upcoming := make([]models.Appointment, 0)
	for _, app := range apps {
		switch {
		case app.Date == today:
			todayApps = append(todayApps, app)
		case app.Date > today && app.Date <= weekAhead:
			upcoming = append(upcoming, app)
		}
	}
	sort.Slice(todayApps, func(i, j int) bool { return todayApps[i].Time < todayApps[j].Time })
	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].Time < upcoming[j].Time
	})
	if len(upcoming) > 7 {
		upcoming = upcoming[:7]
	}

	sales, err := dc.sales.List(ctx)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	gallery, err := dc.gallery.List(ctx)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"todayAppointments":    todayApps,
		"upcomingAppointments": upcoming,
		"revenue":              services.SummarizeSales(sales, now),
		"totalClients":         len(models.DeriveClients(apps)),
		"galleryCount":         len(gallery),
	})
}
