package controllers

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"soulpatterns-backend/cache"
	"soulpatterns-backend/models"
	"soulpatterns-backend/repositories"
	"soulpatterns-backend/store"
	"soulpatterns-backend/utils"
)

// ClientController serves the derived client list. Clients are never
// stored: they are the distinct phones across all appointments, so this
// view keeps its own mirror of the appointment collection.
type ClientController struct {
	repo   *repositories.AppointmentRepository
	mirror *cache.Mirror[models.Appointment]
}

func NewClientController(storage *store.StorageContext) (*ClientController, error) {
	repo := repositories.NewAppointmentRepository(storage)
	mirror, err := cache.NewMirror(context.Background(), repo.List, storage.Bus)
	if err != nil {
		return nil, err
	}
	return &ClientController{repo: repo, mirror: mirror}, nil
}

// GetClients returns the client list, optionally filtered by a name search.
func (cc *ClientController) GetClients(c *gin.Context) {
	clients := models.DeriveClients(cc.mirror.Items())

	if q := strings.ToLower(c.Query("q")); q != "" {
		filtered := clients[:0:0]
		for _, client := range clients {
			if strings.Contains(strings.ToLower(client.Name), q) {
				filtered = append(filtered, client)
			}
		}
		clients = filtered
	}

	c.JSON(http.StatusOK, clients)
}

// GetClientHistory returns a client's appointments, newest first.
func (cc *ClientController) GetClientHistory(c *gin.Context) {
	apps, err := cc.repo.ListByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	sort.Slice(apps, func(i, j int) bool {
		if apps[i].Date != apps[j].Date {
			return apps[i].Date > apps[j].Date
		}
		return apps[i].Time > apps[j].Time
	})

	c.JSON(http.StatusOK, apps)
}

// Close releases the view's mirror.
func (cc *ClientController) Close() {
	cc.mirror.Close()
}
