package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulpatterns-backend/models"
	"soulpatterns-backend/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestStore(t *testing.T) *store.StorageContext {
	t.Helper()
	storage, err := store.Open(filepath.Join(t.TempDir(), "studio.db"))
	require.NoError(t, err)
	return storage
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func galleryRouter(t *testing.T, storage *store.StorageContext) (*gin.Engine, *GalleryController) {
	t.Helper()
	gc, err := NewGalleryController(storage)
	require.NoError(t, err)
	t.Cleanup(gc.Close)

	r := gin.New()
	r.GET("/api/gallery", gc.GetGallery)
	r.POST("/api/gallery", gc.AddGalleryItem)
	r.DELETE("/api/gallery/:id", gc.DeleteGalleryItem)
	return r, gc
}

func TestGalleryEndpoints(t *testing.T) {
	r, _ := galleryRouter(t, newTestStore(t))

	w := doJSON(t, r, http.MethodPost, "/api/gallery", gin.H{"image": "data:image/png;base64,AAAA"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/gallery", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]models.GalleryItem](t, w)
	require.Len(t, items, 1)

	w = doJSON(t, r, http.MethodDelete, "/api/gallery/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	// Deleting again is a no-op, never an error.
	w = doJSON(t, r, http.MethodDelete, "/api/gallery/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/gallery", nil)
	assert.Empty(t, decode[[]models.GalleryItem](t, w))
}

func TestGalleryAcceptsEmptyImage(t *testing.T) {
	// A failed generation still produced "something"; the repository does
	// not second-guess the payload.
	r, _ := galleryRouter(t, newTestStore(t))

	w := doJSON(t, r, http.MethodPost, "/api/gallery", gin.H{"image": ""})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func appointmentRouter(t *testing.T, storage *store.StorageContext) *gin.Engine {
	t.Helper()
	ac, err := NewAppointmentController(storage)
	require.NoError(t, err)
	t.Cleanup(ac.Close)

	r := gin.New()
	r.GET("/api/appointments", ac.GetAppointments)
	r.POST("/api/appointments", ac.SaveAppointment)
	r.PUT("/api/appointments/:id", ac.UpdateAppointment)
	r.DELETE("/api/appointments/:id", ac.DeleteAppointment)
	return r
}

func TestAppointmentUpsertViaPut(t *testing.T) {
	r := appointmentRouter(t, newTestStore(t))

	create := gin.H{"id": "abc", "clientName": "Ana", "phone": "+573001112233", "description": "Rose", "date": "2024-03-01", "time": "10:00"}
	w := doJSON(t, r, http.MethodPost, "/api/appointments", create)
	require.Equal(t, http.StatusOK, w.Code)

	update := gin.H{"clientName": "Ana", "phone": "+573001112233", "description": "Rose, forearm", "date": "2024-03-01", "time": "11:30"}
	w = doJSON(t, r, http.MethodPut, "/api/appointments/abc", update)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/appointments", nil)
	apps := decode[[]models.Appointment](t, w)
	require.Len(t, apps, 1, "upsert replaces in place")
	assert.Equal(t, "11:30", apps[0].Time)
	assert.Equal(t, "Rose, forearm", apps[0].Description)
}

func TestAppointmentValidation(t *testing.T) {
	r := appointmentRouter(t, newTestStore(t))

	bad := gin.H{"clientName": "Ana", "phone": "not-a-phone", "date": "2024-03-01", "time": "10:00"}
	w := doJSON(t, r, http.MethodPost, "/api/appointments", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bad = gin.H{"clientName": "Ana", "phone": "+573001112233", "date": "01/03/2024", "time": "10:00"}
	w = doJSON(t, r, http.MethodPost, "/api/appointments", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAppointmentsByDateSorted(t *testing.T) {
	r := appointmentRouter(t, newTestStore(t))

	for _, app := range []gin.H{
		{"id": "1", "clientName": "Ana", "phone": "+573001112233", "date": "2024-03-01", "time": "16:00"},
		{"id": "2", "clientName": "Bea", "phone": "+573001112244", "date": "2024-03-01", "time": "09:30"},
		{"id": "3", "clientName": "Cleo", "phone": "+573001112255", "date": "2024-03-02", "time": "08:00"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/appointments", app)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/appointments?date=2024-03-01", nil)
	apps := decode[[]models.Appointment](t, w)
	require.Len(t, apps, 2)
	assert.Equal(t, "09:30", apps[0].Time)
	assert.Equal(t, "16:00", apps[1].Time)
}

func TestClientsDerivedAcrossViews(t *testing.T) {
	// The agenda view writes appointments; the clients view, mounted on
	// its own mirror, must converge on the derived client set.
	storage := newTestStore(t)
	appointments := appointmentRouter(t, storage)

	cc, err := NewClientController(storage)
	require.NoError(t, err)
	t.Cleanup(cc.Close)
	clients := gin.New()
	clients.GET("/api/clients", cc.GetClients)

	for _, app := range []gin.H{
		{"id": "1", "clientName": "Ana", "phone": "+57555", "date": "2024-03-01", "time": "10:00"},
		{"id": "2", "clientName": "Ana2", "phone": "+57555", "date": "2024-04-01", "time": "10:00"},
		{"id": "3", "clientName": "Bea", "phone": "+57777", "date": "2024-03-15", "time": "12:00"},
	} {
		w := doJSON(t, appointments, http.MethodPost, "/api/appointments", app)
		require.Equal(t, http.StatusOK, w.Code)
	}

	require.Eventually(t, func() bool {
		w := doJSON(t, clients, http.MethodGet, "/api/clients", nil)
		return len(decode[[]models.Client](t, w)) == 2
	}, 2*time.Second, 10*time.Millisecond)

	w := doJSON(t, clients, http.MethodGet, "/api/clients", nil)
	derived := decode[[]models.Client](t, w)
	byPhone := make(map[string]string)
	for _, client := range derived {
		byPhone[client.Phone] = client.Name
	}
	assert.Equal(t, "Ana", byPhone["+57555"], "first-seen name wins")
	assert.Equal(t, "Bea", byPhone["+57777"])
}

func TestSalesEndpoints(t *testing.T) {
	storage := newTestStore(t)
	sc, err := NewSaleController(storage)
	require.NoError(t, err)
	t.Cleanup(sc.Close)

	// Pin "today" so the summary is deterministic.
	today, err := time.Parse(models.DateLayout, "2024-01-08")
	require.NoError(t, err)
	sc.now = func() time.Time { return today }

	r := gin.New()
	r.GET("/api/sales", sc.GetSales)
	r.POST("/api/sales", sc.CreateSale)
	r.GET("/api/sales/summary", sc.GetSummary)
	r.GET("/api/sales/chart", sc.GetChart)

	w := doJSON(t, r, http.MethodPost, "/api/sales", gin.H{"amount": -5, "date": "2024-01-08"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/sales", gin.H{"amount": 200, "date": "2024-01-08"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/sales/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[map[string]float64](t, w)
	assert.EqualValues(t, 200, summary["today"])
	assert.EqualValues(t, 200, summary["week"])
	assert.EqualValues(t, 200, summary["month"])

	w = doJSON(t, r, http.MethodGet, "/api/sales/chart?timeframe=quarter", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/sales/chart?timeframe=month", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDesignEndpointsUnavailableWithoutKey(t *testing.T) {
	dc := NewDesignController(nil)
	r := gin.New()
	r.POST("/api/designs/generate", dc.GenerateDesign)

	w := doJSON(t, r, http.MethodPost, "/api/designs/generate", gin.H{"prompt": "a koi fish"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDashboardOverview(t *testing.T) {
	storage := newTestStore(t)
	appointments := appointmentRouter(t, storage)

	today := time.Now().Format(models.DateLayout)
	w := doJSON(t, appointments, http.MethodPost, "/api/appointments",
		gin.H{"id": "1", "clientName": "Ana", "phone": "+57555", "date": today, "time": "10:00"})
	require.Equal(t, http.StatusOK, w.Code)

	dash := NewDashboardController(storage)
	r := gin.New()
	r.GET("/api/dashboard", dash.GetDashboardOverview)

	w = doJSON(t, r, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, body["totalClients"])
	assert.Len(t, body["todayAppointments"], 1)
	assert.EqualValues(t, 0, body["galleryCount"])
}
