package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"soulpatterns-backend/config"
	"soulpatterns-backend/controllers"
	"soulpatterns-backend/services"
	"soulpatterns-backend/store"
)

// SetupRouter wires every view onto the shared StorageContext. The
// returned cleanup releases the controllers' mirrors.
func SetupRouter(storage *store.StorageContext, designer *services.DesignerService) (*gin.Engine, func(), error) {
	r := gin.Default()

	// The PWA is served from the same device; only local origins apply.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	galleryController, err := controllers.NewGalleryController(storage)
	if err != nil {
		return nil, nil, err
	}
	appointmentController, err := controllers.NewAppointmentController(storage)
	if err != nil {
		galleryController.Close()
		return nil, nil, err
	}
	saleController, err := controllers.NewSaleController(storage)
	if err != nil {
		galleryController.Close()
		appointmentController.Close()
		return nil, nil, err
	}
	clientController, err := controllers.NewClientController(storage)
	if err != nil {
		galleryController.Close()
		appointmentController.Close()
		saleController.Close()
		return nil, nil, err
	}
	designController := controllers.NewDesignController(designer)
	dashboardController := controllers.NewDashboardController(storage)

	cleanup := func() {
		galleryController.Close()
		appointmentController.Close()
		saleController.Close()
		clientController.Close()
	}

	api := r.Group("/api")
	{
		// Gallery routes
		gallery := api.Group("/gallery")
		{
			gallery.GET("", galleryController.GetGallery)
			gallery.POST("", galleryController.AddGalleryItem)
			gallery.DELETE("/:id", galleryController.DeleteGalleryItem)
			gallery.GET("/:id/pdf", galleryController.DownloadStencilPDF)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.GET("", appointmentController.GetAppointments)
			appointments.POST("", appointmentController.SaveAppointment)
			appointments.PUT("/:id", appointmentController.UpdateAppointment)
			appointments.DELETE("/:id", appointmentController.DeleteAppointment)
			appointments.GET("/:id/ics", appointmentController.DownloadICS)
		}

		// Sales routes
		sales := api.Group("/sales")
		{
			sales.GET("", saleController.GetSales)
			sales.POST("", saleController.CreateSale)
			sales.GET("/summary", saleController.GetSummary)
			sales.GET("/chart", saleController.GetChart)
		}

		// Client routes (derived from appointments)
		clients := api.Group("/clients")
		{
			clients.GET("", clientController.GetClients)
			clients.GET("/:phone/appointments", clientController.GetClientHistory)
		}

		// Generative design routes
		designs := api.Group("/designs")
		{
			designs.POST("/generate", designController.GenerateDesign)
			designs.POST("/trace", designController.CreateTrace)
			designs.POST("/tryon", designController.TryOn)
		}

		api.GET("/tips/today", designController.GetTipOfTheDay)
		api.POST("/assistant/chat", designController.Chat)

		// Dashboard routes
		api.GET("/dashboard", dashboardController.GetDashboardOverview)
	}

	return r, cleanup, nil
}
