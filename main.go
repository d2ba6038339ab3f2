package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"soulpatterns-backend/config"
	"soulpatterns-backend/routes"
	"soulpatterns-backend/services"
	"soulpatterns-backend/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	storage, err := store.Open(cfg.DatabasePath())
	if err != nil {
		// Without local storage every feature silently loses data, better
		// to refuse to start with a clear message.
		log.Fatalf("Cannot open local storage at %s: %v", cfg.DatabasePath(), err)
	}

	var designer *services.DesignerService
	if cfg.GeminiAPIKey != "" {
		designer, err = services.NewDesignerService(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Cannot configure the design service: %v", err)
		}
	} else {
		log.Println("GEMINI_API_KEY not set, design generation disabled")
	}

	if cfg.RemindersEnabled() {
		reminders := services.NewReminderService(storage, cfg)
		reminders.StartScheduler()
		defer reminders.Stop()
	} else {
		log.Println("Twilio not configured, appointment reminders disabled")
	}

	r, cleanup, err := routes.SetupRouter(storage, designer)
	if err != nil {
		log.Fatalf("Cannot set up routes: %v", err)
	}
	defer cleanup()

	printRoutes(r)
	r.Run(":" + cfg.Port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
