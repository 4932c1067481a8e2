// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/telerehab/dashboard-api/config"
	"github.com/telerehab/dashboard-api/endpoint"
	"github.com/telerehab/dashboard-api/middleware"
	"github.com/telerehab/dashboard-api/service"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	// Redis is optional: preferences degrade to in-memory storage.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("continuing without Redis: %v", err)
	}

	patients := service.NewPatientService(cfg.RemoteAPIBaseURL, time.Duration(cfg.ProbeTimeoutSecs)*time.Second)
	prefs := service.NewPreferenceStore(config.GetRedisClient())
	themes := service.NewThemeManager(prefs)

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ServiceMiddleware(patients, themes))

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})
	router.GET("/health", endpoint.HealthCheck)

	router.POST("/token", middleware.RateLimiter(middleware.RateLimitConfig{}), endpoint.IssueToken)
	router.GET("/token/validate", endpoint.ValidateToken)

	router.GET("/patient", endpoint.ListPatients)
	router.GET("/patient/:id", endpoint.GetPatientInfo)
	router.GET("/patient/:id/progress", endpoint.PatientProgress)

	authed := router.Group("/", middleware.SessionAuth())
	authed.POST("/patient", endpoint.CreatePatient)
	authed.PATCH("/patient/:id", endpoint.UpdatePatient)
	authed.DELETE("/patient/:id", endpoint.DeletePatient)
	authed.PUT("/preferences/theme", endpoint.SetTheme)
	authed.PUT("/preferences/language", endpoint.SetLanguage)

	router.GET("/dashboard/stats", endpoint.DashboardStats)
	router.GET("/dashboard/chart", endpoint.DashboardChart)
	router.GET("/preferences", endpoint.GetPreferences)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
