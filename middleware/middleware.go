package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/telerehab/dashboard-api/service"
)

const (
	ctxPatientService = "patientService"
	ctxThemeManager   = "themeManager"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH, PUT")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization, session-token")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Content-Type", "application/json")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ServiceMiddleware injects the shared service objects into the request
// context so handlers stay free of global state.
func ServiceMiddleware(patients *service.PatientService, themes *service.ThemeManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxPatientService, patients)
		c.Set(ctxThemeManager, themes)
		c.Next()
	}
}

// GetPatientService returns the injected patient service, or nil when the
// middleware did not run.
func GetPatientService(c *gin.Context) *service.PatientService {
	if v, ok := c.Get(ctxPatientService); ok {
		if svc, ok := v.(*service.PatientService); ok {
			return svc
		}
	}
	return nil
}

// GetThemeManager returns the injected theme manager, or nil.
func GetThemeManager(c *gin.Context) *service.ThemeManager {
	if v, ok := c.Get(ctxThemeManager); ok {
		if m, ok := v.(*service.ThemeManager); ok {
			return m
		}
	}
	return nil
}
