package endpoint_test

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/telerehab/dashboard-api/config"
	"github.com/telerehab/dashboard-api/util"
)

// TestMain sets up consistent test configuration for all tests in the endpoint_test package.
// This prevents test order dependency issues caused by the singleton config pattern.
func TestMain(m *testing.M) {
	// Set consistent environment variables for all tests
	os.Setenv("APPENV", "test")
	os.Setenv("JWTSECRET", "test-secret-123")
	os.Setenv("APITOKEN", "test-api-token")
	os.Setenv("GINMODE", "test")
	// Nothing listens here, so every service instance falls back to mock data.
	os.Setenv("REMOTE_API_BASE_URL", "http://127.0.0.1:1")

	// Initialize util's JWT secret
	util.SetJWTSecret("test-secret-123")

	// Initialize the singleton config once before any tests run
	cfg := config.LoadConfig()

	// Set Gin mode from initialized config
	gin.SetMode(cfg.GinMode)

	// Run all tests
	exitCode := m.Run()

	// Exit with the test result code
	os.Exit(exitCode)
}
