package endpoint_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/telerehab/dashboard-api/endpoint"
	"github.com/telerehab/dashboard-api/middleware"
	"github.com/telerehab/dashboard-api/service"
	"github.com/telerehab/dashboard-api/util"
)

// newTestRouter wires the full route table against a mock-mode patient
// service and an in-memory preference store, mirroring main.go.
func newTestRouter(t *testing.T) (*gin.Engine, *service.PatientService) {
	t.Helper()

	patients := service.NewPatientService("http://127.0.0.1:1", 200*time.Millisecond)
	themes := service.NewThemeManager(service.NewMemoryPreferenceStore())

	router := gin.New()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ServiceMiddleware(patients, themes))

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

	return router, patients
}

func sessionToken(t *testing.T) string {
	t.Helper()
	token, err := util.IssueSessionToken(time.Hour)
	if err != nil {
		t.Fatalf("issue session token: %v", err)
	}
	return token
}

// doRequest performs an in-process request and decodes the envelope.
func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, util.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("session-token", token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp util.APIResponse
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response envelope: %v (body: %s)", err, w.Body.String())
		}
	}
	return w, resp
}

func dataMap(t *testing.T, resp util.APIResponse) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("response data is %T, not an object", resp.Data)
	}
	return data
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d; want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
