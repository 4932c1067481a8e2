package endpoint

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/telerehab/dashboard-api/chart"
	"github.com/telerehab/dashboard-api/middleware"
	"github.com/telerehab/dashboard-api/service"
	"github.com/telerehab/dashboard-api/util"
)

// DashboardStats godoc
// @Summary      Dashboard summary statistics
// @Description  Per-status counts over the full working set
// @Tags         Dashboard
// @Produce      json
// @Param        lang query string false "Language used for the data source label"
// @Success      200 {object} util.APIResponse{data=service.SummaryStats} "Stats computed"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /dashboard/stats [get]
func DashboardStats(c *gin.Context) {
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}

	records, err := svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, "Failed to retrieve patients", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Stats computed",
		Data: map[string]interface{}{
			"stats":       service.Summarize(records),
			"data_source": svc.DataSource(util.NewTranslator(c.Query("lang"))),
		},
	})
}

// DashboardChart godoc
// @Summary      Chart series geometry
// @Description  Derive plot geometry for an admissions or recoveries series
// @Tags         Dashboard
// @Produce      json
// @Param        kind query string false "Series kind: admissions|recoveries (default admissions)"
// @Param        period query string false "Bucketing period: today|month (default today)"
// @Param        lang query string false "Language used for chart labels"
// @Success      200 {object} util.APIResponse{data=object} "Chart derived"
// @Failure      400 {object} util.APIResponse "Unknown kind or period"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /dashboard/chart [get]
func DashboardChart(c *gin.Context) {
	kind := c.DefaultQuery("kind", chart.KindAdmissions)
	period := c.DefaultQuery("period", chart.PeriodToday)
	if kind != chart.KindAdmissions && kind != chart.KindRecoveries {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Unknown chart kind",
			Err: fmt.Errorf("kind %q is not recognized", kind),
		})
		return
	}
	if period != chart.PeriodToday && period != chart.PeriodMonth {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Unknown chart period",
			Err: fmt.Errorf("period %q is not recognized", period),
		})
		return
	}

	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}

	records, err := svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, "Failed to retrieve patients", err)
		return
	}

	now := time.Now()
	var series chart.Series
	if kind == chart.KindRecoveries {
		series = service.RecoverySeries(records, period, now)
	} else {
		series = service.AdmissionSeries(records, period, now)
	}

	geometry, err := chart.Derive(series, chart.DefaultDims)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to derive chart geometry",
			Err: err,
		})
		return
	}

	translator := util.NewTranslator(c.Query("lang"))
	data := map[string]interface{}{
		"series":      series,
		"geometry":    geometry,
		"label":       translator.Translate("chart." + kind),
		"data_source": svc.DataSource(translator),
	}
	if !geometry.HasActualData {
		data["empty_label"] = translator.Translate("chart.noData")
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Chart derived",
		Data: data,
	})
}

// PatientProgress godoc
// @Summary      Per-patient progress summary
// @Description  Status and time under care for one patient
// @Tags         Dashboard
// @Produce      json
// @Param        id path int true "Patient ID"
// @Param        lang query string false "Language used for display-name resolution"
// @Success      200 {object} util.APIResponse{data=service.ProgressSummary} "Progress computed"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient/{id}/progress [get]
func PatientProgress(c *gin.Context) {
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}
	id, ok := parsePatientID(c)
	if !ok {
		return
	}

	record, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "Failed to retrieve patient", err)
		return
	}

	translator := util.NewTranslator(c.Query("lang"))
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Progress computed",
		Data: service.Progress(record, translator, time.Now()),
	})
}

// HealthCheck godoc
// @Summary      Service health
// @Description  Liveness plus the active patient data source
// @Tags         Health
// @Produce      json
// @Success      200 {object} util.APIResponse{data=object} "Service healthy"
// @Router       /health [get]
func HealthCheck(c *gin.Context) {
	data := map[string]interface{}{"status": "healthy"}
	if svc := middleware.GetPatientService(c); svc != nil {
		data["data_source"] = svc.DataSource(util.NewTranslator(c.Query("lang")))
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Service healthy",
		Data: data,
	})
}
