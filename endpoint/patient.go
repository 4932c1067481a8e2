package endpoint

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/telerehab/dashboard-api/middleware"
	"github.com/telerehab/dashboard-api/model"
	"github.com/telerehab/dashboard-api/service"
	"github.com/telerehab/dashboard-api/util"
)

const defaultListLimit = 10

type patientListQuery struct {
	Limit   int
	Offset  int
	Keyword string
	Status  string
	Lang    string
}

func parseListQuery(c *gin.Context) patientListQuery {
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset, _ := strconv.Atoi(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}
	status := c.Query("status")
	if status == "" {
		status = model.StatusAll
	}
	return patientListQuery{
		Limit:   limit,
		Offset:  offset,
		Keyword: c.Query("keyword"),
		Status:  status,
		Lang:    c.Query("lang"),
	}
}

func getServiceOrRespond(c *gin.Context) (*service.PatientService, bool) {
	svc := middleware.GetPatientService(c)
	if svc == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Patient service not available",
			Err: fmt.Errorf("service is nil"),
		})
		return nil, false
	}
	return svc, true
}

func parsePatientID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid patient ID",
			Err: err,
		})
		return 0, false
	}
	return id, true
}

// respondServiceError maps the service error taxonomy onto the response
// envelope: NotFound -> 404, validation -> 400, anything else -> 500.
func respondServiceError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Patient not found", Err: err})
	case service.IsValidation(err):
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
	default:
		util.CallServerError(c, util.APIErrorParams{Msg: msg, Err: err})
	}
}

// ListPatients godoc
// @Summary      List patients
// @Description  Get the working set with optional keyword and status filtering
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        keyword query string false "Search keyword matched against name, condition, and phone"
// @Param        status query string false "Status filter: Active|Inactive|Critical|Recovered|all"
// @Param        lang query string false "Language used for display-name resolution"
// @Param        limit query int false "Page size (default 10)"
// @Param        offset query int false "Records to skip (default 0)"
// @Success      200 {object} util.APIResponse{data=object} "Patients retrieved"
// @Failure      400 {object} util.APIResponse "Unknown status filter"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient [get]
func ListPatients(c *gin.Context) {
	query := parseListQuery(c)
	if query.Status != model.StatusAll && !util.Contains(query.Status, model.KnownStatuses()) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Unknown status filter",
			Err: fmt.Errorf("status %q is not recognized", query.Status),
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

	translator := util.NewTranslator(query.Lang)
	filtered := service.FilterRecords(records, query.Keyword, query.Status, translator)
	page := service.Paginate(filtered, query.Limit, query.Offset)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Patients retrieved",
		Data: map[string]interface{}{
			"total":         len(records),
			"total_fetched": len(page),
			"limit":         query.Limit,
			"offset":        query.Offset,
			"patients":      page,
			"data_source":   svc.DataSource(translator),
		},
	})
}

// GetPatientInfo godoc
// @Summary      Get patient information
// @Description  Get detailed information about a specific patient
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.PatientRecord} "Patient retrieved"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient/{id} [get]
func GetPatientInfo(c *gin.Context) {
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

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient retrieved",
		Data: record,
	})
}

// CreatePatient godoc
// @Summary      Create a new patient
// @Description  Register a new patient record through the active data source
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.PatientDraft true "Patient information"
// @Success      200 {object} util.APIResponse{data=model.PatientRecord} "Patient created"
// @Failure      400 {object} util.APIResponse "Missing required fields"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient [post]
func CreatePatient(c *gin.Context) {
	var draft model.PatientDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}

	record, err := svc.Create(c.Request.Context(), draft)
	if err != nil {
		respondServiceError(c, "Failed to create patient", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient created",
		Data: record,
	})
}

// UpdatePatient godoc
// @Summary      Update patient information
// @Description  Merge the provided fields into an existing patient record
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Patient ID"
// @Param        request body model.PatientPatch true "Updated patient fields"
// @Success      200 {object} util.APIResponse{data=model.PatientRecord} "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient/{id} [patch]
func UpdatePatient(c *gin.Context) {
	id, ok := parsePatientID(c)
	if !ok {
		return
	}

	var patch model.PatientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}

	record, err := svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondServiceError(c, "Failed to update patient", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient updated",
		Data: record,
	})
}

// DeletePatient godoc
// @Summary      Delete a patient
// @Description  Remove a patient record from the active data source
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse "Patient deleted"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patient/{id} [delete]
func DeletePatient(c *gin.Context) {
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}
	id, ok := parsePatientID(c)
	if !ok {
		return
	}

	if err := svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "Failed to delete patient", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Patient deleted",
	})
}
