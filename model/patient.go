package model

// Patient statuses rendered by the dashboard. Records carrying any other
// value are rejected at the validation gate.
const (
	StatusActive    = "Active"
	StatusInactive  = "Inactive"
	StatusCritical  = "Critical"
	StatusRecovered = "Recovered"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// StatusAll is the status-filter value that disables status filtering.
const StatusAll = "all"

var knownStatuses = []string{StatusActive, StatusInactive, StatusCritical, StatusRecovered}

var knownGenders = []string{GenderMale, GenderFemale, GenderOther}

// PatientRecord is one patient under care. Field names follow the remote
// clinic API's JSON shape; NameKey, when present, points into the
// translation tables and takes precedence over Name for display.
type PatientRecord struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NameKey          string `json:"nameKey,omitempty"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Condition        string `json:"condition"`
	Status           string `json:"status"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
	BloodType        string `json:"bloodType"`
	TreatmentPlan    string `json:"treatmentPlan"`
	Allergies        string `json:"allergies"`
	Medications      string `json:"medications"`
	DateAdmitted     string `json:"dateAdmitted"`
}

// PatientDraft is the create payload. Optional fields are stored verbatim;
// Status defaults to Active when left empty.
type PatientDraft struct {
	Name             string `json:"name" example:"Amit Sharma"`
	NameKey          string `json:"nameKey,omitempty"`
	Age              int    `json:"age" example:"42"`
	Gender           string `json:"gender" example:"Male"`
	Condition        string `json:"condition" example:"Stroke recovery"`
	Status           string `json:"status" example:"Active"`
	Phone            string `json:"phone" example:"+91 98765 43210"`
	Address          string `json:"address" example:"12 MG Road, Pune"`
	EmergencyContact string `json:"emergencyContact"`
	BloodType        string `json:"bloodType" example:"B+"`
	TreatmentPlan    string `json:"treatmentPlan"`
	Allergies        string `json:"allergies"`
	Medications      string `json:"medications"`
	DateAdmitted     string `json:"dateAdmitted" example:"2025-11-03"`
}

// Validate reports the required fields that are missing or malformed.
// An empty result means the draft is acceptable for create/update.
func (d PatientDraft) Validate() []string {
	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Age <= 0 {
		missing = append(missing, "age")
	}
	if d.Condition == "" {
		missing = append(missing, "condition")
	}
	if d.Status != "" && !ValidStatus(d.Status) {
		missing = append(missing, "status")
	}
	if d.Gender != "" && !ValidGender(d.Gender) {
		missing = append(missing, "gender")
	}
	return missing
}

// Record materializes the draft as a record with the given id.
func (d PatientDraft) Record(id int64) PatientRecord {
	status := d.Status
	if status == "" {
		status = StatusActive
	}
	return PatientRecord{
		ID:               id,
		Name:             d.Name,
		NameKey:          d.NameKey,
		Age:              d.Age,
		Gender:           d.Gender,
		Condition:        d.Condition,
		Status:           status,
		Phone:            d.Phone,
		Address:          d.Address,
		EmergencyContact: d.EmergencyContact,
		BloodType:        d.BloodType,
		TreatmentPlan:    d.TreatmentPlan,
		Allergies:        d.Allergies,
		Medications:      d.Medications,
		DateAdmitted:     d.DateAdmitted,
	}
}

// PatientPatch is a partial update. Zero-valued fields leave the existing
// record untouched, so a patch can never blank out a stored field.
type PatientPatch struct {
	Name             string `json:"name"`
	NameKey          string `json:"nameKey"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Condition        string `json:"condition"`
	Status           string `json:"status"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
	BloodType        string `json:"bloodType"`
	TreatmentPlan    string `json:"treatmentPlan"`
	Allergies        string `json:"allergies"`
	Medications      string `json:"medications"`
	DateAdmitted     string `json:"dateAdmitted"`
}

// Merge applies the patch over an existing record and returns the result.
func (p PatientPatch) Merge(existing PatientRecord) PatientRecord {
	if p.Name != "" {
		existing.Name = p.Name
	}
	if p.NameKey != "" {
		existing.NameKey = p.NameKey
	}
	if p.Age != 0 {
		existing.Age = p.Age
	}
	if p.Gender != "" {
		existing.Gender = p.Gender
	}
	if p.Condition != "" {
		existing.Condition = p.Condition
	}
	if p.Status != "" {
		existing.Status = p.Status
	}
	if p.Phone != "" {
		existing.Phone = p.Phone
	}
	if p.Address != "" {
		existing.Address = p.Address
	}
	if p.EmergencyContact != "" {
		existing.EmergencyContact = p.EmergencyContact
	}
	if p.BloodType != "" {
		existing.BloodType = p.BloodType
	}
	if p.TreatmentPlan != "" {
		existing.TreatmentPlan = p.TreatmentPlan
	}
	if p.Allergies != "" {
		existing.Allergies = p.Allergies
	}
	if p.Medications != "" {
		existing.Medications = p.Medications
	}
	if p.DateAdmitted != "" {
		existing.DateAdmitted = p.DateAdmitted
	}
	return existing
}

// Draft converts the merged form of a patch into a draft so updates pass
// through the same validation gate as creates.
func (p PatientPatch) Draft(existing PatientRecord) PatientDraft {
	merged := p.Merge(existing)
	return PatientDraft{
		Name:      merged.Name,
		Age:       merged.Age,
		Gender:    merged.Gender,
		Condition: merged.Condition,
		Status:    merged.Status,
	}
}

// ValidStatus reports whether s is one of the four rendered statuses.
func ValidStatus(s string) bool {
	for _, v := range knownStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidGender reports whether g is a recognized gender value.
func ValidGender(g string) bool {
	for _, v := range knownGenders {
		if v == g {
			return true
		}
	}
	return false
}

// KnownStatuses returns the status values in render order.
func KnownStatuses() []string {
	return append([]string(nil), knownStatuses...)
}
