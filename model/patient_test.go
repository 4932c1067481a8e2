package model

import "testing"

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   PatientDraft
		missing []string
	}{
		{
			name:    "valid draft",
			draft:   PatientDraft{Name: "Amit Sharma", Age: 45, Condition: "Paralysis"},
			missing: nil,
		},
		{
			name:    "empty name",
			draft:   PatientDraft{Age: 45, Condition: "Paralysis"},
			missing: []string{"name"},
		},
		{
			name:    "non-positive age",
			draft:   PatientDraft{Name: "Amit Sharma", Age: 0, Condition: "Paralysis"},
			missing: []string{"age"},
		},
		{
			name:    "everything missing",
			draft:   PatientDraft{},
			missing: []string{"name", "age", "condition"},
		},
		{
			name:    "unknown status",
			draft:   PatientDraft{Name: "Amit Sharma", Age: 45, Condition: "Paralysis", Status: "Paused"},
			missing: []string{"status"},
		},
		{
			name:    "unknown gender",
			draft:   PatientDraft{Name: "Amit Sharma", Age: 45, Condition: "Paralysis", Gender: "X"},
			missing: []string{"gender"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.draft.Validate()
			if len(got) != len(tt.missing) {
				t.Fatalf("Validate() = %v; want %v", got, tt.missing)
			}
			for i := range got {
				if got[i] != tt.missing[i] {
					t.Fatalf("Validate() = %v; want %v", got, tt.missing)
				}
			}
		})
	}
}

func TestPatchMerge(t *testing.T) {
	existing := PatientRecord{
		ID: 1, Name: "Amit Sharma", Age: 45, Condition: "Paralysis",
		Status: StatusActive, Phone: "111", BloodType: "B+",
	}

	merged := PatientPatch{Age: 46, Status: StatusRecovered}.Merge(existing)

	if merged.Age != 46 {
		t.Errorf("age = %d; want 46", merged.Age)
	}
	if merged.Status != StatusRecovered {
		t.Errorf("status = %s; want Recovered", merged.Status)
	}
	if merged.Name != "Amit Sharma" || merged.Phone != "111" || merged.BloodType != "B+" {
		t.Error("merge must not clear fields the patch leaves unset")
	}
	if merged.ID != 1 {
		t.Errorf("id = %d; merge must never change identity", merged.ID)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range KnownStatuses() {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("Paused") || ValidStatus("") || ValidStatus("active") {
		t.Error("status matching must be exact")
	}
}

func TestDraftRecordDefaultsStatus(t *testing.T) {
	record := PatientDraft{Name: "Sita Devi", Age: 62, Condition: "Stroke"}.Record(7)
	if record.Status != StatusActive {
		t.Errorf("status = %s; want Active default", record.Status)
	}
	if record.ID != 7 {
		t.Errorf("id = %d; want 7", record.ID)
	}
}
