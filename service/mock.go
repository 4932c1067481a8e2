package service

import (
	"sync"
	"time"

	"github.com/telerehab/dashboard-api/model"
)

// mockStore is the session's ersatz database: a shared in-memory record
// set used whenever the remote source is unavailable. Its lifetime is the
// process lifetime; nothing is persisted across restarts.
type mockStore struct {
	mu      sync.Mutex
	records []model.PatientRecord
	lastID  int64
}

func newMockStore() *mockStore {
	return &mockStore{records: seedRecords()}
}

// seedRecords mirrors the sample data the dashboard ships with so the UI is
// populated on first load even without a backend.
func seedRecords() []model.PatientRecord {
	return []model.PatientRecord{
		{
			ID: 1, Name: "Amit Sharma", NameKey: "patients.amitSharma",
			Age: 45, Gender: model.GenderMale, Condition: "Paralysis",
			Status: model.StatusActive, Phone: "+91 98765 43210",
			Address: "12 MG Road, Pune", EmergencyContact: "+91 98765 43211",
			BloodType: "B+", TreatmentPlan: "Daily physiotherapy, 6 weeks",
			Allergies: "None", Medications: "Aspirin 75mg",
			DateAdmitted: "2025-01-15",
		},
		{
			ID: 2, Name: "Sita Devi", NameKey: "patients.sitaDevi",
			Age: 62, Gender: model.GenderFemale, Condition: "Stroke",
			Status: model.StatusCritical, Phone: "+91 91234 56780",
			Address: "4 Lake View, Bhopal", EmergencyContact: "+91 91234 56781",
			BloodType: "O+", TreatmentPlan: "Supervised mobility sessions",
			Allergies: "Penicillin", Medications: "Clopidogrel 75mg",
			DateAdmitted: "2025-02-02",
		},
		{
			ID: 3, Name: "Ramesh Kumar", NameKey: "patients.rameshKumar",
			Age: 38, Gender: model.GenderMale, Condition: "Post-surgery rehab",
			Status: model.StatusRecovered, Phone: "+91 99887 66554",
			Address: "78 Nehru Nagar, Delhi", EmergencyContact: "+91 99887 66555",
			BloodType: "A-", TreatmentPlan: "Completed",
			Allergies: "None", Medications: "None",
			DateAdmitted: "2024-11-20",
		},
		{
			ID: 4, Name: "Priya Patel", NameKey: "patients.priyaPatel",
			Age: 29, Gender: model.GenderFemale, Condition: "Sports injury",
			Status: model.StatusActive, Phone: "+91 90909 80807",
			Address: "3 Residency Road, Ahmedabad", EmergencyContact: "+91 90909 80808",
			BloodType: "AB+", TreatmentPlan: "Knee strengthening program",
			Allergies: "Sulfa drugs", Medications: "Ibuprofen as needed",
			DateAdmitted: "2025-03-10",
		},
		{
			ID: 5, Name: "Vikram Singh", NameKey: "patients.vikramSingh",
			Age: 55, Gender: model.GenderMale, Condition: "Parkinson's",
			Status: model.StatusInactive, Phone: "+91 98989 12121",
			Address: "21 Civil Lines, Jaipur", EmergencyContact: "+91 98989 12122",
			BloodType: "O-", TreatmentPlan: "Paused on patient request",
			Allergies: "None", Medications: "Levodopa",
			DateAdmitted: "2024-09-05",
		},
	}
}

// nextID issues a fresh id from the wall clock. Ids are monotonically
// increasing even when two creates land in the same millisecond.
func (s *mockStore) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// List returns a copy of the working set in insertion order.
func (s *mockStore) List() []model.PatientRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.PatientRecord(nil), s.records...)
}

func (s *mockStore) Get(id int64) (model.PatientRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return model.PatientRecord{}, false
}

// Create appends the draft as a new record with a fresh id.
func (s *mockStore) Create(draft model.PatientDraft) model.PatientRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := draft.Record(s.nextID())
	s.records = append(s.records, record)
	return record
}

// Update merges the patch over the stored record.
func (s *mockStore) Update(id int64, patch model.PatientPatch) (model.PatientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records[i] = patch.Merge(r)
			return s.records[i], nil
		}
	}
	return model.PatientRecord{}, ErrNotFound
}

// Delete removes the record in place. The set is untouched when id is absent.
func (s *mockStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Reset restores the seeded working set. Test hook.
func (s *mockStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = seedRecords()
	s.lastID = 0
}
