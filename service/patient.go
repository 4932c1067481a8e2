// Package service owns the dashboard's data access: a uniform CRUD
// contract over two interchangeable backing stores (the remote clinic API
// and an in-memory mock set) with a one-way fallback between them.
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/telerehab/dashboard-api/model"
	"github.com/telerehab/dashboard-api/util"
)

// Source identifies the active backing store.
type Source string

const (
	// SourceProbing means availability has not been checked yet.
	SourceProbing Source = "probing"
	// SourceRemote means calls go to the clinic API.
	SourceRemote Source = "remote"
	// SourceMock means calls go to the in-memory record set. The
	// transition into this state is irreversible for the service lifetime.
	SourceMock Source = "mock"
)

// SourceInfo is the UI-facing description of the active source.
type SourceInfo struct {
	Source string `json:"source"`
	Label  string `json:"label"`
}

// PatientService presents one CRUD contract regardless of backing source.
// The first call probes the remote API once and caches the verdict; any
// remote failure afterwards permanently downgrades the instance to the
// mock store before the failed operation is retried there.
type PatientService struct {
	mu     sync.Mutex
	source Source
	remote *remoteClient
	mock   *mockStore
}

// NewPatientService builds a service probing baseURL with the given timeout.
func NewPatientService(baseURL string, probeTimeout time.Duration) *PatientService {
	return &PatientService{
		source: SourceProbing,
		remote: newRemoteClient(baseURL, probeTimeout),
		mock:   newMockStore(),
	}
}

// ProbeAvailability checks the remote source once and caches the verdict.
// Failures are never surfaced as errors, only as "unavailable".
func (s *PatientService) ProbeAvailability(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureProbedLocked(ctx)
	return s.source == SourceRemote
}

func (s *PatientService) ensureProbedLocked(ctx context.Context) {
	if s.source != SourceProbing {
		return
	}
	if err := s.remote.Health(ctx); err != nil {
		log.Printf("remote API unavailable, using mock data: %v", err)
		s.source = SourceMock
		return
	}
	s.source = SourceRemote
}

// downgrade flips the service to mock mode after a remote failure. Every
// subsequent call in this instance uses the mock store.
func (s *PatientService) downgrade(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source != SourceMock {
		log.Printf("remote API failed during %s, falling back to mock data: %v", op, err)
		s.source = SourceMock
	}
}

func (s *PatientService) useRemote(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureProbedLocked(ctx)
	return s.source == SourceRemote
}

// List returns all records from whichever source is active.
func (s *PatientService) List(ctx context.Context) ([]model.PatientRecord, error) {
	if s.useRemote(ctx) {
		records, err := s.remote.ListPatients(ctx)
		if err == nil {
			return records, nil
		}
		s.downgrade("list", err)
	}
	return s.mock.List(), nil
}

// Get returns a single record by id.
func (s *PatientService) Get(ctx context.Context, id int64) (model.PatientRecord, error) {
	if s.useRemote(ctx) {
		record, err := s.remote.GetPatient(ctx, id)
		if err == nil {
			return record, nil
		}
		s.downgrade("get", err)
	}
	record, ok := s.mock.Get(id)
	if !ok {
		return model.PatientRecord{}, ErrNotFound
	}
	return record, nil
}

// Create validates the draft, then submits it to the active source. On the
// mock path the store assigns a fresh unique id.
func (s *PatientService) Create(ctx context.Context, draft model.PatientDraft) (model.PatientRecord, error) {
	draft.Name = normalizeDraftName(draft.Name)
	if missing := draft.Validate(); len(missing) > 0 {
		return model.PatientRecord{}, &ValidationError{Fields: missing}
	}
	if s.useRemote(ctx) {
		record, err := s.remote.CreatePatient(ctx, draft)
		if err == nil {
			return record, nil
		}
		s.downgrade("create", err)
	}
	return s.mock.Create(draft), nil
}

// Update merges the patch over the stored record. The remote path submits
// the merged record as a full-record PUT; the mock path merges in place.
func (s *PatientService) Update(ctx context.Context, id int64, patch model.PatientPatch) (model.PatientRecord, error) {
	if missing := validatePatch(patch); len(missing) > 0 {
		return model.PatientRecord{}, &ValidationError{Fields: missing}
	}
	if s.useRemote(ctx) {
		updated, err := s.remoteUpdate(ctx, id, patch)
		if err == nil {
			return updated, nil
		}
		s.downgrade("update", err)
	}
	existing, ok := s.mock.Get(id)
	if !ok {
		return model.PatientRecord{}, ErrNotFound
	}
	if missing := patch.Draft(existing).Validate(); len(missing) > 0 {
		return model.PatientRecord{}, &ValidationError{Fields: missing}
	}
	return s.mock.Update(id, patch)
}

func (s *PatientService) remoteUpdate(ctx context.Context, id int64, patch model.PatientPatch) (model.PatientRecord, error) {
	existing, err := s.remote.GetPatient(ctx, id)
	if err != nil {
		return model.PatientRecord{}, err
	}
	merged := patch.Merge(existing)
	return s.remote.UpdatePatient(ctx, id, merged)
}

// Delete removes the record from the active source.
func (s *PatientService) Delete(ctx context.Context, id int64) error {
	if s.useRemote(ctx) {
		err := s.remote.DeletePatient(ctx, id)
		if err == nil {
			return nil
		}
		s.downgrade("delete", err)
	}
	return s.mock.Delete(id)
}

// DataSource reports the active source for UI display, with the label
// resolved through the translator (nil means English). It has no behavioral
// effect and does not trigger a probe.
func (s *PatientService) DataSource(translator *util.Translator) SourceInfo {
	if translator == nil {
		translator = util.NewTranslator("en")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.source {
	case SourceRemote:
		return SourceInfo{Source: string(SourceRemote), Label: translator.Translate("source.remote")}
	case SourceMock:
		return SourceInfo{Source: string(SourceMock), Label: translator.Translate("source.mock")}
	default:
		return SourceInfo{Source: string(SourceProbing), Label: translator.Translate("source.probing")}
	}
}

// validatePatch rejects explicitly invalid patch fields before any network
// or store call. Unset (zero) fields are fine: they leave the record as-is.
func validatePatch(patch model.PatientPatch) []string {
	var bad []string
	if patch.Age < 0 {
		bad = append(bad, "age")
	}
	if patch.Status != "" && !model.ValidStatus(patch.Status) {
		bad = append(bad, "status")
	}
	if patch.Gender != "" && !model.ValidGender(patch.Gender) {
		bad = append(bad, "gender")
	}
	return bad
}

// ResetMockForTesting restores the seeded mock data. Test hook.
func (s *PatientService) ResetMockForTesting() {
	s.mock.Reset()
}
