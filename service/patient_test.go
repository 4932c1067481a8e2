package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/telerehab/dashboard-api/model"
	"github.com/telerehab/dashboard-api/util"
)

// fakeRemote is a stand-in for the clinic API whose failure behavior can be
// toggled mid-test.
type fakeRemote struct {
	server   *httptest.Server
	hits     atomic.Int64
	failing  atomic.Bool
	patients []model.PatientRecord
}

func newFakeRemote(t *testing.T) *fakeRemote {
	t.Helper()
	f := &fakeRemote{
		patients: []model.PatientRecord{
			{ID: 100, Name: "Remote Patient", Age: 50, Condition: "Stroke", Status: model.StatusActive},
		},
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		if f.failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch {
		case r.URL.Path == "/health":
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/patients" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(f.patients)
		case r.URL.Path == "/patients" && r.Method == http.MethodPost:
			var draft model.PatientDraft
			json.NewDecoder(r.Body).Decode(&draft)
			json.NewEncoder(w).Encode(draft.Record(999))
		default:
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(f.patients[0])
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func newMockModeService(t *testing.T) *PatientService {
	t.Helper()
	// Nothing listens on this port, so the first probe downgrades to mock.
	svc := NewPatientService("http://127.0.0.1:1", 200*time.Millisecond)
	if svc.ProbeAvailability(context.Background()) {
		t.Fatal("probe against a dead port reported available")
	}
	return svc
}

func TestProbeVerdictIsCached(t *testing.T) {
	remote := newFakeRemote(t)
	svc := NewPatientService(remote.server.URL, time.Second)

	ctx := context.Background()
	if !svc.ProbeAvailability(ctx) {
		t.Fatal("healthy remote reported unavailable")
	}
	before := remote.hits.Load()
	for i := 0; i < 5; i++ {
		svc.ProbeAvailability(ctx)
	}
	if remote.hits.Load() != before {
		t.Fatalf("probe re-issued %d extra requests; verdict must be cached", remote.hits.Load()-before)
	}
}

func TestFallbackMonotonicity(t *testing.T) {
	remote := newFakeRemote(t)
	svc := NewPatientService(remote.server.URL, time.Second)
	ctx := context.Background()

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Remote Patient" {
		t.Fatalf("expected the remote record set, got %+v", records)
	}
	if svc.DataSource(nil).Source != string(SourceRemote) {
		t.Fatalf("data source = %s; want remote", svc.DataSource(nil).Source)
	}

	// One failure downgrades the instance for good.
	remote.failing.Store(true)
	records, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("list after failure must fall back, got error: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected the seeded mock set after fallback, got %d records", len(records))
	}
	if svc.DataSource(nil).Source != string(SourceMock) {
		t.Fatalf("data source = %s; want mock", svc.DataSource(nil).Source)
	}

	// Even a recovered remote must never be re-attempted.
	remote.failing.Store(false)
	before := remote.hits.Load()
	for i := 0; i < 3; i++ {
		if _, err := svc.List(ctx); err != nil {
			t.Fatalf("mock list: %v", err)
		}
	}
	if _, err := svc.Create(ctx, model.PatientDraft{Name: "X", Age: 1, Condition: "c"}); err != nil {
		t.Fatalf("mock create: %v", err)
	}
	if remote.hits.Load() != before {
		t.Fatal("service re-attempted the remote path after downgrading to mock")
	}
}

func TestMockIDsAreUnique(t *testing.T) {
	svc := newMockModeService(t)
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		record, err := svc.Create(ctx, model.PatientDraft{Name: "Bulk Patient", Age: 30, Condition: "Stroke"})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[record.ID] {
			t.Fatalf("duplicate mock id %d", record.ID)
		}
		seen[record.ID] = true
	}
}

func TestUpdateIsAMergeNotAReplace(t *testing.T) {
	svc := newMockModeService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.PatientDraft{Name: "Asha Verma", Age: 30, Condition: "Sports injury", Phone: "123"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, model.PatientPatch{Age: 31})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Age != 31 {
		t.Errorf("age = %d; want 31", updated.Age)
	}
	if updated.Name != "Asha Verma" {
		t.Errorf("name = %q; patch must not clear unrelated fields", updated.Name)
	}
	if updated.Phone != "123" {
		t.Errorf("phone = %q; patch must not clear unrelated fields", updated.Phone)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	svc := newMockModeService(t)
	_, err := svc.Update(context.Background(), 424242, model.PatientPatch{Age: 31})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v; want ErrNotFound", err)
	}
}

func TestDeleteMissingRecordDoesNotMutate(t *testing.T) {
	svc := newMockModeService(t)
	ctx := context.Background()

	before, _ := svc.List(ctx)
	err := svc.Delete(ctx, 424242)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v; want ErrNotFound", err)
	}
	after, _ := svc.List(ctx)
	if len(before) != len(after) {
		t.Fatalf("failed delete mutated the working set: %d -> %d records", len(before), len(after))
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	svc := newMockModeService(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("record still retrievable after delete: %v", err)
	}
}

func TestValidationGateBlocksAllIO(t *testing.T) {
	remote := newFakeRemote(t)
	svc := NewPatientService(remote.server.URL, time.Second)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.PatientDraft{Name: "", Age: 30, Condition: "x"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v; want ValidationError", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0] != "name" {
		t.Fatalf("fields = %v; want [name]", ve.Fields)
	}
	if remote.hits.Load() != 0 {
		t.Fatalf("invalid draft reached the remote API (%d requests)", remote.hits.Load())
	}

	// The mock set is untouched too.
	mock := newMockModeService(t)
	before, _ := mock.List(ctx)
	if _, err := mock.Create(ctx, model.PatientDraft{Age: 30, Condition: "x"}); err == nil {
		t.Fatal("expected validation error")
	}
	after, _ := mock.List(ctx)
	if len(before) != len(after) {
		t.Fatal("invalid draft was appended to the mock set")
	}
}

func TestValidationCollectsAllMissingFields(t *testing.T) {
	_, err := newMockModeService(t).Create(context.Background(), model.PatientDraft{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v; want ValidationError", err)
	}
	want := []string{"name", "age", "condition"}
	if len(ve.Fields) != len(want) {
		t.Fatalf("fields = %v; want %v", ve.Fields, want)
	}
	for i, f := range want {
		if ve.Fields[i] != f {
			t.Fatalf("fields = %v; want %v", ve.Fields, want)
		}
	}
}

func TestCreateOnRemotePathReturnsServerRecord(t *testing.T) {
	remote := newFakeRemote(t)
	svc := NewPatientService(remote.server.URL, time.Second)

	record, err := svc.Create(context.Background(), model.PatientDraft{Name: "Kiran Rao", Age: 41, Condition: "Stroke"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.ID != 999 {
		t.Fatalf("id = %d; want the server-assigned 999", record.ID)
	}
}

func TestDataSourceLabels(t *testing.T) {
	svc := NewPatientService("http://127.0.0.1:1", 200*time.Millisecond)

	info := svc.DataSource(nil)
	if info.Source != string(SourceProbing) {
		t.Fatalf("source before first call = %s; want probing", info.Source)
	}

	svc.ProbeAvailability(context.Background())
	info = svc.DataSource(util.NewTranslator("en"))
	if info.Source != string(SourceMock) || info.Label != "Local sample data" {
		t.Fatalf("unexpected source info after failed probe: %+v", info)
	}

	// Labels follow the requested language.
	hindi := svc.DataSource(util.NewTranslator("hi"))
	if hindi.Label == info.Label || hindi.Label == "" {
		t.Fatalf("hindi label = %q; want a translated label", hindi.Label)
	}
}

func TestCreateDefaultsStatusToActive(t *testing.T) {
	svc := newMockModeService(t)
	record, err := svc.Create(context.Background(), model.PatientDraft{Name: "Meena Iyer", Age: 52, Condition: "Arthritis"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.Status != model.StatusActive {
		t.Fatalf("status = %s; want Active", record.Status)
	}
}
