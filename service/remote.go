package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/telerehab/dashboard-api/model"
)

// remoteClient talks to the upstream clinic API. Every non-2xx status and
// every transport error surface as a plain error; the service layer decides
// what a failure means.
type remoteClient struct {
	baseURL string
	client  *http.Client
}

func newRemoteClient(baseURL string, timeout time.Duration) *remoteClient {
	return &remoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Health issues the lightweight reachability probe.
func (r *remoteClient) Health(ctx context.Context) error {
	return r.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (r *remoteClient) ListPatients(ctx context.Context) ([]model.PatientRecord, error) {
	var records []model.PatientRecord
	if err := r.do(ctx, http.MethodGet, "/patients", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *remoteClient) CreatePatient(ctx context.Context, draft model.PatientDraft) (model.PatientRecord, error) {
	var record model.PatientRecord
	if err := r.do(ctx, http.MethodPost, "/patients", draft, &record); err != nil {
		return model.PatientRecord{}, err
	}
	return record, nil
}

func (r *remoteClient) UpdatePatient(ctx context.Context, id int64, record model.PatientRecord) (model.PatientRecord, error) {
	var updated model.PatientRecord
	if err := r.do(ctx, http.MethodPut, fmt.Sprintf("/patients/%d", id), record, &updated); err != nil {
		return model.PatientRecord{}, err
	}
	return updated, nil
}

func (r *remoteClient) GetPatient(ctx context.Context, id int64) (model.PatientRecord, error) {
	var record model.PatientRecord
	if err := r.do(ctx, http.MethodGet, fmt.Sprintf("/patients/%d", id), nil, &record); err != nil {
		return model.PatientRecord{}, err
	}
	return record, nil
}

func (r *remoteClient) DeletePatient(ctx context.Context, id int64) error {
	return r.do(ctx, http.MethodDelete, fmt.Sprintf("/patients/%d", id), nil, nil)
}

// envelope is the {success,msg,data} wrapper some deployments of the clinic
// API put around payloads. Bare payloads are accepted too.
type envelope struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

func (r *remoteClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remote API returned %s for %s %s", resp.Status, method, path)
	}
	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	// Try the wrapped shape first, then the bare payload.
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		if json.Unmarshal(env.Data, out) == nil {
			return nil
		}
	}
	return json.Unmarshal(raw, out)
}
