// Package remote implements ports.EmployeeStore against the third-party
// hosted employee collection: a flat REST resource supporting GET (list),
// GET /{id}, POST, PUT /{id}, and DELETE /{id} with JSON bodies.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/simplexhr/hr-console/internal/core/domain"
	"github.com/simplexhr/hr-console/internal/core/ports"
	"github.com/simplexhr/hr-console/internal/metrics"
)

// EmployeeAPI is the HTTP adapter for the remote collection. Every operation
// is a single attempt; failures are classified and returned to the caller,
// never retried here.
type EmployeeAPI struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewEmployeeAPI builds the adapter. A timeout of 0 leaves the client
// without a deadline.
func NewEmployeeAPI(baseURL string, timeout time.Duration, log zerolog.Logger) *EmployeeAPI {
	return &EmployeeAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// List fetches all records. The collection has no ordering guarantee of its
// own, so the native order is reversed to approximate newest-first for the
// dashboard.
func (a *EmployeeAPI) List(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	if err := a.do(ctx, http.MethodGet, "", nil, &out, "list"); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (a *EmployeeAPI) Get(ctx context.Context, id string) (*domain.Employee, error) {
	var out domain.Employee
	if err := a.do(ctx, http.MethodGet, "/"+id, nil, &out, "get"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *EmployeeAPI) Create(ctx context.Context, draft ports.EmployeeDraft) (*domain.Employee, error) {
	var out domain.Employee
	if err := a.do(ctx, http.MethodPost, "", draft, &out, "create"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update issues a PUT: the draft replaces the stored record wholesale.
func (a *EmployeeAPI) Update(ctx context.Context, id string, draft ports.EmployeeDraft) (*domain.Employee, error) {
	var out domain.Employee
	if err := a.do(ctx, http.MethodPut, "/"+id, draft, &out, "update"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *EmployeeAPI) Delete(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/"+id, nil, nil, "delete")
}

// Ping checks that the collection answers at all. Used by the readiness probe.
func (a *EmployeeAPI) Ping(ctx context.Context) error {
	return a.do(ctx, http.MethodGet, "", nil, nil, "ping")
}

// do runs one request and classifies the outcome: 404 on an id-addressed
// path becomes domain.ErrEmployeeNotFound, any other non-2xx status or
// transport failure becomes *domain.UpstreamError.
func (a *EmployeeAPI) do(ctx context.Context, method, path string, body, out any, op string) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "error").Inc()
		a.log.Warn().Err(err).Str("operation", op).Msg("employee store unreachable")
		return &domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	switch {
	case resp.StatusCode == http.StatusNotFound && path != "":
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "not_found").Inc()
		return domain.ErrEmployeeNotFound
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "error").Inc()
		a.log.Warn().Int("status", resp.StatusCode).Str("operation", op).Msg("employee store returned error status")
		return &domain.UpstreamError{Op: op, StatusCode: resp.StatusCode}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(op, "ok").Inc()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
