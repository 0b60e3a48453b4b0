package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ngohub/casework/internal/config"
	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/handler"
	"github.com/ngohub/casework/internal/metrics"
)

// ---- mock servicers --------------------------------------------------------
// Set only the method fields your test needs.

type mockActivityServicer struct {
	create    func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	listPaged func(ctx context.Context, f domain.ActivityFilter, p domain.PaginationParams) ([]domain.Activity, int, error)
	update    func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockActivityServicer) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, id)
}
func (m *mockActivityServicer) ListPaged(ctx context.Context, f domain.ActivityFilter, p domain.PaginationParams) ([]domain.Activity, int, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockActivityServicer) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.update(ctx, a)
}
func (m *mockActivityServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

type mockWorkerServicer struct {
	create    func(ctx context.Context, w domain.Worker) (domain.Worker, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Worker, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Worker, int, error)
	update    func(ctx context.Context, w domain.Worker) (domain.Worker, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockWorkerServicer) Create(ctx context.Context, w domain.Worker) (domain.Worker, error) {
	return m.create(ctx, w)
}
func (m *mockWorkerServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Worker, error) {
	return m.getByID(ctx, id)
}
func (m *mockWorkerServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Worker, int, error) {
	return m.listPaged(ctx, p)
}
func (m *mockWorkerServicer) Update(ctx context.Context, w domain.Worker) (domain.Worker, error) {
	return m.update(ctx, w)
}
func (m *mockWorkerServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.WorkerServicer = (*mockWorkerServicer)(nil)

type mockCaseServicer struct {
	create    func(ctx context.Context, c domain.Case) (domain.CaseView, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.CaseView, error)
	listPaged func(ctx context.Context, f domain.CaseFilter, p domain.PaginationParams) ([]domain.CaseView, int, error)
	update    func(ctx context.Context, c domain.Case) (domain.CaseView, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCaseServicer) Create(ctx context.Context, c domain.Case) (domain.CaseView, error) {
	return m.create(ctx, c)
}
func (m *mockCaseServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.CaseView, error) {
	return m.getByID(ctx, id)
}
func (m *mockCaseServicer) ListPaged(ctx context.Context, f domain.CaseFilter, p domain.PaginationParams) ([]domain.CaseView, int, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockCaseServicer) Update(ctx context.Context, c domain.Case) (domain.CaseView, error) {
	return m.update(ctx, c)
}
func (m *mockCaseServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.CaseServicer = (*mockCaseServicer)(nil)

// ---- router harness --------------------------------------------------------

// today is the fixed reference date every handler test runs at.
var today = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

type deps struct {
	activities *mockActivityServicer
	workers    *mockWorkerServicer
	cases      *mockCaseServicer
	cfg        *config.Config
}

type harness struct {
	h       http.Handler
	metrics *metrics.Collectors
}

func testConfig() config.Config {
	return config.Config{
		CORSOrigins:  []string{"http://localhost:5173"},
		MaxBodyBytes: 1 << 20,
	}
}

// newHarness wires the mocks into the real router, mirroring main.go.
func newHarness(d deps) harness {
	if d.activities == nil {
		d.activities = &mockActivityServicer{}
	}
	if d.workers == nil {
		d.workers = &mockWorkerServicer{}
	}
	if d.cases == nil {
		d.cases = &mockCaseServicer{}
	}
	cfg := testConfig()
	if d.cfg != nil {
		cfg = *d.cfg
	}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	srv := handler.NewServer(d.activities, d.workers, d.cases, m,
		handler.WithClock(func() time.Time { return today }),
		handler.WithLogger(discardLogger()),
	)
	return harness{h: handler.NewRouter(srv, cfg, reg), metrics: m}
}

func (h harness) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.h.ServeHTTP(rec, req)
	return rec
}

// envelopeBody is the decoded shape of every response.
type envelopeBody struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Error    *errorBody      `json:"error"`
	PageInfo *pageInfo       `json:"pageInfo"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

type pageInfo struct {
	Page            int  `json:"page"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var body envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func decodeData(t *testing.T, body envelopeBody, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body.Data, dst))
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func intPtr(v int) *int { return &v }

func serve(h harness, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.h.ServeHTTP(rec, r)
	return rec
}
