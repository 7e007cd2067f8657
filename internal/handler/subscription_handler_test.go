package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ott-admin/internal/domain"
	"ott-admin/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "test")
	require.NoError(t, err)
	return log
}

// fakeSubscriptionService records the query it was handed
type fakeSubscriptionService struct {
	lastQuery domain.SubscriptionQuery
	rows      []domain.EnrichedSubscription
	csv       []byte
	filename  string
}

func (f *fakeSubscriptionService) ListEnriched(ctx context.Context, query domain.SubscriptionQuery) ([]domain.EnrichedSubscription, error) {
	f.lastQuery = query
	return f.rows, nil
}

func (f *fakeSubscriptionService) ExportCSV(ctx context.Context, query domain.SubscriptionQuery) ([]byte, string, error) {
	f.lastQuery = query
	return f.csv, f.filename, nil
}

func TestParseSubscriptionQuery(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
		check   func(t *testing.T, q domain.SubscriptionQuery)
	}{
		{
			name: "defaults",
			url:  "/api/subscriptions",
			check: func(t *testing.T, q domain.SubscriptionQuery) {
				assert.Equal(t, domain.FilterAll, q.Status)
				assert.Equal(t, domain.FilterAll, q.Plan)
				assert.Nil(t, q.From)
				assert.Nil(t, q.To)
			},
		},
		{
			name: "all dimensions",
			url:  "/api/subscriptions?search=asha&status=active&plan=premium&auth_method=otp&payment_status=paid&from=2025-04-01&to=2025-04-30",
			check: func(t *testing.T, q domain.SubscriptionQuery) {
				assert.Equal(t, "asha", q.Search)
				assert.Equal(t, "active", q.Status)
				assert.Equal(t, "premium", q.Plan)
				assert.Equal(t, "otp", q.AuthMethod)
				assert.Equal(t, "paid", q.PaymentStatus)
				require.NotNil(t, q.From)
				require.NotNil(t, q.To)
				assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), *q.From)
			},
		},
		{
			name:    "bad from date",
			url:     "/api/subscriptions?from=01-04-2025",
			wantErr: true,
		},
		{
			name:    "to before from",
			url:     "/api/subscriptions?from=2025-04-30&to=2025-04-01",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			q, err := parseSubscriptionQuery(r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, q)
		})
	}
}

func TestSubscriptionHandlerList(t *testing.T) {
	svc := &fakeSubscriptionService{
		rows: []domain.EnrichedSubscription{
			{Subscription: domain.Subscription{ID: "s1"}},
		},
	}
	h := NewSubscriptionHandler(svc, testLogger(t))

	r := chi.NewRouter()
	r.Route("/api", h.RegisterRoutes)

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions?status=active", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "active", svc.lastQuery.Status)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data.Count)
}

func TestSubscriptionHandlerListBadDate(t *testing.T) {
	h := NewSubscriptionHandler(&fakeSubscriptionService{}, testLogger(t))

	r := chi.NewRouter()
	r.Route("/api", h.RegisterRoutes)

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions?from=yesterday", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")
}

func TestSubscriptionHandlerExport(t *testing.T) {
	svc := &fakeSubscriptionService{
		csv:      []byte(`"User Email"` + "\r\n"),
		filename: "subscriptions_2025-04-15.csv",
	}
	h := NewSubscriptionHandler(svc, testLogger(t))

	r := chi.NewRouter()
	r.Route("/api", h.RegisterRoutes)

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions/export", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="subscriptions_2025-04-15.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "\"User Email\"\r\n", rec.Body.String())
}
