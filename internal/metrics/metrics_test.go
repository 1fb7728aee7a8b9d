package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSubmission(t *testing.T) {
	before := testutil.ToFloat64(inquirySubmissionsTotal.WithLabelValues(OutcomeInvalid))
	RecordSubmission(OutcomeInvalid)
	assert.Equal(t, before+1, testutil.ToFloat64(inquirySubmissionsTotal.WithLabelValues(OutcomeInvalid)))
}

func TestRecordNotification(t *testing.T) {
	sent := testutil.ToFloat64(inquiryNotificationsTotal.WithLabelValues("operator", "sent"))
	failed := testutil.ToFloat64(inquiryNotificationsTotal.WithLabelValues("operator", "failed"))

	RecordNotification("operator", nil)
	RecordNotification("operator", errors.New("smtp down"))

	assert.Equal(t, sent+1, testutil.ToFloat64(inquiryNotificationsTotal.WithLabelValues("operator", "sent")))
	assert.Equal(t, failed+1, testutil.ToFloat64(inquiryNotificationsTotal.WithLabelValues("operator", "failed")))
}

func TestRecordRepositoryCall(t *testing.T) {
	before := testutil.ToFloat64(repositoryRequestsTotal.WithLabelValues("sanity", "error"))
	RecordRepositoryCall("sanity", 20*time.Millisecond, errors.New("timeout"))
	assert.Equal(t, before+1, testutil.ToFloat64(repositoryRequestsTotal.WithLabelValues("sanity", "error")))
}

func TestPrometheusMiddlewareCountsRequests(t *testing.T) {
	h := PrometheusMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"All fields are required"}`))
	}))

	counter := httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/contact", "400")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contact", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
