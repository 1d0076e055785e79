package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/config"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestWorker создает воркер без Redis и без реальных пауз между повторами
func newTestWorker(cfg *config.Config) (*WebhookWorker, *[]time.Duration) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	w := NewWebhookWorker(nil, logger, cfg)
	var delays []time.Duration
	w.sleep = func(_ context.Context, d time.Duration) { delays = append(delays, d) }
	return w, &delays
}

func testPayload(t *testing.T) (WebhookEvent, string) {
	alert := &models.EmergencyAlert{ID: uuid.New(), Status: models.AlertStatusActive, Priority: models.PriorityCritical}
	event := NewWebhookEvent(EventAlertCreated, alert, &models.Profile{FullName: "Anna Ivanova", Phone: "+100"})
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	return event, string(raw)
}

func TestProcessWebhookEvent_SignsAndDelivers(t *testing.T) {
	var gotSignature, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotSignature = r.Header.Get(signatureHeader)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	w, delays := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookSecret:     "s3cret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	})
	event, raw := testPayload(t)

	ok := w.processWebhookEvent(context.Background(), event, raw)

	assert.True(t, ok)
	assert.Equal(t, raw, gotBody)
	assert.Equal(t, generateHMACSHA256(raw, "s3cret"), gotSignature)
	assert.Empty(t, *delays)
}

func TestProcessWebhookEvent_RetriesWithBackoff(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w, delays := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 4,
		WebhookBaseDelay:  10 * time.Millisecond,
	})
	event, raw := testPayload(t)

	ok := w.processWebhookEvent(context.Background(), event, raw)

	assert.True(t, ok)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, *delays)
}

func TestProcessWebhookEvent_GivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	w, _ := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 2,
		WebhookBaseDelay:  time.Millisecond,
	})
	event, raw := testPayload(t)

	assert.False(t, w.processWebhookEvent(context.Background(), event, raw))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestProcessWebhookEvent_NoURL(t *testing.T) {
	w, _ := newTestWorker(&config.Config{WebhookMaxRetries: 3})
	event, raw := testPayload(t)

	assert.False(t, w.processWebhookEvent(context.Background(), event, raw))
}

func TestNewWebhookEvent_WithoutProfile(t *testing.T) {
	alert := &models.EmergencyAlert{ID: uuid.New()}
	event := NewWebhookEvent(EventAlertUpdated, alert, nil)

	assert.Equal(t, EventAlertUpdated, event.Event)
	assert.Nil(t, event.Tourist)
	assert.Same(t, alert, event.Alert)
	assert.False(t, event.Timestamp.IsZero())
}
