package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
)

func TestCreatePreference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sub-1", body["external_reference"])
		assert.Equal(t, "https://hook", body["notification_url"])
		_, _ = io.WriteString(w, `{"id":"pref-1","init_point":"https://mp/checkout?pref=1"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", time.Second)
	pref, err := c.CreatePreference(context.Background(), ports.PreferenceRequest{
		Title:             "Plan mensual",
		Amount:            decimal.NewFromInt(15000),
		ExternalReference: "sub-1",
		NotificationURL:   "https://hook",
	})
	require.NoError(t, err)
	assert.Equal(t, "pref-1", pref.ID)
	assert.Equal(t, "https://mp/checkout?pref=1", pref.InitPoint)
}

func TestGetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/payments/123":
			_, _ = io.WriteString(w, `{"id":123,"status":"approved","external_reference":"sub-1","transaction_amount":15000}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Payment not found","error":"not_found","status":404}`)
		}
	}))
	defer srv.Close()
	c := NewClient(srv.URL+"/", "tok", time.Second)

	p, err := c.GetPayment(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "123", p.ID)
	assert.Equal(t, ports.PaymentStatusApproved, p.Status)
	assert.Equal(t, "sub-1", p.ExternalReference)
	assert.True(t, p.Amount.Equal(decimal.NewFromInt(15000)))

	_, err = c.GetPayment(context.Background(), "999")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestErroresSonUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"invalid access token"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "tok", time.Second).CreatePreference(context.Background(), ports.PreferenceRequest{})
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.Contains(t, err.Error(), "invalid access token")

	_, err = NewClient(srv.URL, "", time.Second).GetPayment(context.Background(), "1")
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}
