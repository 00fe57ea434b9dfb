package accounts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:          srv.URL,
		Timeout:          2 * time.Second,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	}, zap.NewNop().Sugar())
}

func TestLoginSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "vet@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"refresh":"r","access":"a.b.c","user_id":4,"username":"vet","email":"vet@example.com","role":2,"phone_number":"9800000000"}`))
	})

	l, err := c.Login(context.Background(), "vet@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, &session.Login{
		Token: "a.b.c",
		Role:  session.RoleVeterinarian,
		Profile: session.Profile{
			Username:    "vet",
			Email:       "vet@example.com",
			PhoneNumber: "9800000000",
		},
	}, l)
}

func TestLoginUnknownRole(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access":"tok","role":7}`))
	})

	l, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, session.RoleNone, l.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid email or password."}`))
	})

	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBadRequestKeepsBreakerClosed(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Please provide both email and password."}`))
	})

	for i := 0; i < 4; i++ {
		_, err := c.Login(context.Background(), "", "")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Please provide both email and password.", apiErr.Message)
	}
	assert.Equal(t, int32(4), calls.Load())
}

func TestLoginServerErrorsOpenBreaker(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 2; i++ {
		_, err := c.Login(context.Background(), "a@b.c", "pw")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	}

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLoginAbandonedByCallerKeepsBreakerClosed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(50 * time.Millisecond):
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`{"access":"a.b.c","role":1}`))
	})

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		_, err := c.Login(ctx, "a@b.c", "pw")
		cancel()
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Login(ctx, "a@b.c", "pw")
	assert.ErrorIs(t, err, context.Canceled)

	l, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, session.RoleUser, l.Role)
}

func TestLoginMissingToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"username":"x"}`))
	})

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
