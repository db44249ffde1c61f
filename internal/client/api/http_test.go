package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkalinin/healthportal/internal/common"
	"github.com/mkalinin/healthportal/internal/logging"
)

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, nil, 5*time.Second, logging.NewTextLogger(nopWriter{}, "error"))
}

func TestLogin_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantOutcome LoginOutcome
		wantMessage string
	}{
		{
			name:        "otp issued",
			status:      http.StatusOK,
			body:        `{"message":"OTP sent to your email"}`,
			wantOutcome: OutcomeOTPRequired,
			wantMessage: "OTP sent to your email",
		},
		{
			name:        "otp indicator is case-insensitive",
			status:      http.StatusOK,
			body:        `{"message":"An OTP has been emailed"}`,
			wantOutcome: OutcomeOTPRequired,
			wantMessage: "An OTP has been emailed",
		},
		{
			name:        "success without otp indicator is a rejection",
			status:      http.StatusOK,
			body:        `{"message":"welcome back"}`,
			wantOutcome: OutcomeRejected,
			wantMessage: "welcome back",
		},
		{
			name:        "unauthorized with error text",
			status:      http.StatusUnauthorized,
			body:        `{"error":"Invalid credentials"}`,
			wantOutcome: OutcomeRejected,
			wantMessage: "Invalid credentials",
		},
		{
			name:        "failure body without text",
			status:      http.StatusBadRequest,
			body:        `not even json`,
			wantOutcome: OutcomeRejected,
			wantMessage: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/auth/login", r.URL.Path)

				var req map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				require.Equal(t, "a@b.com", req["email"])
				require.Equal(t, false, req["isAdmin"])

				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			res, err := c.Login(context.Background(), "a@b.com", "x", false)
			require.NoError(t, err)
			require.Equal(t, tc.wantOutcome, res.Outcome)
			require.Equal(t, tc.wantMessage, res.Message)
		})
	}
}

func TestLogin_NetworkFailure(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", nil, time.Second, logging.NewTextLogger(nopWriter{}, "error"))

	_, err := c.Login(context.Background(), "a@b.com", "x", false)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestVerifyLoginOTP(t *testing.T) {
	t.Run("token and user", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/verify-login-otp", r.URL.Path)
			w.Write([]byte(`{"token":"tok1","user":{"_id":"u1","email":"a@b.com","role":"admin"}}`))
		})

		res, err := c.VerifyLoginOTP(context.Background(), "a@b.com", "000000")
		require.NoError(t, err)
		require.True(t, res.Authenticated)
		require.Equal(t, "tok1", res.Token)
		require.NotNil(t, res.User)
		require.Equal(t, "a@b.com", res.User.Email)
	})

	t.Run("success without token is a rejection", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message":"try again"}`))
		})

		res, err := c.VerifyLoginOTP(context.Background(), "a@b.com", "000000")
		require.NoError(t, err)
		require.False(t, res.Authenticated)
		require.Equal(t, "try again", res.Message)
	})

	t.Run("rejection carries server text", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"OTP expired"}`))
		})

		res, err := c.VerifyLoginOTP(context.Background(), "a@b.com", "000000")
		require.NoError(t, err)
		require.False(t, res.Authenticated)
		require.Equal(t, "OTP expired", res.Message)
	})
}

func TestListCommonMedicines_CategoryParam(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/medicine/common", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"_id":"m1","title":"Aspirin","usage":"pain relief","category":"analgesic"}]`))
	})

	list, err := c.ListCommonMedicines(context.Background(), "pain & fever")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Aspirin", list[0].Title)
	require.Equal(t, "category=pain+%26+fever", gotQuery)

	_, err = c.ListCommonMedicines(context.Background(), "")
	require.NoError(t, err)
}

func TestAPIError_Text(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"admins only"}`))
	})

	_, err := c.ListUsers(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, "admins only", apiErr.Message)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}
