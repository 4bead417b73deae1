package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordmath/internal/practice"
)

func TestNewProblem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/problem", r.URL.Path)
		_, _ = w.Write([]byte(`{"sessionId":"abc","problemStatement":"What is 10% of 50?"}`))
	}))
	defer srv.Close()

	p, err := New(srv.URL + "/").NewProblem(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", p.SessionID)
	assert.Equal(t, "What is 10% of 50?", p.ProblemText)
}

func TestSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/problem/submit", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"sessionId": "abc", "userAnswer": "4"}, body)

		_, _ = w.Write([]byte(`{"isCorrect":false,"feedback":"Close! 10% of 50 is 5.","correctAnswer":5}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Submit(context.Background(), "abc", "4")
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	require.NotNil(t, res.CorrectAnswer)
	assert.Equal(t, 5.0, *res.CorrectAnswer)
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		status int
		body   string
		kind   error
		msg    string
	}{
		{http.StatusNotFound, `{"error":"Problem session not found"}`, practice.ErrSessionNotFound, "Problem session not found"},
		{http.StatusBadRequest, `{"error":"Missing session ID or user answer"}`, practice.ErrInvalidInput, "Missing session ID or user answer"},
		{http.StatusInternalServerError, `{"error":"Failed to submit answer and generate feedback"}`, nil, "Failed to submit answer and generate feedback"},
		{http.StatusBadGateway, `upstream down`, nil, "upstream down"},
		{http.StatusServiceUnavailable, ``, nil, "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Submit(context.Background(), "abc", "1")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.msg, apiErr.Message)
			if tt.kind != nil {
				assert.ErrorIs(t, err, tt.kind)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithTimeout(50*time.Millisecond)).NewProblem(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"version":"1.4.0"}`))
	}))
	defer srv.Close()

	v, err := New(srv.URL).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", v)
}

func TestCheckCompatible(t *testing.T) {
	assert.NoError(t, CheckCompatible("1.2.0", "v1.9.3"))
	assert.NoError(t, CheckCompatible("(devel)", "2.0.0"))
	assert.NoError(t, CheckCompatible("dev", ""))
	assert.Error(t, CheckCompatible("v1.0.0", "2.0.0"))
}
