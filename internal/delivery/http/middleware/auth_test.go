package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	userID string
	err    error
}

func (v *stubVerifier) Verify(_ string) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.userID, nil
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "missing header",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc123",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			header:     "Bearer ",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verification fails",
			header:     "Bearer bad-token",
			verifier:   &stubVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			header:     "Bearer good-token",
			verifier:   &stubVerifier{userID: "user-1"},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nextCalled bool
			var gotUserID string
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodGet, "/events/organized", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(tt.verifier)(next)(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.wantNext, nextCalled)
			if tt.wantNext {
				require.Equal(t, "user-1", gotUserID)
			}
		})
	}
}

func TestUserIDFromContext_missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(req.Context())
	require.False(t, ok)
}
