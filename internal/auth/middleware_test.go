package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbecker/reloquiz/internal/auth/jwt"
)

func TestRequireAuthInjectsClaims(t *testing.T) {
	store := newMemoryUserStore()
	svc := NewService(store, &stubExchanger{openid: "wx-1"}, testOpts(false), zerolog.New(io.Discard))

	session, err := svc.Login(context.Background(), "code", "Anna")
	require.NoError(t, err)

	var gotOpenID string
	handler := RequireAuth(svc, zerolog.New(io.Discard))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := jwt.ClaimsFromContext(r.Context())
		require.True(t, ok)
		gotOpenID = claims.OpenID
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/questionnaire", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "wx-1", gotOpenID)
}

func TestRequireAuthRejectsMissingAndMalformedTokens(t *testing.T) {
	svc := NewService(newMemoryUserStore(), &stubExchanger{}, testOpts(false), zerolog.New(io.Discard))
	handler := RequireAuth(svc, zerolog.New(io.Discard))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without valid auth")
	}))

	cases := map[string]string{
		"no header":    "",
		"wrong scheme": "Basic abc",
		"bad token":    "Bearer not.a.token",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/v1/questionnaire", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}
