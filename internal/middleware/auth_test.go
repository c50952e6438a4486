package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	iauth "github.com/scribehq/scribe/internal/auth"
)

func newJWTService(t *testing.T) *iauth.JWTService {
	t.Helper()

	svc, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "middleware-test-secret"})
	require.NoError(t, err)
	return svc
}

func performAuth(t *testing.T, svc *iauth.JWTService, header string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}

	Auth(svc)(c)
	return rec, c
}

func TestAuthAcceptsValidBearerToken(t *testing.T) {
	svc := newJWTService(t)
	token, err := svc.GenerateAccessToken(iauth.AccessTokenInput{UserID: 42, Email: "a@x.com"})
	require.NoError(t, err)

	rec, c := performAuth(t, svc, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, c.IsAborted())

	v, ok := c.Get(CtxUserIDKey)
	require.True(t, ok)
	require.Equal(t, uint(42), v)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	svc := newJWTService(t)

	rec, c := performAuth(t, svc, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.True(t, c.IsAborted())
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	svc := newJWTService(t)

	rec, _ := performAuth(t, svc, "Token abc")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	svc := newJWTService(t)

	rec, _ := performAuth(t, svc, "Bearer not.a.jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	svc := newJWTService(t)

	other, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "other-secret"})
	require.NoError(t, err)
	token, err := other.GenerateAccessToken(iauth.AccessTokenInput{UserID: 7})
	require.NoError(t, err)

	rec, _ := performAuth(t, svc, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
