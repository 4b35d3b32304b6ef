package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var devKey = []byte("test-signing-key")

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(devKey)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (error, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	return mw(handler)(c), c
}

func TestJWTMiddleware_MissingToken(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{SigningKey: devKey})
	err, _ := invoke(t, mw, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	tokenStr := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "carol@example.com",
	})

	mw := JWTMiddleware(JWTConfig{SigningKey: devKey})
	err, c := invoke(t, mw, "Bearer "+tokenStr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := c.Request().Context()
	if got := UserIDFromContext(ctx); got != "user-123" {
		t.Errorf("expected user-123, got %q", got)
	}
	if got := UserEmailFromContext(ctx); got != "carol@example.com" {
		t.Errorf("expected email on context, got %q", got)
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	tokenStr := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	mw := JWTMiddleware(JWTConfig{SigningKey: devKey})
	err, _ := invoke(t, mw, "Bearer "+tokenStr)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %v", err)
	}
}

func TestJWTMiddleware_WrongKey(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenStr, _ := token.SignedString([]byte("some-other-key"))

	mw := JWTMiddleware(JWTConfig{SigningKey: devKey})
	err, _ := invoke(t, mw, "Bearer "+tokenStr)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad signature, got %v", err)
	}
}

func TestServiceKey_Matches(t *testing.T) {
	mw := ServiceKey("service-secret")
	err, _ := invoke(t, mw, "Bearer service-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceKey_Mismatch(t *testing.T) {
	mw := ServiceKey("service-secret")
	for _, header := range []string{"", "Bearer wrong", "Bearer "} {
		err, _ := invoke(t, mw, header)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestServiceKey_EmptyConfiguredKeyRejectsAll(t *testing.T) {
	mw := ServiceKey("")
	err, _ := invoke(t, mw, "Bearer ")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 when no key configured, got %v", err)
	}
}
