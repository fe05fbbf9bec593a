package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer([]byte("test-secret"), time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := testIssuer()
	gid := uuid.New()
	p := Principal{UserID: uuid.New(), Role: RoleUser, AccessGroupID: &gid}

	tok, err := issuer.Issue(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != p.UserID {
		t.Errorf("expected user %s, got %s", p.UserID, got.UserID)
	}
	if got.Role != RoleUser {
		t.Errorf("expected role USER, got %s", got.Role)
	}
	if got.AccessGroupID == nil || *got.AccessGroupID != gid {
		t.Error("expected access group to survive the round trip")
	}
}

func TestTokenRoundTrip_NoGroup(t *testing.T) {
	issuer := testIssuer()
	p := Principal{UserID: uuid.New(), Role: RoleAdmin}

	tok, err := issuer.Issue(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AccessGroupID != nil {
		t.Error("expected nil access group")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := testIssuer().Issue(Principal{UserID: uuid.New(), Role: RoleUser})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewTokenIssuer([]byte("other-secret"), time.Hour)
	if _, err := other.Verify(tok); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), -time.Minute)
	tok, err := issuer.Issue(Principal{UserID: uuid.New(), Role: RoleUser})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := issuer.Verify(tok); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestMiddleware_RejectsMissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware(testIssuer())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddleware_AttachesPrincipal(t *testing.T) {
	issuer := testIssuer()
	p := Principal{UserID: uuid.New(), Role: RoleUser}
	tok, _ := issuer.Issue(p)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware(issuer)(func(c echo.Context) error {
		got, ok := PrincipalFromContext(c.Request().Context())
		if !ok {
			t.Error("expected principal on context")
		}
		if got.UserID != p.UserID {
			t.Errorf("expected user %s, got %s", p.UserID, got.UserID)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	handler := RequireRole(RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Admin passes
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetRequest(req.WithContext(WithPrincipal(req.Context(), Principal{UserID: uuid.New(), Role: RoleAdmin})))
	if err := handler(c); err != nil {
		t.Errorf("expected admin to pass, got %v", err)
	}

	// User is rejected
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	c.SetRequest(req.WithContext(WithPrincipal(req.Context(), Principal{UserID: uuid.New(), Role: RoleUser})))
	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403 for USER, got %v", err)
	}

	// No principal at all
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	err = handler(c)
	he, ok = err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without principal, got %v", err)
	}
}
