package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubAuthService struct {
	authorized bool
}

func (s *stubAuthService) Login(context.Context, string, string) error { return nil }
func (s *stubAuthService) Logout(context.Context) error                { return nil }
func (s *stubAuthService) Authorized(context.Context) bool             { return s.authorized }
func (s *stubAuthService) ConsumeWelcome(context.Context) bool         { return false }

func TestSession_RejectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/employees", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	next := func(echo.Context) error {
		handlerCalled = true
		return nil
	}

	err := Session(&stubAuthService{authorized: false})(next)(c)

	if handlerCalled {
		t.Fatal("handler must not run for an anonymous caller")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", he.Code)
	}
	// The guard runs before the handler: nothing may have been written.
	if rec.Body.Len() != 0 {
		t.Errorf("no protected bytes may be written, got %q", rec.Body.String())
	}
}

func TestSession_PassesAuthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/employees", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	next := func(echo.Context) error {
		handlerCalled = true
		return nil
	}

	if err := Session(&stubAuthService{authorized: true})(next)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler must run for an authenticated caller")
	}
}
