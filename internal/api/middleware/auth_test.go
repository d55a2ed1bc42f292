package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-service/internal/core/domain"
)

type stubTokenStore struct {
	tokens map[string]int64
}

func (s *stubTokenStore) Issue(context.Context, int64) (string, error) {
	panic("not used")
}

func (s *stubTokenStore) Validate(_ context.Context, token string) (int64, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	return userID, nil
}

func (s *stubTokenStore) Revoke(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	store := &stubTokenStore{tokens: map[string]int64{"goodtoken": 42}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(store)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != int64(42) {
			t.Fatalf("user_id not set, got %v", c.Get(CtxUserID))
		}
		if c.Get(CtxToken) != "goodtoken" {
			t.Fatalf("token not set, got %v", c.Get(CtxToken))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(&stubTokenStore{tokens: map[string]int64{}})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(&stubTokenStore{tokens: map[string]int64{}})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	e := echo.New()
	store := &stubTokenStore{tokens: map[string]int64{"stale": 7}}
	if err := store.Revoke(context.Background(), "stale"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(store)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
