package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateSessionSetsSignedCookie(t *testing.T) {
	srv := newTestServer(t, &fakeWebhookService{})

	req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"email":"Buyer@Example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == sessionCookieName {
			session = c
		}
	}
	if session == nil {
		t.Fatal("expected session cookie")
	}

	email, ok := srv.verifySession(session.Value)
	if !ok || email != "buyer@example.com" {
		t.Fatalf("verify = %q, %v", email, ok)
	}
}

func TestCreateSessionRejectsBadEmail(t *testing.T) {
	srv := newTestServer(t, &fakeWebhookService{})

	req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestBuyerRequiredRejectsMissingSession(t *testing.T) {
	srv := newTestServer(t, &fakeWebhookService{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestBuyerRequiredRejectsForgedCookie(t *testing.T) {
	srv := newTestServer(t, &fakeWebhookService{})

	forged := &Server{cfg: srv.cfg}
	forged.cfg.SessionSecret = "different_secret"

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: forged.signSession("buyer@example.com")})
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}
