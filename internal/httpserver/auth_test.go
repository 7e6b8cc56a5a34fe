package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"supermarket-pos/internal/domain"
)

func TestLoginHandler_IssuesSession(t *testing.T) {
	deps := testDeps()
	sessions := deps.Sessions.(*stubSessions)

	body := `{"username":"cajero1","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(t, deps, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(sessions.issued) != 1 {
		t.Fatalf("expected one session issued, got %d", len(sessions.issued))
	}
	if sessions.issued[0].Token != "upstream-tok" {
		t.Fatalf("session must carry the upstream token, got %q", sessions.issued[0].Token)
	}
	if !strings.Contains(rec.Body.String(), `"sessionToken":"sess-1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"role":"cajero"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	deps := testDeps()
	deps.Auth = &stubAuth{err: domain.ErrUnauthorized}

	body := `{"username":"cajero1","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(t, deps, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLoginHandler_MissingFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(t, testDeps(), req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRegisterHandler_CreatesAccount(t *testing.T) {
	deps := testDeps()
	auth := deps.Auth.(*stubAuth)

	body := `{"username":"cajero2","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(t, deps, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(auth.registered) != 1 || auth.registered[0] != "cajero2" {
		t.Fatalf("expected cajero2 registered, got %v", auth.registered)
	}
}

func TestRegisterHandler_TakenUsername(t *testing.T) {
	deps := testDeps()
	deps.Auth = &stubAuth{registerErr: domain.ErrInvalid}

	body := `{"username":"cajero1","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(t, deps, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLogoutHandler_RevokesSession(t *testing.T) {
	deps := testDeps()
	sessions := deps.Sessions.(*stubSessions)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer sess-1")

	rec := serve(t, deps, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "sess-1" {
		t.Fatalf("expected sess-1 revoked, got %v", sessions.revoked)
	}
}

func TestAdminRoutesForbiddenForCashier(t *testing.T) {
	body := `{"name":"Pan","price":"1.25"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sess-1")

	rec := serve(t, testDeps(), req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminRoutesAllowedForAdmin(t *testing.T) {
	body := `{"name":"Pan","price":"1.25","stock":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sess-admin")

	rec := serve(t, testDeps(), req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
}
