package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"heating_quoting/internal/service"
)

func TestSignUpHandler(t *testing.T) {
	auth := &mockAuth{signUpID: 3}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodPost, "/auth/sign-up",
		`{"username":"manager1","password":"secret","role":"admin"}`, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if auth.lastSignUpUsername != "manager1" || auth.lastSignUpRole != "admin" {
		t.Fatalf("credentials not forwarded: %s/%s", auth.lastSignUpUsername, auth.lastSignUpRole)
	}
	var resp struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.ID != 3 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	auth.signUpErr = errors.New("username taken")
	w = doRequest(r, http.MethodPost, "/auth/sign-up", `{"username":"manager1","password":"secret"}`, false)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSignInHandler(t *testing.T) {
	auth := &mockAuth{genTokenToken: "jwt-token"}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodPost, "/auth/sign-in", `{"username":"manager1","password":"secret"}`, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token != "jwt-token" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	auth.genTokenErr = errors.New("bad credentials")
	w = doRequest(r, http.MethodPost, "/auth/sign-in", `{"username":"manager1","password":"wrong"}`, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestUserIdMiddleware_HeaderFormats(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	s := &service.Service{Authorization: auth, Leads: &mockLeads{}}
	r := newTestRouter(s)

	// Malformed header scheme.
	w := doRequest(r, http.MethodGet, "/api/v1/leads", "", false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil)
	req.Header.Set("Authorization", "Token abc")
	w2 := doRawRequest(r, req)
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-Bearer scheme, got %d", w2.Code)
	}

	// Token rejected by the auth service.
	auth.parseErr = errors.New("expired")
	w = doRequest(r, http.MethodGet, "/api/v1/leads", "", true)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for rejected token, got %d", w.Code)
	}
}
