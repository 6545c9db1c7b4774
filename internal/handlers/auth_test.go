package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"todo_service/internal/models"
	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		users    *mockUsers
		wantCode int
	}{
		{
			name: "success",
			body: `{"email":"a@x.com","username":"alice","password":"pw"}`,
			users: &mockUsers{
				createU: &models.User{ID: 1, Email: "a@x.com", Username: "alice", PasswordHash: "h", IsActive: true},
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "duplicate email",
			body:     `{"email":"a@x.com","password":"pw"}`,
			users:    &mockUsers{createErr: service.ErrEmailTaken},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing password",
			body:     `{"email":"a@x.com"}`,
			users:    &mockUsers{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed email",
			body:     `{"email":"not-an-email","password":"pw"}`,
			users:    &mockUsers{},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Users: tt.users})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/sign-up", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			// public shape only; hash must never serialize
			var out map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if out["id"] != float64(1) || out["email"] != "a@x.com" || out["is_active"] != true {
				t.Fatalf("unexpected public user: %v", out)
			}
			if strings.Contains(w.Body.String(), "password") {
				t.Fatalf("password material leaked into response: %s", w.Body.String())
			}
			if tt.users.lastCreate.Email != "a@x.com" || tt.users.lastCreate.Password != "pw" {
				t.Fatalf("unexpected params passed to service: %+v", tt.users.lastCreate)
			}
		})
	}
}

func TestSignIn_JSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		auth     *mockAuth
		wantCode int
	}{
		{
			name:     "success",
			body:     `{"email":"a@x.com","password":"pw"}`,
			auth:     &mockAuth{genToken: "signed-token"},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong password",
			body:     `{"email":"a@x.com","password":"nope"}`,
			auth:     &mockAuth{genErr: service.ErrInvalidCredentials},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "unknown email",
			body:     `{"email":"nobody@x.com","password":"pw"}`,
			auth:     &mockAuth{genErr: service.ErrUserNotFound},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "missing fields",
			body:     `{}`,
			auth:     &mockAuth{},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tt.auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var out tokenResponse
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if out.AccessToken != "signed-token" || out.TokenType != "bearer" {
				t.Fatalf("unexpected token response: %+v", out)
			}
		})
	}
}

func TestSignIn_Form(t *testing.T) {
	auth := &mockAuth{genToken: "signed-token"}
	r := newTestRouter(&service.Service{Authorization: auth})

	form := url.Values{}
	form.Set("email", "a@x.com")
	form.Set("password", "pw")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body=%s)", w.Code, w.Body.String())
	}
	if auth.lastGenEmail != "a@x.com" || auth.lastGenPassword != "pw" {
		t.Fatalf("form credentials did not reach the service: %q/%q", auth.lastGenEmail, auth.lastGenPassword)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
}
