package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/placementtrack/api/internal/auth"
	"github.com/placementtrack/api/internal/config"
	apphttp "github.com/placementtrack/api/internal/http"
	"github.com/placementtrack/api/internal/repo/memory"
	"github.com/placementtrack/api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.Config {
	return config.Config{
		Env:             "test",
		Port:            0,
		JWTSecret:       "test-secret-key",
		TokenTTLMinutes: 60,
		AllowedOrigins:  []string{"http://localhost:3000", "http://127.0.0.1:3000"},
	}
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := testConfig()
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL())
	svc := service.NewAuthService(memory.NewUsersRepo(), jwtManager, log)

	return apphttp.NewRouter(log, cfg, svc, jwtManager, nil, nil)
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    map[string]any    `json:"data"`
	Errors  map[string]string `json:"errors"`
	Token   string            `json:"token"`
}

func request(t *testing.T, r *gin.Engine, method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestAuthFlow(t *testing.T) {
	r := setupTestRouter(t)

	// register
	w, env := request(t, r, http.MethodPost, "/api/auth/register",
		`{"name":"Jo","email":"jo@x.com","password":"secret1"}`, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d (%s)", w.Code, w.Body.String())
	}
	if env.Token == "" {
		t.Fatal("register returned no token")
	}
	if _, ok := env.Data["password_hash"]; ok {
		t.Error("register response leaked password_hash")
	}

	// the token decodes to the id the store assigned
	m := auth.NewManager("test-secret-key", time.Hour)
	subject, err := m.Verify(env.Token)
	if err != nil {
		t.Fatalf("register token invalid: %v", err)
	}
	if subject != env.Data["id"] {
		t.Errorf("token subject = %q, user id = %v", subject, env.Data["id"])
	}

	// registering the same address again, case and padding varied
	w, _ = request(t, r, http.MethodPost, "/api/auth/register",
		`{"name":"Jo","email":"JO@x.com ","password":"secret1"}`, "")
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}

	// login
	w, loginEnv := request(t, r, http.MethodPost, "/api/auth/login",
		`{"email":"jo@x.com","password":"secret1"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d (%s)", w.Code, w.Body.String())
	}
	if loginEnv.Token == "" {
		t.Fatal("login returned no token")
	}

	// me
	w, meEnv := request(t, r, http.MethodGet, "/api/auth/me", "", loginEnv.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d (%s)", w.Code, w.Body.String())
	}
	if meEnv.Data["email"] != "jo@x.com" {
		t.Errorf("me email = %v", meEnv.Data["email"])
	}

	// logout
	w, _ = request(t, r, http.MethodPost, "/api/auth/logout", "", loginEnv.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	// tokens are stateless: the same token keeps working after logout
	w, _ = request(t, r, http.MethodGet, "/api/auth/me", "", loginEnv.Token)
	if w.Code != http.StatusOK {
		t.Errorf("me after logout status = %d, want 200 (no server-side revocation)", w.Code)
	}
}

func TestLoginRejections(t *testing.T) {
	r := setupTestRouter(t)

	request(t, r, http.MethodPost, "/api/auth/register",
		`{"name":"Jo","email":"jo@x.com","password":"secret1"}`, "")

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "wrong password",
			body:        `{"email":"jo@x.com","password":"nope99"}`,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid email or password",
		},
		{
			name:        "unknown email, same shape",
			body:        `{"email":"ghost@x.com","password":"secret1"}`,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid email or password",
		},
		{
			name:        "missing password",
			body:        `{"email":"jo@x.com"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Email and password are required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, env := request(t, r, http.MethodPost, "/api/auth/login", tc.body, "")

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if env.Message != tc.wantMessage {
				t.Errorf("message = %q, want %q", env.Message, tc.wantMessage)
			}
		})
	}
}

func TestRegisterValidationThroughRouter(t *testing.T) {
	r := setupTestRouter(t)

	w, env := request(t, r, http.MethodPost, "/api/auth/register", `{"name":"J"}`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	for _, field := range []string{"name", "email", "password"} {
		if _, ok := env.Errors[field]; !ok {
			t.Errorf("missing %q in errors %v", field, env.Errors)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := setupTestRouter(t)

	w, _ := request(t, r, http.MethodGet, "/api/health", "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["success"] != true || body["message"] != "Backend is running" {
		t.Errorf("body = %v", body)
	}
	if _, ok := body["timestamp"].(string); !ok {
		t.Error("missing timestamp")
	}
}

func TestUnknownRoute(t *testing.T) {
	r := setupTestRouter(t)

	w, env := request(t, r, http.MethodGet, "/api/nope", "", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if env.Message != "Endpoint not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow-origin = %q", got)
	}

	// unknown origins get no CORS headers
	req = httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://evil.example")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow-origin %q for unlisted origin", got)
	}
}
