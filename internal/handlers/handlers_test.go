package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/config"
	"github.com/derrickgr2-cpu/familyconnest/internal/models"
	"github.com/derrickgr2-cpu/familyconnest/internal/queue"
	"github.com/derrickgr2-cpu/familyconnest/internal/repository"
	"github.com/derrickgr2-cpu/familyconnest/internal/service"
)

type memUsers struct {
	byID map[string]models.User
}

func (m *memUsers) Create(_ context.Context, user models.User) error {
	for _, u := range m.byID {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	m.byID[user.ID] = user
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

type memEvents struct {
	events []models.Event
}

func (m *memEvents) Create(_ context.Context, event models.Event) (models.Event, error) {
	m.events = append(m.events, event)
	return event, nil
}

func (m *memEvents) List(context.Context) ([]models.Event, error) {
	return m.events, nil
}

func (m *memEvents) GetByID(_ context.Context, id string) (models.Event, error) {
	for _, e := range m.events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, repository.ErrEventNotFound
}

func (m *memEvents) Update(ctx context.Context, id string, patch models.EventPatch) (models.Event, error) {
	return m.GetByID(ctx, id)
}

func (m *memEvents) Delete(ctx context.Context, id string) error {
	_, err := m.GetByID(ctx, id)
	return err
}

// memMembers only serves the public listing.
type memMembers struct {
	service.MemberStore
	calls   int
	members []models.Member
}

func (m *memMembers) ListAll(context.Context) ([]models.Member, error) {
	m.calls++
	return m.members, nil
}

type memCache struct {
	payload []byte
}

func (m *memCache) Members(context.Context) ([]byte, bool, error) {
	return m.payload, m.payload != nil, nil
}

func (m *memCache) StoreMembers(_ context.Context, payload []byte) error {
	m.payload = payload
	return nil
}

type memUploads struct {
	uploads []models.Upload
}

func (m *memUploads) Create(_ context.Context, upload models.Upload) error {
	m.uploads = append(m.uploads, upload)
	return nil
}

func (m *memUploads) List(_ context.Context, limit, offset int) ([]models.Upload, error) {
	return m.uploads, nil
}

type memObjects struct{}

func (memObjects) Put(_ context.Context, _ string, r io.Reader, _ int64, _ string) (int64, error) {
	return io.Copy(io.Discard, r)
}

func (memObjects) PublicURL(key string) string {
	return "http://cdn.test/" + key
}

type memQueue struct{}

func (memQueue) Enqueue(context.Context, queue.Task) error { return nil }

type testServer struct {
	router  *gin.Engine
	members *memMembers
	cache   *memCache
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	cfg := &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			JWTSecret:   "test-secret",
			JWTTTL:      time.Hour,
			AdminEmails: []string{"admin@family.test"},
		},
		Uploads: config.UploadsConfig{MaxBytes: 1 << 20},
	}

	members := &memMembers{members: []models.Member{{ID: "m1", Name: "Grandma", Relationship: "Grandparent", CreatedBy: "u1"}}}
	cache := &memCache{}
	services := Services{
		Auth:    service.NewAuthService(&memUsers{byID: map[string]models.User{}}, cfg.Security, log),
		Members: service.NewMemberService(members, nil, log),
		Events:  service.NewEventService(&memEvents{}),
		Uploads: service.NewUploadService(&memUploads{}, memObjects{}, memQueue{}, cfg.Uploads, log),
	}
	checks := map[string]PingFunc{
		"database": func(context.Context) error { return nil },
		"cache":    func(context.Context) error { return errors.New("connection refused") },
	}

	router := gin.New()
	NewHandlerSet(log, cfg, services, cache, checks).Register(router.Group("/api"))
	return testServer{router: router, members: members, cache: cache}
}

func (s testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func register(t *testing.T, s testServer, email string) authResponse {
	t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"password": "secret1",
		"name":     "Ann",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	return decode[authResponse](t, rec)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	auth := register(t, s, "ann@family.test")
	if auth.TokenType != "bearer" || auth.AccessToken == "" {
		t.Fatalf("expected bearer token, got %+v", auth)
	}

	rec := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "ann@family.test", "password": "secret1", "name": "Ann",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec)["detail"]; got != "Email already registered" {
		t.Fatalf("expected duplicate detail, got %q", got)
	}

	rec = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ann@family.test", "password": "nope!!"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", rec.Code)
	}

	rec = s.do(http.MethodGet, "/api/auth/me", auth.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}
	if me := decode[userResponse](t, rec); me.Email != "ann@family.test" || me.Role != "member" {
		t.Fatalf("unexpected me %+v", me)
	}

	rec = s.do(http.MethodGet, "/api/auth/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous me: expected 401, got %d", rec.Code)
	}
}

func TestEventValidationAndShape(t *testing.T) {
	s := newTestServer(t)
	token := register(t, s, "ann@family.test").AccessToken

	rec := s.do(http.MethodPost, "/api/events", token, map[string]any{"title": "Picnic", "event_date": "next friday"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec)["detail"]; got != "event_date must be YYYY-MM-DD" {
		t.Fatalf("unexpected detail %q", got)
	}

	rec = s.do(http.MethodPost, "/api/events", token, map[string]any{"title": "Picnic", "event_date": "2026-07-04"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	event := decode[eventResponse](t, rec)
	if event.EventDate != "2026-07-04" {
		t.Fatalf("expected wire date 2026-07-04, got %q", event.EventDate)
	}

	rec = s.do(http.MethodGet, "/api/events/missing", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPublicMembersUsesCache(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 2; i++ {
		rec := s.do(http.MethodGet, "/api/members/public", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		members := decode[[]memberResponse](t, rec)
		if len(members) != 1 || members[0].Name != "Grandma" {
			t.Fatalf("unexpected members %+v", members)
		}
	}
	if s.members.calls != 1 {
		t.Fatalf("expected one store read, got %d", s.members.calls)
	}
}

func TestUploadPublic(t *testing.T) {
	s := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="me.png"`)
	h.Set("Content-Type", "image/png")
	part, _ := mw.CreatePart(h)
	_, _ = part.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0})
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload/public", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if url := decode[map[string]string](t, rec)["url"]; len(url) < len("http://cdn.test/") {
		t.Fatalf("unexpected url %q", url)
	}

	rec = s.do(http.MethodPost, "/api/upload", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("authenticated upload without token: expected 401, got %d", rec.Code)
	}
}

func TestAdminUploadsRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	member := register(t, s, "ann@family.test").AccessToken
	admin := register(t, s, "admin@family.test").AccessToken

	if rec := s.do(http.MethodGet, "/api/admin/uploads", member, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("member: expected 403, got %d", rec.Code)
	}
	if rec := s.do(http.MethodGet, "/api/admin/uploads?page=2&perPage=10", admin, nil); rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", rec.Code)
	}
}

func TestHealthReportsComponents(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	health := decode[healthResponse](t, rec)
	if health.Status != "degraded" || health.Components["cache"] != "error" || health.Components["database"] != "ok" {
		t.Fatalf("unexpected health %+v", health)
	}
}
