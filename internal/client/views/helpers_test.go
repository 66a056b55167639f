package views

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/clienttest"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/credentials"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/session"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/upload"
)

type notes struct {
	successes []string
	errors    []string
}

func (n *notes) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *notes) Error(msg string)   { n.errors = append(n.errors, msg) }

func (n *notes) lastError() string {
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

type answer struct {
	yes     bool
	prompts []string
}

func (a *answer) Confirm(prompt string) bool {
	a.prompts = append(a.prompts, prompt)
	return a.yes
}

type navRecorder struct {
	routes []string
}

func (n *navRecorder) Navigate(route string) { n.routes = append(n.routes, route) }

func (n *navRecorder) last() string {
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

type harness struct {
	srv     *clienttest.Server
	env     Env
	creds   *credentials.MemoryStore
	session *session.Store
	notes   *notes
	confirm *answer
	nav     *navRecorder
}

var ctx = context.Background()

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := clienttest.New(t)
	creds := credentials.NewMemoryStore()
	gw := srv.Gateway(creds)
	client := api.New(gw)
	nav := &navRecorder{}
	store := session.New(client.Auth, creds, nav, zerolog.Nop())
	gw.OnUnauthorized(store.ForceLogout)
	store.Initialize(ctx)

	h := &harness{
		srv:     srv,
		creds:   creds,
		session: store,
		notes:   &notes{},
		confirm: &answer{yes: true},
		nav:     nav,
	}
	h.env = Env{
		API:      client,
		Session:  store,
		Notify:   h.notes,
		Confirm:  h.confirm,
		Navigate: nav,
		Uploads:  upload.New(client.Upload),
	}
	return h
}

// signIn seeds an account and logs the session into it.
func (h *harness) signIn(t *testing.T, email, name, role string) api.User {
	t.Helper()
	user, _ := h.srv.SeedUser(email, "secret1", name, role)
	if err := h.session.Login(ctx, email, "secret1"); err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return user
}

func (h *harness) createMember(t *testing.T, name, relationship string, parentID *string) api.Member {
	t.Helper()
	m, err := h.env.API.Members.Create(ctx, api.MemberFields{Name: &name, Relationship: &relationship, ParentID: parentID})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	return m
}

func (h *harness) createEvent(t *testing.T, title, date string) api.Event {
	t.Helper()
	e, err := h.env.API.Events.Create(ctx, api.EventFields{Title: &title, EventDate: &date})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return e
}

func imageFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func mustDate(t *testing.T, s string) api.Date {
	t.Helper()
	d, err := api.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
