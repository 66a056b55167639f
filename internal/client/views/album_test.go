package views

import (
	"fmt"
	"testing"
)

func TestMyAlbum(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "ann@example.com", "Ann", "member")

	album := NewMyAlbum(h.env)
	if err := album.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if len(album.Photos()) != 0 {
		t.Fatal("expected empty album")
	}

	album.OpenAdd()
	if err := album.Submit(ctx); err == nil || h.notes.lastError() != "Photo URL is required" {
		t.Fatalf("expected URL validation, got %v", err)
	}
	album.Modal.Fields.PhotoURL = "https://img.example/1.png"
	if err := album.Submit(ctx); err != nil {
		t.Fatal(err)
	}

	album.OpenAdd()
	if err := album.UploadPhoto(ctx, imageFile(t, "2.png")); err != nil {
		t.Fatal(err)
	}
	if err := album.Submit(ctx); err != nil {
		t.Fatal(err)
	}

	photos := album.Photos()
	if len(photos) != 2 || photos[0].PhotoURL != "https://img.example/1.png" {
		t.Fatalf("unexpected photos %+v", photos)
	}

	if err := album.Delete(ctx, photos[0].ID); err != nil {
		t.Fatal(err)
	}
	if len(album.Photos()) != 1 {
		t.Fatal("expected one photo left")
	}
}

func TestLandingShowsFirstTwelve(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "ann@example.com", "Ann", "member")
	for i := 0; i < 13; i++ {
		h.createMember(t, fmt.Sprintf("Member %02d", i), "Cousin", nil)
	}
	h.session.Logout()

	landing := NewLanding(h.env)
	if err := landing.Load(ctx); err != nil {
		t.Fatal(err)
	}
	featured := landing.Featured()
	if len(featured) != 12 || featured[0].Name != "Member 00" || featured[11].Name != "Member 11" {
		t.Fatalf("unexpected featured members %d", len(featured))
	}
}

func TestPublicAlbum(t *testing.T) {
	h := newHarness(t)
	ann := h.signIn(t, "ann@example.com", "Ann", "member")
	album := NewMyAlbum(h.env)
	album.OpenAdd()
	album.Modal.Fields.PhotoURL = "https://img.example/1.png"
	if err := album.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	h.session.Logout()

	public := NewPublicAlbum(h.env, ann.ID)
	if err := public.Load(ctx); err != nil {
		t.Fatal(err)
	}
	profile, ok := public.Profile()
	if !ok || profile.Name != "Ann" || len(profile.Photos) != 1 {
		t.Fatalf("unexpected profile %+v", profile)
	}

	missing := NewPublicAlbum(h.env, "nobody")
	if err := missing.Load(ctx); err == nil {
		t.Fatal("expected not found")
	}
	if h.nav.last() != LandingRoute {
		t.Fatalf("expected navigation to %s, got %v", LandingRoute, h.nav.routes)
	}
}
