package views

import (
	"context"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/gateway"
)

const landingMembers = 12

// MyAlbum is the signed-in user's own photo album.
type MyAlbum struct {
	env   Env
	list  *Collection[api.Photo]
	Modal Modal[PhotoForm]
}

func NewMyAlbum(env Env) *MyAlbum {
	return &MyAlbum{env: env, list: NewCollection(env.API.Auth.ListOwnPhotos)}
}

func (a *MyAlbum) Load(ctx context.Context) error {
	return loadInto(ctx, a.env, a.list.Load)
}

func (a *MyAlbum) Loading() bool {
	return a.list.Loading()
}

func (a *MyAlbum) Photos() []api.Photo {
	return a.list.Items()
}

func (a *MyAlbum) OpenAdd() {
	a.Modal.OpenCreate(PhotoForm{})
}

func (a *MyAlbum) UploadPhoto(ctx context.Context, path string) error {
	return uploadInto(ctx, a.env, path, false, &a.Modal.Fields.PhotoURL)
}

func (a *MyAlbum) Submit(ctx context.Context) error {
	return submit(ctx, a.env, &a.Modal, validatePhoto,
		func(ctx context.Context, _ string, _ bool) error {
			_, err := a.env.API.Auth.AddOwnPhoto(ctx, a.Modal.Fields.input())
			return err
		},
		a.list.Load,
		outcome{created: "Photo added"},
	)
}

func (a *MyAlbum) Delete(ctx context.Context, photoID string) error {
	return remove(ctx, a.env, "Delete this photo?",
		func(ctx context.Context) error { return a.env.API.Auth.DeleteOwnPhoto(ctx, photoID) },
		a.list.Load,
		"Photo deleted",
	)
}

// Landing is the signed-out front page.
type Landing struct {
	env  Env
	list *Collection[api.Member]
}

func NewLanding(env Env) *Landing {
	return &Landing{env: env, list: NewCollection(env.API.Members.ListPublic)}
}

func (l *Landing) Load(ctx context.Context) error {
	return loadInto(ctx, l.env, l.list.Load)
}

func (l *Landing) Loading() bool {
	return l.list.Loading()
}

func (l *Landing) Featured() []api.Member {
	return l.list.First(landingMembers)
}

// PublicAlbum shows a user's public profile and photos.
type PublicAlbum struct {
	env     Env
	userID  string
	profile *api.PublicProfile
	loading bool
}

func NewPublicAlbum(env Env, userID string) *PublicAlbum {
	return &PublicAlbum{env: env, userID: userID, loading: true}
}

func (a *PublicAlbum) Load(ctx context.Context) error {
	a.loading = true
	profile, err := a.env.API.Users.GetPublicProfile(ctx, a.userID)
	a.loading = false
	if err != nil {
		if gateway.IsNotFound(err) {
			a.profile = nil
			a.env.Notify.Error("Album not found")
			a.env.navigate(LandingRoute)
			return err
		}
		return a.env.fail(err)
	}
	a.profile = &profile
	return nil
}

func (a *PublicAlbum) Loading() bool {
	return a.loading
}

func (a *PublicAlbum) Profile() (api.PublicProfile, bool) {
	if a.profile == nil {
		return api.PublicProfile{}, false
	}
	return *a.profile, true
}
