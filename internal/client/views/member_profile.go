package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/gateway"
)

type PhotoForm struct {
	PhotoURL string
	Caption  string
}

func validatePhoto(f PhotoForm) error {
	return required("photo_url", "Photo URL", f.PhotoURL)
}

func (f PhotoForm) input() api.PhotoInput {
	return api.PhotoInput{PhotoURL: f.PhotoURL, Caption: optional(f.Caption)}
}

// MemberProfile is the detail view of one member and its photos.
type MemberProfile struct {
	env     Env
	id      string
	member  *api.Member
	members []api.Member
	loading bool

	Modal      Modal[MemberForm]
	PhotoModal Modal[PhotoForm]
}

func NewMemberProfile(env Env, id string) *MemberProfile {
	return &MemberProfile{env: env, id: id, loading: true}
}

// Load fetches the member and the whole collection together; the parent is
// resolved from the collection. A missing member sends the user back to
// the member list.
func (p *MemberProfile) Load(ctx context.Context) error {
	err := p.fetch(ctx)
	switch {
	case err == nil:
		return nil
	case gateway.IsNotFound(err):
		p.env.Notify.Error("Member not found")
		p.env.navigate(MembersRoute)
		return err
	default:
		return p.env.fail(err)
	}
}

func (p *MemberProfile) fetch(ctx context.Context) error {
	p.loading = true
	defer func() { p.loading = false }()

	var (
		member  api.Member
		members []api.Member
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		member, err = p.env.API.Members.Get(gctx, p.id)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = p.env.API.Members.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if gateway.IsNotFound(err) {
			p.member = nil
		}
		return err
	}

	p.member, p.members = &member, members
	return nil
}

func (p *MemberProfile) Loading() bool {
	return p.loading
}

func (p *MemberProfile) Member() (api.Member, bool) {
	if p.member == nil {
		return api.Member{}, false
	}
	return *p.member, true
}

func (p *MemberProfile) Photos() []api.Photo {
	if p.member == nil {
		return nil
	}
	return append([]api.Photo(nil), p.member.Photos...)
}

// Parent resolves parent_id against the collection fetched alongside the
// member.
func (p *MemberProfile) Parent() (api.Member, bool) {
	if p.member == nil || p.member.ParentID == nil {
		return api.Member{}, false
	}
	index := make(map[string]api.Member, len(p.members))
	for _, m := range p.members {
		index[m.ID] = m
	}
	parent, ok := index[*p.member.ParentID]
	return parent, ok
}

func (p *MemberProfile) Children() []api.Member {
	var out []api.Member
	for _, m := range p.members {
		if m.ParentID != nil && *m.ParentID == p.id {
			out = append(out, m)
		}
	}
	return out
}

func (p *MemberProfile) ParentOptions() []api.Member {
	return parentOptions(p.members, p.id)
}

func (p *MemberProfile) OpenEdit() error {
	if p.member == nil {
		return p.env.fail(notFound("Member"))
	}
	p.Modal.OpenEdit(p.id, memberForm(*p.member))
	return nil
}

func (p *MemberProfile) UploadPhoto(ctx context.Context, path string) error {
	return uploadInto(ctx, p.env, path, false, &p.Modal.Fields.PhotoURL)
}

func (p *MemberProfile) Submit(ctx context.Context) error {
	return submit(ctx, p.env, &p.Modal, validateMember,
		func(ctx context.Context, id string, _ bool) error {
			_, err := p.env.API.Members.Update(ctx, id, p.Modal.Fields.updateFields())
			return err
		},
		p.fetch,
		outcome{updated: "Member updated"},
	)
}

// Delete returns to the member list on success.
func (p *MemberProfile) Delete(ctx context.Context) error {
	name := p.id
	if p.member != nil {
		name = p.member.Name
	}
	return remove(ctx, p.env, "Delete "+name+"?",
		func(ctx context.Context) error { return p.env.API.Members.Delete(ctx, p.id) },
		func(context.Context) error {
			p.member = nil
			p.env.navigate(MembersRoute)
			return nil
		},
		"Member deleted",
	)
}

func (p *MemberProfile) OpenAddPhoto() {
	p.PhotoModal.OpenCreate(PhotoForm{})
}

// UploadAlbumPhoto fills the add-photo form from a local file.
func (p *MemberProfile) UploadAlbumPhoto(ctx context.Context, path string) error {
	return uploadInto(ctx, p.env, path, false, &p.PhotoModal.Fields.PhotoURL)
}

func (p *MemberProfile) SubmitPhoto(ctx context.Context) error {
	return submit(ctx, p.env, &p.PhotoModal, validatePhoto,
		func(ctx context.Context, _ string, _ bool) error {
			_, err := p.env.API.Photos.Add(ctx, p.id, p.PhotoModal.Fields.input())
			return err
		},
		p.fetch,
		outcome{created: "Photo added"},
	)
}

func (p *MemberProfile) DeletePhoto(ctx context.Context, photoID string) error {
	return remove(ctx, p.env, "Delete this photo?",
		func(ctx context.Context) error { return p.env.API.Photos.Delete(ctx, p.id, photoID) },
		p.fetch,
		"Photo deleted",
	)
}
