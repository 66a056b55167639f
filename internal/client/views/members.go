package views

import (
	"context"
	"strings"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
)

const recentMembers = 4

type MemberForm struct {
	Name         string
	Relationship string
	BirthDate    string
	Bio          string
	PhotoURL     string
	ParentID     string
}

func memberForm(m api.Member) MemberForm {
	return MemberForm{
		Name:         m.Name,
		Relationship: m.Relationship,
		BirthDate:    deref(m.BirthDate),
		Bio:          deref(m.Bio),
		PhotoURL:     deref(m.PhotoURL),
		ParentID:     deref(m.ParentID),
	}
}

func validateMember(f MemberForm) error {
	return firstError(
		required("name", "Name", f.Name),
		required("relationship", "Relationship", f.Relationship),
	)
}

func (f MemberForm) createFields() api.MemberFields {
	return api.MemberFields{
		Name:         field(f.Name),
		Relationship: field(f.Relationship),
		BirthDate:    optional(f.BirthDate),
		Bio:          optional(f.Bio),
		PhotoURL:     optional(f.PhotoURL),
		ParentID:     optional(f.ParentID),
	}
}

// updateFields sends every field so that cleared inputs clear the record.
func (f MemberForm) updateFields() api.MemberFields {
	return api.MemberFields{
		Name:         field(f.Name),
		Relationship: field(f.Relationship),
		BirthDate:    field(f.BirthDate),
		Bio:          field(f.Bio),
		PhotoURL:     field(f.PhotoURL),
		ParentID:     field(f.ParentID),
	}
}

type Members struct {
	env   Env
	list  *Collection[api.Member]
	Modal Modal[MemberForm]
}

func NewMembers(env Env) *Members {
	return &Members{env: env, list: NewCollection(env.API.Members.List)}
}

func (m *Members) Load(ctx context.Context) error {
	return loadInto(ctx, m.env, m.list.Load)
}

func (m *Members) Loading() bool {
	return m.list.Loading()
}

func (m *Members) All() []api.Member {
	return m.list.Items()
}

// Filter matches query case-insensitively against name or relationship.
func (m *Members) Filter(query string) []api.Member {
	return filterMembers(m.list.Items(), query)
}

func filterMembers(members []api.Member, query string) []api.Member {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return members
	}
	out := make([]api.Member, 0, len(members))
	for _, member := range members {
		if strings.Contains(strings.ToLower(member.Name), query) ||
			strings.Contains(strings.ToLower(member.Relationship), query) {
			out = append(out, member)
		}
	}
	return out
}

// Recent is the first few members in server order.
func (m *Members) Recent() []api.Member {
	return m.list.First(recentMembers)
}

// ParentOptions lists every member except the one being edited.
func (m *Members) ParentOptions() []api.Member {
	editing, _ := m.Modal.EditingID()
	return parentOptions(m.list.Items(), editing)
}

func parentOptions(members []api.Member, exclude string) []api.Member {
	out := make([]api.Member, 0, len(members))
	for _, member := range members {
		if member.ID != exclude {
			out = append(out, member)
		}
	}
	return out
}

func (m *Members) OpenCreate() {
	m.Modal.OpenCreate(MemberForm{})
}

func (m *Members) OpenEdit(id string) error {
	member, ok := m.list.Find(func(x api.Member) bool { return x.ID == id })
	if !ok {
		return m.env.fail(notFound("Member"))
	}
	m.Modal.OpenEdit(id, memberForm(member))
	return nil
}

// UploadPhoto fills the form's photo URL from a local file.
func (m *Members) UploadPhoto(ctx context.Context, path string) error {
	return uploadInto(ctx, m.env, path, false, &m.Modal.Fields.PhotoURL)
}

func (m *Members) Submit(ctx context.Context) error {
	return submit(ctx, m.env, &m.Modal, validateMember,
		func(ctx context.Context, id string, editing bool) error {
			var err error
			if editing {
				_, err = m.env.API.Members.Update(ctx, id, m.Modal.Fields.updateFields())
			} else {
				_, err = m.env.API.Members.Create(ctx, m.Modal.Fields.createFields())
			}
			return err
		},
		m.list.Load,
		outcome{created: "Member added", updated: "Member updated"},
	)
}

func (m *Members) Delete(ctx context.Context, id string) error {
	name := id
	if member, ok := m.list.Find(func(x api.Member) bool { return x.ID == id }); ok {
		name = member.Name
	}
	return remove(ctx, m.env, "Delete "+name+"?",
		func(ctx context.Context) error { return m.env.API.Members.Delete(ctx, id) },
		m.list.Load,
		"Member deleted",
	)
}
