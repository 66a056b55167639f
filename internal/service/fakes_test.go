package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"

	"github.com/derrickgr2-cpu/familyconnest/internal/models"
	"github.com/derrickgr2-cpu/familyconnest/internal/queue"
	"github.com/derrickgr2-cpu/familyconnest/internal/repository"
)

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]models.User
	email map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]models.User{}, email: map[string]string{}}
}

func (f *fakeUsers) Create(_ context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.email[user.Email]; ok {
		return repository.ErrEmailExists
	}
	f.byID[user.ID] = user
	f.email[user.Email] = user.ID
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.email[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return f.byID[id], nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

type fakeMembers struct {
	members map[string]models.Member
	order   []string
}

func newFakeMembers(members ...models.Member) *fakeMembers {
	f := &fakeMembers{members: map[string]models.Member{}}
	for _, m := range members {
		f.members[m.ID] = m
		f.order = append(f.order, m.ID)
	}
	return f
}

func (f *fakeMembers) Create(_ context.Context, member models.Member) (models.Member, error) {
	member.Photos = []models.Photo{}
	f.members[member.ID] = member
	f.order = append(f.order, member.ID)
	return member, nil
}

func (f *fakeMembers) ListByOwner(_ context.Context, ownerID string) ([]models.Member, error) {
	var out []models.Member
	for _, id := range f.order {
		if m, ok := f.members[id]; ok && m.CreatedBy == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembers) ListAll(_ context.Context) ([]models.Member, error) {
	var out []models.Member
	for _, id := range f.order {
		if m, ok := f.members[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembers) GetByID(_ context.Context, id string) (models.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return models.Member{}, repository.ErrMemberNotFound
	}
	return m, nil
}

func (f *fakeMembers) GetOwned(ctx context.Context, id string, ownerID string) (models.Member, error) {
	m, err := f.GetByID(ctx, id)
	if err != nil || m.CreatedBy != ownerID {
		return models.Member{}, repository.ErrMemberNotFound
	}
	return m, nil
}

func (f *fakeMembers) ParentIndex(_ context.Context, ownerID string) (map[string]string, error) {
	index := map[string]string{}
	for id, m := range f.members {
		if m.CreatedBy != ownerID {
			continue
		}
		index[id] = ""
		if m.ParentID != nil {
			index[id] = *m.ParentID
		}
	}
	return index, nil
}

func (f *fakeMembers) Update(ctx context.Context, id string, ownerID string, patch models.MemberPatch) (models.Member, error) {
	m, err := f.GetOwned(ctx, id, ownerID)
	if err != nil {
		return models.Member{}, err
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Relationship != nil {
		m.Relationship = *patch.Relationship
	}
	m.BirthDate = applyOptional(m.BirthDate, patch.BirthDate)
	m.Bio = applyOptional(m.Bio, patch.Bio)
	m.PhotoURL = applyOptional(m.PhotoURL, patch.PhotoURL)
	m.ParentID = applyOptional(m.ParentID, patch.ParentID)
	f.members[id] = m
	return m, nil
}

func applyOptional(current, patch *string) *string {
	if patch == nil {
		return current
	}
	if *patch == "" {
		return nil
	}
	v := *patch
	return &v
}

func (f *fakeMembers) Delete(ctx context.Context, id string, ownerID string) error {
	if _, err := f.GetOwned(ctx, id, ownerID); err != nil {
		return err
	}
	delete(f.members, id)
	for childID, child := range f.members {
		if child.ParentID != nil && *child.ParentID == id {
			child.ParentID = nil
			f.members[childID] = child
		}
	}
	return nil
}

type fakePhotos struct {
	photos []models.Photo
}

func (f *fakePhotos) Create(_ context.Context, photo models.Photo) (models.Photo, error) {
	f.photos = append(f.photos, photo)
	return photo, nil
}

func (f *fakePhotos) ListByMember(_ context.Context, memberID string) ([]models.Photo, error) {
	var out []models.Photo
	for _, p := range f.photos {
		if p.MemberID != nil && *p.MemberID == memberID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePhotos) ListByUser(_ context.Context, userID string) ([]models.Photo, error) {
	var out []models.Photo
	for _, p := range f.photos {
		if p.UserID != nil && *p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePhotos) DeleteFromMember(_ context.Context, memberID string, photoID string) error {
	return f.remove(func(p models.Photo) bool {
		return p.ID == photoID && p.MemberID != nil && *p.MemberID == memberID
	})
}

func (f *fakePhotos) DeleteFromUser(_ context.Context, userID string, photoID string) error {
	return f.remove(func(p models.Photo) bool {
		return p.ID == photoID && p.UserID != nil && *p.UserID == userID
	})
}

func (f *fakePhotos) remove(match func(models.Photo) bool) error {
	for i, p := range f.photos {
		if match(p) {
			f.photos = append(f.photos[:i], f.photos[i+1:]...)
			return nil
		}
	}
	return repository.ErrPhotoNotFound
}

type fakeEvents struct {
	events map[string]models.Event
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{events: map[string]models.Event{}}
}

func (f *fakeEvents) Create(_ context.Context, event models.Event) (models.Event, error) {
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEvents) List(_ context.Context) ([]models.Event, error) {
	out := make([]models.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (f *fakeEvents) GetByID(_ context.Context, id string) (models.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return models.Event{}, repository.ErrEventNotFound
	}
	return e, nil
}

func (f *fakeEvents) Update(ctx context.Context, id string, patch models.EventPatch) (models.Event, error) {
	e, err := f.GetByID(ctx, id)
	if err != nil {
		return models.Event{}, err
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.EventDate != nil {
		e.EventDate = *patch.EventDate
	}
	e.Description = applyOptional(e.Description, patch.Description)
	e.EventTime = applyOptional(e.EventTime, patch.EventTime)
	e.Location = applyOptional(e.Location, patch.Location)
	f.events[id] = e
	return e, nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

type fakeForum struct {
	posts   map[string]models.ForumPost
	replies map[string]models.Reply
}

func newFakeForum() *fakeForum {
	return &fakeForum{posts: map[string]models.ForumPost{}, replies: map[string]models.Reply{}}
}

func (f *fakeForum) CreatePost(_ context.Context, post models.ForumPost) (models.ForumPost, error) {
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakeForum) ListPosts(_ context.Context) ([]models.ForumPost, error) {
	out := make([]models.ForumPost, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeForum) GetPost(_ context.Context, id string) (models.ForumPost, error) {
	p, ok := f.posts[id]
	if !ok {
		return models.ForumPost{}, repository.ErrPostNotFound
	}
	return p, nil
}

func (f *fakeForum) UpdatePost(ctx context.Context, id string, title string, content string) (models.ForumPost, error) {
	p, err := f.GetPost(ctx, id)
	if err != nil {
		return models.ForumPost{}, err
	}
	p.Title, p.Content = title, content
	f.posts[id] = p
	return p, nil
}

func (f *fakeForum) DeletePost(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repository.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeForum) CreateReply(_ context.Context, reply models.Reply) (models.Reply, error) {
	f.replies[reply.ID] = reply
	return reply, nil
}

func (f *fakeForum) GetReply(_ context.Context, postID string, replyID string) (models.Reply, error) {
	r, ok := f.replies[replyID]
	if !ok || r.PostID != postID {
		return models.Reply{}, repository.ErrReplyNotFound
	}
	return r, nil
}

func (f *fakeForum) DeleteReply(ctx context.Context, postID string, replyID string) error {
	if _, err := f.GetReply(ctx, postID, replyID); err != nil {
		return err
	}
	delete(f.replies, replyID)
	return nil
}

type fakeUploads struct {
	created []models.Upload
}

func (f *fakeUploads) Create(_ context.Context, upload models.Upload) error {
	f.created = append(f.created, upload)
	return nil
}

func (f *fakeUploads) List(_ context.Context, limit, offset int) ([]models.Upload, error) {
	if offset >= len(f.created) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.created) {
		end = len(f.created)
	}
	return f.created[offset:end], nil
}

type fakeObjects struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjects) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (int64, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return 0, err
	}
	f.objects[key] = buf.Bytes()
	f.types[key] = contentType
	return n, nil
}

func (f *fakeObjects) PublicURL(key string) string {
	return "http://cdn.test/family-uploads/" + key
}

type fakeQueue struct {
	tasks []queue.Task
}

func (f *fakeQueue) Enqueue(_ context.Context, task queue.Task) error {
	f.tasks = append(f.tasks, task)
	return nil
}

type countingCache struct {
	invalidations int
}

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}

func strPtr(s string) *string {
	return &s
}
