package views

import (
	"context"
	"errors"
	"strings"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
)

var errNotAllowed = errors.New("you can only change your own posts")

type PostForm struct {
	Title   string
	Content string
}

func validatePost(f PostForm) error {
	return firstError(
		required("title", "Title", f.Title),
		required("content", "Content", f.Content),
	)
}

type Forum struct {
	env    Env
	list   *Collection[api.ForumPost]
	drafts map[string]string
	Modal  Modal[PostForm]
}

func NewForum(env Env) *Forum {
	return &Forum{env: env, list: NewCollection(env.API.Forum.ListPosts), drafts: make(map[string]string)}
}

func (f *Forum) Load(ctx context.Context) error {
	return loadInto(ctx, f.env, f.list.Load)
}

func (f *Forum) Loading() bool {
	return f.list.Loading()
}

// Posts are in server order, newest first.
func (f *Forum) Posts() []api.ForumPost {
	return f.list.Items()
}

// CanModify decides whether edit and delete controls are shown.
func (f *Forum) CanModify(authorID string) bool {
	return CanModify(f.env.Session.State(), authorID)
}

func (f *Forum) OpenCreate() {
	f.Modal.OpenCreate(PostForm{})
}

func (f *Forum) OpenEdit(id string) error {
	post, ok := f.list.Find(func(p api.ForumPost) bool { return p.ID == id })
	if !ok {
		return f.env.fail(notFound("Post"))
	}
	if !f.CanModify(post.AuthorID) {
		return f.env.fail(errNotAllowed)
	}
	f.Modal.OpenEdit(id, PostForm{Title: post.Title, Content: post.Content})
	return nil
}

func (f *Forum) Submit(ctx context.Context) error {
	return submit(ctx, f.env, &f.Modal, validatePost,
		func(ctx context.Context, id string, editing bool) error {
			input := api.PostInput{
				Title:   strings.TrimSpace(f.Modal.Fields.Title),
				Content: strings.TrimSpace(f.Modal.Fields.Content),
			}
			var err error
			if editing {
				_, err = f.env.API.Forum.UpdatePost(ctx, id, input)
			} else {
				_, err = f.env.API.Forum.CreatePost(ctx, input)
			}
			return err
		},
		f.list.Load,
		outcome{created: "Post published", updated: "Post updated"},
	)
}

func (f *Forum) Delete(ctx context.Context, id string) error {
	return remove(ctx, f.env, "Delete this post and its replies?",
		func(ctx context.Context) error { return f.env.API.Forum.DeletePost(ctx, id) },
		f.list.Load,
		"Post deleted",
	)
}

func (f *Forum) SetDraft(postID, content string) {
	f.drafts[postID] = content
}

func (f *Forum) Draft(postID string) string {
	return f.drafts[postID]
}

// Reply posts the draft for postID. The draft is kept when sending fails.
func (f *Forum) Reply(ctx context.Context, postID string) error {
	content := strings.TrimSpace(f.drafts[postID])
	if err := required("content", "Reply", content); err != nil {
		return f.env.fail(err)
	}
	if _, err := f.env.API.Forum.AddReply(ctx, postID, content); err != nil {
		return f.env.fail(err)
	}
	delete(f.drafts, postID)
	f.env.Notify.Success("Reply added")
	return loadInto(ctx, f.env, f.list.Load)
}

func (f *Forum) DeleteReply(ctx context.Context, postID, replyID string) error {
	return remove(ctx, f.env, "Delete this reply?",
		func(ctx context.Context) error { return f.env.API.Forum.DeleteReply(ctx, postID, replyID) },
		f.list.Load,
		"Reply deleted",
	)
}
