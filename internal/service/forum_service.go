package service

import (
	"bytes"
	"context"
	"html"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/derrickgr2-cpu/familyconnest/internal/ids"
	"github.com/derrickgr2-cpu/familyconnest/internal/models"
)

// Raw HTML in post bodies is escaped: WithUnsafe is not set.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// RenderMarkdown converts forum content to HTML, falling back to escaped text.
func RenderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return html.EscapeString(content)
	}
	return buf.String()
}

type ForumService struct {
	forum ForumStore
}

func NewForumService(forum ForumStore) *ForumService {
	return &ForumService{forum: forum}
}

type PostInput struct {
	Title   string
	Content string
}

func (s *ForumService) ListPosts(ctx context.Context) ([]models.ForumPost, error) {
	return s.forum.ListPosts(ctx)
}

func (s *ForumService) GetPost(ctx context.Context, id string) (models.ForumPost, error) {
	return s.forum.GetPost(ctx, id)
}

func (s *ForumService) CreatePost(ctx context.Context, author models.User, input PostInput) (models.ForumPost, error) {
	title, content, err := checkPost(input)
	if err != nil {
		return models.ForumPost{}, err
	}
	post, err := s.forum.CreatePost(ctx, models.ForumPost{
		ID:       ids.New(),
		Title:    title,
		Content:  content,
		AuthorID: author.ID,
	})
	if err != nil {
		return models.ForumPost{}, err
	}
	post.AuthorName = author.Name
	return post, nil
}

func (s *ForumService) UpdatePost(ctx context.Context, user models.User, id string, input PostInput) (models.ForumPost, error) {
	title, content, err := checkPost(input)
	if err != nil {
		return models.ForumPost{}, err
	}
	post, err := s.forum.GetPost(ctx, id)
	if err != nil {
		return models.ForumPost{}, err
	}
	if !user.CanModify(post.AuthorID) {
		return models.ForumPost{}, ErrForbidden
	}
	return s.forum.UpdatePost(ctx, id, title, content)
}

func (s *ForumService) DeletePost(ctx context.Context, user models.User, id string) error {
	post, err := s.forum.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanModify(post.AuthorID) {
		return ErrForbidden
	}
	return s.forum.DeletePost(ctx, id)
}

func (s *ForumService) AddReply(ctx context.Context, author models.User, postID, content string) (models.Reply, error) {
	content = trimmedValue(content)
	if content == "" {
		return models.Reply{}, validationError("content is required")
	}
	if _, err := s.forum.GetPost(ctx, postID); err != nil {
		return models.Reply{}, err
	}
	reply, err := s.forum.CreateReply(ctx, models.Reply{
		ID:       ids.New(),
		PostID:   postID,
		Content:  content,
		AuthorID: author.ID,
	})
	if err != nil {
		return models.Reply{}, err
	}
	reply.AuthorName = author.Name
	return reply, nil
}

func (s *ForumService) DeleteReply(ctx context.Context, user models.User, postID, replyID string) error {
	reply, err := s.forum.GetReply(ctx, postID, replyID)
	if err != nil {
		return err
	}
	if !user.CanModify(reply.AuthorID) {
		return ErrForbidden
	}
	return s.forum.DeleteReply(ctx, postID, replyID)
}

func checkPost(input PostInput) (string, string, error) {
	title := trimmedValue(input.Title)
	content := trimmedValue(input.Content)
	if title == "" || content == "" {
		return "", "", validationError("title and content are required")
	}
	return title, content, nil
}
