// Package api holds one typed client per resource family of the family API.
package api

import (
	"context"
	"io"
	"net/url"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/gateway"
)

// Client groups the resource clients over one gateway.
type Client struct {
	Auth    *AuthClient
	Members *MembersClient
	Photos  *PhotosClient
	Events  *EventsClient
	Forum   *ForumClient
	Upload  *UploadClient
	Users   *UsersClient
}

func New(gw *gateway.Client) *Client {
	return &Client{
		Auth:    &AuthClient{gw: gw},
		Members: &MembersClient{gw: gw},
		Photos:  &PhotosClient{gw: gw},
		Events:  &EventsClient{gw: gw},
		Forum:   &ForumClient{gw: gw},
		Upload:  &UploadClient{gw: gw},
		Users:   &UsersClient{gw: gw},
	}
}

func segment(id string) string {
	return "/" + url.PathEscape(id)
}

type AuthClient struct {
	gw *gateway.Client
}

type registerBody struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

func (c *AuthClient) Register(ctx context.Context, email, password, name string, photoURL *string) (AuthResponse, error) {
	var out AuthResponse
	err := c.gw.Post(ctx, "/auth/register", registerBody{Email: email, Password: password, Name: name, PhotoURL: photoURL}, &out)
	return out, err
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.gw.Post(ctx, "/auth/login", map[string]string{"email": email, "password": password}, &out)
	return out, err
}

func (c *AuthClient) Me(ctx context.Context) (User, error) {
	var out User
	err := c.gw.Get(ctx, "/auth/me", &out)
	return out, err
}

func (c *AuthClient) ListOwnPhotos(ctx context.Context) ([]Photo, error) {
	var out []Photo
	err := c.gw.Get(ctx, "/auth/photos", &out)
	return out, err
}

func (c *AuthClient) AddOwnPhoto(ctx context.Context, input PhotoInput) (Photo, error) {
	var out Photo
	err := c.gw.Post(ctx, "/auth/photos", input, &out)
	return out, err
}

func (c *AuthClient) DeleteOwnPhoto(ctx context.Context, photoID string) error {
	return c.gw.Delete(ctx, "/auth/photos"+segment(photoID))
}

type MembersClient struct {
	gw *gateway.Client
}

func (c *MembersClient) List(ctx context.Context) ([]Member, error) {
	var out []Member
	err := c.gw.Get(ctx, "/members", &out)
	return out, err
}

func (c *MembersClient) ListPublic(ctx context.Context) ([]Member, error) {
	var out []Member
	err := c.gw.Get(ctx, "/members/public", &out)
	return out, err
}

func (c *MembersClient) GetPublic(ctx context.Context, id string) (Member, error) {
	var out Member
	err := c.gw.Get(ctx, "/members/public"+segment(id), &out)
	return out, err
}

func (c *MembersClient) Get(ctx context.Context, id string) (Member, error) {
	var out Member
	err := c.gw.Get(ctx, "/members"+segment(id), &out)
	return out, err
}

func (c *MembersClient) Create(ctx context.Context, fields MemberFields) (Member, error) {
	var out Member
	err := c.gw.Post(ctx, "/members", fields, &out)
	return out, err
}

func (c *MembersClient) Update(ctx context.Context, id string, fields MemberFields) (Member, error) {
	var out Member
	err := c.gw.Put(ctx, "/members"+segment(id), fields, &out)
	return out, err
}

func (c *MembersClient) Delete(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, "/members"+segment(id))
}

type PhotosClient struct {
	gw *gateway.Client
}

func (c *PhotosClient) List(ctx context.Context, memberID string) ([]Photo, error) {
	var out []Photo
	err := c.gw.Get(ctx, "/members"+segment(memberID)+"/photos", &out)
	return out, err
}

func (c *PhotosClient) Add(ctx context.Context, memberID string, input PhotoInput) (Photo, error) {
	var out Photo
	err := c.gw.Post(ctx, "/members"+segment(memberID)+"/photos", input, &out)
	return out, err
}

func (c *PhotosClient) Delete(ctx context.Context, memberID, photoID string) error {
	return c.gw.Delete(ctx, "/members"+segment(memberID)+"/photos"+segment(photoID))
}

type EventsClient struct {
	gw *gateway.Client
}

func (c *EventsClient) List(ctx context.Context) ([]Event, error) {
	var out []Event
	err := c.gw.Get(ctx, "/events", &out)
	return out, err
}

func (c *EventsClient) Get(ctx context.Context, id string) (Event, error) {
	var out Event
	err := c.gw.Get(ctx, "/events"+segment(id), &out)
	return out, err
}

func (c *EventsClient) Create(ctx context.Context, fields EventFields) (Event, error) {
	var out Event
	err := c.gw.Post(ctx, "/events", fields, &out)
	return out, err
}

func (c *EventsClient) Update(ctx context.Context, id string, fields EventFields) (Event, error) {
	var out Event
	err := c.gw.Put(ctx, "/events"+segment(id), fields, &out)
	return out, err
}

func (c *EventsClient) Delete(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, "/events"+segment(id))
}

type ForumClient struct {
	gw *gateway.Client
}

func (c *ForumClient) ListPosts(ctx context.Context) ([]ForumPost, error) {
	var out []ForumPost
	err := c.gw.Get(ctx, "/forum/posts", &out)
	return out, err
}

func (c *ForumClient) GetPost(ctx context.Context, id string) (ForumPost, error) {
	var out ForumPost
	err := c.gw.Get(ctx, "/forum/posts"+segment(id), &out)
	return out, err
}

func (c *ForumClient) CreatePost(ctx context.Context, input PostInput) (ForumPost, error) {
	var out ForumPost
	err := c.gw.Post(ctx, "/forum/posts", input, &out)
	return out, err
}

func (c *ForumClient) UpdatePost(ctx context.Context, id string, input PostInput) (ForumPost, error) {
	var out ForumPost
	err := c.gw.Put(ctx, "/forum/posts"+segment(id), input, &out)
	return out, err
}

func (c *ForumClient) DeletePost(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, "/forum/posts"+segment(id))
}

func (c *ForumClient) AddReply(ctx context.Context, postID, content string) (Reply, error) {
	var out Reply
	err := c.gw.Post(ctx, "/forum/posts"+segment(postID)+"/replies", map[string]string{"content": content}, &out)
	return out, err
}

func (c *ForumClient) DeleteReply(ctx context.Context, postID, replyID string) error {
	return c.gw.Delete(ctx, "/forum/posts"+segment(postID)+"/replies"+segment(replyID))
}

type UploadClient struct {
	gw *gateway.Client
}

func (c *UploadClient) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	return c.upload(ctx, "/upload", filename, contentType, r)
}

// UploadPublic needs no session; the registration form uses it.
func (c *UploadClient) UploadPublic(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	return c.upload(ctx, "/upload/public", filename, contentType, r)
}

func (c *UploadClient) upload(ctx context.Context, path, filename, contentType string, r io.Reader) (string, error) {
	var out UploadResult
	if err := c.gw.Upload(ctx, path, filename, contentType, r, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

type UsersClient struct {
	gw *gateway.Client
}

func (c *UsersClient) GetPublicProfile(ctx context.Context, userID string) (PublicProfile, error) {
	var out PublicProfile
	err := c.gw.Get(ctx, "/users"+segment(userID)+"/public", &out)
	return out, err
}
