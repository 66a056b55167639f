package handlers

import (
	"time"

	"github.com/derrickgr2-cpu/familyconnest/internal/models"
	"github.com/derrickgr2-cpu/familyconnest/internal/service"
)

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PhotoURL  *string   `json:"photo_url"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		PhotoURL:  u.PhotoURL,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type photoResponse struct {
	ID       string    `json:"id"`
	PhotoURL string    `json:"photo_url"`
	Caption  *string   `json:"caption"`
	AddedAt  time.Time `json:"added_at"`
}

func toPhotoResponses(photos []models.Photo) []photoResponse {
	out := make([]photoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, toPhotoResponse(p))
	}
	return out
}

func toPhotoResponse(p models.Photo) photoResponse {
	return photoResponse{
		ID:       p.ID,
		PhotoURL: p.PhotoURL,
		Caption:  p.Caption,
		AddedAt:  p.AddedAt,
	}
}

type memberResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Relationship string          `json:"relationship"`
	BirthDate    *string         `json:"birth_date"`
	Bio          *string         `json:"bio"`
	PhotoURL     *string         `json:"photo_url"`
	ParentID     *string         `json:"parent_id"`
	Photos       []photoResponse `json:"photos"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toMemberResponse(m models.Member) memberResponse {
	return memberResponse{
		ID:           m.ID,
		Name:         m.Name,
		Relationship: m.Relationship,
		BirthDate:    m.BirthDate,
		Bio:          m.Bio,
		PhotoURL:     m.PhotoURL,
		ParentID:     m.ParentID,
		Photos:       toPhotoResponses(m.Photos),
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

func toMemberResponses(members []models.Member) []memberResponse {
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return out
}

type eventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	EventDate   string    `json:"event_date"`
	EventTime   *string   `json:"event_time"`
	Location    *string   `json:"location"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func toEventResponse(e models.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.EventDate.Format(models.DateLayout),
		EventTime:   e.EventTime,
		Location:    e.Location,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

type replyResponse struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func toReplyResponse(r models.Reply) replyResponse {
	return replyResponse{
		ID:          r.ID,
		Content:     r.Content,
		ContentHTML: service.RenderMarkdown(r.Content),
		AuthorID:    r.AuthorID,
		AuthorName:  r.AuthorName,
		CreatedAt:   r.CreatedAt,
	}
}

type postResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	ContentHTML string          `json:"content_html"`
	AuthorID    string          `json:"author_id"`
	AuthorName  string          `json:"author_name"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at"`
	Replies     []replyResponse `json:"replies"`
}

func toPostResponse(p models.ForumPost) postResponse {
	replies := make([]replyResponse, 0, len(p.Replies))
	for _, r := range p.Replies {
		replies = append(replies, toReplyResponse(r))
	}
	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		ContentHTML: service.RenderMarkdown(p.Content),
		AuthorID:    p.AuthorID,
		AuthorName:  p.AuthorName,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Replies:     replies,
	}
}

type uploadResponse struct {
	ID          string    `json:"id"`
	UserID      *string   `json:"user_id"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUploadResponse(u models.Upload) uploadResponse {
	return uploadResponse{
		ID:          u.ID,
		UserID:      u.UserID,
		URL:         u.URL,
		ContentType: u.ContentType,
		SizeBytes:   u.SizeBytes,
		Status:      string(u.Status),
		CreatedAt:   u.CreatedAt,
	}
}
