package api

import (
	"strings"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type Photo struct {
	ID       string    `json:"id"`
	PhotoURL string    `json:"photo_url"`
	Caption  *string   `json:"caption,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

type PhotoInput struct {
	PhotoURL string  `json:"photo_url"`
	Caption  *string `json:"caption,omitempty"`
}

type Member struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	BirthDate    *string   `json:"birth_date,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	ParentID     *string   `json:"parent_id,omitempty"`
	Photos       []Photo   `json:"photos"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// MemberFields is the create/update body. On update, nil fields are left
// untouched and empty strings clear optional fields.
type MemberFields struct {
	Name         *string `json:"name,omitempty"`
	Relationship *string `json:"relationship,omitempty"`
	BirthDate    *string `json:"birth_date,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	PhotoURL     *string `json:"photo_url,omitempty"`
	ParentID     *string `json:"parent_id,omitempty"`
}

// Date is a calendar day carried as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// DateOf keeps the calendar day of t as seen in t's own location.
func DateOf(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// SameDay compares calendar days, ignoring any time component.
func (d Date) SameDay(other Date) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := ParseDate(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	EventDate   Date      `json:"event_date"`
	EventTime   *string   `json:"event_time,omitempty"`
	Location    *string   `json:"location,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type EventFields struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	EventDate   *string `json:"event_date,omitempty"`
	EventTime   *string `json:"event_time,omitempty"`
	Location    *string `json:"location,omitempty"`
}

type Reply struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type ForumPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"content_html"`
	AuthorID    string     `json:"author_id"`
	AuthorName  string     `json:"author_name"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Replies     []Reply    `json:"replies"`
}

type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PublicProfile struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Photos   []Photo `json:"photos"`
}

type UploadResult struct {
	URL string `json:"url"`
}
