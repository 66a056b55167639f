package models

import "time"

const DateLayout = "2006-01-02"

type Event struct {
	ID          string
	Title       string
	Description *string
	EventDate   time.Time
	EventTime   *string
	Location    *string
	CreatedBy   string
	CreatedAt   time.Time
}

type EventPatch struct {
	Title       *string
	Description *string
	EventDate   *time.Time
	EventTime   *string
	Location    *string
}

func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.EventDate == nil &&
		p.EventTime == nil && p.Location == nil
}
