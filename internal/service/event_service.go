package service

import (
	"context"
	"regexp"
	"time"

	"github.com/derrickgr2-cpu/familyconnest/internal/ids"
	"github.com/derrickgr2-cpu/familyconnest/internal/models"
)

var eventTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

type EventService struct {
	events EventStore
}

func NewEventService(events EventStore) *EventService {
	return &EventService{events: events}
}

type EventInput struct {
	Title       string
	Description *string
	EventDate   string
	EventTime   *string
	Location    *string
}

// EventUpdate mirrors EventInput with every field optional.
type EventUpdate struct {
	Title       *string
	Description *string
	EventDate   *string
	EventTime   *string
	Location    *string
}

func (s *EventService) Create(ctx context.Context, user models.User, input EventInput) (models.Event, error) {
	title := trimmedValue(input.Title)
	if title == "" {
		return models.Event{}, validationError("title is required")
	}
	date, err := parseEventDate(trimmedValue(input.EventDate))
	if err != nil {
		return models.Event{}, err
	}
	eventTime := optional(input.EventTime)
	if err := checkEventTime(eventTime); err != nil {
		return models.Event{}, err
	}

	return s.events.Create(ctx, models.Event{
		ID:          ids.New(),
		Title:       title,
		Description: optional(input.Description),
		EventDate:   date,
		EventTime:   eventTime,
		Location:    optional(input.Location),
		CreatedBy:   user.ID,
	})
}

func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.events.List(ctx)
}

func (s *EventService) Get(ctx context.Context, id string) (models.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *EventService) Update(ctx context.Context, user models.User, id string, input EventUpdate) (models.Event, error) {
	patch := models.EventPatch{
		Title:       trimmed(input.Title),
		Description: trimmed(input.Description),
		EventTime:   trimmed(input.EventTime),
		Location:    trimmed(input.Location),
	}
	if input.EventDate != nil {
		date, err := parseEventDate(trimmedValue(*input.EventDate))
		if err != nil {
			return models.Event{}, err
		}
		patch.EventDate = &date
	}
	if patch.Empty() {
		return models.Event{}, ErrNoFieldsToUpdate
	}
	if patch.Title != nil && *patch.Title == "" {
		return models.Event{}, validationError("title cannot be empty")
	}
	if patch.EventTime != nil && *patch.EventTime != "" {
		if err := checkEventTime(patch.EventTime); err != nil {
			return models.Event{}, err
		}
	}

	if err := s.authorize(ctx, user, id); err != nil {
		return models.Event{}, err
	}
	return s.events.Update(ctx, id, patch)
}

func (s *EventService) Delete(ctx context.Context, user models.User, id string) error {
	if err := s.authorize(ctx, user, id); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}

func (s *EventService) authorize(ctx context.Context, user models.User, id string) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanModify(event.CreatedBy) {
		return ErrForbidden
	}
	return nil
}

func parseEventDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, validationError("event_date is required")
	}
	date, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, validationError("event_date must be YYYY-MM-DD")
	}
	return date, nil
}

func checkEventTime(value *string) error {
	if value == nil || eventTimePattern.MatchString(*value) {
		return nil
	}
	return validationError("event_time must be HH:MM")
}
