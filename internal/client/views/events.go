package views

import (
	"context"
	"slices"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
)

type EventForm struct {
	Title       string
	Description string
	EventDate   string
	EventTime   string
	Location    string
}

func eventForm(e api.Event) EventForm {
	return EventForm{
		Title:       e.Title,
		Description: deref(e.Description),
		EventDate:   e.EventDate.String(),
		EventTime:   deref(e.EventTime),
		Location:    deref(e.Location),
	}
}

func validateEvent(f EventForm) error {
	if err := firstError(
		required("title", "Title", f.Title),
		required("event_date", "Event date", f.EventDate),
	); err != nil {
		return err
	}
	if _, err := api.ParseDate(f.EventDate); err != nil {
		return &ValidationError{Field: "event_date", Message: "Event date must be YYYY-MM-DD"}
	}
	return nil
}

func (f EventForm) createFields() api.EventFields {
	return api.EventFields{
		Title:       field(f.Title),
		EventDate:   field(f.EventDate),
		Description: optional(f.Description),
		EventTime:   optional(f.EventTime),
		Location:    optional(f.Location),
	}
}

func (f EventForm) updateFields() api.EventFields {
	return api.EventFields{
		Title:       field(f.Title),
		EventDate:   field(f.EventDate),
		Description: field(f.Description),
		EventTime:   field(f.EventTime),
		Location:    field(f.Location),
	}
}

type Events struct {
	env   Env
	list  *Collection[api.Event]
	Modal Modal[EventForm]
}

func NewEvents(env Env) *Events {
	return &Events{env: env, list: NewCollection(env.API.Events.List)}
}

func (e *Events) Load(ctx context.Context) error {
	return loadInto(ctx, e.env, e.list.Load)
}

func (e *Events) Loading() bool {
	return e.list.Loading()
}

// All is every event by date; events on the same day keep server order.
func (e *Events) All() []api.Event {
	return sortByDate(e.list.Items())
}

func sortByDate(events []api.Event) []api.Event {
	slices.SortStableFunc(events, func(a, b api.Event) int {
		return a.EventDate.Compare(b.EventDate.Time)
	})
	return events
}

// OnDate keeps events whose calendar day equals day.
func (e *Events) OnDate(day api.Date) []api.Event {
	var out []api.Event
	for _, event := range e.All() {
		if event.EventDate.SameDay(day) {
			out = append(out, event)
		}
	}
	return out
}

// DatesWithEvents lists each day that has at least one event, ascending.
func (e *Events) DatesWithEvents() []api.Date {
	var out []api.Date
	for _, event := range e.All() {
		if n := len(out); n == 0 || !out[n-1].SameDay(event.EventDate) {
			out = append(out, event.EventDate)
		}
	}
	return out
}

func (e *Events) CanModify(event api.Event) bool {
	return CanModify(e.env.Session.State(), event.CreatedBy)
}

// OpenCreate seeds the date when a calendar day is selected.
func (e *Events) OpenCreate(day *api.Date) {
	var seed EventForm
	if day != nil {
		seed.EventDate = day.String()
	}
	e.Modal.OpenCreate(seed)
}

func (e *Events) OpenEdit(id string) error {
	event, ok := e.list.Find(func(x api.Event) bool { return x.ID == id })
	if !ok {
		return e.env.fail(notFound("Event"))
	}
	e.Modal.OpenEdit(id, eventForm(event))
	return nil
}

func (e *Events) Submit(ctx context.Context) error {
	return submit(ctx, e.env, &e.Modal, validateEvent,
		func(ctx context.Context, id string, editing bool) error {
			var err error
			if editing {
				_, err = e.env.API.Events.Update(ctx, id, e.Modal.Fields.updateFields())
			} else {
				_, err = e.env.API.Events.Create(ctx, e.Modal.Fields.createFields())
			}
			return err
		},
		e.list.Load,
		outcome{created: "Event created", updated: "Event updated"},
	)
}

func (e *Events) Delete(ctx context.Context, id string) error {
	title := id
	if event, ok := e.list.Find(func(x api.Event) bool { return x.ID == id }); ok {
		title = event.Title
	}
	return remove(ctx, e.env, "Delete "+title+"?",
		func(ctx context.Context) error { return e.env.API.Events.Delete(ctx, id) },
		e.list.Load,
		"Event deleted",
	)
}
