package service

import (
	"context"
	"errors"
	"testing"
)

func TestEventCreateValidation(t *testing.T) {
	svc := NewEventService(newFakeEvents())

	cases := []struct {
		name  string
		input EventInput
	}{
		{"missing title", EventInput{EventDate: "2026-05-01"}},
		{"missing date", EventInput{Title: "Picnic"}},
		{"bad date", EventInput{Title: "Picnic", EventDate: "May 1"}},
		{"bad time", EventInput{Title: "Picnic", EventDate: "2026-05-01", EventTime: strPtr("25:00")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), owner, tc.input); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestEventMutationRights(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(newFakeEvents())

	event, err := svc.Create(ctx, owner, EventInput{Title: "Picnic", EventDate: "2026-05-01", EventTime: strPtr("14:30")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.EventDate.Format("2006-01-02") != "2026-05-01" {
		t.Fatalf("expected 2026-05-01, got %s", event.EventDate)
	}

	if _, err := svc.Update(ctx, someone, event.ID, EventUpdate{Title: strPtr("Mine")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, someone, event.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := svc.Update(ctx, owner, event.ID, EventUpdate{}); !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("expected no fields, got %v", err)
	}

	updated, err := svc.Update(ctx, admin, event.ID, EventUpdate{EventDate: strPtr("2026-06-02"), Location: strPtr("")})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.EventDate.Format("2006-01-02") != "2026-06-02" {
		t.Fatalf("expected moved date, got %s", updated.EventDate)
	}
	if err := svc.Delete(ctx, owner, event.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}
