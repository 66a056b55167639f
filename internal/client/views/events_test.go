package views

import (
	"net/http"
	"testing"
	"time"
)

func TestEventCalendarSelection(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "ann@example.com", "Ann", "member")

	events := NewEvents(h.env)
	events.OpenCreate(nil)
	events.Modal.Fields.Title = "Reunion"
	events.Modal.Fields.EventDate = "2024-07-04"
	if err := events.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	onFourth := events.OnDate(mustDate(t, "2024-07-04"))
	if len(onFourth) != 1 || onFourth[0].Title != "Reunion" {
		t.Fatalf("expected Reunion on 2024-07-04, got %+v", onFourth)
	}
	if got := events.OnDate(mustDate(t, "2024-07-05")); len(got) != 0 {
		t.Fatalf("expected nothing on 2024-07-05, got %+v", got)
	}

	h.createEvent(t, "Picnic", "2024-07-14")
	if err := events.Load(ctx); err != nil {
		t.Fatal(err)
	}
	onFourth = events.OnDate(mustDate(t, "2024-07-04"))
	if len(onFourth) != 1 || onFourth[0].Title != "Reunion" {
		t.Fatalf("2024-07-14 must not match 2024-07-04, got %+v", onFourth)
	}
}

func TestEventsSortedByDateStable(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "ann@example.com", "Ann", "member")
	h.createEvent(t, "New Year", "2025-01-01")
	h.createEvent(t, "Breakfast", "2024-12-31")
	h.createEvent(t, "Countdown", "2024-12-31")
	h.createEvent(t, "Summer", "2024-07-04")

	events := NewEvents(h.env)
	if err := events.Load(ctx); err != nil {
		t.Fatal(err)
	}

	want := []string{"Summer", "Breakfast", "Countdown", "New Year"}
	all := events.All()
	for i, e := range all {
		if e.Title != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], e.Title)
		}
	}

	dates := events.DatesWithEvents()
	if len(dates) != 3 || dates[0].String() != "2024-07-04" || dates[2].String() != "2025-01-01" {
		t.Fatalf("unexpected dates %v", dates)
	}
	if got := events.OnDate(mustDate(t, "2024-12-31")); len(got) != 2 {
		t.Fatalf("expected two events on new year's eve, got %d", len(got))
	}
	if got := events.OnDate(mustDate(t, "2025-12-31")); len(got) != 0 {
		t.Fatal("a different year must not match")
	}
}

func TestEventValidationAndEdit(t *testing.T) {
	h := newHarness(t)
	owner := h.signIn(t, "ann@example.com", "Ann", "member")
	reunion := h.createEvent(t, "Reunion", "2024-07-04")

	events := NewEvents(h.env)
	if err := events.Load(ctx); err != nil {
		t.Fatal(err)
	}

	day := mustDate(t, "2024-08-01")
	events.OpenCreate(&day)
	if events.Modal.Fields.EventDate != "2024-08-01" {
		t.Fatal("expected the selected day to seed the form")
	}
	if err := events.Submit(ctx); err == nil || h.notes.lastError() != "Title is required" {
		t.Fatalf("expected title validation, got %v / %q", err, h.notes.lastError())
	}
	events.Modal.Fields.Title = "Trip"
	events.Modal.Fields.EventDate = "08/01/2024"
	if err := events.Submit(ctx); err == nil {
		t.Fatal("expected date format validation")
	}
	if h.srv.Hits(http.MethodPost, "/api/events") != 1 {
		t.Fatal("validation failures must not reach the server")
	}
	events.Modal.Close()

	if !events.CanModify(reunion) || reunion.CreatedBy != owner.ID {
		t.Fatal("creator should be able to modify")
	}
	if err := events.OpenEdit(reunion.ID); err != nil {
		t.Fatal(err)
	}
	events.Modal.Fields.Location = "Lake house"
	events.Modal.Fields.EventDate = "2024-07-05"
	if err := events.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	moved := events.OnDate(mustDate(t, "2024-07-05"))
	if len(moved) != 1 || moved[0].Location == nil || *moved[0].Location != "Lake house" {
		t.Fatalf("unexpected events %+v", moved)
	}

	if err := events.Delete(ctx, reunion.ID); err != nil {
		t.Fatal(err)
	}
	if len(events.All()) != 0 {
		t.Fatal("expected event removed")
	}
}

func TestDashboardUpcoming(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "ann@example.com", "Ann", "member")
	for _, e := range [][2]string{
		{"Past", "2024-05-01"},
		{"Today", "2024-06-30"},
		{"Next year", "2025-01-02"},
		{"Tomorrow", "2024-07-01"},
		{"Later", "2024-07-20"},
		{"Much later", "2024-12-25"},
	} {
		h.createEvent(t, e[0], e[1])
	}
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		h.createMember(t, name, "Cousin", nil)
	}

	dash := NewDashboard(h.env)
	if !dash.Loading() {
		t.Fatal("expected loading before fetch")
	}
	if err := dash.Load(ctx); err != nil {
		t.Fatal(err)
	}

	today := time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC)
	upcoming := dash.Upcoming(today)
	want := []string{"Tomorrow", "Later", "Much later"}
	if len(upcoming) != len(want) {
		t.Fatalf("expected %d upcoming, got %+v", len(want), upcoming)
	}
	for i, e := range upcoming {
		if e.Title != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], e.Title)
		}
	}

	if got := dash.Upcoming(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); len(got) != 1 || got[0].Title != "Next year" {
		t.Fatalf("unexpected upcoming across the year boundary %+v", got)
	}

	recent := dash.RecentMembers()
	if len(recent) != 4 || recent[0].Name != "A" {
		t.Fatalf("unexpected recent members %+v", recent)
	}
	if dash.MemberCount() != 5 || dash.EventCount() != 6 {
		t.Fatalf("unexpected counts %d/%d", dash.MemberCount(), dash.EventCount())
	}
}
