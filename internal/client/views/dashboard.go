package views

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
)

const upcomingEvents = 3

type Dashboard struct {
	env     Env
	members []api.Member
	events  []api.Event
	loading bool
}

func NewDashboard(env Env) *Dashboard {
	return &Dashboard{env: env, loading: true}
}

// Load fetches members and events together and applies both results once
// both have arrived.
func (d *Dashboard) Load(ctx context.Context) error {
	d.loading = true
	defer func() { d.loading = false }()

	var (
		members []api.Member
		events  []api.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = d.env.API.Members.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = d.env.API.Events.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return d.env.fail(err)
	}

	d.members, d.events = members, events
	return nil
}

func (d *Dashboard) Loading() bool {
	return d.loading
}

func (d *Dashboard) MemberCount() int {
	return len(d.members)
}

func (d *Dashboard) EventCount() int {
	return len(d.events)
}

func (d *Dashboard) RecentMembers() []api.Member {
	return append([]api.Member(nil), d.members[:min(recentMembers, len(d.members))]...)
}

// Upcoming returns the next events dated strictly after today's calendar
// day, soonest first.
func (d *Dashboard) Upcoming(today time.Time) []api.Event {
	day := api.DateOf(today)
	var out []api.Event
	for _, event := range sortByDate(append([]api.Event(nil), d.events...)) {
		if event.EventDate.After(day.Time) && !event.EventDate.SameDay(day) {
			out = append(out, event)
		}
	}
	return out[:min(upcomingEvents, len(out))]
}
