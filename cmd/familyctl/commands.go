package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/views"
)

type command struct {
	summary string
	route   func(args []string) string
	run     func(ctx context.Context, a *app, args []string) error
}

func fixed(route string) func([]string) string {
	return func([]string) string { return route }
}

var errUsage = errors.New("invalid arguments")

var commands = map[string]command{
	"login":     {"sign in", fixed("/login"), runLogin},
	"register":  {"create an account", fixed("/register"), runRegister},
	"logout":    {"sign out", fixed("/"), runLogout},
	"whoami":    {"show the signed-in user", fixed("/dashboard"), runWhoami},
	"dashboard": {"show upcoming events and recent members", fixed("/dashboard"), runDashboard},
	"landing":   {"show the family front page", fixed("/"), runLanding},
	"members":   {"list|show|add|edit|delete|photo-add|photo-delete", fixed("/members"), runMembers},
	"events":    {"list|day|add|edit|delete", fixed("/events"), runEvents},
	"forum":     {"list|post|edit|reply|delete|delete-reply", fixed("/forum"), runForum},
	"album":     {"list|add|delete; list -user ID shows a public album", albumRoute, runAlbum},
	"upload":    {"upload an image and print its URL", fixed("/upload"), runUpload},
}

func newFlags(name string, a *app) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.term.errOut)
	return fs
}

// parse accepts flags before or after positional arguments.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, errUsage
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func subcommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "list", args
	}
	return args[0], args[1:]
}

func need(positional []string, n int, usage string) error {
	if len(positional) < n {
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
	return nil
}

// setFlags reports which flags were given explicitly.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login", a)
	form := views.NewLoginForm(a.env, a.session)
	fs.StringVar(&form.Email, "email", "", "account email")
	fs.StringVar(&form.Password, "password", "", "account password")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if form.Email == "" {
		form.Email = a.term.prompt("Email")
	}
	if form.Password == "" {
		form.Password = a.term.prompt("Password")
	}
	return form.Submit(ctx)
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register", a)
	form := views.NewRegisterForm(a.env, a.session)
	fs.StringVar(&form.Name, "name", "", "display name")
	fs.StringVar(&form.Email, "email", "", "account email")
	fs.StringVar(&form.Password, "password", "", "password")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "password again")
	photo := fs.String("photo", "", "optional profile image file")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if form.Password != "" && form.ConfirmPassword == "" {
		form.ConfirmPassword = a.term.prompt("Confirm password")
	}
	if *photo != "" {
		if err := form.UploadPhoto(ctx, *photo); err != nil {
			return err
		}
	}
	return form.Submit(ctx)
}

func runLogout(_ context.Context, a *app, _ []string) error {
	a.session.Logout()
	fmt.Fprintln(a.term.out, "signed out")
	return nil
}

func runWhoami(_ context.Context, a *app, _ []string) error {
	user := a.session.State().User
	role := user.Role
	if user.IsAdmin() {
		role += " (admin tools enabled)"
	}
	fmt.Fprintf(a.term.out, "%s <%s>\nid:   %s\nrole: %s\n", user.Name, user.Email, user.ID, role)
	return nil
}

func runDashboard(ctx context.Context, a *app, _ []string) error {
	dash := views.NewDashboard(a.env)
	if err := dash.Load(ctx); err != nil {
		return err
	}

	out := a.term.out
	fmt.Fprintf(out, "Welcome back, %s\n", a.session.State().User.Name)
	fmt.Fprintf(out, "%d members, %d events\n\nUpcoming events\n", dash.MemberCount(), dash.EventCount())
	upcoming := dash.Upcoming(time.Now())
	if len(upcoming) == 0 {
		fmt.Fprintln(out, "  none scheduled")
	}
	for _, e := range upcoming {
		fmt.Fprintf(out, "  %s  %s\n", e.EventDate, e.Title)
	}

	fmt.Fprintln(out, "\nRecent members")
	for _, m := range dash.RecentMembers() {
		fmt.Fprintf(out, "  %s (%s)\n", m.Name, m.Relationship)
	}
	return nil
}

func runLanding(ctx context.Context, a *app, _ []string) error {
	landing := views.NewLanding(a.env)
	if err := landing.Load(ctx); err != nil {
		return err
	}
	printMembers(a, landing.Featured())
	return nil
}

func printMembers(a *app, members []api.Member) {
	tw := a.term.table()
	fmt.Fprintln(tw, "ID\tNAME\tRELATIONSHIP\tBORN")
	for _, m := range members {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Relationship, value(m.BirthDate))
	}
	_ = tw.Flush()
}

func value(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func bindMemberFlags(fs *flag.FlagSet, form *views.MemberForm) (photo *string) {
	fs.StringVar(&form.Name, "name", form.Name, "name")
	fs.StringVar(&form.Relationship, "relationship", form.Relationship, "relationship")
	fs.StringVar(&form.BirthDate, "birth", form.BirthDate, "birth date YYYY-MM-DD")
	fs.StringVar(&form.Bio, "bio", form.Bio, "short biography")
	fs.StringVar(&form.PhotoURL, "photo-url", form.PhotoURL, "profile photo URL")
	fs.StringVar(&form.ParentID, "parent", form.ParentID, "parent member id")
	return fs.String("photo", "", "profile image file to upload")
}

func runMembers(ctx context.Context, a *app, args []string) error {
	sub, args := subcommand(args)
	members := views.NewMembers(a.env)

	switch sub {
	case "list":
		fs := newFlags("members list", a)
		query := fs.String("q", "", "filter by name or relationship")
		if _, err := parse(fs, args); err != nil {
			return err
		}
		if err := members.Load(ctx); err != nil {
			return err
		}
		printMembers(a, members.Filter(*query))
		return nil

	case "show":
		if err := need(args, 1, "members show ID"); err != nil {
			return err
		}
		return showMember(ctx, a, args[0])

	case "add":
		members.OpenCreate()
		fs := newFlags("members add", a)
		photo := bindMemberFlags(fs, &members.Modal.Fields)
		if _, err := parse(fs, args); err != nil {
			return err
		}
		if *photo != "" {
			if err := members.UploadPhoto(ctx, *photo); err != nil {
				return err
			}
		}
		return members.Submit(ctx)

	case "edit":
		fs := newFlags("members edit", a)
		var patch views.MemberForm
		photo := bindMemberFlags(fs, &patch)
		positional, err := parse(fs, args)
		if err != nil {
			return err
		}
		if err := need(positional, 1, "members edit ID [flags]"); err != nil {
			return err
		}
		if err := members.Load(ctx); err != nil {
			return err
		}
		if err := members.OpenEdit(positional[0]); err != nil {
			return err
		}
		applyMemberPatch(&members.Modal.Fields, patch, setFlags(fs))
		if *photo != "" {
			if err := members.UploadPhoto(ctx, *photo); err != nil {
				return err
			}
		}
		return members.Submit(ctx)

	case "delete":
		if err := need(args, 1, "members delete ID"); err != nil {
			return err
		}
		if err := members.Load(ctx); err != nil {
			return err
		}
		return members.Delete(ctx, args[0])

	case "photo-add":
		fs := newFlags("members photo-add", a)
		url := fs.String("url", "", "photo URL")
		file := fs.String("file", "", "image file to upload")
		caption := fs.String("caption", "", "caption")
		positional, err := parse(fs, args)
		if err != nil {
			return err
		}
		if err := need(positional, 1, "members photo-add ID -url URL|-file PATH"); err != nil {
			return err
		}
		profile := views.NewMemberProfile(a.env, positional[0])
		if err := profile.Load(ctx); err != nil {
			return err
		}
		profile.OpenAddPhoto()
		profile.PhotoModal.Fields = views.PhotoForm{PhotoURL: *url, Caption: *caption}
		if *file != "" {
			if err := profile.UploadAlbumPhoto(ctx, *file); err != nil {
				return err
			}
		}
		return profile.SubmitPhoto(ctx)

	case "photo-delete":
		if err := need(args, 2, "members photo-delete MEMBER_ID PHOTO_ID"); err != nil {
			return err
		}
		profile := views.NewMemberProfile(a.env, args[0])
		if err := profile.Load(ctx); err != nil {
			return err
		}
		return profile.DeletePhoto(ctx, args[1])
	}
	return fmt.Errorf("%w: unknown members command %q", errUsage, sub)
}

func applyMemberPatch(form *views.MemberForm, patch views.MemberForm, set map[string]bool) {
	if set["name"] {
		form.Name = patch.Name
	}
	if set["relationship"] {
		form.Relationship = patch.Relationship
	}
	if set["birth"] {
		form.BirthDate = patch.BirthDate
	}
	if set["bio"] {
		form.Bio = patch.Bio
	}
	if set["photo-url"] {
		form.PhotoURL = patch.PhotoURL
	}
	if set["parent"] {
		form.ParentID = patch.ParentID
	}
}

func showMember(ctx context.Context, a *app, id string) error {
	profile := views.NewMemberProfile(a.env, id)
	if err := profile.Load(ctx); err != nil {
		return err
	}
	m, _ := profile.Member()

	out := a.term.out
	fmt.Fprintf(out, "%s (%s)\n", m.Name, m.Relationship)
	fmt.Fprintf(out, "born:   %s\n", value(m.BirthDate))
	if parent, ok := profile.Parent(); ok {
		fmt.Fprintf(out, "parent: %s\n", parent.Name)
	}
	if m.Bio != nil {
		fmt.Fprintf(out, "\n%s\n", *m.Bio)
	}
	if children := profile.Children(); len(children) > 0 {
		fmt.Fprintln(out, "\nchildren:")
		for _, c := range children {
			fmt.Fprintf(out, "  %s\n", c.Name)
		}
	}
	printPhotos(out, profile.Photos())
	return nil
}

func printPhotos(out io.Writer, photos []api.Photo) {
	fmt.Fprintf(out, "\nphotos (%d):\n", len(photos))
	for _, p := range photos {
		fmt.Fprintf(out, "  %s  %s  %s\n", p.ID, p.PhotoURL, value(p.Caption))
	}
}

func bindEventFlags(fs *flag.FlagSet, form *views.EventForm) {
	fs.StringVar(&form.Title, "title", "", "title")
	fs.StringVar(&form.EventDate, "date", "", "date YYYY-MM-DD")
	fs.StringVar(&form.EventTime, "time", "", "time HH:MM")
	fs.StringVar(&form.Location, "location", "", "location")
	fs.StringVar(&form.Description, "description", "", "description")
}

func runEvents(ctx context.Context, a *app, args []string) error {
	sub, args := subcommand(args)
	events := views.NewEvents(a.env)

	switch sub {
	case "list":
		if err := events.Load(ctx); err != nil {
			return err
		}
		printEvents(a, events, events.All())
		return nil

	case "day":
		if err := need(args, 1, "events day YYYY-MM-DD"); err != nil {
			return err
		}
		day, err := api.ParseDate(args[0])
		if err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", errUsage)
		}
		if err := events.Load(ctx); err != nil {
			return err
		}
		printEvents(a, events, events.OnDate(day))
		return nil

	case "add":
		events.OpenCreate(nil)
		fs := newFlags("events add", a)
		bindEventFlags(fs, &events.Modal.Fields)
		if _, err := parse(fs, args); err != nil {
			return err
		}
		return events.Submit(ctx)

	case "edit":
		fs := newFlags("events edit", a)
		var patch views.EventForm
		bindEventFlags(fs, &patch)
		positional, err := parse(fs, args)
		if err != nil {
			return err
		}
		if err := need(positional, 1, "events edit ID [flags]"); err != nil {
			return err
		}
		if err := events.Load(ctx); err != nil {
			return err
		}
		if err := events.OpenEdit(positional[0]); err != nil {
			return err
		}
		set := setFlags(fs)
		fields := &events.Modal.Fields
		for name, apply := range map[string]func(){
			"title":       func() { fields.Title = patch.Title },
			"date":        func() { fields.EventDate = patch.EventDate },
			"time":        func() { fields.EventTime = patch.EventTime },
			"location":    func() { fields.Location = patch.Location },
			"description": func() { fields.Description = patch.Description },
		} {
			if set[name] {
				apply()
			}
		}
		return events.Submit(ctx)

	case "delete":
		if err := need(args, 1, "events delete ID"); err != nil {
			return err
		}
		if err := events.Load(ctx); err != nil {
			return err
		}
		return events.Delete(ctx, args[0])
	}
	return fmt.Errorf("%w: unknown events command %q", errUsage, sub)
}

func printEvents(a *app, events *views.Events, list []api.Event) {
	if len(list) == 0 {
		fmt.Fprintln(a.term.out, "no events")
		return
	}
	tw := a.term.table()
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tTITLE\tLOCATION\t")
	for _, e := range list {
		mark := ""
		if events.CanModify(e) {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.EventDate, value(e.EventTime), e.Title, value(e.Location), mark)
	}
	_ = tw.Flush()
}

func runForum(ctx context.Context, a *app, args []string) error {
	sub, args := subcommand(args)
	forum := views.NewForum(a.env)
	if err := forum.Load(ctx); err != nil {
		return err
	}

	switch sub {
	case "list":
		printForum(a, forum)
		return nil

	case "post", "edit":
		fs := newFlags("forum "+sub, a)
		title := fs.String("title", "", "title")
		content := fs.String("content", "", "markdown content")
		positional, err := parse(fs, args)
		if err != nil {
			return err
		}
		if sub == "post" {
			forum.OpenCreate()
		} else {
			if err := need(positional, 1, "forum edit POST_ID [-title T] [-content C]"); err != nil {
				return err
			}
			if err := forum.OpenEdit(positional[0]); err != nil {
				return err
			}
		}
		set := setFlags(fs)
		if set["title"] || sub == "post" {
			forum.Modal.Fields.Title = *title
		}
		if set["content"] || sub == "post" {
			forum.Modal.Fields.Content = *content
		}
		return forum.Submit(ctx)

	case "reply":
		fs := newFlags("forum reply", a)
		content := fs.String("content", "", "reply text")
		positional, err := parse(fs, args)
		if err != nil {
			return err
		}
		if err := need(positional, 1, "forum reply POST_ID -content TEXT"); err != nil {
			return err
		}
		forum.SetDraft(positional[0], *content)
		return forum.Reply(ctx, positional[0])

	case "delete":
		if err := need(args, 1, "forum delete POST_ID"); err != nil {
			return err
		}
		return forum.Delete(ctx, args[0])

	case "delete-reply":
		if err := need(args, 2, "forum delete-reply POST_ID REPLY_ID"); err != nil {
			return err
		}
		return forum.DeleteReply(ctx, args[0], args[1])
	}
	return fmt.Errorf("%w: unknown forum command %q", errUsage, sub)
}

func printForum(a *app, forum *views.Forum) {
	out := a.term.out
	posts := forum.Posts()
	if len(posts) == 0 {
		fmt.Fprintln(out, "no posts yet")
	}
	for _, p := range posts {
		controls := ""
		if forum.CanModify(p.AuthorID) {
			controls = "  [edit/delete]"
		}
		fmt.Fprintf(out, "%s  %s by %s, %s%s\n", p.ID, p.Title, p.AuthorName, p.CreatedAt.Format("2006-01-02 15:04"), controls)
		fmt.Fprintf(out, "    %s\n", strings.ReplaceAll(p.Content, "\n", "\n    "))
		for _, r := range p.Replies {
			controls = ""
			if forum.CanModify(r.AuthorID) {
				controls = "  [delete]"
			}
			fmt.Fprintf(out, "    > %s %s: %s%s\n", r.ID, r.AuthorName, r.Content, controls)
		}
		fmt.Fprintln(out)
	}
}

// albumRoute makes "album list -user ID" an open route.
func albumRoute(args []string) string {
	for i, arg := range args {
		if (arg == "-user" || arg == "--user") && i+1 < len(args) {
			return "/album/" + args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, "-user="); ok {
			return "/album/" + v
		}
	}
	return "/album"
}

func runAlbum(ctx context.Context, a *app, args []string) error {
	sub, args := subcommand(args)
	album := views.NewMyAlbum(a.env)

	switch sub {
	case "list":
		fs := newFlags("album list", a)
		userID := fs.String("user", "", "show this user's public album")
		if _, err := parse(fs, args); err != nil {
			return err
		}
		if *userID != "" {
			public := views.NewPublicAlbum(a.env, *userID)
			if err := public.Load(ctx); err != nil {
				return err
			}
			profile, _ := public.Profile()
			fmt.Fprintf(a.term.out, "%s's album\n", profile.Name)
			printPhotos(a.term.out, profile.Photos)
			return nil
		}
		if err := album.Load(ctx); err != nil {
			return err
		}
		printPhotos(a.term.out, album.Photos())
		return nil

	case "add":
		album.OpenAdd()
		fs := newFlags("album add", a)
		fs.StringVar(&album.Modal.Fields.PhotoURL, "url", "", "photo URL")
		fs.StringVar(&album.Modal.Fields.Caption, "caption", "", "caption")
		file := fs.String("file", "", "image file to upload")
		if _, err := parse(fs, args); err != nil {
			return err
		}
		if *file != "" {
			if err := album.UploadPhoto(ctx, *file); err != nil {
				return err
			}
		}
		return album.Submit(ctx)

	case "delete":
		if err := need(args, 1, "album delete PHOTO_ID"); err != nil {
			return err
		}
		return album.Delete(ctx, args[0])
	}
	return fmt.Errorf("%w: unknown album command %q", errUsage, sub)
}

func runUpload(ctx context.Context, a *app, args []string) error {
	fs := newFlags("upload", a)
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := need(positional, 1, "upload FILE"); err != nil {
		return err
	}
	url, err := a.env.Uploads.File(ctx, positional[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.term.out, url)
	return nil
}
