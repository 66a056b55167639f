package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/credentials"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/gateway"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/guard"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/session"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/upload"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/views"
	"github.com/derrickgr2-cpu/familyconnest/internal/config"
	"github.com/derrickgr2-cpu/familyconnest/internal/log"
)

type app struct {
	log     zerolog.Logger
	api     *api.Client
	session *session.Store
	env     views.Env
	term    *terminal
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := log.NewWithLevel(cfg.Logging.Level, stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, logger, bufio.NewReader(stdin), stdout, stderr)
	a.session.Initialize(ctx)

	route := cmd.route(args[1:])
	if decision := guard.ForRoute(route, a.session.State()); decision.Kind == guard.Redirect {
		a.redirected(decision.Target)
		return 1
	}

	if err := cmd.run(ctx, a, args[1:]); err != nil {
		if errors.Is(err, views.ErrCancelled) {
			fmt.Fprintln(stdout, "cancelled")
			return 0
		}
		a.term.reportUnnotified(err)
		if a.term.expired && guard.ForRoute(route, session.State{}).Kind == guard.Redirect {
			fmt.Fprintln(stderr, "session expired; run `familyctl login` again")
		}
		return 1
	}
	return 0
}

func newApp(cfg *config.ClientConfig, logger zerolog.Logger, in *bufio.Reader, out, errOut io.Writer) *app {
	creds := credentials.NewFileStore(cfg.CredentialsFile)
	gw := gateway.New(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, creds, logger)
	client := api.New(gw)

	term := &terminal{in: in, out: out, errOut: errOut}
	store := session.New(client.Auth, creds, term, logger)
	gw.OnUnauthorized(store.ForceLogout)

	return &app{
		log:     logger,
		api:     client,
		session: store,
		term:    term,
		env: views.Env{
			API:      client,
			Session:  store,
			Notify:   term,
			Confirm:  term,
			Navigate: term,
			Uploads:  upload.New(client.Upload),
		},
	}
}

func (a *app) redirected(target string) {
	switch target {
	case guard.LoginRoute:
		fmt.Fprintln(a.term.errOut, "not signed in; run `familyctl login` first")
	case guard.DashboardRoute:
		fmt.Fprintf(a.term.errOut, "already signed in as %s; run `familyctl logout` first\n", a.session.State().User.Email)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: familyctl <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
}
