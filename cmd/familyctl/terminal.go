package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/guard"
)

// terminal is the CLI's notifier, confirmer and navigator.
type terminal struct {
	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	notified bool
	expired  bool
}

func (t *terminal) Success(msg string) {
	fmt.Fprintln(t.out, msg)
}

func (t *terminal) Error(msg string) {
	t.notified = true
	fmt.Fprintln(t.errOut, "error:", msg)
}

func (t *terminal) Confirm(prompt string) bool {
	fmt.Fprintf(t.out, "%s [y/N] ", prompt)
	answer := strings.ToLower(t.readLine())
	return answer == "y" || answer == "yes"
}

// Navigate only matters when the server dropped the session.
func (t *terminal) Navigate(route string) {
	if route == guard.LoginRoute {
		t.expired = true
	}
}

func (t *terminal) prompt(label string) string {
	fmt.Fprintf(t.out, "%s: ", label)
	return t.readLine()
}

func (t *terminal) readLine() string {
	line, _ := t.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// reportUnnotified prints errors that no controller has shown yet.
func (t *terminal) reportUnnotified(err error) {
	if !t.notified {
		t.Error(err.Error())
	}
}

func (t *terminal) table() *tabwriter.Writer {
	return tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
}
