// Package cli is the interactive terminal front end. It routes between the
// credential prompts and the record workspace according to the session
// gate.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/rolodex/rolodex/internal/client/gate"
	"github.com/rolodex/rolodex/internal/client/session"
	"github.com/rolodex/rolodex/internal/client/workspace"
)

// Auth is what the terminal needs from the auth collaborator.
// *session.Manager implements it.
type Auth interface {
	gate.Authenticator
	workspace.SignOuter
}

var _ Auth = (*session.Manager)(nil)

// Deps are the App's collaborators. In defaults to os.Stdin and Out to
// os.Stdout.
type Deps struct {
	Auth   Auth
	Store  workspace.Store
	Logger *slog.Logger
	In     io.Reader
	Out    io.Writer
}

// App owns the gate, the credential flow and, while signed in, the
// workspace.
type App struct {
	auth   Auth
	store  workspace.Store
	logger *slog.Logger

	in   *bufio.Reader
	inFd int
	out  io.Writer
	omu  sync.Mutex

	gate  *gate.Gate
	creds *gate.Credentials
	ws    *workspace.Workspace
}

// NewApp wires an App. Nothing is fetched until Run.
func NewApp(d Deps) *App {
	a := &App{
		auth:   d.Auth,
		store:  d.Store,
		logger: d.Logger,
		out:    d.Out,
		inFd:   -1,
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	in := d.In
	if in == nil {
		in = os.Stdin
	}
	if f, ok := in.(*os.File); ok {
		a.inFd = int(f.Fd())
	}
	a.in = bufio.NewReader(in)
	a.gate = gate.New(a.auth, gate.WithLogger(a.logger), gate.WithViewListener(a.onView))
	a.creds = gate.NewCredentials(a.auth)
	return a
}

// Run resolves the session and reads commands until exit or end of input.
func (a *App) Run(ctx context.Context) error {
	defer a.shutdown()

	a.println("rolodex (type 'help' for commands)")
	a.println("Checking session...")
	a.gate.Start(ctx)
	return a.loop(ctx)
}

func (a *App) shutdown() {
	a.gate.Close()
	if a.ws != nil {
		a.ws.Close()
		a.ws = nil
	}
}

func (a *App) onView(v gate.View, sess *session.Session) {
	if sess != nil {
		a.logger.Debug("view changed", "view", v.String(), "user", sess.User.Email)
		return
	}
	a.logger.Debug("view changed", "view", v.String())
}

// reconcile opens or closes the workspace to match the gate's view. It runs
// between commands so that the workspace is only touched from the loop.
func (a *App) reconcile(ctx context.Context) {
	switch a.gate.View() {
	case gate.ViewWorkspace:
		principal, _ := a.gate.Principal()
		if a.ws != nil && a.ws.Principal().ID == principal.ID {
			return
		}
		if a.ws != nil {
			a.ws.Close()
		}
		a.ws = workspace.New(principal, workspace.Deps{
			Store:     a.store,
			Auth:      a.auth,
			Notifier:  a,
			Confirmer: a,
			Logger:    a.logger,
		})
		a.printf("Signed in as %s.\n", principal.Email)
		if err := a.ws.Mount(ctx); err == nil {
			a.printStats()
		}
	default:
		if a.ws != nil {
			a.ws.Close()
			a.ws = nil
			a.println("Signed out.")
		}
	}
}

func (a *App) prompt() string {
	switch a.gate.View() {
	case gate.ViewLoading:
		return "rolodex (checking session)> "
	case gate.ViewCredentials:
		return fmt.Sprintf("rolodex (%s)> ", a.creds.Mode())
	}
	if a.ws == nil {
		return "rolodex> "
	}
	return fmt.Sprintf("rolodex (%s %s)> ", a.ws.Principal().Email, a.ws.ActiveTab())
}

// loop is the read-eval-print loop. Command errors have already been shown
// to the user and do not stop it.
func (a *App) loop(ctx context.Context) error {
	for {
		a.reconcile(ctx)
		a.printf("%s", a.prompt())
		line, err := a.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.println()
				return nil
			}
			return err
		}
		cmd, rest := splitCommand(line)
		if cmd == "" {
			continue
		}
		if cmd == "exit" || cmd == "quit" {
			a.println("Bye!")
			return nil
		}

		switch a.gate.View() {
		case gate.ViewLoading:
			a.println("Still checking the session, try again.")
		case gate.ViewCredentials:
			a.credentialsCommand(ctx, cmd, rest)
		default:
			if a.ws == nil {
				a.reconcile(ctx)
			}
			a.workspaceCommand(ctx, cmd, rest)
		}
	}
}

// Notify prints a notice on its own line.
func (a *App) Notify(n workspace.Notice) {
	a.println(n.String())
}

func (a *App) printf(format string, args ...any) {
	a.omu.Lock()
	defer a.omu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	a.omu.Lock()
	defer a.omu.Unlock()
	fmt.Fprintln(a.out, args...)
}
