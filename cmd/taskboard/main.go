package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/api"
	"taskboard/internal/config"
	"taskboard/internal/guard"
	"taskboard/internal/session"
	"taskboard/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Terminal client for the Kanban task tracker",
	Long: `A client for the task-tracking backend: log in, manage tasks and
statuses, and move cards across the board interactively.`,
	SilenceUsage: true,
}

// app wires the client together: config, durable state, session, gateway.
type app struct {
	cfg  *config.Config
	st   *store.Store
	sess *session.Manager
	api  *api.Client
	log  *slog.Logger
}

var theApp *app

func setup() (*app, error) {
	cfg := config.Load()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	st, err := store.Open(cfg.StatePath())
	if err != nil {
		return nil, err
	}
	if err := st.Init(); err != nil {
		return nil, err
	}

	sess := session.New(st,
		session.WithLogger(log),
		session.WithLogoutHandler(func() {
			fmt.Fprintln(os.Stderr, "Session ended. Run 'taskboard login' to sign in again.")
		}),
	)
	if _, err := sess.Rehydrate(); err != nil {
		return nil, err
	}

	client := api.New(cfg.APIBaseURL,
		api.WithTokenSource(sess.Token),
		api.WithUnauthorizedHook(sess.HandleUnauthorized),
		api.WithLogger(log),
	)

	return &app{cfg: cfg, st: st, sess: sess, api: client, log: log}, nil
}

// gate enforces the access rules for a command.
func (a *app) gate(allowedRoles ...string) error {
	d := guard.Decide(a.sess, allowedRoles...)
	if d.Allowed {
		return nil
	}
	if d.Redirect == guard.RouteLogin {
		return fmt.Errorf("not logged in (run 'taskboard login')")
	}
	return fmt.Errorf("your role %q is not allowed here; your dashboard is %s", a.sess.Role(), d.Redirect)
}

// confirm asks an interactive yes/no question before destructive actions.
func confirm(prompt string) bool {
	fmt.Printf("%s (y/N) ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// fail converts a request error into the message shown to the user.
func fail(err error) error {
	return fmt.Errorf("%s", api.Message(err))
}

func main() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		theApp = a
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if theApp != nil {
			theApp.sess.Close()
			_ = theApp.st.Close()
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
