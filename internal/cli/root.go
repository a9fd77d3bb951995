package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"family-planner/internal/model"
	"family-planner/internal/service"
)

// Version is set at build time.
var Version = "dev"

type rootFlags struct {
	user     string
	password string
	json     bool
}

// session owns the app opened for one command run.
type session struct {
	app *app
}

func (s *session) close() {
	if s.app != nil {
		s.app.Close()
		s.app = nil
	}
}

// Execute runs the CLI with the given arguments and returns the exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	s := &session{}
	defer s.close()

	root := newRoot(stdout, stderr, s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// newRoot builds the command tree. Stores are opened lazily before a
// subcommand runs and closed by Execute.
func newRoot(stdout, stderr io.Writer, s *session) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "planner",
		Short:         "Family task planner",
		Long:          "planner keeps per-user daily task lists with categories, priorities, templates and backups.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			s.app = a
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&flags.user, "user", "u", "", "username (default $PLANNER_USER)")
	root.PersistentFlags().StringVarP(&flags.password, "password", "p", "", "password (default $PLANNER_PASSWORD)")
	root.PersistentFlags().BoolVar(&flags.json, "json", false, "print results as JSON")

	env := func() *app { return s.app }
	root.AddCommand(
		newUserCmd(stdout, env, flags),
		newTaskCmd(stdout, env, flags),
		newCategoryCmd(stdout, env, flags),
		newSettingsCmd(stdout, env, flags),
		newStatsCmd(stdout, env, flags),
		newExportCmd(stdout, env, flags),
		newImportCmd(stdout, env, flags),
		newTemplateCmd(stdout, env, flags),
		newBackupCmd(stdout, env),
		newDigestCmd(stdout, env, flags),
		newDaemonCmd(stderr, env),
	)
	return root
}

// login authenticates with the --user/--password flags, falling back to
// PLANNER_USER and PLANNER_PASSWORD.
func login(cmd *cobra.Command, a *app, flags *rootFlags) (uint, error) {
	username := flags.user
	if username == "" {
		username = os.Getenv("PLANNER_USER")
	}
	password := flags.password
	if password == "" {
		password = os.Getenv("PLANNER_PASSWORD")
	}
	if username == "" {
		return 0, errors.New("no user given: pass --user or set PLANNER_USER")
	}
	id, err := a.accounts.Authenticate(cmd.Context(), username, password)
	if errors.Is(err, service.ErrUnauthenticated) {
		return 0, errors.New("invalid username or password")
	}
	return id, err
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, _ = fmt.Fprintln(w, string(data))
	return nil
}

// parseDay accepts YYYY-MM-DD, "today", "tomorrow" or "yesterday".
func parseDay(raw string) (time.Time, error) {
	now := time.Now()
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "today":
		return now, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}
	day, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return day, nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
