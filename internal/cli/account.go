package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"family-planner/internal/model"
	"family-planner/internal/repository"
)

func newUserCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	add := &cobra.Command{
		Use:   "add [username]",
		Short: "Register an account with the --password given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := flags.password
			if password == "" {
				password = os.Getenv("PLANNER_PASSWORD")
			}
			user, err := env().accounts.Register(cmd.Context(), args[0], password)
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("user %q already exists", args[0])
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := env().accounts.List(cmd.Context())
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(stdout, users)
			}
			for _, u := range users {
				_, _ = fmt.Fprintf(stdout, "%4d %s\n", u.ID, u.Username)
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newCategoryCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			categories, err := a.categories.List(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(stdout, categories)
			}
			for _, c := range categories {
				_, _ = fmt.Fprintf(stdout, "%4d %-20s %s\n", c.ID, c.Name, c.Color)
			}
			return nil
		},
	}

	var color string
	add := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			c, err := a.categories.Create(cmd.Context(), userID, args[0], color)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Added category %d: %s\n", c.ID, c.Name)
			return nil
		},
	}
	add.Flags().StringVar(&color, "color", model.DefaultCategoryColor, "hex color")

	var newName, newColor string
	edit := &cobra.Command{
		Use:   "edit [name-or-id]",
		Short: "Rename or recolor a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			current, err := findCategory(cmd.Context(), a, userID, args[0])
			if err != nil {
				return err
			}
			id := current.ID
			name, color := current.Name, current.Color
			if cmd.Flags().Changed("name") {
				name = newName
			}
			if cmd.Flags().Changed("color") {
				color = newColor
			}
			if err := a.categories.Update(cmd.Context(), userID, id, name, color); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Updated category %d\n", id)
			return nil
		},
	}
	edit.Flags().StringVar(&newName, "name", "", "new name")
	edit.Flags().StringVar(&newColor, "color", "", "new hex color")

	remove := &cobra.Command{
		Use:   "rm [name-or-id]",
		Short: "Delete a category; its tasks keep existing without one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			c, err := findCategory(cmd.Context(), a, userID, args[0])
			if err != nil {
				return err
			}
			if err := a.categories.Delete(cmd.Context(), userID, c.ID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Deleted category %s\n", c.Name)
			return nil
		},
	}

	cmd.AddCommand(list, add, edit, remove)
	return cmd
}

func newSettingsCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			s, err := a.settings.Get(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(stdout, s)
			}
			_, _ = fmt.Fprintf(stdout, "auto_backup:   %t\n", s.AutoBackup)
			_, _ = fmt.Fprintf(stdout, "notifications: %t\n", s.Notifications)
			_, _ = fmt.Fprintf(stdout, "week_start:    %s\n", s.WeekStart)
			_, _ = fmt.Fprintf(stdout, "theme:         %s\n", s.Theme)
			_, _ = fmt.Fprintf(stdout, "language:      %s\n", s.Language)
			return nil
		},
	}

	var (
		autoBackup, notifications bool
		weekStart, theme, lang    string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the preferences given as flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			var patch model.SettingsPatch
			changed := cmd.Flags().Changed
			if changed("auto-backup") {
				patch.AutoBackup = &autoBackup
			}
			if changed("notifications") {
				patch.Notifications = &notifications
			}
			if changed("week-start") {
				patch.WeekStart = &weekStart
			}
			if changed("theme") {
				patch.Theme = &theme
			}
			if changed("language") {
				patch.Language = &lang
			}
			if err := a.settings.Update(cmd.Context(), userID, patch); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(stdout, "Settings updated")
			return nil
		},
	}
	set.Flags().BoolVar(&autoBackup, "auto-backup", true, "write a daily backup")
	set.Flags().BoolVar(&notifications, "notifications", true, "log the daily digest")
	set.Flags().StringVar(&weekStart, "week-start", model.WeekStartMonday, "monday or sunday")
	set.Flags().StringVar(&theme, "theme", "", "UI theme")
	set.Flags().StringVar(&lang, "language", "", "UI language")

	cmd.AddCommand(show, set)
	return cmd
}
