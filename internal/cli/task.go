package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"family-planner/internal/model"
	"family-planner/internal/view"
)

func newTaskCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(stdout, env, flags),
		newTaskListCmd(stdout, env, flags),
		newTaskWeekCmd(stdout, env, flags),
		newTaskShowCmd(stdout, env, flags),
		newTaskEditCmd(stdout, env, flags),
		newTaskToggleCmd(stdout, env, flags, "done", "Toggle the done flag"),
		newTaskToggleCmd(stdout, env, flags, "mandatory", "Toggle the mandatory flag"),
		newTaskRemoveCmd(stdout, env, flags),
		newTaskClearCmd(stdout, env, flags),
	)
	return cmd
}

func newTaskAddCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	var (
		date, desc, priority, category string
		mandatory                      bool
	)
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			prio, err := model.ParsePriority(priority)
			if err != nil {
				return err
			}
			input := model.NewTask{
				Title:       args[0],
				TaskDate:    model.FormatDate(day),
				Description: desc,
				Priority:    prio,
				IsMandatory: mandatory,
			}
			if category != "" {
				c, err := findCategory(cmd.Context(), a, userID, category)
				if err != nil {
					return err
				}
				input.CategoryID = &c.ID
			}

			dayView, err := openDay(cmd.Context(), a, userID, day)
			if err != nil {
				return err
			}
			task, err := dayView.Add(cmd.Context(), input)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(stdout, task)
			}
			_, _ = fmt.Fprintf(stdout, "Added task %d: %s (%s)\n", task.ID, task.Title, task.TaskDate)
			printDay(stdout, dayView)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "today", "task date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&priority, "priority", "low", "priority: low, medium or high")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or id")
	cmd.Flags().BoolVarP(&mandatory, "mandatory", "m", false, "mark as mandatory")
	return cmd
}

func newTaskListCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			dayView, err := openDay(cmd.Context(), a, userID, day)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(stdout, dayView.Tasks())
			}
			printDay(stdout, dayView)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "today", "day to list (YYYY-MM-DD)")
	return cmd
}

func newTaskWeekCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "List seven days of tasks starting at a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			day, err := parseDay(start)
			if err != nil {
				return err
			}
			week, err := a.tasks.ListWeek(cmd.Context(), userID, day)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(stdout, week)
			}
			dates := make([]string, 0, len(week))
			for d := range week {
				dates = append(dates, d)
			}
			sort.Strings(dates)
			for _, d := range dates {
				_, _ = fmt.Fprintln(stdout, d)
				for _, t := range week[d] {
					printTaskLine(stdout, t)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&start, "start", "s", "today", "first day of the window (YYYY-MM-DD)")
	return cmd
}

func newTaskShowCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			task, err := a.tasks.GetTask(cmd.Context(), userID, id)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(stdout, task)
			}
			_, _ = fmt.Fprintf(stdout, "ID:          %d\n", task.ID)
			_, _ = fmt.Fprintf(stdout, "Title:       %s\n", task.Title)
			_, _ = fmt.Fprintf(stdout, "Date:        %s\n", task.TaskDate)
			_, _ = fmt.Fprintf(stdout, "Priority:    %s\n", task.Priority)
			_, _ = fmt.Fprintf(stdout, "Mandatory:   %t\n", task.IsMandatory)
			_, _ = fmt.Fprintf(stdout, "Done:        %t\n", task.Done)
			if task.CategoryName != nil {
				_, _ = fmt.Fprintf(stdout, "Category:    %s\n", *task.CategoryName)
			}
			if task.Description != "" {
				_, _ = fmt.Fprintf(stdout, "Description: %s\n", task.Description)
			}
			return nil
		},
	}
}

func newTaskEditCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	var (
		title, desc, date, priority, category string
		mandatory, noCategory                 bool
	)
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch model.TaskPatch
			changed := cmd.Flags().Changed
			if changed("title") {
				patch.Title = &title
			}
			if changed("desc") {
				patch.Description = &desc
			}
			if changed("date") {
				day, err := parseDay(date)
				if err != nil {
					return err
				}
				formatted := model.FormatDate(day)
				patch.TaskDate = &formatted
			}
			if changed("priority") {
				prio, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &prio
			}
			if changed("mandatory") {
				patch.IsMandatory = &mandatory
			}
			switch {
			case noCategory:
				patch.ClearCategory = true
			case changed("category"):
				c, err := findCategory(cmd.Context(), a, userID, category)
				if err != nil {
					return err
				}
				patch.CategoryID = &c.ID
			}

			if err := a.tasks.UpdateTask(cmd.Context(), userID, id, patch); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Updated task %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&desc, "desc", "", "new description")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority")
	cmd.Flags().BoolVarP(&mandatory, "mandatory", "m", false, "set the mandatory flag")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category name or id")
	cmd.Flags().BoolVar(&noCategory, "no-category", false, "detach from its category")
	return cmd
}

func newTaskToggleCmd(stdout io.Writer, env func() *app, flags *rootFlags, field, short string) *cobra.Command {
	return &cobra.Command{
		Use:   field + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			dayView, err := openTaskDay(cmd.Context(), a, userID, id)
			if err != nil {
				return err
			}
			toggle := dayView.ToggleDone
			if field == "mandatory" {
				toggle = dayView.ToggleMandatory
			}
			value, err := toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Task %d %s: %t\n", id, field, value)
			printDay(stdout, dayView)
			return nil
		},
	}
}

func newTaskRemoveCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			dayView, err := openTaskDay(cmd.Context(), a, userID, id)
			if err != nil {
				return err
			}
			if err := dayView.Remove(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Deleted task %d\n", id)
			printDay(stdout, dayView)
			return nil
		},
	}
}

func newTaskClearCmd(stdout io.Writer, env func() *app, flags *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task of the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all tasks without --yes")
			}
			a := env()
			userID, err := login(cmd, a, flags)
			if err != nil {
				return err
			}
			n, err := a.tasks.ClearAll(cmd.Context(), userID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Deleted %d tasks\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm")
	return cmd
}

// openDay opens the day view of one user on day.
func openDay(ctx context.Context, a *app, userID uint, day time.Time) (*view.Coordinator, error) {
	dayView := view.NewCoordinator(a.tasks, userID, time.Now)
	if err := dayView.Click(ctx, day); err != nil {
		return nil, err
	}
	return dayView, nil
}

// openTaskDay opens the day view on the date of an existing task.
func openTaskDay(ctx context.Context, a *app, userID, taskID uint) (*view.Coordinator, error) {
	task, err := a.tasks.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	day, err := model.ParseDate(task.TaskDate)
	if err != nil {
		return nil, fmt.Errorf("task %d has invalid date %q: %w", taskID, task.TaskDate, err)
	}
	return openDay(ctx, a, userID, day)
}

func printDay(w io.Writer, dayView *view.Coordinator) {
	open, ok := dayView.State().(view.Open)
	if !ok {
		return
	}
	tasks := dayView.Tasks()
	_, _ = fmt.Fprintf(w, "%s (%d tasks)\n", model.FormatDate(open.Date), len(tasks))
	for _, t := range tasks {
		printTaskLine(w, t)
	}
}

func printTaskLine(w io.Writer, t model.TaskDetail) {
	mark := "[ ]"
	if t.Done {
		mark = "[x]"
	}
	flag := " "
	if t.IsMandatory {
		flag = "!"
	}
	category := ""
	if t.CategoryName != nil {
		category = " #" + *t.CategoryName
	}
	_, _ = fmt.Fprintf(w, "  %4d %s %s %-6s %s%s\n", t.ID, mark, flag, t.Priority, t.Title, category)
}

// findCategory looks a category of the user up by name (case-insensitive) or
// by numeric id.
func findCategory(ctx context.Context, a *app, userID uint, ref string) (model.Category, error) {
	categories, err := a.categories.List(ctx, userID)
	if err != nil {
		return model.Category{}, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(ref)) {
			return c, nil
		}
	}
	if id, err := parseID(ref); err == nil {
		for _, c := range categories {
			if c.ID == id {
				return c, nil
			}
		}
	}
	return model.Category{}, fmt.Errorf("unknown category %q", ref)
}
