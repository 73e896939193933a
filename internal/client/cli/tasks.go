package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/taskhub/internal/client/client"
	"github.com/spf13/cobra"
)

type taskFilters struct {
	listID, labelID, projectID, dueDate string

	unsorted, upcoming, overdue, pending, incomplete, completed bool
}

func (f taskFilters) values() url.Values {
	v := url.Values{}
	for key, s := range map[string]string{
		"listId":    f.listID,
		"labelId":   f.labelID,
		"projectId": f.projectID,
		"dueDate":   f.dueDate,
	} {
		if s != "" {
			v.Set(key, s)
		}
	}
	for key, b := range map[string]bool{
		"unsorted":   f.unsorted,
		"upcoming":   f.upcoming,
		"overdue":    f.overdue,
		"pending":    f.pending,
		"incomplete": f.incomplete,
		"completed":  f.completed,
	} {
		if b {
			v.Set(key, strconv.FormatBool(b))
		}
	}
	return v
}

func newTasksCommand(app *App) *cobra.Command {
	var f taskFilters

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := app.resume()
			if err != nil {
				return err
			}
			tasks, err := app.api.ListTasks(cmd.Context(), sess.User.AccessToken, f.values())
			if err != nil {
				return err
			}
			printTasks(app, tasks)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.listID, "list", "", "list id")
	fl.StringVar(&f.labelID, "label", "", "label id")
	fl.StringVar(&f.projectID, "project", "", "project id")
	fl.StringVar(&f.dueDate, "due", "", "due date, dd-MM-yyyy")
	fl.BoolVar(&f.unsorted, "unsorted", false, "only tasks without a list")
	fl.BoolVar(&f.upcoming, "upcoming", false, "incomplete tasks due later")
	fl.BoolVar(&f.overdue, "overdue", false, "incomplete tasks past their due date")
	fl.BoolVar(&f.pending, "pending", false, "unfinished tasks with a completed subtask")
	fl.BoolVar(&f.incomplete, "incomplete", false, "incomplete tasks with no completed subtask")
	fl.BoolVar(&f.completed, "completed", false, "completed tasks")
	return cmd
}

func printTasks(app *App, tasks []client.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(app.out, "No tasks")
		return
	}

	w := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tDUE\tLABELS\tSUBTASKS")
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.UTC().Format("02-01-2006")
		}
		names := make([]string, 0, len(t.Labels))
		for _, l := range t.Labels {
			names = append(names, l.Name)
		}
		done := 0
		for _, s := range t.Subtasks {
			if s.Completed {
				done++
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d/%d\n",
			t.ID, t.Title, t.Status, due, strings.Join(names, ","), done, len(t.Subtasks))
	}
	_ = w.Flush()
}
