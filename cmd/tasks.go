package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/nibzard/taskflow/internal/task"
	"github.com/nibzard/taskflow/internal/ui"
)

// ignoreHelp treats -h on a subcommand as success; the flag package has
// already printed the subcommand usage.
func ignoreHelp(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// createCommand adds a task with the given title and optional description.
func (a *app) createCommand(args []string) error {
	fs := a.newCommandFlags("create")
	positionals, err := parseArgs(fs, args)
	if err != nil {
		return ignoreHelp(err)
	}
	if len(positionals) == 0 {
		return usagef("create: missing title")
	}
	if len(positionals) > 2 {
		return usagef("create: unexpected arguments: %v", positionals[2:])
	}
	var description string
	if len(positionals) == 2 {
		description = positionals[1]
	}

	created, err := a.svc.Create(a.cfg.StoreFile, positionals[0], description)
	if err != nil {
		return err
	}
	a.logger.Debug("created task", "id", created.ID, "store", a.cfg.StoreFile)
	fmt.Fprintln(a.out, "Task created:")
	printTasks(a.out, []task.Task{created})
	return nil
}

// listCommand prints the tasks matching the status and priority filters.
func (a *app) listCommand(args []string) error {
	fs := a.newCommandFlags("list")
	status := fs.String("status", "", "Filter by status (exact, case-sensitive)")
	priority := fs.String("priority", "", "Filter by priority (case-insensitive)")
	positionals, err := parseArgs(fs, args)
	if err != nil {
		return ignoreHelp(err)
	}
	if len(positionals) > 0 {
		return usagef("list: unexpected arguments: %v", positionals)
	}

	tasks, err := a.svc.List(a.cfg.StoreFile, task.Filter{Status: *status, Priority: *priority})
	if err != nil {
		return err
	}
	a.logger.Debug("listed tasks", "count", len(tasks), "status", *status, "priority", *priority)
	printTasks(a.out, tasks)
	return nil
}

// getCommand prints a single task.
func (a *app) getCommand(args []string) error {
	fs := a.newCommandFlags("get")
	positionals, err := parseArgs(fs, args)
	if err != nil {
		return ignoreHelp(err)
	}
	id, err := requireID("get", positionals)
	if err != nil {
		return err
	}

	t, err := a.svc.Get(a.cfg.StoreFile, id)
	if err != nil {
		return err
	}
	printTasks(a.out, []task.Task{t})
	return nil
}

// updateCommand changes the fields given as flags. Flags that are not given
// leave the field unchanged; an empty -description clears it.
func (a *app) updateCommand(args []string) error {
	fs := a.newCommandFlags("update")
	title := fs.String("title", "", "New title")
	description := fs.String("description", "", "New description (empty clears it)")
	status := fs.String("status", "", "New status")
	priority := fs.String("priority", "", "New priority")
	positionals, err := parseArgs(fs, args)
	if err != nil {
		return ignoreHelp(err)
	}
	id, err := requireID("update", positionals)
	if err != nil {
		return err
	}

	var fields task.UpdateFields
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			fields.Title = title
		case "description":
			fields.Description = description
		case "status":
			fields.Status = status
		case "priority":
			fields.Priority = priority
		}
	})
	if fields.IsZero() {
		a.logger.Warn("update without fields", "id", id)
	}

	updated, err := a.svc.Update(a.cfg.StoreFile, id, fields)
	if err != nil {
		return err
	}
	a.logger.Debug("updated task", "id", updated.ID)
	fmt.Fprintln(a.out, "Task updated:")
	printTasks(a.out, []task.Task{updated})
	return nil
}

// deleteCommand removes a task. An absent id is reported as not found.
func (a *app) deleteCommand(args []string) error {
	fs := a.newCommandFlags("delete")
	positionals, err := parseArgs(fs, args)
	if err != nil {
		return ignoreHelp(err)
	}
	id, err := requireID("delete", positionals)
	if err != nil {
		return err
	}

	deleted, err := a.svc.Delete(a.cfg.StoreFile, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &task.NotFoundError{ID: id}
	}
	a.logger.Debug("deleted task", "id", id)
	fmt.Fprintln(a.out, "Task deleted.")
	return nil
}

// boardCommand launches the interactive board.
func (a *app) boardCommand(ctx context.Context, args []string) error {
	fs := a.newCommandFlags("board")
	status := fs.String("status", "", "Show only this status")
	priority := fs.String("priority", "", "Show only this priority")
	positionals, err := parseArgs(fs, args)
	if err != nil {
		return ignoreHelp(err)
	}
	if len(positionals) > 0 {
		return usagef("board: unexpected arguments: %v", positionals)
	}

	return ui.RunBoard(ctx, a.svc, a.cfg.StoreFile, task.Filter{Status: *status, Priority: *priority})
}

// printTasks prints tasks one per line, each followed by its description
// when it has one.
func printTasks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "[%d] %s | %s | Priority: %s\n", t.ID, t.Title, t.Status, t.Priority)
		if t.Description != "" {
			fmt.Fprintf(w, "    - %s\n", t.Description)
		}
	}
}
