package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/nibzard/taskflow/internal/task"
)

// doctorCommand checks the configuration, the store backend and the validity
// of the task store.
func (a *app) doctorCommand(args []string) error {
	fs := a.newCommandFlags("doctor")
	verbose := fs.Bool("v", false, "Verbose output")
	positionals, err := parseArgs(fs, args)
	if err != nil {
		return ignoreHelp(err)
	}
	if len(positionals) > 0 {
		return usagef("doctor: unexpected arguments: %v", positionals)
	}

	w := a.out
	fmt.Fprintln(w, "taskflow doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	// Check project root
	fmt.Fprintf(w, "Project root: %s\n", a.cfg.ProjectRoot)
	if _, err := os.Stat(a.cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Check config
	fmt.Fprintln(w, "Config:")
	if file := a.cws.GetConfigFile(); file != "" {
		fmt.Fprintf(w, "  File: %s\n", file)
	} else {
		fmt.Fprintln(w, "  File: (none, using defaults)")
	}
	if err := a.cfg.Validate(); err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		allOK = false
	} else {
		fmt.Fprintf(w, "  ✅ Backend: %s\n", a.cfg.StoreBackend)
	}
	fmt.Fprintln(w)

	// Check schema file
	if a.cfg.SchemaFile != "" {
		fmt.Fprintf(w, "Schema file: %s\n", a.cfg.SchemaFile)
		if info, err := os.Stat(a.cfg.SchemaFile); err != nil {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		} else if info.IsDir() {
			fmt.Fprintln(w, "  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
		fmt.Fprintln(w)
	}

	// Check task store
	fmt.Fprintf(w, "Task store: %s\n", a.cfg.StoreFile)
	info, err := os.Stat(a.cfg.StoreFile)
	switch {
	case err != nil && os.IsNotExist(err):
		fmt.Fprintln(w, "  ⚠️  Not found (will be created on first write)")
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		allOK = false
	default:
		tasks, loadErr := a.svc.List(a.cfg.StoreFile, task.Filter{})
		if loadErr != nil {
			if errors.Is(loadErr, task.ErrMalformedStore) {
				fmt.Fprintln(w, "  ❌ Malformed:")
			} else {
				fmt.Fprintln(w, "  ❌ Load error:")
			}
			fmt.Fprintf(w, "     - %v\n", loadErr)
			allOK = false
			break
		}
		fmt.Fprintln(w, "  ✅ Valid")
		fmt.Fprintf(w, "  Tasks: %d\n", len(tasks))
		if *verbose {
			for _, t := range tasks {
				fmt.Fprintf(w, "    - [%d] %s (%s, %s)\n", t.ID, t.Title, t.Status, t.Priority)
			}
		}
	}
	fmt.Fprintln(w)

	// Overall status
	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}
