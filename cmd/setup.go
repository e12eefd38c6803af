package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/taskflow/internal/config"
	"github.com/nibzard/taskflow/internal/store"
	"github.com/nibzard/taskflow/internal/taskdir"
)

// initCommand writes an example taskflow.toml in the project root and an
// empty task store. Existing files are kept unless -force is given.
func (a *app) initCommand(args []string) error {
	fs := a.newCommandFlags("init")
	force := fs.Bool("force", false, "Overwrite existing files")
	skipConfig := fs.Bool("skip-config", false, "Do not write taskflow.toml")
	writeSchema := fs.Bool("write-schema", false, "Write an editable copy of the store schema to .taskflow/")
	positionals, err := parseArgs(fs, args)
	if err != nil {
		return ignoreHelp(err)
	}
	if len(positionals) > 0 {
		return usagef("init: unexpected arguments: %v", positionals)
	}

	if !*skipConfig {
		configPath := filepath.Join(a.cfg.ProjectRoot, taskdir.DefaultConfigFile)
		if exists(configPath) && !*force {
			fmt.Fprintf(a.out, "Skipped %s (exists, use -force to overwrite)\n", configPath)
		} else {
			if err := os.WriteFile(configPath, []byte(config.ExampleConfig()), 0644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(a.out, "Wrote %s\n", configPath)
		}
	}

	if *writeSchema {
		if err := a.writeSchemaFile(*force); err != nil {
			return err
		}
	}

	storePath := a.cfg.StoreFile
	if exists(storePath) && !*force {
		fmt.Fprintf(a.out, "Skipped %s (exists, use -force to overwrite)\n", storePath)
		return nil
	}
	backend, err := store.Open(a.cfg.StoreBackend, a.cfg.StoreOptions())
	if err != nil {
		return err
	}
	if err := backend.Save(storePath, nil); err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	a.logger.Debug("initialized store", "store", storePath, "backend", a.cfg.StoreBackend)
	fmt.Fprintf(a.out, "Wrote %s\n", storePath)
	return nil
}

// writeSchemaFile copies the embedded store schema into the project's
// .taskflow directory. Point schema_file at it to use the edited copy.
func (a *app) writeSchemaFile(force bool) error {
	schemaPath := taskdir.SchemaPath(a.cfg.ProjectRoot)
	if exists(schemaPath) && !force {
		fmt.Fprintf(a.out, "Skipped %s (exists, use -force to overwrite)\n", schemaPath)
		return nil
	}
	if err := os.MkdirAll(taskdir.DirPath(a.cfg.ProjectRoot), 0755); err != nil {
		return fmt.Errorf("create %s: %w", taskdir.Dir, err)
	}
	if err := os.WriteFile(schemaPath, []byte(store.EmbeddedSchema()), 0644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	fmt.Fprintf(a.out, "Wrote %s\n", schemaPath)
	return nil
}

// configCommand prints the effective configuration and where each value
// came from.
func (a *app) configCommand(args []string) error {
	fs := a.newCommandFlags("config")
	positionals, err := parseArgs(fs, args)
	if err != nil {
		return ignoreHelp(err)
	}
	if len(positionals) > 0 {
		return usagef("config: unexpected arguments: %v", positionals)
	}

	if len(a.cws.Files) == 0 {
		fmt.Fprintln(a.out, "# No config file found")
	}
	for _, file := range a.cws.Files {
		fmt.Fprintf(a.out, "# Loaded %s\n", file)
	}
	for _, entry := range a.cws.Entries() {
		fmt.Fprintln(a.out, entry.String())
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
