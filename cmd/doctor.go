package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/duke-go/internal/config"
	"github.com/nibzard/duke-go/internal/logging"
	"github.com/nibzard/duke-go/internal/storage"
)

// doctorCommand checks config, storage and task record validity.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("duke doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	cfg := cws.Config

	fmt.Println("Duke Doctor")
	fmt.Println("===========")
	fmt.Println()

	allOK := true

	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	fmt.Println("Config:")
	if len(cws.Files) == 0 {
		fmt.Println("  ⚠️  No config file found, using defaults (run 'duke init' to create one)")
	}
	for _, path := range cws.Files {
		fmt.Printf("  ✅ Loaded %s\n", path)
	}
	if *verbose {
		for _, field := range []string{"task_file", "backend", "db_file", "schema_file", "strict", "log_dir", "log_level", "log_format"} {
			fmt.Printf("  %s: %s\n", field, cws.Sources[field])
		}
	}
	fmt.Println()

	fmt.Println("Schema:")
	if cfg.SchemaFile == "" {
		fmt.Println("  ✅ Bundled schema")
	} else if _, err := os.Stat(cfg.SchemaFile); err != nil {
		fmt.Printf("  ⚠️  %s: %v (falling back to minimal checks)\n", cfg.SchemaFile, err)
	} else {
		fmt.Printf("  ✅ %s\n", cfg.SchemaFile)
	}
	fmt.Println()

	fmt.Printf("Storage (%s): %s\n", cfg.Backend, cfg.StorePath())
	if !checkStorage(cfg, *verbose) {
		allOK = false
	}
	fmt.Println()

	fmt.Println("Logs:")
	if logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ %v\n", err)
		allOK = false
	} else if latest, err := logging.FindLatestLog(logDir); err != nil {
		fmt.Printf("  ❌ %v\n", err)
		allOK = false
	} else if latest == "" {
		fmt.Printf("  ⚠️  No session logs yet in %s\n", logDir)
	} else {
		fmt.Printf("  ✅ Latest: %s\n", latest)
	}
	fmt.Println()

	if !allOK {
		fmt.Println("Some checks failed.")
		return fmt.Errorf("doctor checks failed")
	}
	fmt.Println("All checks passed.")
	return nil
}

// checkStorage validates every stored record and prints the result.
func checkStorage(cfg *config.Config, verbose bool) bool {
	opts := storage.Options{SchemaPath: cfg.SchemaFile}

	if storage.Backend(cfg.Backend) == storage.BackendSQLite {
		if _, err := os.Stat(cfg.StorePath()); os.IsNotExist(err) {
			fmt.Println("  ⚠️  Database not created yet")
			return true
		}
		store, err := storage.Open(storage.BackendSQLite, cfg.StorePath(), opts)
		if err != nil {
			fmt.Printf("  ❌ %v\n", err)
			return false
		}
		defer store.Close()
		tasks, err := store.Load()
		if err != nil {
			fmt.Printf("  ❌ %v\n", err)
			return false
		}
		fmt.Printf("  ✅ %d tasks\n", len(tasks))
		return true
	}

	report, err := storage.Validate(cfg.StorePath(), opts)
	if err != nil {
		fmt.Printf("  ❌ %v\n", err)
		return false
	}
	for _, warning := range report.Warnings {
		fmt.Printf("  ⚠️  %s\n", warning)
	}
	if report.OK() {
		fmt.Printf("  ✅ %d valid records\n", report.Valid)
		return true
	}

	fmt.Printf("  ❌ %d of %d records invalid\n", report.Records-report.Valid, report.Records)
	limit := 5
	if verbose {
		limit = len(report.Errors)
	}
	for i, verr := range report.Errors {
		if i == limit {
			fmt.Printf("     ... %d more (use -v)\n", len(report.Errors)-limit)
			break
		}
		fmt.Printf("     %v\n", verr)
	}
	if cfg.Strict {
		fmt.Println("     strict mode is on: duke will refuse to load this file")
	}
	return false
}
