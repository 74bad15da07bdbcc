package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/duke-go/internal/config"
	"github.com/nibzard/duke-go/internal/dukedir"
	"github.com/nibzard/duke-go/internal/storage"
)

// initCommand creates the .duke directory with an example config and the
// record schema.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("duke init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite existing files")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	dir := dukedir.DirPath(cfg.ProjectRoot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	files := []struct {
		path    string
		content string
	}{
		{dukedir.ConfigPath(cfg.ProjectRoot), config.ExampleConfig()},
		{dukedir.SchemaPath(cfg.ProjectRoot), storage.BundledSchema()},
	}
	for _, f := range files {
		if !*force {
			if _, err := os.Stat(f.path); err == nil {
				fmt.Printf("Skipped %s (exists, use -force to overwrite)\n", f.path)
				continue
			}
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.path, err)
		}
		fmt.Printf("Created %s\n", f.path)
	}
	return nil
}
