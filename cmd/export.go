package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nibzard/duke-go/internal/config"
	"github.com/nibzard/duke-go/internal/storage"
)

// exportCommand writes every task as one JSON or YAML document.
func exportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("duke export", flag.ContinueOnError)
	format := fs.String("format", string(storage.FormatJSON), "Output format (json|yaml)")
	output := fs.String("o", "", "Write to file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	switch storage.Format(*format) {
	case storage.FormatJSON, storage.FormatYAML:
	default:
		return fmt.Errorf("unknown export format %q (expected json|yaml)", *format)
	}

	a, err := openApp(cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create %s: %w", *output, err)
		}
		defer f.Close()
		w = f
	}
	return storage.Export(w, a.tasks.All(), storage.Format(*format))
}
