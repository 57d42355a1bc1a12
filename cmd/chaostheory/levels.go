// cmd/chaostheory/levels.go
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/opd-ai/go-chaostheory/pkg/config"
	"github.com/opd-ai/go-chaostheory/pkg/level"
)

func runLevels(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("levels", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	path := fs.String("levels", a.env.LevelsFile, "Path to a level catalog JSON file (built-in levels when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	catalog, err := loadCatalog(*path)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, renderLevels(catalog))
	return nil
}

// runInitLevels writes the built-in catalog so it can be edited, and
// the default tuning when -config is given
func runInitLevels(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("init-levels", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	out := fs.String("out", "levels.json", "Level catalog file to write")
	configOut := fs.String("config", "", "Also write the default simulation tuning to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := level.SaveFile(level.Builtin(), *out); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "wrote %s\n", *out)

	if *configOut != "" {
		if err := config.SaveSimulationConfig(config.DefaultSimulationConfig(), *configOut); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "wrote %s\n", *configOut)
	}
	return nil
}
