// cmd/chaostheory/export.go
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/opd-ai/go-chaostheory/pkg/render/export"
)

func runExport(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var o runOptions
	o.register(fs, a.env)
	out := fs.String("out", "chaostheory.png", "PNG file to write")
	width := fs.Int("width", export.DefaultWidth, "Image width in pixels")
	height := fs.Int("height", export.DefaultHeight, "Image height in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, closeLog, err := a.openLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	result, err := headlessRun(ctx, a.env, &o, logger)
	if err != nil {
		return err
	}
	if err := export.Snapshot(result.View, *width, *height, *out); err != nil {
		return err
	}
	logger.Info(ctx, "scene exported", "path", *out, "width", *width, "height", *height)

	fmt.Fprintln(a.stdout, renderReport(result))
	fmt.Fprintf(a.stdout, "wrote %s\n", *out)
	return nil
}
