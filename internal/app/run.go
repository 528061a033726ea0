package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/flowgrid/graphdesc"
	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/fsutil"
)

// Run executes the main application logic: it discovers graph description
// files, decodes and validates each one, and writes the canonical form back
// to the output writer.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files, err := fsutil.FindFiles(a.config.GraphPath, a.config.Pattern)
	if err != nil {
		return fmt.Errorf("failed to discover graph files: %w", err)
	}
	if len(files) == 0 {
		a.logger.Warn("No graph description files found.", "path", a.config.GraphPath, "pattern", a.config.Pattern)
		return nil
	}
	a.logger.Debug("Graph description files discovered.", "count", len(files))

	for _, file := range files {
		if err := a.inspect(ctx, file); err != nil {
			return fmt.Errorf("graph file %s: %w", file, err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// inspect decodes a single description file, checks it against the registry
// and prints its canonical form.
func (a *App) inspect(ctx context.Context, file string) error {
	logger := ctxlog.FromContext(ctx)

	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	desc, err := graphdesc.DecodeHCL(src, file)
	if err != nil {
		return err
	}
	if err := desc.Validate(); err != nil {
		return err
	}
	if err := a.checkCalculators(desc); err != nil {
		return err
	}
	logger.Info("Graph description validated.", "graph", desc.Name, "nodes", len(desc.Nodes))

	var out []byte
	if a.config.Emit == "yaml" {
		out, err = desc.EncodeYAML()
	} else {
		out = desc.Canonical()
	}
	if err != nil {
		return err
	}
	if _, err := a.outW.Write(out); err != nil {
		return err
	}

	if a.config.Fingerprint {
		fmt.Fprintf(a.outW, "# fingerprint: %x\n", desc.Fingerprint())
	}
	return nil
}

// checkCalculators verifies every node in the description names a
// registered calculator. An empty registry skips the check, so the tool
// remains usable as a pure syntax validator.
func (a *App) checkCalculators(desc *graphdesc.Description) error {
	if len(a.registry.Names()) == 0 {
		return nil
	}
	for _, n := range append(desc.Nodes, desc.Generators...) {
		if _, ok := a.registry.Lookup(n.Calculator); !ok {
			return fmt.Errorf("node references unregistered calculator '%s'", n.Calculator)
		}
	}
	return nil
}
