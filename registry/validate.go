package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/port"
)

// Validate checks every registered calculator: its contract shape passes
// shape validation and a contract-build dry run succeeds. All failures are
// collected so one pass reports every problem. Validate runs regardless of
// build configuration and is expected to gate startup.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, name := range r.Names() {
		c := r.calculators[name]
		shape := c.NewContract()
		if err := port.Validate(shape); err != nil {
			errs = append(errs, fmt.Sprintf("calculator '%s': %v", name, err))
			continue
		}
		if _, err := r.BuildSpec(name); err != nil {
			errs = append(errs, fmt.Sprintf("calculator '%s': %v", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validated.", "calculators", len(r.calculators))
	return nil
}
