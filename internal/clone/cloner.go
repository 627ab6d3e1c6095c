package clone

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"repo-sweep/internal/config"
	"repo-sweep/internal/disk"
	"repo-sweep/internal/metrics"
	"repo-sweep/internal/safety"
	"repo-sweep/internal/wipe"
)

// Cloner prepares a clean destination and then populates it by invoking the
// external checkout executable. The wipe core neither knows nor cares about
// the executable; the ordering (sweep fully settles, then clone) is enforced
// here.
type Cloner struct {
	cfg       *config.Config
	logger    *log.Logger
	remover   *wipe.Remover
	validator *safety.Validator
	runner    Runner
}

// NewCloner wires a cloner from configuration. remover must be non-nil.
func NewCloner(cfg *config.Config, logger *log.Logger, remover *wipe.Remover) *Cloner {
	if logger == nil {
		logger = log.Default()
	}
	return &Cloner{
		cfg:       cfg,
		logger:    logger,
		remover:   remover,
		validator: safety.NewValidator(cfg.AllowedRoots, cfg.ProtectedPaths),
		runner:    NewRunner(cfg.Git.Runner),
	}
}

// SetRunner swaps the spawn strategy (tests)
func (c *Cloner) SetRunner(r Runner) {
	c.runner = r
}

// Prepare validates the destination and destroys whatever occupies it.
// After a successful return the destination does not exist.
func (c *Cloner) Prepare(ctx context.Context, dest string) error {
	if err := c.validator.ValidateTarget(dest); err != nil {
		return fmt.Errorf("refusing to sweep %s: %w", dest, err)
	}

	start := time.Now()
	if err := c.remover.Remove(ctx, dest); err != nil {
		metrics.RecordSweep(outcomeFor(err))
		return err
	}
	metrics.SweepDuration.Observe(time.Since(start).Seconds())
	metrics.RecordSweep("ok")
	return nil
}

// Clone invokes the checkout executable against the prepared destination,
// bounded by the configured timeout
func (c *Cloner) Clone(ctx context.Context, repoURL, dest string) error {
	if err := c.checkFreeSpace(dest); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.CloneTimeout())
	defer cancel()

	args := cloneArgs(c.cfg.Git.Depth, repoURL, dest)
	c.logger.Printf("running %s %v", c.cfg.Git.Binary, args)

	start := time.Now()
	if err := c.runner.Run(ctx, c.cfg.Git.Binary, args...); err != nil {
		return fmt.Errorf("clone %s into %s: %w", repoURL, dest, err)
	}
	metrics.CloneDuration.Observe(time.Since(start).Seconds())
	return nil
}

// Run performs the full flow: sweep the destination, then populate it
func (c *Cloner) Run(ctx context.Context, repoURL, dest string) error {
	if err := c.Prepare(ctx, dest); err != nil {
		return err
	}
	return c.Clone(ctx, repoURL, dest)
}

// checkFreeSpace refuses to clone when the destination filesystem has less
// than the configured minimum free space. The destination itself was just
// swept away, so the parent directory is measured instead.
func (c *Cloner) checkFreeSpace(dest string) error {
	if c.cfg.MinFreeMB <= 0 {
		return nil
	}
	free, err := disk.FreeBytes(filepath.Dir(dest))
	if err != nil {
		c.logger.Printf("free-space check skipped for %s: %v", dest, err)
		return nil
	}
	minBytes := c.cfg.MinFreeMB * 1024 * 1024
	if free < minBytes {
		return fmt.Errorf("insufficient free space at %s: %d MB available, %d MB required",
			dest, free/(1024*1024), c.cfg.MinFreeMB)
	}
	return nil
}

// cloneArgs builds the argument list for the checkout executable
func cloneArgs(depth int, repoURL, dest string) []string {
	args := []string{"clone"}
	if depth > 0 {
		args = append(args, "--depth", strconv.Itoa(depth))
	}
	return append(args, repoURL, dest)
}

func outcomeFor(err error) string {
	switch err.(type) {
	case *wipe.ListError:
		return "list_error"
	case *wipe.PurgeError:
		return "purge_error"
	default:
		return "error"
	}
}
