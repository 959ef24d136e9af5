// Package rename applies a compiled match-and-replace strategy to batches
// of file paths and performs the resulting renames.
package rename

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/mrpkit/mrp/pkg/mrp"
)

// Options controls how a bulk rename runs.
type Options struct {
	DryRun  bool      // print each rename instead of performing it
	Workers int       // goroutines renaming concurrently; <= 1 runs serially
	Console io.Writer // dry-run output, defaults to os.Stdout
}

// Summary reports what a bulk rename did.
type Summary struct {
	Renamed int // renamed, or printed in dry-run mode
	Skipped int // no match, left untouched
	Failed  int // matched but the filesystem rename failed
}

// counters is the concurrent-safe backing for a Summary.
type counters struct {
	renamed atomic.Int64
	skipped atomic.Int64
	failed  atomic.Int64
}

func (c *counters) summary() Summary {
	return Summary{
		Renamed: int(c.renamed.Load()),
		Skipped: int(c.skipped.Load()),
		Failed:  int(c.failed.Load()),
	}
}

// InBulk applies strategy to every path and renames the ones that match.
// Per-file failures are logged and counted, never fatal: one unrenamable
// file must not abort a batch of thousands. The only error return is
// context cancellation.
func InBulk(ctx context.Context, paths []string, strategy mrp.MatchAndReplaceStrategy, opts Options) (Summary, error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	var c counters

	if opts.Workers <= 1 {
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return c.summary(), errors.Errorf("bulk rename cancelled: %w", err)
			}
			renameOne(ctx, path, strategy, opts, console, &c)
		}
		return c.summary(), nil
	}

	// Parallel mode: one input per task, no coordination needed beyond the
	// counters because the compiled strategy is read-only.
	console = &lockedWriter{w: console}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Errorf("bulk rename cancelled: %w", err)
			}
			renameOne(ctx, path, strategy, opts, console, &c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return c.summary(), err
	}
	return c.summary(), nil
}

func renameOne(ctx context.Context, path string, strategy mrp.MatchAndReplaceStrategy, opts Options, console io.Writer, c *counters) {
	to, ok := strategy.Apply(path)
	if !ok {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no match, leaving untouched")
		c.skipped.Add(1)
		return
	}

	if opts.DryRun {
		fmt.Fprintf(console, "%s %s %s\n",
			path,
			color.New(color.Faint).Sprint("->"),
			color.GreenString(to))
		c.renamed.Add(1)
		return
	}

	if err := os.Rename(path, to); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("path", path).Msg("renaming file")
		c.failed.Add(1)
		return
	}

	zerolog.Ctx(ctx).Debug().Str("from", path).Str("to", to).Msg("renamed")
	c.renamed.Add(1)
}

// lockedWriter keeps concurrent dry-run lines from interleaving mid-line.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
