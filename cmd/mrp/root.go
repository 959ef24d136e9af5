package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/mrpkit/mrp/pkg/config"
	"github.com/mrpkit/mrp/pkg/mrp"
	"github.com/mrpkit/mrp/pkg/rename"
)

var (
	// Flags
	dryRun      bool
	strip       bool
	workers     int
	debug       bool
	rulesFile   string
	regexEngine bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mrp [flags] PATTERN FILE...",
		Short: "Rename files in bulk with match-and-replace patterns",
		Long: `mrp renames files by matching each name against a small typed pattern
and composing a replacement from its captures.

A pattern is literal text with capture groups, optionally followed by "->"
and a replacement:

  mrp 'img(n:int).jpeg->photo-(n).jpg' *.jpeg

"(n:int)" captures a run of digits under the name n, "(d:dig)" a single
digit. Anonymous groups like "(int)" are referenced by position: "(1)".
Files whose names do not match are left untouched.`,
		Example: `  mrp --dry-run 'g-(g:int)-a-(a:int)->a-(a)-g-(g)' music/**
  mrp --strip 'track(n:int)->(n)' *.flac
  mrp --rules rename-rules.yaml photos/*`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          run,
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print each rename instead of performing it")
	cmd.Flags().BoolVarP(&strip, "strip", "s", false, "replace the whole name with the composed replacement, not just the matched span")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "number of concurrent rename workers")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "YAML rules file applied in order instead of a PATTERN argument")
	cmd.Flags().BoolVar(&regexEngine, "regex-engine", false, "transpile the pattern to a regular expression instead of the built-in engine")

	cmd.Version = version
	return cmd
}

// setupLogging configures zerolog based on flags and returns a context
// carrying the logger.
func setupLogging(ctx context.Context) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}

func run(cmd *cobra.Command, args []string) error {
	ctx := setupLogging(cmd.Context())

	strategy, files, err := buildStrategy(ctx, args)
	if err != nil {
		return err
	}

	paths, err := rename.ExpandGlobs(files)
	if err != nil {
		return err
	}

	opts := rename.Options{
		DryRun:  dryRun,
		Workers: workers,
		Console: cmd.OutOrStdout(),
	}

	summary, err := rename.InBulk(ctx, paths, strategy, opts)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Int("renamed", summary.Renamed).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("bulk rename finished")

	if summary.Failed > 0 {
		return errors.Errorf("%d rename(s) failed", summary.Failed)
	}
	return nil
}

// buildStrategy turns the CLI arguments into a strategy and the list of
// file arguments: either a rules file plus files, or a pattern argument
// followed by files.
func buildStrategy(ctx context.Context, args []string) (mrp.MatchAndReplaceStrategy, []string, error) {
	if rulesFile != "" {
		cfg, err := config.Load(ctx, rulesFile)
		if err != nil {
			return nil, nil, err
		}
		// Flags keep precedence; rules-file defaults fill unset ones.
		if cfg.DryRun {
			dryRun = true
		}
		if workers <= 1 && cfg.Workers > 1 {
			workers = cfg.Workers
		}
		strategy, err := cfg.Strategy()
		if err != nil {
			return nil, nil, err
		}
		return strategy, args, nil
	}

	if len(args) < 2 {
		return nil, nil, errors.New("need a PATTERN and at least one FILE (or --rules)")
	}

	expr, err := mrp.NewParser(args[0]).Parse()
	if err != nil {
		return nil, nil, err
	}

	if regexEngine {
		s, err := mrp.NewRegexStrategy(expr)
		if err != nil {
			return nil, nil, err
		}
		s.SetStrip(strip)
		return s, args[1:], nil
	}

	r := mrp.NewMatchAndReplacer(expr)
	r.SetStrip(strip)
	return r, args[1:], nil
}
