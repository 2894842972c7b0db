package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mdcrawl/mdcrawl/internal/config"
	"github.com/mdcrawl/mdcrawl/internal/crawler"
	"github.com/mdcrawl/mdcrawl/internal/database"
	"github.com/mdcrawl/mdcrawl/internal/fetcher"
	"github.com/mdcrawl/mdcrawl/internal/index"
	intlog "github.com/mdcrawl/mdcrawl/internal/log"
	"github.com/mdcrawl/mdcrawl/internal/policy"
	"github.com/mdcrawl/mdcrawl/internal/storage"
)

// Output file names written into the output directory at the end of a run.
const (
	indexFileName   = "index.json"
	summaryFileName = "summary.md"
	crawlLogName    = "crawl.log"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [url]...",
		Short: "Crawl seed URLs and write text renderings plus a metadata index",
		Long: `Crawl fetches each seed URL and follows in-scope links breadth-first up
to the configured depth. Every successfully fetched HTML page is rendered
to a readable text file under <output>/MDs/, and a metadata index of all
processed pages is written to <output>/index.json at the end of the run.

Only URLs whose hostname matches an allowed domain (or a subdomain of one)
are crawled. When no --allow domains are configured, the seed hostnames
are allowed implicitly. Blocked domains always win over allowed ones.

Examples:
  # Crawl a single site one level deep
  mdcrawl crawl https://example.com/

  # Crawl seeds from a file, two levels deep, into a custom directory
  mdcrawl crawl --seeds seeds.txt --depth 2 --output run1

  # Restrict the crawl and skip binary assets
  mdcrawl crawl --allow example.com --block ads.example.com https://example.com/

  # Crawl three seeds concurrently and record history
  mdcrawl crawl --batch 3 --db https://a.example https://b.example https://c.example`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	// Seed sources
	cmd.Flags().StringP("seeds", "s", "",
		"Seed list file (one URL per line, # comments allowed)")

	// Crawl behavior flags
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum link depth from each seed (0 = seed pages only)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each fetch attempt")
	cmd.Flags().IntP("retries", "r", config.DefaultRetries,
		"Total fetch attempts per URL")
	cmd.Flags().Duration("delay", config.DefaultDelay,
		"Polite delay between processed pages")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of seeds crawled concurrently")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with every request")

	// Scope flags
	cmd.Flags().StringSliceP("allow", "a", nil,
		"Allowed domains (default: the seed hostnames)")
	cmd.Flags().StringSlice("block", nil,
		"Blocked domains (win over allowed domains)")
	cmd.Flags().StringSlice("exclude", nil,
		"Regular expressions for links to skip silently")

	// Output flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Output directory for artifacts, logs, and the index")

	// History database flags
	cmd.Flags().Bool("db", false,
		"Record page metadata in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .mdcrawl in current or home directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrawl(ctx, cfg, getVerboseFlag(cmd))
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the optional configuration
// file, and the command flags, in that order of precedence (flags win).
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	explicitPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// File layer. A missing default file is fine; a missing explicit file
	// is a user error.
	configPath, err := config.FindConfigFile(explicitPath)
	switch {
	case err == nil:
		file, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		file.Apply(cfg)
		cfg.ConfigFilePath = configPath
	case errors.Is(err, config.ErrConfigNotFound):
		// Run on defaults.
	default:
		return nil, err
	}

	// Flag layer: only flags the user actually set override the file.
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	// Seed sources: the seed file first, then positional arguments.
	if cfg.SeedFile != "" {
		seeds, err := config.LoadSeeds(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		cfg.Seeds = append(cfg.Seeds, seeds...)
	}
	for _, arg := range args {
		cfg.Seeds = append(cfg.Seeds, config.CoerceSeed(arg))
	}

	// Without an explicit allowlist the seed hostnames define the scope;
	// an empty allowlist would block every URL including the seeds.
	if len(cfg.AllowedDomains) == 0 {
		cfg.AllowedDomains = seedDomains(cfg.Seeds)
	}

	if cfg.SaveToDB && cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	return cfg, nil
}

// applyFlags overlays flag values onto cfg. Only flags changed on the
// command line override the configuration file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("seeds") {
		if cfg.SeedFile, err = flags.GetString("seeds"); err != nil {
			return err
		}
	}
	if flags.Changed("depth") {
		if cfg.MaxDepth, err = flags.GetInt("depth"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("retries") {
		if cfg.Retries, err = flags.GetInt("retries"); err != nil {
			return err
		}
	}
	if flags.Changed("delay") {
		if cfg.Delay, err = flags.GetDuration("delay"); err != nil {
			return err
		}
	}
	if flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return err
		}
	}
	if flags.Changed("allow") {
		if cfg.AllowedDomains, err = flags.GetStringSlice("allow"); err != nil {
			return err
		}
	}
	if flags.Changed("block") {
		if cfg.BlockedDomains, err = flags.GetStringSlice("block"); err != nil {
			return err
		}
	}
	if flags.Changed("exclude") {
		if cfg.ExcludePatterns, err = flags.GetStringSlice("exclude"); err != nil {
			return err
		}
	}
	if flags.Changed("output") {
		if cfg.OutputDir, err = flags.GetString("output"); err != nil {
			return err
		}
	}
	if flags.Changed("db") {
		if cfg.SaveToDB, err = flags.GetBool("db"); err != nil {
			return err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return err
		}
	}

	return nil
}

// seedDomains extracts the distinct hostnames of the seeds, without the
// "www." prefix, to serve as the implicit allowlist.
func seedDomains(seeds []string) []string {
	seen := make(map[string]bool)
	var domains []string
	for _, seed := range seeds {
		u, err := url.Parse(seed)
		if err != nil || u.Hostname() == "" {
			continue
		}
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		if !seen[host] {
			seen[host] = true
			domains = append(domains, host)
		}
	}
	return domains
}

// runCrawl executes the crawl run end to end.
func runCrawl(ctx context.Context, cfg *config.Config, verbose bool) error {
	store, err := storage.New(cfg.OutputDir)
	if err != nil {
		return err
	}

	// Run log: everything goes to <output>/crawl.log, warnings and worse
	// also reach the terminal.
	logFile, err := os.OpenFile(filepath.Join(cfg.OutputDir, crawlLogName),
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("create crawl log: %w", err)
	}
	defer logFile.Close() //nolint:errcheck // flushed per record

	logger := intlog.NewLogger(io.MultiWriter(logFile, newLevelWriter(os.Stderr, verbose)), verbose)
	slog.SetDefault(logger)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer db.Close() //nolint:errcheck // read-mostly at shutdown
		logger.Info("history database opened", "dir", cfg.DBDir)
	}

	scope := policy.New(cfg.AllowedDomains, cfg.BlockedDomains,
		policy.WithLogger(logger),
		policy.WithExcludePatterns(cfg.ExcludePatterns),
	)

	client := fetcher.NewClient(
		fetcher.WithRetries(cfg.Retries),
		fetcher.WithTimeout(cfg.Timeout),
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
		fetcher.WithLogger(logger),
	)

	idx := index.New()
	session := crawler.NewSession(client, scope, store, idx,
		crawler.WithMaxDepth(cfg.MaxDepth),
		crawler.WithDelay(cfg.Delay),
		crawler.WithLogger(logger),
	)

	logger.Info("starting crawl",
		"seeds", len(cfg.Seeds),
		"maxDepth", cfg.MaxDepth,
		"batchSize", cfg.BatchSize,
		"outputDir", cfg.OutputDir,
	)

	fmt.Printf("Crawling %d seed(s) (depth %d, concurrency %d)...\n\n",
		len(cfg.Seeds), cfg.MaxDepth, cfg.BatchSize)
	startTime := time.Now()

	// One goroutine per seed, bounded by the batch size. Results keep seed
	// order regardless of completion order.
	results := make([]index.SeedResult, len(cfg.Seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.BatchSize)
	for i, seed := range cfg.Seeds {
		g.Go(func() error {
			stats, err := session.Crawl(gctx, seed)
			results[i] = index.SeedResult{Seed: seed, Stats: stats}
			return err
		})
	}
	crawlErr := g.Wait()

	// Write whatever completed even when the run was interrupted.
	if err := writeOutputs(cfg.OutputDir, idx, results); err != nil {
		logger.Error("writing outputs failed", "error", err)
		if crawlErr == nil {
			crawlErr = err
		}
	}

	if db != nil {
		saveHistory(ctx, db, idx, logger)
	}

	for _, r := range results {
		fmt.Printf("  %s: processed %d, failed %d, blocked %d, saved %d\n",
			r.Seed, r.Stats.Processed, r.Stats.Failed, r.Stats.Blocked, r.Stats.Saved)
	}
	fmt.Printf("\nCrawl completed in %s (%d pages indexed)\n",
		time.Since(startTime).Round(time.Millisecond), idx.Len())
	fmt.Printf("Output written to %s\n", cfg.OutputDir)

	if errors.Is(crawlErr, context.Canceled) {
		fmt.Fprintln(os.Stderr, "crawl interrupted; partial results written")
	}
	return crawlErr
}

// writeOutputs writes the JSON index and the markdown run summary.
func writeOutputs(outputDir string, idx *index.Index, results []index.SeedResult) error {
	indexFile, err := os.OpenFile(filepath.Join(outputDir, indexFileName),
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	if err := idx.WriteJSON(indexFile); err != nil {
		_ = indexFile.Close()
		return fmt.Errorf("write index: %w", err)
	}
	if err := indexFile.Close(); err != nil {
		return fmt.Errorf("close index file: %w", err)
	}

	summaryFile, err := os.OpenFile(filepath.Join(outputDir, summaryFileName),
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	if err := index.NewSummaryWriter(summaryFile).Write(results, time.Now()); err != nil {
		_ = summaryFile.Close()
		return fmt.Errorf("write summary: %w", err)
	}
	return summaryFile.Close()
}

// saveHistory records all indexed pages in the history database.
// Failures are logged per record; history is best effort.
func saveHistory(ctx context.Context, db *database.HistoryDB, idx *index.Index, logger *slog.Logger) {
	for _, record := range idx.Records() {
		if err := db.SavePageRecord(ctx, record); err != nil {
			logger.Error("history save failed", "url", record.URL, "error", err)
		}
	}
}

// levelWriter filters terminal output: without --verbose only warning and
// error records reach stderr, while the log file keeps everything.
type levelWriter struct {
	w       io.Writer
	verbose bool
}

// newLevelWriter creates a levelWriter over w.
func newLevelWriter(w io.Writer, verbose bool) *levelWriter {
	return &levelWriter{w: w, verbose: verbose}
}

// Write forwards records to the terminal. slog's text handler emits one
// record per Write call, so line-level filtering is safe here.
func (lw *levelWriter) Write(p []byte) (int, error) {
	if !lw.verbose {
		s := string(p)
		if !strings.Contains(s, "level=WARN") && !strings.Contains(s, "level=ERROR") {
			return len(p), nil
		}
	}
	return lw.w.Write(p)
}
