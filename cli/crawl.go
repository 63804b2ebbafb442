package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"vidcrawl/config"
	"vidcrawl/crawl"
	"vidcrawl/internal/logging"
	"vidcrawl/storage"
	"vidcrawl/youtube"
)

var (
	outputPath string
	reportPath string
	noProgress bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl the configured seed keywords",
	Long: `Crawl runs one recursive search per configured seed keyword and writes
the aggregated results to the output file. Seed keywords are spaced out
according to the configured requests_per_second budget.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().StringVarP(&outputPath, "output", "o", "", "results file (overrides output_path from config)")
	crawlCmd.Flags().StringVar(&reportPath, "report", "", "run report file (default: <output>.report.json)")
	crawlCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logOpts := logging.DefaultOptions()
	logOpts.Level = cfg.LogLevel
	logOpts.Dir = cfg.LogDir
	logger, err := logging.Setup(logOpts)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	if outputPath == "" {
		outputPath = cfg.OutputPath
	}
	if reportPath == "" {
		reportPath = outputPath + ".report.json"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	searcher, err := youtube.NewAPISearcher(ctx, cfg.APIKey)
	if err != nil {
		return err
	}

	crawler := crawl.NewCrawler(searcher, logger)

	// Inter-seed pacing; recursion inside one seed is not throttled here.
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	limiter := rate.NewLimiter(limit, 1)

	var bar *progressbar.ProgressBar
	if !noProgress {
		bar = progressbar.Default(int64(len(cfg.Keywords)), "crawling")
	}

	started := time.Now()
	report := storage.NewRunReport(started, cfg.Keywords)
	var all []crawl.Result

	for _, keyword := range cfg.Keywords {
		if err := limiter.Wait(ctx); err != nil {
			logger.Warn().Err(err).Msg("crawl interrupted")
			break
		}

		logger.Info().Str("keyword", keyword).Msg("crawling seed keyword")
		results := crawler.Search(ctx, crawl.Request{
			Keyword:     keyword,
			MaxResults:  int64(cfg.MaxResultsPerKeyword),
			Depth:       0,
			MaxDepth:    cfg.MaxDepth,
			MaxRetries:  cfg.MaxRetries,
			BaseBackoff: cfg.BaseBackoff(),
		})

		report.Record(keyword, len(results))
		all = append(all, results...)

		if len(results) == 0 {
			logger.Warn().Str("keyword", keyword).Msg("no results found")
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	if err := storage.SaveResults(outputPath, all); err != nil {
		return err
	}
	if err := report.Save(reportPath); err != nil {
		return err
	}

	logger.Info().
		Str("run_id", report.RunID).
		Int("results", len(all)).
		Str("output", outputPath).
		Msg("crawl complete")

	printSummary(cmd, report)
	return nil
}

// printSummary writes a per-keyword outcome table to stdout.
func printSummary(cmd *cobra.Command, report *storage.RunReport) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEYWORD\tRESULTS")
	for _, keyword := range report.Keywords {
		count := report.ResultsByKeyword[keyword]
		outcome := fmt.Sprintf("%d", count)
		if count == 0 {
			outcome = "no results found"
		}
		fmt.Fprintf(w, "%s\t%s\n", keyword, outcome)
	}
	fmt.Fprintf(w, "TOTAL\t%d\n", report.TotalResults)
	w.Flush()
}
