// cmd/linkedscout/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/datalens/linkedscout/internal/antidetect"
	"github.com/datalens/linkedscout/internal/browser"
	"github.com/datalens/linkedscout/internal/config"
	"github.com/datalens/linkedscout/internal/monitoring"
	"github.com/datalens/linkedscout/internal/output"
	"github.com/datalens/linkedscout/internal/scraper"
	"github.com/datalens/linkedscout/internal/utils"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configFile  = flag.String("config", "", "path to YAML configuration file")
		maxPosts    = flag.Int("max-posts", 0, "maximum number of posts to scrape (overrides config)")
		maxWorkers  = flag.Int("workers", 0, "maximum concurrent post workers (overrides config)")
		outputType  = flag.String("output", "", "output backend: mongodb, sqlite or json (overrides config)")
		verbose     = flag.Bool("v", false, "verbose logging")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("linkedscout %s (built %s)\n", version, buildTime)
		return 0
	}

	if flag.NArg() != 1 {
		usage()
		return 2
	}
	profileURL := flag.Arg(0)

	if *verbose {
		utils.SetGlobalLevel(utils.DebugLevel)
	}
	logger := utils.NewComponentLogger("main")

	cfg, err := loadConfig(*configFile, *maxPosts, *maxWorkers, *outputType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := monitoring.NewMetrics()
	if cfg.Metrics.Enabled {
		server := metrics.NewServer(cfg.Metrics.ListenAddress)
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warnf("metrics server stopped: %v", err)
			}
		}()
		defer func() { _ = server.Shutdown(context.Background()) }()
		logger.Infof("metrics available at %s/metrics", cfg.Metrics.ListenAddress)
	}

	limiter := antidetect.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	fetcher := browser.NewFetcher(cfg.Browser, limiter)
	orchestrator := scraper.NewOrchestrator(fetcher, scraper.Options{
		MaxPosts:   cfg.MaxPosts,
		MaxWorkers: cfg.MaxWorkers,
	}, metrics)

	logger.Infof("starting acquisition for %s (max_posts=%d workers=%d)",
		profileURL, cfg.MaxPosts, cfg.MaxWorkers)

	profile, posts, err := orchestrator.Acquire(ctx, profileURL)
	if err != nil {
		logger.Warnf("acquisition interrupted: %v", err)
	}

	// Storage problems are diagnostics, never an acquisition failure.
	if manager, err := output.NewManager(ctx, &cfg.Output, metrics); err != nil {
		logger.Errorf("persistence unavailable, results not saved: %v", err)
	} else {
		if err := manager.WriteResults(ctx, profile, posts); err != nil {
			logger.Errorf("failed to persist results: %v", err)
		}
		if err := manager.Close(ctx); err != nil {
			logger.Warnf("failed to close store: %v", err)
		}
	}

	printSummary(profile, posts)

	if profile.ScrapeFailed && len(posts) == 0 {
		fmt.Fprintf(os.Stderr, "error: could not acquire profile %s\n", profileURL)
		return 1
	}
	return 0
}

// loadConfig loads the file (or defaults) and applies CLI overrides.
func loadConfig(configFile string, maxPosts, maxWorkers int, outputType string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if maxPosts > 0 {
		cfg.MaxPosts = maxPosts
	}
	if maxWorkers > 0 {
		cfg.MaxWorkers = maxWorkers
	}
	if outputType != "" {
		applyOutputOverride(cfg, outputType)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOutputOverride switches the output backend from the CLI, filling in
// the conventional defaults for the chosen backend.
func applyOutputOverride(cfg *config.Config, outputType string) {
	cfg.Output.Type = outputType
	switch outputType {
	case output.TypeMongoDB:
		if cfg.Output.MongoDB.URI == "" {
			cfg.Output.MongoDB.URI = os.Getenv("MONGO_URI")
		}
		if cfg.Output.MongoDB.Database == "" {
			cfg.Output.MongoDB.Database = "linkedin_data"
		}
	case output.TypeSQLite:
		if cfg.Output.SQLite.Path == "" {
			cfg.Output.SQLite.Path = "linkedscout.db"
		}
	case output.TypeJSON:
		if cfg.Output.File.Path == "" {
			cfg.Output.File.Path = "linkedscout.json"
		}
	}
}

// printSummary writes the human-readable result of a run.
func printSummary(profile *scraper.ProfileRecord, posts []scraper.PostRecord) {
	fmt.Println("--- Acquisition Summary ---")
	fmt.Printf("Profile:        %s (%s)\n", profile.Name, profile.Username)
	if profile.Headline != "" {
		fmt.Printf("Headline:       %s\n", profile.Headline)
	}
	if profile.Location != "" {
		fmt.Printf("Location:       %s\n", profile.Location)
	}
	if profile.Connections != "" {
		fmt.Printf("Connections:    %s\n", profile.Connections)
	}
	if profile.Followers != "" {
		fmt.Printf("Followers:      %s\n", profile.Followers)
	}
	fmt.Printf("Posts scraped:  %d\n", profile.PostsScraped)
	fmt.Printf("Avg engagement: %.1f\n", profile.AvgEngagement)
	for _, post := range posts {
		fmt.Printf("  [%s] %-8s likes=%-5d comments=%-4d engagement=%-5d %s\n",
			post.Date, post.Type, post.Likes, post.Comments, post.Engagement, truncate(post.Content, 60))
	}
	fmt.Println("---------------------------")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: linkedscout [flags] <profile-url>

Scrapes a public LinkedIn profile and its recent posts into a normalized,
analytics-ready record set.

Flags:
`)
	flag.PrintDefaults()
}
