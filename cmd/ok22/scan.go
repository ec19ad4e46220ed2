package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bozidoz/ok22/internal/activation"
	"github.com/bozidoz/ok22/internal/config"
	"github.com/bozidoz/ok22/internal/log"
	"github.com/bozidoz/ok22/internal/model"
	"github.com/bozidoz/ok22/internal/report"
	"github.com/bozidoz/ok22/internal/scanner"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [mac-address]...",
		Short: "Scan hardware addresses against the activation portal",
		Long: `Scan queries the activation portal for each candidate address and
records every confirmed entitlement.

Input can come from positional arguments, a line-oriented file, random
generation, or any combination. Addresses are accepted in any common
notation (colons, hyphens, dots, bare hex).

Examples:
  # Scan two addresses directly
  ok22 scan AA:BB:CC:DD:EE:FF 00-1A-79-12-34-56

  # Scan a list through rotating proxies
  ok22 scan --list macs.txt --proxies proxies.txt

  # Probe 500 random addresses with a vendor prefix
  ok22 scan --random 500 --prefix 00:1A:79

  # Write outputs elsewhere and produce a Markdown summary
  ok22 scan --list macs.txt --output-dir results --summary session.md`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Input sources
	cmd.Flags().StringP("list", "l", "", "Line-oriented file of addresses to scan")
	cmd.Flags().IntP("random", "r", 0, "Generate this many random addresses as input")
	cmd.Flags().String("prefix", "", "Vendor prefix for generated addresses (e.g. 00:1A:79)")

	// Egress routing
	cmd.Flags().StringP("proxies", "p", "", "Line-oriented file of proxy addresses")
	cmd.Flags().Bool("direct", false, "Do not route attempts through proxies even when --proxies is set")

	// Scan behavior
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Timeout for each activation attempt")
	cmd.Flags().Int("retries", config.DefaultRetries, "Attempt budget per address")
	cmd.Flags().Duration("backoff", config.DefaultBackoff, "Fixed wait between failed attempts")
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency, "Maximum concurrent scan tasks")

	// Portal
	cmd.Flags().StringP("endpoint", "e", config.DefaultEndpoint, "Activation portal endpoint URL")
	cmd.Flags().String("user-agent", config.DefaultUserAgent, "User-Agent header for portal requests")

	// Outputs
	cmd.Flags().StringP("output-dir", "o", ".", "Directory for result files (created if needed)")
	cmd.Flags().String("hits", config.DefaultHitsFile, "Detailed results file name")
	cmd.Flags().String("urls", config.DefaultURLFile, "Flat URL list file name")
	cmd.Flags().StringP("summary", "s", "", "Write a Markdown session summary to this file")

	// Configuration file
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .ok22, then XDG config dir)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential masking
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Cancel the batch on interrupt; running attempts finish their
	// current timeout, sleeping tasks wake immediately.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runScan(ctx, cfg, logger)
}

// buildConfig assembles the Config: defaults, then the config file,
// then explicitly set flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.New()
	cfg.Targets = args

	// Config file layer
	explicitPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path := config.FindConfigFile(explicitPath); path != "" {
		file, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		file.Apply(cfg)
	} else if explicitPath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicitPath)
	}

	// Flag layer: only flags the user actually set override the file
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.UseProxies = cfg.ProxyFile != ""
	if direct, err := cmd.Flags().GetBool("direct"); err == nil && direct {
		cfg.UseProxies = false
	}

	return cfg, nil
}

// applyFlags copies explicitly set flag values into the config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flagErr := func(err error) error {
		return fmt.Errorf("failed to read flag: %w", err)
	}

	stringFlags := map[string]*string{
		"list":       &cfg.ListFile,
		"prefix":     &cfg.RandomPrefix,
		"proxies":    &cfg.ProxyFile,
		"endpoint":   &cfg.Endpoint,
		"user-agent": &cfg.UserAgent,
		"output-dir": &cfg.OutputDir,
		"hits":       &cfg.HitsFile,
		"urls":       &cfg.URLFile,
		"summary":    &cfg.SummaryFile,
	}
	for name, dst := range stringFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return flagErr(err)
		}
		*dst = v
	}

	intFlags := map[string]*int{
		"random":      &cfg.RandomCount,
		"retries":     &cfg.Retries,
		"concurrency": &cfg.Concurrency,
	}
	for name, dst := range intFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetInt(name)
		if err != nil {
			return flagErr(err)
		}
		*dst = v
	}

	durationFlags := map[string]*time.Duration{
		"timeout": &cfg.Timeout,
		"backoff": &cfg.Backoff,
	}
	for name, dst := range durationFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetDuration(name)
		if err != nil {
			return flagErr(err)
		}
		*dst = v
	}

	return nil
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

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	identifiers, err := collectIdentifiers(cfg)
	if err != nil {
		return err
	}
	if len(identifiers) == 0 {
		return errors.New("no addresses to scan")
	}

	// Output files must be usable before any task is dispatched
	if cfg.OutputDir != "" && cfg.OutputDir != "." {
		if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	resultLog, err := report.Open(cfg.HitsPath(), cfg.URLPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := resultLog.Close(); err != nil {
			logger.Error("failed to close result log", "error", err)
		}
	}()

	var sink report.Sink = resultLog
	collector := &report.Collector{}
	if cfg.SummaryFile != "" {
		sink = report.NewMultiSink(resultLog, collector)
	}

	client := activation.NewClient(cfg.Endpoint, cfg.UserAgent, cfg.Timeout)
	engine := scanner.New(client,
		scanner.WithResultSink(sink),
		scanner.WithLogger(logger),
		scanner.WithRetries(cfg.Retries),
		scanner.WithBackoff(cfg.Backoff),
		scanner.WithConcurrency(cfg.Concurrency),
	)

	fmt.Printf("Scanning %d addresses (concurrency: %d)...\n\n", len(identifiers), cfg.Concurrency)
	startTime := time.Now()

	hits, err := engine.MassScan(ctx, identifiers, cfg.ProxyFile, cfg.UseProxies)
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nScan completed in %s: %d hits out of %d addresses\n",
		elapsed.Round(time.Millisecond), hits, len(identifiers))
	fmt.Printf("Results: %s, %s\n", cfg.HitsPath(), cfg.URLPath())

	if cfg.SummaryFile != "" {
		if err := writeSummary(cfg, engine.Session(), startTime, elapsed, len(identifiers), collector); err != nil {
			logger.Error("failed to write summary", "file", cfg.SummaryFile, "error", err)
			return err
		}
		fmt.Printf("Summary: %s\n", cfg.SummaryFile)
	}

	return nil
}

// collectIdentifiers gathers raw addresses from all configured sources:
// positional arguments, the list file, and random generation.
func collectIdentifiers(cfg *config.Config) ([]string, error) {
	identifiers := make([]string, 0, len(cfg.Targets)+cfg.RandomCount)
	identifiers = append(identifiers, cfg.Targets...)

	if cfg.ListFile != "" {
		fromFile, err := readIdentifierList(cfg.ListFile)
		if err != nil {
			return nil, err
		}
		identifiers = append(identifiers, fromFile...)
	}

	for i := 0; i < cfg.RandomCount; i++ {
		mac, err := model.RandomMACAddress(cfg.RandomPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to generate address: %w", err)
		}
		identifiers = append(identifiers, mac.String())
	}

	return identifiers, nil
}

// readIdentifierList reads raw addresses from a line-oriented file,
// skipping blank lines and '#' comments. Validation happens later, per
// task; malformed lines are silently dropped there.
func readIdentifierList(path string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open address list: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read address list: %w", err)
	}
	return out, nil
}

// writeSummary renders the Markdown session summary.
func writeSummary(cfg *config.Config, session string, startedAt time.Time, elapsed time.Duration, scanned int, collector *report.Collector) error {
	f, err := os.OpenFile(filepath.Clean(cfg.SummaryFile), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	return report.NewSummaryWriter(f).Write(report.Summary{
		Session:   session,
		StartedAt: startedAt,
		Elapsed:   elapsed,
		Scanned:   scanned,
		Hits:      collector.Results(),
	})
}
