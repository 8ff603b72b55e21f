package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/xwstats/internal/config"
	"github.com/verte-zerg/xwstats/internal/credential"
	"github.com/verte-zerg/xwstats/internal/export"
	"github.com/verte-zerg/xwstats/internal/fetch"
	"github.com/verte-zerg/xwstats/internal/model"
	"github.com/verte-zerg/xwstats/internal/nyt"
	"github.com/verte-zerg/xwstats/internal/progress"
)

const (
	defaultOutputCSV    = "data.csv"
	defaultLookbackDays = 30
)

type fetchOptions struct {
	username     string
	password     string
	startDate    string
	endDate      string
	outputCSV    string
	strict       bool
	lookbackDays int
	apiRoot      string
	loginURL     string
	envFile      string
}

func newFetchCmd() *cobra.Command {
	opts := &fetchOptions{}
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch daily solve stats into a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetchCmd(cmd, opts, time.Now())
		},
	}
	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "NYT account email address")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "NYT account password")
	cmd.Flags().StringVarP(&opts.startDate, "start-date", "s", "", "first date to pull, inclusive (default: 30 days ago)")
	cmd.Flags().StringVarP(&opts.endDate, "end-date", "e", "", "last date to pull, inclusive (default: today)")
	cmd.Flags().StringVarP(&opts.outputCSV, "output-csv", "o", defaultOutputCSV, "CSV file to write")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "don't allow missing puzzles or errors")
	cmd.Flags().IntVar(&opts.lookbackDays, "lookback-days", defaultLookbackDays, "days before today used as the default start date")
	cmd.Flags().StringVar(&opts.apiRoot, "api-root", nyt.DefaultAPIRoot, "games API root")
	cmd.Flags().StringVar(&opts.loginURL, "login-url", nyt.DefaultLoginURL, "login endpoint")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file consulted for "+config.CookieEnv)
	_ = cmd.Flags().MarkHidden("api-root")
	_ = cmd.Flags().MarkHidden("login-url")
	return cmd
}

func runFetchCmd(cmd *cobra.Command, opts *fetchOptions, now time.Time) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "username", &opts.username, fileCfg.Fetch.Username)
	applyStringConfig(cmd, "output-csv", &opts.outputCSV, fileCfg.Fetch.OutputCSV)
	applyBoolConfig(cmd, "strict", &opts.strict, fileCfg.Fetch.Strict)
	applyIntConfig(cmd, "lookback-days", &opts.lookbackDays, fileCfg.Fetch.LookbackDays)
	applyStringConfig(cmd, "api-root", &opts.apiRoot, fileCfg.Fetch.APIRoot)
	applyStringConfig(cmd, "login-url", &opts.loginURL, fileCfg.Fetch.LoginURL)

	env := config.LoadEnv(opts.envFile)
	cfg, err := buildFetchConfig(opts, env.Get(config.CookieEnv), now)
	if err != nil {
		return err
	}

	logger := slog.Default()
	client := nyt.NewClient(
		nyt.WithAPIRoot(cfg.APIRoot),
		nyt.WithLoginURL(cfg.LoginURL),
		nyt.WithLogger(logger),
	)
	return runFetch(cmd.Context(), cfg, client, cmd.OutOrStdout(), progress.New(os.Stderr), logger)
}

func buildFetchConfig(opts *fetchOptions, cookie string, now time.Time) (model.FetchConfig, error) {
	if opts.lookbackDays < 0 {
		return model.FetchConfig{}, fmt.Errorf("--lookback-days must be >= 0")
	}
	start := now.AddDate(0, 0, -opts.lookbackDays)
	end := now
	if opts.startDate != "" {
		parsed, err := time.ParseInLocation(model.DateLayout, opts.startDate, time.Local)
		if err != nil {
			return model.FetchConfig{}, fmt.Errorf("invalid --start-date value: %w", err)
		}
		start = parsed
	}
	if opts.endDate != "" {
		parsed, err := time.ParseInLocation(model.DateLayout, opts.endDate, time.Local)
		if err != nil {
			return model.FetchConfig{}, fmt.Errorf("invalid --end-date value: %w", err)
		}
		end = parsed
	}

	cfg := model.FetchConfig{
		Username:  opts.username,
		Password:  opts.password,
		Cookie:    cookie,
		Range:     model.DateRange{Start: start, End: end},
		OutputCSV: opts.outputCSV,
		Strict:    opts.strict,
		APIRoot:   opts.apiRoot,
		LoginURL:  opts.loginURL,
	}
	if err := cfg.Validate(); err != nil {
		return model.FetchConfig{}, fmt.Errorf("invalid fetch options (set %s or pass --username and --password): %w", config.CookieEnv, err)
	}
	return cfg, nil
}

func runFetch(ctx context.Context, cfg model.FetchConfig, client *nyt.Client, out io.Writer, reporter fetch.Reporter, logger *slog.Logger) error {
	source := credential.Select(cfg.Cookie, cfg.Username, cfg.Password, client)
	token, err := source.Token(ctx)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(out, "Getting stats from %s until %s\n",
		cfg.Range.Start.Format(model.DateLayout), cfg.Range.End.Format(model.DateLayout)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	file, err := os.Create(cfg.OutputCSV)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logErrf("failed to close %s: %v\n", cfg.OutputCSV, cerr)
		}
	}()
	writer, err := export.NewWriter(file)
	if err != nil {
		return err
	}

	driver := &fetch.Driver{
		Fetcher:  fetch.NewFetcher(client, token),
		Writer:   writer,
		Progress: reporter,
		Strict:   cfg.Strict,
		Logger:   logger,
	}
	count, err := driver.Run(ctx, cfg.Range)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "%d rows written to %s\n", count, cfg.OutputCSV); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
