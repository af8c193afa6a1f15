package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"declfix/internal/config"
	"declfix/internal/driver"
)

// loadConfig reads --config or discovers declfix.toml from target.
func loadConfig(cmd *cobra.Command, target string) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(target)
}

// driverOptions assembles the options shared by check, fix and the
// refactoring commands. Commands without --jobs or --no-cache get the
// configured values.
func driverOptions(cmd *cobra.Command, target string) (driver.Options, error) {
	cfg, err := loadConfig(cmd, target)
	if err != nil {
		return driver.Options{}, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	opts := driver.Options{
		Analysis:       cfg.Analysis(),
		Fingerprint:    cfg.Fingerprint(),
		MaxDiagnostics: maxDiagnostics,
		Jobs:           cfg.Run.Jobs,
		Timings:        timings,
	}

	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return driver.Options{}, err
		}
	}
	useCache := cfg.Run.Cache
	if f := cmd.Flags().Lookup("no-cache"); f != nil {
		noCache, err := cmd.Flags().GetBool("no-cache")
		if err != nil {
			return driver.Options{}, err
		}
		useCache = useCache && !noCache
	}
	if useCache {
		cache, err := driver.OpenDiskCache("declfix")
		if err != nil {
			// кэш необязателен: работаем без него
			if !quiet(cmd) {
				fmt.Fprintf(os.Stderr, "warning: disk cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}
	return opts, nil
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}
