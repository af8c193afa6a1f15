package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"declfix/internal/prof"
)

var profSession *prof.Session

// setupProfiling starts the profilers requested by the persistent flags.
func setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root()
	var (
		cfg prof.Config
		err error
	)
	if cfg.CPU, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	profSession, err = prof.Start(cfg)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	return nil
}

func finishProfiling() {
	if err := profSession.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
	}
}
