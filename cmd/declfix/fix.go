package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"declfix/internal/driver"
	"declfix/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.cs|directory>...",
	Short: "Apply available fixes to C# files",
	Long:  "Run the analyzers, then apply their fixes according to the chosen strategy.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes, re-checking until nothing is left")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("heuristics", false, "with --all, also apply fixes that reorder members")
	fixCmd.Flags().Bool("dry-run", false, "report the changes without writing files")
	fixCmd.Flags().Int("max-passes", driver.DefaultMaxPasses, "maximum check-and-fix rounds for --all")
	fixCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	fixCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	fixCmd.Flags().Bool("no-cache", false, "do not read or write the disk cache")
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	heuristics, err := cmd.Flags().GetBool("heuristics")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	maxPasses, err := cmd.Flags().GetInt("max-passes")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	applyMode := fix.ApplyModeOnce
	if targetID != "" {
		applyMode = fix.ApplyModeID
	} else if applyAll {
		applyMode = fix.ApplyModeAll
	}
	fo := driver.FixOptions{
		Apply: fix.ApplyOptions{
			Mode:       applyMode,
			TargetID:   targetID,
			Heuristics: heuristics,
			DryRun:     dryRun,
		},
		MaxPasses: maxPasses,
	}

	opts, err := driverOptions(cmd, args[0])
	if err != nil {
		return err
	}
	var report *driver.FixReport
	if shouldUseTUI(mode, "pretty", quiet(cmd)) {
		report, err = fixWithUI(cmd.Context(), "fixing", args, opts, fo)
	} else {
		report, err = driver.FixPaths(cmd.Context(), args, opts, fo)
	}
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	return printFixReport(os.Stdout, report, dryRun)
}

func printFixReport(out io.Writer, report *driver.FixReport, dryRun bool) error {
	res := &fix.ApplyResult{
		Applied:     report.Applied,
		Skipped:     report.Skipped,
		FileChanges: report.Changes,
	}
	var applyErr error
	if len(report.Applied) == 0 {
		applyErr = fix.ErrNoFixes
	}
	if err := handleApplyResult(out, res, applyErr, dryRun); err != nil {
		return err
	}
	if report.Passes > 1 {
		if _, err := fmt.Fprintf(out, "%d passes\n", report.Passes); err != nil {
			return err
		}
	}
	return nil
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	var printErr error

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		_, printErr = fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		if printErr != nil {
			return printErr
		}
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			_, printErr = fmt.Fprintf(out, "  %s [%s] - %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability)
			if printErr != nil {
				return printErr
			}
		}
	}

	if len(res.FileChanges) > 0 {
		header := "Updated files:"
		if dryRun {
			header = "Files that would change:"
		}
		_, printErr = fmt.Fprintln(out, header)
		if printErr != nil {
			return printErr
		}
		for _, change := range res.FileChanges {
			_, printErr = fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
			if printErr != nil {
				return printErr
			}
		}
	}

	if len(res.Skipped) > 0 {
		_, printErr = fmt.Fprintln(out, "Skipped fixes:")
		if printErr != nil {
			return printErr
		}
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				_, printErr = fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				_, printErr = fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
			if printErr != nil {
				return printErr
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			_, printErr = fmt.Fprintln(out, "No applicable fixes found.")
			return printErr
		}
		return applyErr
	}
	return nil
}
