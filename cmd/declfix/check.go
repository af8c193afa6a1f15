package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"declfix/internal/diag"
	"declfix/internal/diagfmt"
	"declfix/internal/driver"
)

// errDiagnostics signals a failing run whose diagnostics were already printed.
var errDiagnostics = errors.New("diagnostics reported")

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.cs|directory>...",
	Short: "Check C# declarations for ordering and accessibility issues",
	Long:  `Check runs the style analyzers over C# files or every *.cs file below the given directories`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the disk cache")
	checkCmd.Flags().Bool("no-info", false, "hide informational diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit with status 1 on warnings")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "include a preview of every fix")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

type reportFlags struct {
	format           string
	noInfo           bool
	warningsAsErrors bool
	withNotes        bool
	suggest          bool
	preview          bool
	fullPath         bool
}

func readReportFlags(cmd *cobra.Command) (reportFlags, error) {
	var (
		rf  reportFlags
		err error
	)
	if rf.format, err = cmd.Flags().GetString("format"); err != nil {
		return rf, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch rf.format {
	case "pretty", "json", "short":
	default:
		return rf, fmt.Errorf("unknown format: %s", rf.format)
	}
	if rf.noInfo, err = cmd.Flags().GetBool("no-info"); err != nil {
		return rf, fmt.Errorf("failed to get no-info flag: %w", err)
	}
	if rf.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return rf, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if rf.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return rf, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if rf.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return rf, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if rf.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return rf, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if rf.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return rf, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	return rf, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	rf, err := readReportFlags(cmd)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, args[0])
	if err != nil {
		return err
	}

	var run *driver.Run
	if shouldUseTUI(mode, rf.format, quiet(cmd)) {
		run, err = checkWithUI(cmd.Context(), "checking", args, opts)
	} else {
		run, err = driver.CheckPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if err := printRun(cmd, run, rf); err != nil {
		return err
	}
	errs, warnings, infos := run.Counts()
	if rf.format == "pretty" && !quiet(cmd) {
		fmt.Fprintf(os.Stderr, "%d file(s): %d error(s), %d warning(s), %d info(s)\n", len(run.Files), errs, warnings, infos)
	}
	if errs > 0 || (rf.warningsAsErrors && warnings > 0) {
		cmd.SilenceErrors = true
		return errDiagnostics
	}
	return nil
}

func printRun(cmd *cobra.Command, run *driver.Run, rf reportFlags) error {
	pathMode := diagfmt.PathModeAuto
	formatMode := "auto"
	if rf.fullPath {
		pathMode = diagfmt.PathModeAbsolute
		formatMode = "absolute"
	}
	showFixes := rf.suggest || rf.preview

	keep := func(d diag.Diagnostic) bool {
		return !rf.noInfo || d.Severity != diag.SevInfo
	}

	switch rf.format {
	case "short":
		var items []diag.Diagnostic
		for _, d := range run.Diagnostics() {
			if keep(d) {
				items = append(items, d)
			}
		}
		if output := diag.FormatShort(items, run.FileSet, rf.withNotes); output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "pretty":
		opts := diagfmt.PrettyOpts{
			Color:       useColor(cmd, os.Stdout),
			Context:     2,
			PathMode:    pathMode,
			ShowNotes:   rf.withNotes,
			ShowFixes:   showFixes,
			ShowPreview: rf.preview,
		}
		for _, r := range run.Files {
			r.Bag.Filter(keep)
			diagfmt.Pretty(os.Stdout, r.Bag.Items(), run.FileSet, opts)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     rf.withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  rf.preview,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(run.Files))
		for _, r := range run.Files {
			r.Bag.Filter(keep)
			displayPath := run.FileSet.Get(r.FileID).FormatPath(formatMode, run.FileSet.BaseDir())
			data, err := diagfmt.BuildDiagnosticsOutput(r.Bag.Items(), run.FileSet, jsonOpts)
			if err != nil {
				return fmt.Errorf("failed to build diagnostics output: %w", err)
			}
			output[displayPath] = data
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	}
	return nil
}
