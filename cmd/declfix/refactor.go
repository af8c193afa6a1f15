package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"declfix/internal/access"
	"declfix/internal/diagfmt"
	"declfix/internal/driver"
	"declfix/internal/fix"
	"declfix/internal/members"
	"declfix/internal/syntax"
)

var accessCmd = &cobra.Command{
	Use:   "access [flags] file.cs --name N --to A",
	Short: "Change the accessibility of named declarations",
	Long: `Access rewrites the accessibility keywords of every declaration called N.
A is one of private, protected, internal, public, "protected internal",
"private protected" or none (drop the keywords).`,
	Args: cobra.ExactArgs(1),
	RunE: runAccess,
}

var sortMembersCmd = &cobra.Command{
	Use:   "sort-members [flags] file.cs",
	Short: "Order the members of every type by kind",
	Args:  cobra.ExactArgs(1),
	RunE:  runSortMembers,
}

var orderModifiersCmd = &cobra.Command{
	Use:   "order-modifiers [flags] file.cs",
	Short: "Put the modifiers of every declaration into canonical order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderModifiers,
}

func init() {
	accessCmd.Flags().String("name", "", "declaration name")
	accessCmd.Flags().String("to", "", "new accessibility")
	accessCmd.Flags().StringSlice("kind", nil, "only declarations of these kinds (class, method, field, ...)")
	_ = accessCmd.MarkFlagRequired("name")
	_ = accessCmd.MarkFlagRequired("to")

	sortMembersCmd.Flags().Bool("by-name", false, "order members of the same kind by name")

	for _, c := range []*cobra.Command{accessCmd, sortMembersCmd, orderModifiersCmd} {
		c.Flags().Bool("dry-run", false, "report the changes without writing the file")
	}
}

func runAccess(cmd *cobra.Command, args []string) error {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return err
	}
	kindNames, err := cmd.Flags().GetStringSlice("kind")
	if err != nil {
		return err
	}
	a, err := access.Parse(to)
	if err != nil {
		return err
	}
	target := driver.Target{Name: name}
	for _, k := range kindNames {
		kind, ok := syntax.ParseKind(k)
		if !ok {
			return fmt.Errorf("unknown declaration kind %q", k)
		}
		target.Kinds = append(target.Kinds, kind)
	}

	return runRefactoring(cmd, args[0], func(opts driver.Options, apply fix.ApplyOptions) (*driver.RefactorResult, error) {
		return driver.ChangeAccessibility(cmd.Context(), args[0], target, a, opts, apply)
	})
}

func runSortMembers(cmd *cobra.Command, args []string) error {
	byName, err := cmd.Flags().GetBool("by-name")
	if err != nil {
		return err
	}
	return runRefactoring(cmd, args[0], func(opts driver.Options, apply fix.ApplyOptions) (*driver.RefactorResult, error) {
		if byName {
			opts.Analysis.MemberOrder = members.ByKindThenName
		}
		return driver.SortMembers(cmd.Context(), args[0], opts, apply)
	})
}

func runOrderModifiers(cmd *cobra.Command, args []string) error {
	return runRefactoring(cmd, args[0], func(opts driver.Options, apply fix.ApplyOptions) (*driver.RefactorResult, error) {
		return driver.OrderModifiers(cmd.Context(), args[0], opts, apply)
	})
}

func runRefactoring(cmd *cobra.Command, path string, do func(driver.Options, fix.ApplyOptions) (*driver.RefactorResult, error)) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, path)
	if err != nil {
		return err
	}
	res, err := do(opts, fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: dryRun})
	if errors.Is(err, driver.ErrSyntax) && res != nil {
		diagfmt.Pretty(os.Stderr, res.Bag.Items(), res.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
		return err
	}
	if res == nil {
		return err
	}
	for _, reason := range res.Rejected {
		fmt.Fprintf(os.Stderr, "skipped: %s\n", reason)
	}
	if res.Matched == 0 && !quiet(cmd) {
		fmt.Fprintln(os.Stderr, "no matching declarations")
	}
	return handleApplyResult(os.Stdout, res.Apply, err, dryRun)
}
