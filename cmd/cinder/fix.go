package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cinder/internal/diag"
	"cinder/internal/driver"
	"cinder/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [path]",
	Short: "Apply available fixes to a project",
	Long: `Run the analyzers, surface the edits they suggest (like rewriting
an unresolvable call through global.), and apply the ones that do not
conflict.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "show what would change without writing files")
	fixCmd.SilenceUsage = true
}

func runFix(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	maxDiags, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	dir, err := resolveTarget(args)
	if err != nil {
		return err
	}

	result, err := driver.CheckDir(context.Background(), dir, driver.Options{MaxDiagnostics: maxDiags})
	if err != nil {
		return err
	}

	var diagnostics []diag.Diagnostic
	for i := range result.Files {
		diagnostics = append(diagnostics, result.Files[i].Bag.Items()...)
	}
	diagnostics = append(diagnostics, result.Conflicts...)

	applied, err := fix.Apply(result.FileSet, diagnostics, fix.Options{DryRun: dryRun})
	if errors.Is(err, fix.ErrNoFixes) {
		fmt.Fprintln(os.Stdout, "nothing to fix")
		return nil
	}
	if err != nil {
		return err
	}

	for _, a := range applied.Applied {
		fmt.Fprintf(os.Stdout, "applied: %s (%s)\n", a.Title, a.Path)
	}
	for _, s := range applied.Skipped {
		fmt.Fprintf(os.Stdout, "skipped: %s (%s)\n", s.Title, s.Reason)
	}
	if dryRun {
		fmt.Fprintf(os.Stdout, "%d file(s) would change\n", len(applied.Changes))
	} else {
		fmt.Fprintf(os.Stdout, "%d file(s) changed\n", len(applied.Changes))
	}
	return nil
}
