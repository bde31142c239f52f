package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cinder/internal/diag"
	"cinder/internal/diagfmt"
	"cinder/internal/driver"
	"cinder/internal/prof"
	"cinder/internal/project"
	"cinder/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Analyze Cinder sources without generating code",
	Long: `Check parses every .cn file under the project source directory,
collects symbols across files and dialects, and reports ordering,
initialization, and conflict diagnostics.

With no argument the project root is located by walking up from the
current directory to the nearest cinder.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "number of files analyzed in parallel (0 = NumCPU)")
	checkCmd.Flags().Bool("no-cache", false, "skip the on-disk symbol cache")
	checkCmd.Flags().Bool("timings", false, "print per-phase timings")
	checkCmd.Flags().String("cpuprofile", "", "write a CPU profile to the given file")
	checkCmd.Flags().String("memprofile", "", "write a heap profile to the given file")
	checkCmd.SilenceUsage = true
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format %q (expected pretty or json)", format)
	}
	colorMode, _ := cmd.Root().PersistentFlags().GetString("color")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	maxDiags, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	showTimings, _ := cmd.Flags().GetBool("timings")

	if path, _ := cmd.Flags().GetString("cpuprofile"); path != "" {
		if err := prof.StartCPU(path); err != nil {
			return err
		}
		defer prof.StopCPU()
	}
	if path, _ := cmd.Flags().GetString("memprofile"); path != "" {
		defer func() {
			_ = prof.WriteMem(path)
		}()
	}

	dir, err := resolveTarget(args)
	if err != nil {
		return err
	}

	if manifest, ok, merr := project.FindAndLoad(dir); merr == nil && ok {
		dir = manifest.SrcDir()
		if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && manifest.Config.Check.MaxDiagnostics > 0 {
			maxDiags = manifest.Config.Check.MaxDiagnostics
		}
		if !cmd.Flags().Changed("jobs") && manifest.Config.Check.Jobs > 0 {
			jobs = manifest.Config.Check.Jobs
		}
		if manifest.Config.Check.NoCache {
			noCache = true
		}
	} else if merr != nil {
		return merr
	}

	opts := driver.Options{MaxDiagnostics: maxDiags, Jobs: jobs}
	if !noCache {
		if cache, cerr := driver.OpenDiskCache("cinder"); cerr == nil {
			opts.Cache = cache
		}
	}

	start := time.Now()
	result, err := driver.CheckDir(context.Background(), dir, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	merged := diag.NewBag(maxDiags)
	for _, d := range result.Conflicts {
		merged.Add(d)
	}
	for i := range result.Files {
		merged.Merge(result.Files[i].Bag)
	}
	merged.Sort()

	colored := useColor(colorMode, os.Stdout)
	switch format {
	case "json":
		jopts := diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
			Max:              maxDiags,
		}
		if err := diagfmt.JSON(os.Stdout, merged, result.FileSet, jopts); err != nil {
			return err
		}
	default:
		popts := diagfmt.PrettyOpts{
			Color:     colored,
			ShowNotes: true,
			ShowFixes: true,
		}
		diagfmt.Pretty(os.Stdout, merged, result.FileSet, popts)
		if !quiet {
			summary := ui.Summary{
				Files:    len(result.Files),
				Errors:   result.ErrorCount(),
				Warnings: warningCount(merged),
				Elapsed:  elapsed,
			}
			fmt.Fprintln(os.Stdout, ui.Render(summary, colored))
		}
		if showTimings {
			fmt.Fprint(os.Stdout, result.Timings.String())
		}
	}

	if result.HasErrors() {
		cmd.SilenceErrors = true
		return fmt.Errorf("check failed")
	}
	return nil
}

// resolveTarget picks the directory to check from the optional CLI argument.
func resolveTarget(args []string) (string, error) {
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return "", fmt.Errorf("%s: not a directory", args[0])
		}
		return args[0], nil
	}
	return os.Getwd()
}

func warningCount(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			n++
		}
	}
	return n
}
