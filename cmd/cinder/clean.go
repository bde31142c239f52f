package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cinder/internal/driver"
	"cinder/internal/project"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove generated output and the symbol cache",
	Long: `Remove the project's generated output directory and the on-disk
symbol cache. With no argument the project root is located through
cinder.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().Bool("cache-only", false, "only drop the symbol cache, keep generated output")
	cleanCmd.SilenceUsage = true
}

func runClean(cmd *cobra.Command, args []string) error {
	cacheOnly, _ := cmd.Flags().GetBool("cache-only")

	if cache, err := driver.OpenDiskCache("cinder"); err == nil {
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop symbol cache: %w", err)
		}
		fmt.Fprintln(os.Stdout, "dropped symbol cache")
	}
	if cacheOnly {
		return nil
	}

	dir, err := resolveTarget(args)
	if err != nil {
		return err
	}
	outDir := filepath.Join(dir, "gen")
	if manifest, ok, merr := project.FindAndLoad(dir); merr == nil && ok {
		outDir = manifest.OutDir()
	} else if merr != nil {
		return merr
	}

	info, err := os.Stat(outDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(os.Stdout, "output directory not found")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", outDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", outDir)
	}
	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("failed to remove %q: %w", outDir, err)
	}
	fmt.Fprintf(os.Stdout, "removed %s\n", outDir)
	return nil
}
