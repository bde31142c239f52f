package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cinder/internal/driver"
	"cinder/internal/symtab"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [path]",
	Short: "Dump the symbol table collected from a project",
	Long: `Symbols parses the project like check does, then prints every
collected symbol with its dialect, kind, type, and declaration site.
Useful for inspecting what the analyzer sees across dialects.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSymbols,
}

func init() {
	symbolsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	symbolsCmd.Flags().String("kind", "", "filter by symbol kind (function, variable, struct, enum, scope)")
	symbolsCmd.SilenceUsage = true
}

type symbolRow struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Dialect   string `json:"dialect"`
	Type      string `json:"type,omitempty"`
	Signature string `json:"signature,omitempty"`
	Parent    string `json:"parent,omitempty"`
	File      string `json:"file,omitempty"`
	Line      uint32 `json:"line,omitempty"`
	DeclOnly  bool   `json:"decl_only,omitempty"`
}

func runSymbols(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format %q (expected pretty or json)", format)
	}
	kindFilter, _ := cmd.Flags().GetString("kind")

	dir, err := resolveTarget(args)
	if err != nil {
		return err
	}

	result, err := driver.CheckDir(context.Background(), dir, driver.Options{})
	if err != nil {
		return err
	}

	rows := collectRows(result.Table, kindFilter)
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tDIALECT\tTYPE\tWHERE")
	for _, r := range rows {
		where := r.File
		if r.Line > 0 {
			where = fmt.Sprintf("%s:%d", r.File, r.Line)
		}
		typ := r.Type
		if r.Kind == "function" && r.Signature != "" {
			typ = r.Signature + " " + r.Type
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Kind, r.Dialect, typ, where)
	}
	return tw.Flush()
}

func collectRows(table *symtab.Table, kindFilter string) []symbolRow {
	snap := table.Snapshot()
	rows := make([]symbolRow, 0, len(snap.Symbols))
	for i := range snap.Symbols {
		sym := &snap.Symbols[i]
		kind := sym.Kind.String()
		if kindFilter != "" && kind != kindFilter {
			continue
		}
		rows = append(rows, symbolRow{
			Name:      sym.Name,
			Kind:      kind,
			Dialect:   sym.Dialect.String(),
			Type:      sym.Type,
			Signature: sym.Signature,
			Parent:    sym.Parent,
			File:      sym.File,
			Line:      sym.Line,
			DeclOnly:  sym.DeclOnly,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Dialect < rows[j].Dialect
	})
	return rows
}
