package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"mircorpus/dataset"
	"mircorpus/internal/checksum"
	"mircorpus/internal/scancache"
)

func cmdValidate(cfg *Config) *cobra.Command {
	var useCache bool
	cmd := &cobra.Command{
		Use:   "validate <dataset>",
		Short: "Check local files against the bundled manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDataset(cfg, args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			sum := dataset.SumFunc(checksum.File)
			if useCache {
				cache, err := scancache.Open(filepath.Join(d.Root(), scancache.FileName))
				if err != nil {
					return err
				}
				defer cache.Close()
				sum = func(path string) (string, error) {
					return cache.Sum(ctx, path)
				}
			}

			report, err := d.ValidateWith(ctx, sum)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			if !report.OK() {
				return fmt.Errorf("%d problems found", report.Problems())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&useCache, "cache", false,
		"cache digests beside the data and reuse them while files stay unchanged")
	return cmd
}

func printReport(w io.Writer, report *dataset.Report) {
	if report.OK() {
		fmt.Fprintln(w, "ok: local files match the manifest")
		return
	}
	printFindings(w, "missing", report.Missing)
	printFindings(w, "mismatched", report.Mismatched)
}

func printFindings(w io.Writer, kind string, findings map[string][]string) {
	if len(findings) == 0 {
		return
	}
	ids := make([]string, 0, len(findings))
	for id := range findings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "%s:\n", kind)
	for _, id := range ids {
		for _, path := range findings[id] {
			fmt.Fprintf(w, "  %s\t%s\n", id, path)
		}
	}
}
