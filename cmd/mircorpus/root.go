package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"mircorpus/dataset"
	_ "mircorpus/datasets"
)

func newRootCmd(cfg Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "mircorpus",
		Short:         "Manage and validate local copies of MIR research corpora",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.Root, "root", cfg.Root,
		"directory holding the dataset directories (defaults per dataset)")

	root.AddCommand(
		cmdList(),
		cmdInfo(&cfg),
		cmdTracks(&cfg),
		cmdValidate(&cfg),
		cmdDownload(&cfg),
		cmdGenIndex(),
	)
	return root
}

// openDataset initializes name under the configured root, or the
// dataset's default location when no root is set.
func openDataset(cfg *Config, name string) (*dataset.Dataset, error) {
	root := ""
	if cfg.Root != "" {
		root = filepath.Join(cfg.Root, name)
	}
	return dataset.Initialize(name, root)
}
