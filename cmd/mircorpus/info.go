package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func cmdInfo(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "info <dataset>",
		Short: "Show a dataset's version, location and contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDataset(cfg, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "name:       %s\n", d.Name())
			fmt.Fprintf(w, "version:    %s\n", d.Version())
			fmt.Fprintf(w, "root:       %s\n", d.Root())
			fmt.Fprintf(w, "tracks:     %d\n", len(d.TrackIDs()))
			fmt.Fprintf(w, "properties: %s\n", strings.Join(d.PropertyNames(), ", "))
			if remotes := d.RemoteNames(); len(remotes) > 0 {
				fmt.Fprintf(w, "resources:  %s\n", strings.Join(remotes, ", "))
			}
			if note := d.DownloadNote(); note != "" {
				fmt.Fprintf(w, "\nnote:\n%s\n", indent(note))
			}
			if license := d.License(); license != "" {
				fmt.Fprintf(w, "\nlicense: %s\n", license)
			}
			if citation := d.Citation(); citation != "" {
				fmt.Fprintf(w, "\ncite:\n%s\n", indent(citation))
			}
			return nil
		},
	}
}

func indent(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
