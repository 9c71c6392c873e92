package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func cmdTracks(cfg *Config) *cobra.Command {
	var showRoles bool
	cmd := &cobra.Command{
		Use:   "tracks <dataset>",
		Short: "List a dataset's track identifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDataset(cfg, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, id := range d.TrackIDs() {
				if !showRoles {
					fmt.Fprintln(w, id)
					continue
				}
				tr, err := d.Track(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", id, strings.Join(tr.Roles(), ","))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showRoles, "roles", false, "show each track's file roles")
	return cmd
}
