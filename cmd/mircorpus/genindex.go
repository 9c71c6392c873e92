package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mircorpus/dataset"
	"mircorpus/internal/checksum"
)

func cmdGenIndex() *cobra.Command {
	var (
		version string
		out     string
		roles   map[string]string
	)
	cmd := &cobra.Command{
		Use:   "genindex <dir>",
		Short: "Build an index manifest from a directory of dataset files",
		Long: `Walk a directory of dataset files and emit an index manifest with
one entry per file, digested and grouped into tracks by file stem. The
role of each file defaults to its extension; use --role to map
extensions to names, e.g. --role .wav=audio,.mel=melody.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := buildIndex(cmd.Context(), args[0], roles, version)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(idx, "", "  ")
			if err != nil {
				return fmt.Errorf("encode index: %w", err)
			}
			data = append(data, '\n')
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write index: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&version, "index-version", "1.0", "version label for the manifest")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the manifest to a file instead of stdout")
	cmd.Flags().StringToStringVar(&roles, "role", nil, "extension to role mapping")
	return cmd
}

// buildIndex digests every file under dir into a manifest, one track
// per file stem. Dotfiles and dot-directories are skipped, which also
// keeps any scan cache out of the manifest.
func buildIndex(ctx context.Context, dir string, roles map[string]string, version string) (*dataset.Index, error) {
	idx := &dataset.Index{
		Version: dataset.Version(version),
		Tracks:  make(map[string]dataset.TrackManifest),
	}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		ext := filepath.Ext(entry.Name())
		role := strings.TrimPrefix(ext, ".")
		if mapped, ok := roles[ext]; ok {
			role = mapped
		}
		if role == "" {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		sum, err := checksum.File(path)
		if err != nil {
			return err
		}

		id := strings.TrimSuffix(entry.Name(), ext)
		man := idx.Tracks[id]
		if man == nil {
			man = make(dataset.TrackManifest)
			idx.Tracks[id] = man
		}
		if _, dup := man[role]; dup {
			return fmt.Errorf("track %q already has a %q file, map extensions apart with --role", id, role)
		}
		man[role] = dataset.NewFileRef(filepath.ToSlash(rel), sum)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(idx.Tracks) == 0 {
		return nil, fmt.Errorf("no indexable files under %s", dir)
	}
	return idx, nil
}
