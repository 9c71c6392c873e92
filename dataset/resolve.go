package dataset

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const defaultRootDir = "mir_datasets"

// DefaultRoot returns the directory datasets live under when no
// explicit root is given: mir_datasets in the user's home. The
// directory is not created here; only the download path creates
// directories, so checking for files never leaves empty ones behind.
func DefaultRoot() string {
	return filepath.Join(xdg.Home, defaultRootDir)
}

// Resolve joins a dataset-relative path onto a local root. An empty
// rel, the form an absent manifest role takes, resolves to "". An
// empty root falls back to DefaultRoot. Resolve never touches the
// filesystem: existence checking belongs to Validate and directory
// creation to Download.
func Resolve(root, rel string) string {
	if rel == "" {
		return ""
	}
	if root == "" {
		root = DefaultRoot()
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}
