package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mircorpus/internal/checksum"
)

var (
	// ErrChecksumMismatch signals a fetched file whose digest disagrees
	// with the manifest. The partial download is discarded, never left
	// under its final name.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Remote is one downloadable resource of a dataset.
type Remote struct {
	// Name identifies the resource for subset selection.
	Name string
	// URL is where the resource is fetched from.
	URL string
	// Filename is the name the fetched file takes under the root.
	Filename string
	// Checksum is the expected md5 of the fetched file; empty skips
	// verification.
	Checksum string
	// Unpack extracts the file as a zip or tar.gz archive after the
	// fetch.
	Unpack bool
	// Dest is the subdirectory under the root to extract into; ""
	// extracts into the root itself.
	Dest string
}

// Client fetches dataset resources over HTTP.
type Client struct {
	http *http.Client
}

// NewClient returns a Client with a timeout generous enough for
// multi-gigabyte archives on slow links.
func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: 30 * time.Minute}}
}

// Fetch downloads one remote into root, verifying its digest and
// unpacking archives when asked. A destination already present with a
// matching digest is not fetched again unless force is set, so
// re-running a download is cheap. Extraction runs regardless, keeping
// the fetch idempotent even after extracted files were cleaned away.
func (c *Client) Fetch(ctx context.Context, root string, r Remote, force bool) error {
	if r.URL == "" {
		return fmt.Errorf("download %s: no url", r.Name)
	}
	if r.Filename == "" {
		return fmt.Errorf("download %s: no filename", r.Name)
	}
	dst := filepath.Join(root, r.Filename)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("download %s: %w", r.Name, err)
	}

	need := force
	if !need {
		_, statErr := os.Stat(dst)
		switch {
		case errors.Is(statErr, fs.ErrNotExist):
			need = true
		case statErr != nil:
			return fmt.Errorf("download %s: %w", r.Name, statErr)
		case r.Checksum != "":
			got, err := checksum.File(dst)
			if err != nil {
				return fmt.Errorf("download %s: %w", r.Name, err)
			}
			need = got != r.Checksum
		}
	}

	if need {
		if err := c.fetchFile(ctx, r.URL, dst, r.Checksum); err != nil {
			return err
		}
	} else {
		log.Debug().Str("file", dst).Msg("destination up to date, skipping fetch")
	}

	if r.Unpack {
		if err := Extract(dst, filepath.Join(root, r.Dest)); err != nil {
			return fmt.Errorf("download %s: %w", r.Name, err)
		}
	}
	return nil
}

// fetchFile streams the body into a uniquely named temp file beside
// dst, digesting as it writes, and renames into place only after the
// digest verifies.
func (c *Client) fetchFile(ctx context.Context, url, dst, wantSum string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	tmp := dst + ".part-" + uuid.NewString()
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	got, err := checksum.Reader(io.TeeReader(resp.Body, f))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	if wantSum != "" && got != wantSum {
		_ = os.Remove(tmp)
		return fmt.Errorf("fetch %s: got digest %s, want %s: %w", url, got, wantSum, ErrChecksumMismatch)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize %s: %w", dst, err)
	}

	log.Info().Str("url", url).Str("file", dst).Msg("downloaded")
	return nil
}
