// Package dataset bootstraps the reference database file. The druglist is
// distributed as a prebuilt SQLite file; on first start it is fetched over
// HTTP (typically a Google Drive direct-download link) and dropped next to
// the binary. It is never written to afterwards.
package dataset

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// GDriveURL builds the direct-download URL for a Google Drive file id.
func GDriveURL(fileID string) string {
	return "https://drive.google.com/uc?export=download&id=" + fileID
}

// Ensure makes the reference database available at path, downloading it
// from url when missing. The download goes through a temp file and a
// rename, so a crash mid-transfer never leaves a truncated database behind.
func Ensure(ctx context.Context, path, url string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if url == "" {
		return fmt.Errorf("reference db %s is missing and no download URL is configured", path)
	}

	log.Printf("📥 Reference db %s not found, downloading...", path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download reference db: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download reference db: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "druglist-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write reference db: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("move reference db into place: %w", err)
	}

	log.Printf("✅ Reference db downloaded: %s (%d bytes)", path, n)
	return nil
}
