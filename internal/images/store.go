package images

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/akiyahub/akiya-crawler/internal/logger"
	"github.com/akiyahub/akiya-crawler/internal/normalize"
)

// Store downloads listing photos into a listing-keyed directory tree:
//
//	<baseDir>/images/<site>/<key-prefix>/<urlhash>.<ext>
//
// File names are derived from the source URL, so re-running a crawl finds
// the files already on disk and skips the download.
type Store struct {
	baseDir string
	client  *http.Client
	logger  *logger.Logger
}

// NewStore creates a store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger.NewLogger("image_store"),
	}
}

// ListingDir returns the relative directory for one listing's images.
func (s *Store) ListingDir(site, key string) string {
	return filepath.Join("images", site, normalize.KeyPrefix(key))
}

// SaveAll downloads every image URL it does not already have and returns
// the relative paths of all images present on disk afterwards, in input
// order. A failed download is logged and skipped; it never fails the
// listing.
func (s *Store) SaveAll(ctx context.Context, site, key string, urls []string) []string {
	dir := s.ListingDir(site, key)
	absDir := filepath.Join(s.baseDir, dir)

	var paths []string
	seen := make(map[string]struct{})

	for _, imageURL := range urls {
		if imageURL == "" {
			continue
		}
		if _, dup := seen[imageURL]; dup {
			continue
		}
		seen[imageURL] = struct{}{}

		rel := filepath.Join(dir, fileName(imageURL))
		abs := filepath.Join(s.baseDir, rel)

		if _, err := os.Stat(abs); err == nil {
			paths = append(paths, rel)
			continue
		}

		if err := os.MkdirAll(absDir, 0o755); err != nil {
			s.logger.WithField("dir", absDir).Error("Failed to create image directory", err)
			return paths
		}

		if err := s.download(ctx, imageURL, abs); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"url": imageURL,
				"key": key,
			}).Error("Failed to download image", err)
			continue
		}
		paths = append(paths, rel)
	}

	return paths
}

// RemoveListing deletes a listing's image directory. Missing directories
// are not an error.
func (s *Store) RemoveListing(site, key string) error {
	abs := filepath.Join(s.baseDir, s.ListingDir(site, key))
	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("failed to remove image dir %s: %w", abs, err)
	}
	return nil
}

// ListingDirs returns the key prefixes that have an image directory for a
// site. The cleanup job compares these against stored keys to find
// orphans.
func (s *Store) ListingDirs(site string) ([]string, error) {
	siteDir := filepath.Join(s.baseDir, "images", site)
	entries, err := os.ReadDir(siteDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image dir %s: %w", siteDir, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// RemoveDir deletes one key-prefix directory under a site.
func (s *Store) RemoveDir(site, keyPrefix string) error {
	abs := filepath.Join(s.baseDir, "images", site, keyPrefix)
	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("failed to remove image dir %s: %w", abs, err)
	}
	return nil
}

func (s *Store) download(ctx context.Context, imageURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close file: %w", err)
	}

	// Rename last so a crashed download never leaves a partial file that a
	// later run would mistake for a completed one.
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize file: %w", err)
	}
	return nil
}

// fileName derives a deterministic name from the image URL.
func fileName(imageURL string) string {
	hash := sha256.Sum256([]byte(imageURL))
	name := fmt.Sprintf("%x", hash)[:16]

	ext := strings.ToLower(path.Ext(stripQuery(imageURL)))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return name + ext
	default:
		return name + ".jpg"
	}
}

func stripQuery(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i]
	}
	return u
}
