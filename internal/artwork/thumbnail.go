// Package artwork turns track artwork URLs into local thumbnail files
// that notification daemons can display.
package artwork

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/jpeg"
	_ "image/png" // PNG format support
	"net/url"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/control"
	"github.com/keytune/keytune/internal/domain"
)

const (
	thumbnailSize = 128
	jpegQuality   = 90
)

// Cache resolves artwork URLs to thumbnail files on disk, downloading
// and scaling each remote image at most once.
type Cache struct {
	logger  *zap.Logger
	fetcher domain.Fetcher
	dir     string
}

var _ control.IconResolver = (*Cache)(nil)

// NewCache creates a cache rooted at dir.
func NewCache(fetcher domain.Fetcher, dir string, logger *zap.Logger) *Cache {
	return &Cache{
		logger:  logger,
		fetcher: fetcher,
		dir:     dir,
	}
}

// Icon returns a local file path for the artwork URL. Local file URLs
// are handed back as plain paths. Remote images are downloaded through
// the fetcher, scaled to a square thumbnail and cached under a name
// derived from the URL, so repeated tracks reuse the same file.
func (c *Cache) Icon(ctx context.Context, artURL string) (string, error) {
	parsed, err := url.Parse(artURL)
	if err != nil {
		return "", fmt.Errorf("parse artwork url: %w", err)
	}

	if parsed.Scheme == "file" {
		if _, err := os.Stat(parsed.Path); err != nil {
			return "", fmt.Errorf("local artwork missing: %w", err)
		}
		return parsed.Path, nil
	}

	path := c.cachePath(artURL)
	if _, err := os.Stat(path); err == nil {
		c.logger.Debug("Artwork cache hit", zap.String("path", path))
		return path, nil
	}

	data, err := c.fetcher.Fetch(ctx, artURL)
	if err != nil {
		return "", fmt.Errorf("download artwork: %w", err)
	}

	thumb, err := renderThumbnail(data)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(path, thumb, 0644); err != nil {
		return "", fmt.Errorf("write thumbnail: %w", err)
	}

	c.logger.Debug("Artwork cached",
		zap.String("url", artURL),
		zap.String("path", path),
		zap.Int("bytes", len(thumb)))
	return path, nil
}

func (c *Cache) cachePath(artURL string) string {
	h := fnv.New64a()
	h.Write([]byte(artURL))
	return filepath.Join(c.dir, fmt.Sprintf("%016x.jpg", h.Sum64()))
}

// renderThumbnail scales the image to a square crop and encodes it as JPEG.
func renderThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	thumb := imaging.Fill(img, thumbnailSize, thumbnailSize, imaging.Center, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
