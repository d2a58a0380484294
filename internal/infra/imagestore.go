package infra

import (
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ImageDBPathPrefix is the path segment stored in the database for mirrored
// images; StaticURLPrefix is where the service serves them from.
const (
	ImageDBPathPrefix = "/pos_product_images"
	StaticURLPrefix   = "/static"
)

// ImageMirror downloads product images from an upstream system and keeps a
// local copy, so the catalog never depends on the upstream staying up.
type ImageMirror struct {
	dir        string
	httpClient *http.Client
}

func NewImageMirror(dir string, fetchTimeout time.Duration) (*ImageMirror, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ImageMirror{
		dir:        dir,
		httpClient: &http.Client{Timeout: fetchTimeout},
	}, nil
}

// Mirror fetches sourceURL and stores it locally, returning the DB path
// ("/pos_product_images/<uuid>.<ext>") or "" when there is no image. It
// never returns an error: a broken upstream image link must not block the
// enclosing product write, so every failure degrades to "no image" and is
// logged.
//
// A source equal to the previously stored path, or matching the local
// storage convention, means the caller round-tripped an earlier response
// back in; that is treated as "no change" and the existing file is kept.
func (m *ImageMirror) Mirror(ctx context.Context, sourceURL, previousPath string) string {
	if sourceURL == "" {
		m.Remove(previousPath)
		return ""
	}
	if sourceURL == previousPath || strings.Contains(sourceURL, ImageDBPathPrefix+"/") {
		return previousPath
	}

	// A genuinely new source replaces whatever was stored before, even if
	// the download ends up failing.
	m.Remove(previousPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		log.Error().Err(err).Str("url", sourceURL).Msg("image mirror: bad source url")
		return ""
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", sourceURL).Msg("image mirror: download failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Int("status", resp.StatusCode).Str("url", sourceURL).
			Msg("image mirror: upstream returned non-2xx")
		return ""
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.HasPrefix(contentType, "image/") {
		log.Warn().Str("url", sourceURL).Str("content_type", contentType).
			Msg("image mirror: source is not an image, proceeding without one")
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("url", sourceURL).Msg("image mirror: read failed")
		return ""
	}

	filename := uuid.NewString() + extensionFor(sourceURL, contentType)
	if err := os.WriteFile(filepath.Join(m.dir, filename), body, 0o644); err != nil {
		log.Error().Err(err).Str("url", sourceURL).Msg("image mirror: write failed")
		return ""
	}

	dbPath := ImageDBPathPrefix + "/" + filename
	log.Info().Str("url", sourceURL).Str("stored", dbPath).Msg("image mirror: stored local copy")
	return dbPath
}

// Remove deletes the physical file behind a stored DB path. Best effort:
// a failure is logged and swallowed, never fatal to the enclosing write.
func (m *ImageMirror) Remove(dbPath string) {
	if dbPath == "" {
		return
	}
	physical := filepath.Join(m.dir, path.Base(dbPath))
	if err := os.Remove(physical); err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("file", physical).Msg("image mirror: delete failed")
		}
		return
	}
	log.Info().Str("file", physical).Msg("image mirror: deleted local file")
}

// Dir exposes the physical directory for the static file route.
func (m *ImageMirror) Dir() string { return m.dir }

// ServeURL turns a stored DB path into the URL the service serves it under.
func ServeURL(dbPath *string) *string {
	if dbPath == nil || *dbPath == "" {
		return nil
	}
	if strings.HasPrefix(*dbPath, ImageDBPathPrefix) {
		u := StaticURLPrefix + *dbPath
		return &u
	}
	return dbPath
}

func extensionFor(sourceURL, contentType string) string {
	if ext := strings.ToLower(path.Ext(path.Base(sourceURL))); ext != "" && ext != "." {
		// Strip query fragments that survived path parsing.
		if i := strings.IndexAny(ext, "?#"); i > 0 {
			ext = ext[:i]
		}
		if ext != "" && ext != "." {
			return ext
		}
	}
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return ".jpg"
	default:
		return ".jpg"
	}
}
