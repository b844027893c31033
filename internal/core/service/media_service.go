package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sparkconnect/directory/internal/api/metrics"
	"github.com/sparkconnect/directory/internal/core/domain"
)

// allowedExtensions mirrors the upload whitelist: images plus short video
// formats used in listing galleries.
var allowedExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {},
	".mp4": {}, ".mov": {}, ".webm": {},
}

// MediaService stores uploads on local disk under dir and serves them at
// webPrefix.
type MediaService struct {
	dir       string
	webPrefix string
	log       zerolog.Logger
}

func NewMediaService(dir, webPrefix string, log zerolog.Logger) *MediaService {
	return &MediaService{dir: dir, webPrefix: strings.TrimSuffix(webPrefix, "/"), log: log}
}

// Save validates the extension, writes the file under a collision-safe name
// and returns its web path.
func (s *MediaService) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrInvalidFileType
	}

	name := uuid.NewString() + "_" + sanitizeFilename(filename)
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("write upload: %w", err)
	}

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	s.log.Info().Str("file", name).Msg("upload stored")
	return path.Join(s.webPrefix, name), nil
}

// sanitizeFilename strips directories and reduces the name to a safe
// character set, the same spirit as werkzeug's secure_filename.
func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
