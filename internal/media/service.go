// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/osite-go/internal/util"
)

// Supported upload MIME types.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// MaxUploadSize caps uploads at 10 MB.
const MaxUploadSize = 10 << 20

// Thumbnail bounds. Variants keep aspect ratio within this box.
const (
	thumbWidth   = 400
	thumbHeight  = 400
	thumbQuality = 85
)

// UploadResult describes a stored upload and its variants.
type UploadResult struct {
	Key      string `json:"key"`
	ThumbKey string `json:"thumbKey,omitempty"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// Service validates uploads, generates thumbnails, and talks to the
// object store. A nil store puts the service in unavailable mode where
// every operation returns ErrUnavailable.
type Service struct {
	store  ObjectStore
	logger *slog.Logger
}

// NewService creates a media service. store may be nil when no object
// store is configured.
func NewService(store ObjectStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Available reports whether an object store is configured.
func (s *Service) Available() bool {
	return s.store != nil
}

// Upload validates and stores an image. The key is derived from the
// sanitized filename plus a short unique suffix so repeated uploads of
// the same file never collide.
func (s *Service) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	if s.store == nil {
		return nil, ErrUnavailable
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("upload exceeds %d bytes", MaxUploadSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty upload")
	}

	mimeType := DetectMimeType(data)
	if !IsSupportedType(mimeType) {
		return nil, fmt.Errorf("unsupported media type %q", mimeType)
	}

	key := buildKey(filename, mimeType)

	result := &UploadResult{
		Key:      key,
		MimeType: mimeType,
		Size:     int64(len(data)),
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	bounds := img.Bounds()
	result.Width = bounds.Dx()
	result.Height = bounds.Dy()

	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mimeType); err != nil {
		return nil, err
	}

	// Thumbnail failures are not fatal; the original is already stored.
	if thumbKey, err := s.storeThumbnail(ctx, key, img, mimeType); err != nil {
		s.logger.Warn("thumbnail generation failed",
			"key", key, "error", err, "category", "media")
	} else if thumbKey != "" {
		result.ThumbKey = thumbKey
	}

	s.logger.Info("media uploaded",
		"key", key, "size", result.Size, "type", mimeType, "category", "media")

	return result, nil
}

// Open returns a reader over a stored object.
func (s *Service) Open(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if s.store == nil {
		return nil, ObjectInfo{}, ErrUnavailable
	}
	return s.store.Get(ctx, key)
}

// Delete removes an object and its thumbnail if one exists.
func (s *Service) Delete(ctx context.Context, key string) error {
	if s.store == nil {
		return ErrUnavailable
	}
	if err := s.store.Remove(ctx, key); err != nil {
		return err
	}
	// The thumbnail may not exist for animated GIFs; ignore its absence.
	_ = s.store.Remove(ctx, thumbKeyFor(key))
	return nil
}

// storeThumbnail encodes and stores a fitted variant. Animated GIFs are
// skipped since re-encoding would flatten them to one frame.
func (s *Service) storeThumbnail(ctx context.Context, key string, img image.Image, mimeType string) (string, error) {
	if mimeType == MimeTypeGIF {
		return "", nil
	}

	bounds := img.Bounds()
	if bounds.Dx() <= thumbWidth && bounds.Dy() <= thumbHeight {
		return "", nil
	}

	resized := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)

	var buf bytes.Buffer
	outType := mimeType
	switch mimeType {
	case MimeTypePNG:
		if err := png.Encode(&buf, resized); err != nil {
			return "", err
		}
	default:
		// JPEG output for everything else, including WebP sources
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: thumbQuality}); err != nil {
			return "", err
		}
		outType = MimeTypeJPEG
	}

	thumbKey := thumbKeyFor(key)
	if err := s.store.Put(ctx, thumbKey, bytes.NewReader(buf.Bytes()), int64(buf.Len()), outType); err != nil {
		return "", err
	}
	return thumbKey, nil
}

// DetectMimeType detects the MIME type of uploaded data.
func DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	// http.DetectContentType returns values like "image/jpeg; charset=utf-8"
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}

// IsSupportedType checks if a MIME type is accepted for upload.
func IsSupportedType(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}

// buildKey derives the object key from the original filename. The slug
// keeps keys readable, the uuid suffix keeps them unique.
func buildKey(filename, mimeType string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	slug := util.Slugify(base)
	if slug == "" {
		slug = "upload"
	}

	ext := extensionFor(mimeType)
	return fmt.Sprintf("uploads/%s-%s%s", slug, uuid.NewString()[:8], ext)
}

func thumbKeyFor(key string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "-thumb" + ext
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case MimeTypeJPEG:
		return ".jpg"
	case MimeTypePNG:
		return ".png"
	case MimeTypeGIF:
		return ".gif"
	case MimeTypeWebP:
		return ".webp"
	default:
		return ""
	}
}
