package services

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"review-app/internal/models"
)

const defaultImageContentType = "image/jpeg"

// productIDPattern keeps product ids safe to embed in an object key.
var productIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type ImageStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type ImageService struct {
	storage  ImageStorage
	maxBytes int64
}

// NewImageService accepts a nil storage; uploads then fail with ErrStorageNotConfigured.
func NewImageService(storage ImageStorage, maxBytes int64) *ImageService {
	return &ImageService{storage: storage, maxBytes: maxBytes}
}

type UploadImageInput struct {
	ProductID   string
	FileName    string
	ContentType string
	Data        []byte
}

// Upload stores one image under reviews/<productId>/<uuid><ext> and returns its public URL.
// Storage failures are returned as ErrStorage and are not retried.
func (s *ImageService) Upload(ctx context.Context, in UploadImageInput) (string, error) {
	if s.storage == nil {
		return "", models.ErrStorageNotConfigured
	}

	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return "", validationError("missing product id")
	}
	if !productIDPattern.MatchString(productID) {
		return "", validationError("invalid product id")
	}

	ext := strings.ToLower(filepath.Ext(in.FileName))
	if !models.AllowedImageExtensions[ext] {
		return "", validationError("unsupported file type")
	}

	if len(in.Data) == 0 {
		return "", validationError("empty file")
	}
	if s.maxBytes > 0 && int64(len(in.Data)) > s.maxBytes {
		return "", validationError("file too large")
	}

	key := fmt.Sprintf("reviews/%s/%s%s", productID, uuid.NewString(), ext)
	contentType := resolveContentType(in.ContentType, in.Data)

	url, err := s.storage.Upload(ctx, key, in.Data, contentType)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("image upload failed")
		return "", fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	log.Info().
		Str("key", key).
		Str("content_type", contentType).
		Int("size", len(in.Data)).
		Msg("image uploaded")

	return url, nil
}

// resolveContentType prefers the declared type, then a sniffed image type, then image/jpeg.
func resolveContentType(declared string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if detected := mimetype.Detect(data); strings.HasPrefix(detected.String(), "image/") {
		return detected.String()
	}
	return defaultImageContentType
}
