package services

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/google/uuid"
)

// MaxPhotoBytes is the largest accepted upload.
const MaxPhotoBytes int64 = 10 << 20

var photoExtensionPattern = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)

var photoTypes = map[string]struct{}{
	"thumbnail": {},
	"hover":     {},
	"main":      {},
	"gallery":   {},
}

type PhotosService struct {
	storage  ports.PhotoStorage
	maxBytes int64
}

func NewPhotosService(storage ports.PhotoStorage, maxBytes int64) *PhotosService {
	if maxBytes <= 0 {
		maxBytes = MaxPhotoBytes
	}

	return &PhotosService{storage: storage, maxBytes: maxBytes}
}

func (s *PhotosService) UploadPhoto(ctx context.Context, upload ports.PhotoUpload) (string, error) {
	if err := ValidatePhoto(upload.ContentType, upload.Size, s.maxBytes); err != nil {
		return "", err
	}

	name := photoName(upload.PhotoType, upload.Filename, upload.ContentType)

	url, err := s.storage.Save(ctx, name, upload.ContentType, upload.Content)
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	return url, nil
}

func (s *PhotosService) OpenPhoto(ctx context.Context, name string) (*ports.Photo, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, model.ErrPhotoNotFound
	}

	return s.storage.Open(ctx, name)
}

// ValidatePhoto accepts any image/* content type up to maxBytes.
func ValidatePhoto(contentType string, size, maxBytes int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: content type %q is not an image", model.ErrInvalidPhoto, contentType)
	}

	if size > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", model.ErrPhotoTooLarge, size, maxBytes)
	}

	return nil
}

func photoName(photoType, filename, contentType string) string {
	prefix := "photo"
	if _, ok := photoTypes[photoType]; ok {
		prefix = photoType
	}

	return prefix + "-" + uuid.NewString() + photoExtension(filename, contentType)
}

func photoExtension(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); photoExtensionPattern.MatchString(ext) {
		return ext
	}

	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}

	return ""
}
