package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/pkg/circuitbreaker"
	"github.com/architeacher/gadgets/pkg/logger"
)

const defaultContentType = "application/octet-stream"

// FilesystemPhotoStorage writes uploaded photos into one flat directory and
// serves them back under PublicBaseURL. Disk failures trip a circuit breaker
// so a full or unmounted volume fails fast.
type FilesystemPhotoStorage struct {
	directory string
	baseURL   string
	breaker   *circuitbreaker.CircuitBreaker[struct{}]
	logger    logger.Logger
}

var _ ports.PhotoStorage = (*FilesystemPhotoStorage)(nil)

func NewFilesystemPhotoStorage(cfg config.PhotoStorage, log logger.Logger) (*FilesystemPhotoStorage, error) {
	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", model.ErrStorageUnavailable, cfg.Directory, err)
	}

	storageLogger := log.Component("photo-storage")

	breaker := circuitbreaker.New[struct{}](circuitbreaker.Config{
		Name:             "photo-storage",
		Enabled:          cfg.CircuitBreaker.Enabled,
		MaxRequests:      cfg.CircuitBreaker.MaxRequests,
		Interval:         cfg.CircuitBreaker.Interval,
		Timeout:          cfg.CircuitBreaker.Timeout,
		FailureThreshold: cfg.CircuitBreaker.FailureThreshold,
		IsFailure: func(err error) bool {
			return !errors.Is(err, model.ErrPhotoNotFound)
		},
		OnStateChange: func(name, from, to string) {
			storageLogger.Warn().Str("breaker", name).Str("from", from).Str("to", to).Msg("circuit breaker state changed")
		},
	})

	return &FilesystemPhotoStorage{
		directory: cfg.Directory,
		baseURL:   strings.TrimRight(cfg.PublicBaseURL, "/"),
		breaker:   breaker,
		logger:    storageLogger,
	}, nil
}

func (s *FilesystemPhotoStorage) Save(ctx context.Context, name, _ string, content io.Reader) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	err := s.guard(ctx, func() error {
		return s.write(name, content)
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug().Str("photo", name).Msg("photo stored")

	return s.baseURL + "/" + path.Clean(name), nil
}

func (s *FilesystemPhotoStorage) Open(ctx context.Context, name string) (*ports.Photo, error) {
	if err := checkName(name); err != nil {
		return nil, model.ErrPhotoNotFound
	}

	var photo *ports.Photo

	err := s.guard(ctx, func() error {
		file, err := os.Open(filepath.Join(s.directory, name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return model.ErrPhotoNotFound
			}

			return fmt.Errorf("opening photo: %w", err)
		}

		info, err := file.Stat()
		if err != nil {
			_ = file.Close()

			return fmt.Errorf("reading photo metadata: %w", err)
		}

		if info.IsDir() {
			_ = file.Close()

			return model.ErrPhotoNotFound
		}

		photo = &ports.Photo{
			Name:        name,
			ContentType: contentTypeOf(name),
			Size:        info.Size(),
			Content:     file,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return photo, nil
}

// Ping checks that the directory still exists and accepts writes.
func (s *FilesystemPhotoStorage) Ping(ctx context.Context) error {
	return s.guard(ctx, func() error {
		probe, err := os.CreateTemp(s.directory, ".ping-*")
		if err != nil {
			return fmt.Errorf("probing directory: %w", err)
		}

		_ = probe.Close()

		return os.Remove(probe.Name())
	})
}

func (s *FilesystemPhotoStorage) guard(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := circuitbreaker.Execute(s.breaker, func() (struct{}, error) {
		return struct{}{}, fn()
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrPhotoNotFound):
		return err
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}
}

// write goes through a temporary file so readers never see a partial photo.
func (s *FilesystemPhotoStorage) write(name string, content io.Reader) error {
	tmp, err := os.CreateTemp(s.directory, ".upload-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, content); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("writing photo: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing photo: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.directory, name)); err != nil {
		return fmt.Errorf("publishing photo: %w", err)
	}

	return nil
}

func checkName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", model.ErrInvalidPhoto, name)
	}

	return nil
}

func contentTypeOf(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}

	return defaultContentType
}
