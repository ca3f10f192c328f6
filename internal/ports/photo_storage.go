package ports

import (
	"context"
	"io"
)

type (
	// Photo is a stored image opened for reading. Callers close Content.
	Photo struct {
		Name        string
		ContentType string
		Size        int64
		Content     io.ReadCloser
	}

	PhotoStorage interface {
		// Save stores the image under name and returns the public URL.
		Save(ctx context.Context, name, contentType string, content io.Reader) (string, error)

		// Open returns model.ErrPhotoNotFound when nothing is stored under name.
		Open(ctx context.Context, name string) (*Photo, error)

		Ping(ctx context.Context) error
	}
)
