package service

import (
	"context"
	"io"
)

// Uploader abstracts the media backend used for profile avatars.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
