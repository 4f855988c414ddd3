package storage

import (
	"context"
	"io"
)

// StorageService is the optional off-record image path. The default
// persistence stores image references inline with the business record;
// deployments that outgrow inline data can switch uploads to this service
// and store the returned URL instead.
type StorageService interface {
	// UploadImage stores the image and returns its public URL.
	UploadImage(ctx context.Context, r io.Reader, folder, name string) (string, error)
	// DeleteImage removes a previously uploaded image by public ID.
	DeleteImage(ctx context.Context, publicID string) error
}
