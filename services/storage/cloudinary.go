package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements StorageService using Cloudinary.
type CloudinaryStorageService struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStorageService wraps an initialized Cloudinary client.
func NewCloudinaryStorageService(client *cloudinary.Cloudinary) *CloudinaryStorageService {
	return &CloudinaryStorageService{client: client}
}

// UploadImage uploads the image into folder and returns its delivery URL.
func (s *CloudinaryStorageService) UploadImage(ctx context.Context, r io.Reader, folder, name string) (string, error) {
	result, err := s.client.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   folder,
		PublicID: name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", name, err)
	}
	return result.SecureURL, nil
}

// DeleteImage removes an uploaded image by its public ID.
func (s *CloudinaryStorageService) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	return nil
}
