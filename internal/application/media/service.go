package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

// AllowedImageTypes is the whitelist of content types accepted for uploads.
// SVG is excluded because it can carry scripts.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ObjectStorageService is implemented by the infrastructure layer (S3 or the
// local stub).
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned upload URL and its expiration time.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned download URL and its expiration time.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// PublicURL returns the stable public URL for a stored object.
	PublicURL(storageKey string) string

	// DeleteObject removes an object from storage.
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether an object is present in storage.
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ServiceConfig holds upload policy for the media service.
type ServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
	MaxUploadSize     int64
}

// DefaultServiceConfig returns the default upload policy.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
		MaxUploadSize:     10 << 20,
	}
}

// InitiateUploadRequest describes a requested image upload.
type InitiateUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required,gt=0"`
}

// InitiateUploadResponse carries the presigned URL the client uploads to and
// the public URL the object will be served from.
type InitiateUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	PublicURL  string    `json:"public_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Service issues presigned upload URLs for user images.
type Service struct {
	storage ObjectStorageService
	config  ServiceConfig
}

// NewService creates a media Service with default policy.
func NewService(storage ObjectStorageService) *Service {
	return &Service{
		storage: storage,
		config:  DefaultServiceConfig(),
	}
}

// SetConfig replaces the upload policy.
func (s *Service) SetConfig(config ServiceConfig) {
	if config.UploadURLExpiry <= 0 {
		config.UploadURLExpiry = DefaultServiceConfig().UploadURLExpiry
	}
	if config.DownloadURLExpiry <= 0 {
		config.DownloadURLExpiry = DefaultServiceConfig().DownloadURLExpiry
	}
	if config.MaxUploadSize <= 0 {
		config.MaxUploadSize = DefaultServiceConfig().MaxUploadSize
	}
	s.config = config
}

// InitiateUpload validates the request and returns a presigned upload URL.
func (s *Service) InitiateUpload(ctx context.Context, userID uuid.UUID, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "User is required")
	}
	if req.FileName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "File name is required")
	}
	if !AllowedImageTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed. Only JPEG, PNG, GIF and WebP images are accepted.", req.ContentType))
	}
	if req.FileSize <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "File size must be positive")
	}
	if req.FileSize > s.config.MaxUploadSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the maximum upload size of %d bytes", s.config.MaxUploadSize))
	}

	storageKey := s.generateStorageKey(userID, req.FileName)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &InitiateUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		PublicURL:  s.storage.PublicURL(storageKey),
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload verifies the object landed in storage and returns its public URL.
func (s *Service) ConfirmUpload(ctx context.Context, storageKey string) (string, error) {
	if storageKey == "" {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Storage key is required")
	}
	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return "", shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return "", shared.NewDomainError("UPLOAD_NOT_FOUND", "File not found in storage. Please upload the file first.")
	}
	return s.storage.PublicURL(storageKey), nil
}

// Delete removes an uploaded object.
func (s *Service) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Storage key is required")
	}
	return s.storage.DeleteObject(ctx, storageKey)
}

func (s *Service) generateStorageKey(userID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("users/%s/uploads/%s%s", userID.String(), uuid.New().String(), ext)
}
