// Package storage uploads files to a public object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"portfolio/config"
)

// StorageService stores an object and returns a URL anyone can read it from.
type StorageService interface {
	Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)
}

// ObjectName builds "<folder>/<unix millis>_<file name>". Any directory part
// of fileName is dropped.
func ObjectName(folder, fileName string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	name := fmt.Sprintf("%d_%s", now.UnixMilli(), base)
	if folder = strings.Trim(folder, "/"); folder != "" {
		name = folder + "/" + name
	}
	return name
}

// NewFromConfig returns the backend named by STORAGE_PROVIDER.
func NewFromConfig(ctx context.Context, cfg config.Config) (StorageService, error) {
	switch cfg.StorageProvider {
	case "cloudinary":
		return NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "firebase":
		return NewFirebaseStorage(ctx, cfg.FirebaseServiceAccount, cfg.FirebaseBucket)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.StorageProvider)
	}
}
