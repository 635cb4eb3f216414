package storage

import (
	"context"
	"testing"
	"time"

	"portfolio/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1740830400123)

	assert.Equal(t, "portfolio-website/1740830400123_photo.png", ObjectName("portfolio-website", "photo.png", now))
	assert.Equal(t, "portfolio-website/1740830400123_photo.png", ObjectName("/portfolio-website/", `C:\Users\me\photo.png`, now))
	assert.Equal(t, "1740830400123_a b.txt", ObjectName("", "../../a b.txt", now))
	assert.Equal(t, "x/1740830400123_file", ObjectName("x", "", now))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://storage.googleapis.com/bucket/portfolio-website%2F1_a%20b.png",
		PublicURL("bucket", "portfolio-website/1_a b.png"))
}

func TestCloudinaryIDs(t *testing.T) {
	folder, id := cloudinaryIDs("portfolio-website/1_photo.png")
	assert.Equal(t, "portfolio-website", folder)
	assert.Equal(t, "1_photo", id)

	folder, id = cloudinaryIDs("1_notes")
	assert.Empty(t, folder)
	assert.Equal(t, "1_notes", id)
}

func TestNewFromConfig_Errors(t *testing.T) {
	_, err := NewFromConfig(context.Background(), config.Config{StorageProvider: "s3"})
	assert.Error(t, err)

	_, err = NewFromConfig(context.Background(), config.Config{StorageProvider: "firebase"})
	assert.ErrorContains(t, err, "FIREBASE_SERVICE_ACCOUNT")

	_, err = NewFromConfig(context.Background(), config.Config{StorageProvider: "cloudinary"})
	assert.ErrorContains(t, err, "cloudinary credentials")
}

func TestNewCloudinaryStorage(t *testing.T) {
	s, err := NewCloudinaryStorage("demo", "key", "secret")
	require.NoError(t, err)
	assert.NotNil(t, s.cld)
}
