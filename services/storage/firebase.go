package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseStorage writes to the app's default Firebase Storage bucket and
// makes every uploaded object public.
type FirebaseStorage struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewFirebaseStorage accepts the service account either as inline JSON or as
// a path to the key file.
func NewFirebaseStorage(ctx context.Context, serviceAccount, bucketName string) (*FirebaseStorage, error) {
	if serviceAccount == "" {
		return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT is not set")
	}
	if bucketName == "" {
		return nil, fmt.Errorf("FIREBASE_BUCKET is not set")
	}

	opt := option.WithCredentialsFile(serviceAccount)
	if strings.HasPrefix(strings.TrimSpace(serviceAccount), "{") {
		opt = option.WithCredentialsJSON([]byte(serviceAccount))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting storage client: %w", err)
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("firebase: error opening bucket: %w", err)
	}
	return &FirebaseStorage{bucket: bucket, bucketName: bucketName}, nil
}

func (s *FirebaseStorage) Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	obj := s.bucket.Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to make %s public: %w", objectName, err)
	}
	return PublicURL(s.bucketName, objectName), nil
}

// PublicURL is the googleapis URL of a public object. The whole object name,
// slashes included, is escaped as one path segment.
func PublicURL(bucket, objectName string) string {
	return "https://storage.googleapis.com/" + bucket + "/" + url.PathEscape(objectName)
}
