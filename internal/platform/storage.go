package platform

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// CloudStorage implements BlobStorage on a Cloud Storage bucket. Uploads are
// stamped with a download token so DownloadURL can build the tokenized
// media URL the hosted platform serves blobs from.
type CloudStorage struct {
	bucket     *storage.BucketHandle
	bucketName string
}

func NewCloudStorage(bucket *storage.BucketHandle, bucketName string) *CloudStorage {
	return &CloudStorage{bucket: bucket, bucketName: bucketName}
}

func (s *CloudStorage) Upload(ctx context.Context, path string, r io.Reader, contentType string) error {
	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": uuid.New().String(),
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return NewError(KindInternal, "", fmt.Errorf("upload %s: %w", path, err))
	}
	if err := w.Close(); err != nil {
		return NewError(KindInternal, "", fmt.Errorf("upload %s: %w", path, err))
	}
	return nil
}

func (s *CloudStorage) DownloadURL(ctx context.Context, path string) (string, error) {
	attrs, err := s.bucket.Object(path).Attrs(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return "", NewError(KindNotFound, "", err)
		}
		return "", NewError(KindInternal, "", err)
	}

	token := attrs.Metadata["firebaseStorageDownloadTokens"]
	u := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		s.bucketName, url.PathEscape(path))
	if token != "" {
		u += "&token=" + token
	}
	return u, nil
}
