// Package media stores uploaded files on a blob bucket.
package media

import (
	"context"
	"os"
	"path"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	"samity/config"
	"samity/internal/domain/service"
)

const defaultURLPrefix = "/media"

// blobStore implements MediaStore on top of a gocloud blob bucket.
// The bucket is backed by the local filesystem in this deployment,
// but nothing above this package depends on that.
type blobStore struct {
	bucket    *blob.Bucket
	urlPrefix string
}

// Params defines the parameters required for the media store
type Params struct {
	fx.In

	Config    *config.Config
	Lifecycle fx.Lifecycle
}

// NewBlobStore opens the configured media directory as a blob bucket.
func NewBlobStore(params Params) (service.MediaStore, error) {
	cfg := params.Config
	if cfg.Media == nil || cfg.Media.Path == "" {
		return nil, errors.New("media path must be configured")
	}

	if err := os.MkdirAll(cfg.Media.Path, 0o755); err != nil {
		return nil, errors.Wrap(err, "create media directory")
	}

	bucket, err := fileblob.OpenBucket(cfg.Media.Path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open media bucket")
	}

	urlPrefix := cfg.Media.URLPrefix
	if urlPrefix == "" {
		urlPrefix = defaultURLPrefix
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStore{bucket: bucket, urlPrefix: urlPrefix}, nil
}

// Put writes data under key, replacing any existing object.
func (s *blobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return errors.Wrapf(err, "write media object %s", key)
	}

	return nil
}

// Get reads the object stored under key.
func (s *blobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "read media object %s", key)
	}

	return data, nil
}

// Delete removes the object stored under key if it exists.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	exists, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return errors.Wrapf(err, "check media object %s", key)
	}
	if !exists {
		return nil
	}
	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrapf(err, "delete media object %s", key)
	}

	return nil
}

// URL returns the public path for the object stored under key.
func (s *blobStore) URL(key string) string {
	return path.Join(s.urlPrefix, key)
}
