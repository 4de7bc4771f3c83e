package objectstore

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"tasktracker/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const operationTimeout = 30 * time.Second

// Store is the relay to the external object storage. Uploads return a public
// URL plus the storage key needed for later deletion; deletes are issued by
// the background cleanup worker, never inline with request handling.
type Store interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type S3Store struct {
	client *minio.Client
	bucket string
	// base URL objects are served from, derived from endpoint + bucket
	publicBase string
}

var (
	once  sync.Once
	store *S3Store
)

func GetStore() *S3Store {
	once.Do(func() {
		env := config.GetEnv()

		client, err := minio.New(env.S3Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(env.S3AccessKey, env.S3SecretKey, ""),
			Secure: env.S3UseSsl,
		})
		if err != nil {
			panic(err)
		}

		scheme := "http"
		if env.S3UseSsl {
			scheme = "https"
		}

		store = &S3Store{
			client:     client,
			bucket:     env.S3Bucket,
			publicBase: fmt.Sprintf("%s://%s/%s", scheme, env.S3Endpoint, env.S3Bucket),
		}
	})

	return store
}

func (s *S3Store) Upload(
	ctx context.Context,
	key string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return s.publicBase + "/" + key, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	return nil
}
