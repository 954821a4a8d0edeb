// Package r2 stores media objects in Cloudflare R2 through its
// S3-compatible API.
package r2

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/nordqvist/webshop/internal/config"
)

// Store uploads objects to the configured R2 bucket.
type Store struct {
	cfg *config.Config
}

// NewStore creates an R2 object store over the given configuration.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

func (s *Store) client(ctx context.Context) (*s3.Client, error) {
	for _, name := range []string{"R2_ENDPOINT_URL", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET_NAME"} {
		if s.cfg.Get(name) == "" {
			return nil, fmt.Errorf("%s is required", name)
		}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		// R2 has no regions; the SDK still wants one.
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.Get("R2_ACCESS_KEY_ID"),
			s.cfg.Get("R2_SECRET_ACCESS_KEY"),
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 credentials: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.Get("R2_ENDPOINT_URL"))
	}), nil
}

// Put uploads one object under the given key.
func (s *Store) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	client, err := s.client(ctx)
	if err != nil {
		return err
	}

	bucket := s.cfg.Get("R2_BUCKET_NAME")
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
