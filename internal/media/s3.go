package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	appconfig "quizmate/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Host stores media in an S3-compatible bucket. The asset's object key
// doubles as its public id.
type S3Host struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

// NewS3Host builds an S3Host from application config. A custom MEDIA_ENDPOINT
// targets S3-compatible stores like MinIO; path-style addressing is enabled
// for those.
func NewS3Host(cfg *appconfig.Config) (*S3Host, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.MediaRegion),
	}
	if cfg.MediaAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.MediaEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.MediaEndpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.MediaBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.MediaBucket, cfg.MediaRegion)
	}

	return &S3Host{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.MediaBucket,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

func (h *S3Host) Upload(ctx context.Context, data []byte, contentType, kind string) (Asset, error) {
	key := fmt.Sprintf("%s/%s", kind, uuid.NewString())

	_, err := h.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Asset{}, fmt.Errorf("failed to upload media object: %w", err)
	}

	return Asset{
		URL:      h.baseURL + "/" + key,
		PublicID: key,
	}, nil
}

func (h *S3Host) Delete(ctx context.Context, publicID string) (bool, error) {
	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete media object: %w", err)
	}
	return true, nil
}
