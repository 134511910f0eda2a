// Package storage issues presigned S3 upload URLs for dashboard images.
// The dashboard uploads directly to the bucket and stores the resulting
// public URL in the section or profile record.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vision2030/site-server/internal/config"
)

type Service interface {
	// PresignUpload creates a time-limited URL for a direct PUT of the object.
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)

	// PublicURL is where the object will be readable after upload.
	PublicURL(key string) string
}

type s3Service struct {
	presigner     *s3.PresignClient
	bucket        string
	publicBaseURL string
}

func New(ctx context.Context, cfg *config.Config) (Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		// Path-style addressing keeps MinIO and other S3-compatible
		// endpoints working without wildcard DNS.
		o.UsePathStyle = true
	})

	publicBaseURL := cfg.S3PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.S3Endpoint, "/"), cfg.S3Bucket)
	}

	return &s3Service{
		presigner:     s3.NewPresignClient(client),
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *s3Service) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign upload: %w", err)
	}
	return req.URL, nil
}

func (s *s3Service) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicBaseURL, key)
}
