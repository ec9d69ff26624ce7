package config

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3 client and bucket info
type S3Config struct {
	Client     *s3.Client
	BucketName string
	PublicURL  string
}

// NewS3Config initializes the S3 client from the application configuration.
// Credentials come from the default AWS chain.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
	)
	if err != nil {
		return nil, err
	}

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = "https://" + cfg.S3Bucket + ".s3." + cfg.S3Region + ".amazonaws.com"
	}

	return &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: cfg.S3Bucket,
		PublicURL:  strings.TrimRight(publicURL, "/"),
	}, nil
}

// PresignPut generates a presigned PUT URL for the given object key.
func (s *S3Config) PresignPut(ctx context.Context, objectKey, contentType string, expiration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.Client)
	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// ObjectURL is the public URL an uploaded object is served from.
func (s *S3Config) ObjectURL(objectKey string) string {
	return s.PublicURL + "/" + objectKey
}
