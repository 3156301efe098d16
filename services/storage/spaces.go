// Package storage uploads media (country, university and major images,
// gallery images, article featured images) to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload
const MaxImageSize = 10 << 20

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds the maximum size")
	ErrInvalidFolder   = errors.New("invalid folder")
)

// imageTypes maps accepted content types to the stored file extension
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Folders media may be stored under
var Folders = map[string]bool{
	"countries":    true,
	"universities": true,
	"majors":       true,
	"articles":     true,
}

// SpacesClient stores public media in a DigitalOcean Spaces (or any S3 compatible) bucket
type SpacesClient struct {
	s3Client s3iface.S3API
	bucket   string
	region   string
	endpoint string
	cdnURL   string
}

// SpacesConfig holds configuration for Spaces client
type SpacesConfig struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	CDNURL    string
}

// Enabled reports whether enough is configured to open a client
func (c SpacesConfig) Enabled() bool {
	return c.Bucket != "" && c.Region != ""
}

// NewSpacesClient creates a new Spaces client
func NewSpacesClient(config SpacesConfig) (*SpacesClient, error) {
	awsConfig := &aws.Config{
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(false),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spaces session: %w", err)
	}

	return newSpacesClient(s3.New(sess), config), nil
}

func newSpacesClient(api s3iface.S3API, config SpacesConfig) *SpacesClient {
	return &SpacesClient{
		s3Client: api,
		bucket:   config.Bucket,
		region:   config.Region,
		endpoint: strings.TrimPrefix(strings.TrimPrefix(config.Endpoint, "https://"), "http://"),
		cdnURL:   strings.TrimSuffix(config.CDNURL, "/"),
	}
}

// UploadImage stores an image under folder/<uuid><ext> and returns the key and
// its public URL. The type is taken from the bytes, not from the client.
func (s *SpacesClient) UploadImage(ctx context.Context, folder string, data []byte) (string, string, error) {
	if !Folders[folder] {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidFolder, folder)
	}
	if len(data) > MaxImageSize {
		return "", "", ErrTooLarge
	}
	contentType := mimetype.Detect(data).String()
	ext, ok := imageTypes[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	key := path.Join(folder, uuid.New().String()+ext)

	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}

	return key, s.URL(key), nil
}

// Delete removes an object by key
func (s *SpacesClient) Delete(ctx context.Context, key string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// URL returns the public URL for a key, preferring the CDN. Without an
// endpoint the bucket lives on AWS S3 in the configured region.
func (s *SpacesClient) URL(key string) string {
	switch {
	case s.cdnURL != "":
		return fmt.Sprintf("%s/%s", s.cdnURL, key)
	case s.endpoint != "":
		return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.endpoint, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
}
