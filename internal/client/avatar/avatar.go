// Package avatar stores profile pictures in an S3-compatible bucket under
// UserAvatars/{userID}.png and hands out time-limited download links.
package avatar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	KeyPrefix        = "UserAvatars/"
	MaxSize          = 5 << 20
	DefaultURLExpiry = 15 * time.Minute
)

var (
	ErrEmptyUserID = errors.New("avatar: empty user id")
	ErrNotImage    = errors.New("avatar: not an image")
	ErrTooLarge    = errors.New("avatar: image too large")
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Store is the avatar storage used by the profile service.
type Store interface {
	Upload(ctx context.Context, userID string, image []byte) (string, error)
	URL(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Config struct {
	Region       string
	Bucket       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	URLExpiry    time.Duration
}

type S3Store struct {
	objects   objectAPI
	presigner presigner
	bucket    string
	expiry    time.Duration
}

var _ Store = (*S3Store)(nil)

// NewS3Store builds a store from static credentials. A BaseEndpoint (MinIO
// and friends) switches the client to path-style addressing.
func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("avatar: empty bucket")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newStore(client, s3.NewPresignClient(client), cfg.Bucket, cfg.URLExpiry), nil
}

func newStore(objects objectAPI, p presigner, bucket string, expiry time.Duration) *S3Store {
	if expiry <= 0 {
		expiry = DefaultURLExpiry
	}
	return &S3Store{objects: objects, presigner: p, bucket: bucket, expiry: expiry}
}

// Key returns the object key of a user's avatar.
func Key(userID string) string {
	return KeyPrefix + userID + ".png"
}

// Upload stores image as the user's avatar and returns its object key.
func (s *S3Store) Upload(ctx context.Context, userID string, image []byte) (string, error) {
	if userID == "" {
		return "", ErrEmptyUserID
	}
	if len(image) > MaxSize {
		return "", ErrTooLarge
	}
	contentType := http.DetectContentType(image)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, contentType)
	}

	key := Key(userID)
	_, err := s.objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(image),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(image))),
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return key, nil
}

// URL returns a presigned GET link valid for the configured expiry.
func (s *S3Store) URL(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrEmptyUserID
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(Key(userID)),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign avatar: %w", err)
	}
	return req.URL, nil
}

func (s *S3Store) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	_, err := s.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(Key(userID)),
	})
	if err != nil {
		return fmt.Errorf("delete avatar: %w", err)
	}
	return nil
}
